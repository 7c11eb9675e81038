package constants

// Messages d'erreur HTTP courants
const (
	ErrMethodNotAllowed = "Méthode non autorisée"
	ErrServerError      = "Erreur serveur"
	ErrInvalidData      = "Données invalides"
	ErrInvalidJSONBody  = "Body JSON invalide"
	ErrRouteNotFound    = "Route non trouvee"
	ErrInvalidStatus    = "Statut invalide."
	ErrInvalidEmail     = "Veuillez fournir un email valide"
)

// Authentification
const (
	ErrTokenMissing       = "Token d'authentification manquant"
	ErrTokenFormat        = "Format du token invalide"
	ErrTokenInvalid       = "Token invalide ou expiré"
	ErrNotAuthenticated   = "Non authentifié"
	ErrAdminOnly          = "Accès refusé - Admin uniquement"
	ErrCredentialsMissing = "Email et mot de passe requis."
	ErrBadCredentials     = "Identifiants incorrects."
	MsgLoginSuccess       = "Connexion réussie."
)

// Formations
const (
	ErrFormationNotFound      = "Formation non trouvée"
	ErrFormationRequired      = "Titre, niveau, public et durée sont requis."
	ErrFormationLevelRange    = "Le niveau doit être compris entre 1 et 4."
	ErrFormationDuplicate     = "Une formation avec ce titre existe déjà."
	ErrFormationEmptyTitle    = "Le titre ne peut pas être vide."
	ErrFormationEmptyUpdate   = "Aucun champ à mettre à jour."
	ErrFormationInvalidSearch = "Le niveau doit être un nombre."
	MsgFormationCreated       = "Formation créée avec succès."
	MsgFormationUpdated       = "Formation mise à jour avec succès."
	MsgFormationDeleted       = "Formation supprimée avec succès."
)

// Demandes de contact
const (
	ErrContactRequired      = "Veuillez remplir tous les champs obligatoires (prénom, nom, email, sujet, message)"
	ErrContactNotFound      = "Demande non trouvée"
	ErrContactUnknownCourse = "La formation indiquée n'existe pas."
	ErrReplyRequired        = "Le message de réponse est requis."
	MsgContactCreated       = "Votre message a bien été envoyé. Nous vous répondrons dans les plus brefs délais."
	MsgContactStatusUpdated = "Statut mis à jour avec succès."
	MsgContactDeleted       = "Demande supprimée avec succès."
	MsgReplySimulated       = "Réponse enregistrée. Email simulé (SMTP non configuré)."
	MsgReplySent            = "Réponse envoyée par email avec succès."
	MsgReplyEmailFailed     = "Réponse enregistrée, mais l'envoi de l'email a échoué."
)

// Inscriptions
const (
	ErrInscriptionRequired        = "Veuillez remplir tous les champs obligatoires (prénom, nom, email, formation)."
	ErrInscriptionFormationAbsent = "Formation non trouvée."
	ErrInscriptionNotFound        = "Inscription non trouvée"
	MsgInscriptionCreated         = "Votre demande d'inscription à \"%s\" a bien été envoyée. Nous vous contacterons rapidement."
	MsgInscriptionStatusUpdated   = "Statut mis à jour."
	MsgInscriptionDeleted         = "Inscription supprimée avec succès."
)

// En-têtes HTTP
const (
	HeaderContentType     = "Content-Type"
	HeaderApplicationJSON = "application/json"
	HeaderRequestID       = "X-Request-ID"
)
