// Package store définit l'abstraction de stockage commune aux modes mémoire et MongoDB.
package store

import (
	"context"
	"errors"
	"time"

	"qwesty-backend/models"
)

var (
	// ErrNotFound est retourné quand l'identifiant ou le slug ne correspond à aucun document
	ErrNotFound = errors.New("document non trouvé")
	// ErrDuplicate est retourné quand un slug existe déjà
	ErrDuplicate = errors.New("document en doublon")
)

// Mode identifie le backend actif
type Mode string

const (
	ModeMemory  Mode = "memoire"
	ModeMongoDB Mode = "MongoDB"
)

// FormationFilter filtre la liste des formations. Les champs vides sont ignorés.
// Level nil signifie tous les niveaux ; un niveau inexistant ne retourne rien.
type FormationFilter struct {
	Level  *int
	Search string
}

// ByLevel construit un filtre sur un numéro de niveau
func ByLevel(level int) FormationFilter {
	return FormationFilter{Level: &level}
}

// ContactFilter filtre la liste des demandes
type ContactFilter struct {
	Status models.ContactStatus
	Limit  int
}

// InscriptionFilter filtre la liste des inscriptions
type InscriptionFilter struct {
	Status      models.InscriptionStatus
	FormationID string
	Limit       int
}

// FormationStore gère la persistance des formations.
// List trie par (level.number, order), ListFeatured par order.
type FormationStore interface {
	List(ctx context.Context, filter FormationFilter) ([]models.Formation, error)
	ListFeatured(ctx context.Context) ([]models.Formation, error)
	FindByID(ctx context.Context, id string) (*models.Formation, error)
	FindBySlug(ctx context.Context, slug string) (*models.Formation, error)
	Create(ctx context.Context, f *models.Formation) error
	Update(ctx context.Context, id string, patch models.FormationPatch) (*models.Formation, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// ContactStore gère la persistance des demandes de contact (plus récentes d'abord)
type ContactStore interface {
	List(ctx context.Context, filter ContactFilter) ([]models.Contact, error)
	FindByID(ctx context.Context, id string) (*models.Contact, error)
	Create(ctx context.Context, c *models.Contact) error
	// MarkRead passe la demande de "nouveau" à "lu" et laisse les autres statuts intacts
	MarkRead(ctx context.Context, id string) (*models.Contact, error)
	SetStatus(ctx context.Context, id string, status models.ContactStatus) (*models.Contact, error)
	// Reply enregistre la réponse et passe la demande à "traité" en une seule écriture
	Reply(ctx context.Context, id, reply string, at time.Time) (*models.Contact, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, status models.ContactStatus) (int64, error)
}

// InscriptionStore gère la persistance des inscriptions (plus récentes d'abord)
type InscriptionStore interface {
	List(ctx context.Context, filter InscriptionFilter) ([]models.Inscription, error)
	FindByID(ctx context.Context, id string) (*models.Inscription, error)
	Create(ctx context.Context, i *models.Inscription) error
	SetStatus(ctx context.Context, id string, status models.InscriptionStatus) (*models.Inscription, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, status models.InscriptionStatus) (int64, error)
	// CountByFormation retourne le nombre d'inscriptions par identifiant de formation
	CountByFormation(ctx context.Context) (map[string]int, error)
}

// Provider donne accès aux trois stores d'un même backend
type Provider interface {
	Formations() FormationStore
	Contacts() ContactStore
	Inscriptions() InscriptionStore
	Mode() Mode
	// Snapshot retourne le backend concret qui sert cet appel. Une requête qui
	// enchaîne plusieurs lectures l'utilise pour ne pas changer de backend en route.
	Snapshot() Provider
}
