package database

// Opérateurs MongoDB (évite les littéraux dupliqués)
const (
	BSONMatch   = "$match"
	BSONGroup   = "$group"
	BSONSum     = "$sum"
	BSONSet     = "$set"
	BSONOr      = "$or"
	BSONRegex   = "$regex"
	BSONOptions = "$options"
)

// Collections de la base
const (
	CollectionFormations   = "formations"
	CollectionContacts     = "demandes"
	CollectionInscriptions = "inscriptions"
)

// Collections retourne les collections attendues au démarrage en mode durable
func Collections() []string {
	return []string{CollectionFormations, CollectionContacts, CollectionInscriptions}
}
