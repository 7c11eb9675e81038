package database

import (
	"go.mongodb.org/mongo-driver/mongo"

	"qwesty-backend/store"
)

// Store est le backend durable : il implémente store.Provider sur MongoDB
type Store struct {
	formations   *FormationRepository
	contacts     *ContactRepository
	inscriptions *InscriptionRepository
}

// NewStore crée les repositories sur la base fournie
func NewStore(db *mongo.Database) *Store {
	return &Store{
		formations:   NewFormationRepository(db),
		contacts:     NewContactRepository(db),
		inscriptions: NewInscriptionRepository(db),
	}
}

// Formations implémente store.Provider
func (s *Store) Formations() store.FormationStore { return s.formations }

// Contacts implémente store.Provider
func (s *Store) Contacts() store.ContactStore { return s.contacts }

// Inscriptions implémente store.Provider
func (s *Store) Inscriptions() store.InscriptionStore { return s.inscriptions }

// Mode implémente store.Provider
func (s *Store) Mode() store.Mode { return store.ModeMongoDB }

// Snapshot implémente store.Provider
func (s *Store) Snapshot() store.Provider { return s }

var _ store.Provider = (*Store)(nil)
