package store

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"qwesty-backend/models"
)

// Compteurs de départ des identifiants volatils (f101, c1, i1)
const (
	formationIDOffset   = 100
	contactIDOffset     = 0
	inscriptionIDOffset = 0
)

// Memory est le backend volatil, perdu au redémarrage.
// Toutes les opérations passent par un verrou unique : les handlers tournent en parallèle.
type Memory struct {
	mu sync.RWMutex

	formations   []models.Formation
	contacts     []models.Contact
	inscriptions []models.Inscription

	nextFormationID   int
	nextContactID     int
	nextInscriptionID int

	now func() time.Time
}

// NewMemory crée un backend mémoire amorcé avec le catalogue de référence
func NewMemory() *Memory {
	m := NewEmptyMemory()
	m.formations = Catalogue()
	return m
}

// NewEmptyMemory crée un backend mémoire sans aucune formation
func NewEmptyMemory() *Memory {
	return &Memory{
		formations:        []models.Formation{},
		contacts:          []models.Contact{},
		inscriptions:      []models.Inscription{},
		nextFormationID:   formationIDOffset,
		nextContactID:     contactIDOffset,
		nextInscriptionID: inscriptionIDOffset,
		now:               func() time.Time { return time.Now().UTC() },
	}
}

// Formations implémente Provider
func (m *Memory) Formations() FormationStore { return &memoryFormations{m} }

// Contacts implémente Provider
func (m *Memory) Contacts() ContactStore { return &memoryContacts{m} }

// Inscriptions implémente Provider
func (m *Memory) Inscriptions() InscriptionStore { return &memoryInscriptions{m} }

// Mode implémente Provider
func (m *Memory) Mode() Mode { return ModeMemory }

// Snapshot implémente Provider
func (m *Memory) Snapshot() Provider { return m }

// ====================================
// Formations
// ====================================

type memoryFormations struct{ m *Memory }

func (s *memoryFormations) List(_ context.Context, filter FormationFilter) ([]models.Formation, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	results := make([]models.Formation, 0, len(s.m.formations))
	for _, f := range s.m.formations {
		if filter.Level != nil && f.Level.Number != *filter.Level {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(f.Title), search) &&
			!strings.Contains(strings.ToLower(f.Subtitle), search) {
			continue
		}
		results = append(results, f.Clone())
	}

	sortFormations(results)
	return results, nil
}

func (s *memoryFormations) ListFeatured(_ context.Context) ([]models.Formation, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	results := make([]models.Formation, 0)
	for _, f := range s.m.formations {
		if f.Featured {
			results = append(results, f.Clone())
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Order < results[j].Order
	})
	return results, nil
}

func (s *memoryFormations) FindByID(_ context.Context, id string) (*models.Formation, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	idx := s.index(id)
	if idx == -1 {
		return nil, ErrNotFound
	}
	f := s.m.formations[idx].Clone()
	return &f, nil
}

func (s *memoryFormations) FindBySlug(_ context.Context, slug string) (*models.Formation, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	for _, f := range s.m.formations {
		if f.Slug == slug {
			found := f.Clone()
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryFormations) Create(_ context.Context, f *models.Formation) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if s.slugTaken(f.Slug, "") {
		return ErrDuplicate
	}

	s.m.nextFormationID++
	now := s.m.now()
	f.ID = "f" + strconv.Itoa(s.m.nextFormationID)
	f.CreatedAt = now
	f.UpdatedAt = now

	s.m.formations = append(s.m.formations, f.Clone())
	return nil
}

func (s *memoryFormations) Update(_ context.Context, id string, patch models.FormationPatch) (*models.Formation, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	idx := s.index(id)
	if idx == -1 {
		return nil, ErrNotFound
	}
	if patch.Slug != nil && s.slugTaken(*patch.Slug, id) {
		return nil, ErrDuplicate
	}

	updated := patch.Apply(s.m.formations[idx])
	updated.UpdatedAt = s.m.now()
	s.m.formations[idx] = updated

	out := updated.Clone()
	return &out, nil
}

func (s *memoryFormations) Delete(_ context.Context, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	idx := s.index(id)
	if idx == -1 {
		return ErrNotFound
	}
	s.m.formations = append(s.m.formations[:idx], s.m.formations[idx+1:]...)
	return nil
}

func (s *memoryFormations) Count(_ context.Context) (int64, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return int64(len(s.m.formations)), nil
}

func (s *memoryFormations) index(id string) int {
	for i, f := range s.m.formations {
		if f.ID == id {
			return i
		}
	}
	return -1
}

func (s *memoryFormations) slugTaken(slug, exceptID string) bool {
	for _, f := range s.m.formations {
		if f.Slug == slug && f.ID != exceptID {
			return true
		}
	}
	return false
}

func sortFormations(list []models.Formation) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Level.Number != list[j].Level.Number {
			return list[i].Level.Number < list[j].Level.Number
		}
		return list[i].Order < list[j].Order
	})
}

// ====================================
// Contacts
// ====================================

type memoryContacts struct{ m *Memory }

func (s *memoryContacts) List(_ context.Context, filter ContactFilter) ([]models.Contact, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	results := make([]models.Contact, 0, len(s.m.contacts))
	// Parcours inverse : à date égale, le dernier inséré sort en premier
	for i := len(s.m.contacts) - 1; i >= 0; i-- {
		c := s.m.contacts[i]
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		results = append(results, cloneContact(c))
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})

	if filter.Limit > 0 && len(results) > filter.Limit {
		results = results[:filter.Limit]
	}
	return results, nil
}

func (s *memoryContacts) FindByID(_ context.Context, id string) (*models.Contact, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	idx := s.index(id)
	if idx == -1 {
		return nil, ErrNotFound
	}
	c := cloneContact(s.m.contacts[idx])
	return &c, nil
}

func (s *memoryContacts) Create(_ context.Context, c *models.Contact) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	s.m.nextContactID++
	now := s.m.now()
	c.ID = "c" + strconv.Itoa(s.m.nextContactID)
	c.CreatedAt = now
	c.UpdatedAt = now

	s.m.contacts = append(s.m.contacts, cloneContact(*c))
	return nil
}

func (s *memoryContacts) MarkRead(_ context.Context, id string) (*models.Contact, error) {
	return s.mutate(id, func(c *models.Contact) {
		if c.Status == models.ContactNew {
			c.Status = models.ContactRead
			c.UpdatedAt = s.m.now()
		}
	})
}

func (s *memoryContacts) SetStatus(_ context.Context, id string, status models.ContactStatus) (*models.Contact, error) {
	return s.mutate(id, func(c *models.Contact) {
		c.Status = status
		c.UpdatedAt = s.m.now()
	})
}

func (s *memoryContacts) Reply(_ context.Context, id, reply string, at time.Time) (*models.Contact, error) {
	return s.mutate(id, func(c *models.Contact) {
		repliedAt := at
		c.Status = models.ContactHandled
		c.Reply = reply
		c.RepliedAt = &repliedAt
		c.UpdatedAt = s.m.now()
	})
}

func (s *memoryContacts) Delete(_ context.Context, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	idx := s.index(id)
	if idx == -1 {
		return ErrNotFound
	}
	s.m.contacts = append(s.m.contacts[:idx], s.m.contacts[idx+1:]...)
	return nil
}

func (s *memoryContacts) Count(_ context.Context, status models.ContactStatus) (int64, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	var n int64
	for _, c := range s.m.contacts {
		if status == "" || c.Status == status {
			n++
		}
	}
	return n, nil
}

func (s *memoryContacts) mutate(id string, fn func(c *models.Contact)) (*models.Contact, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	idx := s.index(id)
	if idx == -1 {
		return nil, ErrNotFound
	}
	fn(&s.m.contacts[idx])
	c := cloneContact(s.m.contacts[idx])
	return &c, nil
}

func (s *memoryContacts) index(id string) int {
	for i, c := range s.m.contacts {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func cloneContact(c models.Contact) models.Contact {
	if c.RepliedAt != nil {
		at := *c.RepliedAt
		c.RepliedAt = &at
	}
	return c
}

// ====================================
// Inscriptions
// ====================================

type memoryInscriptions struct{ m *Memory }

func (s *memoryInscriptions) List(_ context.Context, filter InscriptionFilter) ([]models.Inscription, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	results := make([]models.Inscription, 0, len(s.m.inscriptions))
	for i := len(s.m.inscriptions) - 1; i >= 0; i-- {
		insc := s.m.inscriptions[i]
		if filter.Status != "" && insc.Status != filter.Status {
			continue
		}
		if filter.FormationID != "" && insc.FormationID != filter.FormationID {
			continue
		}
		results = append(results, insc)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})

	if filter.Limit > 0 && len(results) > filter.Limit {
		results = results[:filter.Limit]
	}
	return results, nil
}

func (s *memoryInscriptions) FindByID(_ context.Context, id string) (*models.Inscription, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	idx := s.index(id)
	if idx == -1 {
		return nil, ErrNotFound
	}
	insc := s.m.inscriptions[idx]
	return &insc, nil
}

func (s *memoryInscriptions) Create(_ context.Context, i *models.Inscription) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	s.m.nextInscriptionID++
	now := s.m.now()
	i.ID = "i" + strconv.Itoa(s.m.nextInscriptionID)
	i.CreatedAt = now
	i.UpdatedAt = now

	s.m.inscriptions = append(s.m.inscriptions, *i)
	return nil
}

func (s *memoryInscriptions) SetStatus(_ context.Context, id string, status models.InscriptionStatus) (*models.Inscription, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	idx := s.index(id)
	if idx == -1 {
		return nil, ErrNotFound
	}
	s.m.inscriptions[idx].Status = status
	s.m.inscriptions[idx].UpdatedAt = s.m.now()
	insc := s.m.inscriptions[idx]
	return &insc, nil
}

func (s *memoryInscriptions) Delete(_ context.Context, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	idx := s.index(id)
	if idx == -1 {
		return ErrNotFound
	}
	s.m.inscriptions = append(s.m.inscriptions[:idx], s.m.inscriptions[idx+1:]...)
	return nil
}

func (s *memoryInscriptions) Count(_ context.Context, status models.InscriptionStatus) (int64, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	var n int64
	for _, insc := range s.m.inscriptions {
		if status == "" || insc.Status == status {
			n++
		}
	}
	return n, nil
}

func (s *memoryInscriptions) CountByFormation(_ context.Context) (map[string]int, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	counts := make(map[string]int)
	for _, insc := range s.m.inscriptions {
		counts[insc.FormationID]++
	}
	return counts, nil
}

func (s *memoryInscriptions) index(id string) int {
	for i, insc := range s.m.inscriptions {
		if insc.ID == id {
			return i
		}
	}
	return -1
}
