package store

import (
	"sync/atomic"
)

// Switch est le Provider injecté dans les handlers. Il délègue au backend actif,
// remplacé une seule fois par MongoDB quand la connexion aboutit.
type Switch struct {
	active    atomic.Pointer[providerBox]
	listeners []func(Mode)
}

type providerBox struct {
	p Provider
}

// NewSwitch crée un Switch démarrant sur le backend fourni
func NewSwitch(initial Provider) *Switch {
	s := &Switch{}
	s.active.Store(&providerBox{p: initial})
	return s
}

// OnActivate enregistre un callback appelé à chaque changement de backend.
// À appeler avant que le moniteur de connexion ne démarre.
func (s *Switch) OnActivate(fn func(Mode)) {
	s.listeners = append(s.listeners, fn)
}

// Activate rend p actif pour toutes les requêtes suivantes
func (s *Switch) Activate(p Provider) {
	s.active.Store(&providerBox{p: p})
	for _, fn := range s.listeners {
		fn(p.Mode())
	}
}

// Current retourne le backend actif
func (s *Switch) Current() Provider {
	return s.active.Load().p
}

// Formations implémente Provider
func (s *Switch) Formations() FormationStore { return s.Current().Formations() }

// Contacts implémente Provider
func (s *Switch) Contacts() ContactStore { return s.Current().Contacts() }

// Inscriptions implémente Provider
func (s *Switch) Inscriptions() InscriptionStore { return s.Current().Inscriptions() }

// Mode implémente Provider
func (s *Switch) Mode() Mode { return s.Current().Mode() }

// Snapshot retourne le backend actif à cet instant
func (s *Switch) Snapshot() Provider { return s.Current().Snapshot() }
