package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"qwesty-backend/config"
	"qwesty-backend/store"
)

// MonitorState décrit l'état de la connexion durable
type MonitorState string

const (
	StateDisabled   MonitorState = "disabled"
	StateConnecting MonitorState = "connecting"
	StateConnected  MonitorState = "connected"
	StateDegraded   MonitorState = "degraded"
)

var errNotConnected = errors.New("base durable non connectée")

// MonitorStatus est l'instantané exposé par le health check
type MonitorStatus struct {
	State     MonitorState `json:"state"`
	Attempts  int          `json:"attempts"`
	LastError string       `json:"last_error,omitempty"`
}

// Monitor tente la connexion MongoDB en arrière-plan et bascule le Switch en mode durable.
// Politique : RetryAttempts essais espacés de RetryDelay, puis un essai par RecoverySchedule
// (cron) jusqu'au premier succès. Le processus ne s'arrête jamais faute de base.
type Monitor struct {
	cfg config.MongoConfig
	sw  *store.Switch
	log *zap.SugaredLogger

	dial        func(ctx context.Context) (*Connection, error)
	prepare     func(ctx context.Context, conn *Connection) error
	newProvider func(conn *Connection) store.Provider
	sleep       func(ctx context.Context, d time.Duration) error

	mu       sync.Mutex
	state    MonitorState
	attempts int
	lastErr  error
	conn     *Connection
	cron     *cron.Cron
}

// NewMonitor crée le moniteur de connexion
func NewMonitor(cfg config.MongoConfig, sw *store.Switch, log *zap.SugaredLogger) *Monitor {
	m := &Monitor{
		cfg:   cfg,
		sw:    sw,
		log:   log,
		state: StateConnecting,
		sleep: sleepContext,
		newProvider: func(conn *Connection) store.Provider {
			return NewStore(conn.DB)
		},
	}
	m.dial = func(ctx context.Context) (*Connection, error) {
		return Connect(ctx, cfg.URI, cfg.Database, cfg.ConnectTimeout)
	}
	m.prepare = m.prepareConnection
	if !cfg.Enabled() {
		m.state = StateDisabled
	}
	return m
}

// Start lance la connexion en arrière-plan
func (m *Monitor) Start(ctx context.Context) {
	go m.Run(ctx)
}

// Run exécute la politique de connexion et rend la main après succès ou épuisement des essais
func (m *Monitor) Run(ctx context.Context) {
	if !m.cfg.Enabled() {
		m.log.Warn("⚠️  MONGODB_URI absent - stockage en mémoire pour toute la durée du processus")
		return
	}

	for attempt := 1; attempt <= m.cfg.RetryAttempts; attempt++ {
		err := m.tryOnce(ctx)
		if err == nil {
			return
		}
		m.log.Warnw("⚠️  Connexion MongoDB échouée",
			"tentative", attempt,
			"max", m.cfg.RetryAttempts,
			"erreur", err,
		)

		if attempt == m.cfg.RetryAttempts {
			break
		}
		if err := m.sleep(ctx, m.cfg.RetryDelay); err != nil {
			return
		}
	}

	m.setState(StateDegraded)
	m.log.Errorw("❌ MongoDB injoignable - fonctionnement en mémoire (données volatiles)",
		"reprise", m.cfg.RecoverySchedule,
	)
	if err := m.startRecovery(ctx); err != nil {
		m.log.Errorw("❌ Impossible de planifier la reprise MongoDB", "erreur", err)
	}
}

// tryOnce tente une connexion et active le backend durable en cas de succès
func (m *Monitor) tryOnce(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	m.mu.Lock()
	if m.state == StateConnected {
		m.mu.Unlock()
		return nil
	}
	m.attempts++
	m.mu.Unlock()

	conn, err := m.dial(ctx)
	if err == nil {
		err = m.prepare(ctx, conn)
		if err != nil {
			_ = conn.Close(context.Background())
		}
	}
	if err != nil {
		m.mu.Lock()
		m.lastErr = err
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	m.conn = conn
	m.state = StateConnected
	m.lastErr = nil
	m.mu.Unlock()

	m.sw.Activate(m.newProvider(conn))
	m.log.Infow("✓ Connexion à MongoDB établie - stockage durable actif", "base", m.cfg.Database)
	return nil
}

func (m *Monitor) prepareConnection(ctx context.Context, conn *Connection) error {
	created, err := conn.EnsureCollections(ctx)
	if err != nil {
		return err
	}
	for _, name := range created {
		m.log.Infow("✓ Collection MongoDB créée", "collection", name)
	}
	if err := conn.EnsureIndexes(ctx); err != nil {
		return err
	}
	m.log.Info("✓ Index MongoDB créés")
	return nil
}

// startRecovery planifie une tentative par échéance cron jusqu'au premier succès
func (m *Monitor) startRecovery(ctx context.Context) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(m.cfg.RecoverySchedule, func() {
		m.recoverOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("planification %q invalide: %w", m.cfg.RecoverySchedule, err)
	}

	m.mu.Lock()
	m.cron = c
	m.mu.Unlock()

	c.Start()
	m.log.Infow("✓ Cron de reprise MongoDB démarré", "planification", m.cfg.RecoverySchedule)
	return nil
}

// recoverOnce est la tâche cron de reprise
func (m *Monitor) recoverOnce(ctx context.Context) {
	if err := m.tryOnce(ctx); err != nil {
		m.log.Warnw("⚠️  Reprise MongoDB échouée", "erreur", err)
		return
	}
	m.stopRecovery()
}

func (m *Monitor) stopRecovery() {
	m.mu.Lock()
	c := m.cron
	m.cron = nil
	m.mu.Unlock()

	if c != nil {
		c.Stop()
	}
}

// Stop arrête la reprise planifiée et ferme la connexion
func (m *Monitor) Stop(ctx context.Context) error {
	m.stopRecovery()

	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()

	return conn.Close(ctx)
}

// Status retourne l'état courant de la connexion durable
func (m *Monitor) Status() MonitorStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	status := MonitorStatus{State: m.state, Attempts: m.attempts}
	if m.lastErr != nil {
		status.LastError = m.lastErr.Error()
	}
	return status
}

// Ping vérifie que la connexion durable répond
func (m *Monitor) Ping(ctx context.Context) error {
	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()

	if conn == nil {
		return errNotConnected
	}
	return conn.Ping(ctx)
}

func (m *Monitor) setState(state MonitorState) {
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
