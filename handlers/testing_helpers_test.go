package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"qwesty-backend/config"
	"qwesty-backend/database"
	"qwesty-backend/models"
	"qwesty-backend/services"
	"qwesty-backend/store"
	"qwesty-backend/utils"
)

const (
	testSecret        = "test-secret"
	testAdminEmail    = "admin@qwesty.fr"
	testAdminPassword = "motdepasse"
)

type fakeMailer struct {
	mu     sync.Mutex
	sent   []services.ReplyEmail
	result services.MailResult
	err    error
}

func (m *fakeMailer) SendReply(_ context.Context, email services.ReplyEmail) (services.MailResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, email)
	return m.result, m.err
}

type recordedEvent struct {
	Type string
	Data interface{}
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (b *recordingBroadcaster) Broadcast(eventType string, data interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recordedEvent{eventType, data})
}

func (b *recordingBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeMonitor struct {
	status  database.MonitorStatus
	pingErr error
}

func (m fakeMonitor) Status() database.MonitorStatus { return m.status }

func (m fakeMonitor) Ping(context.Context) error { return m.pingErr }

type testEnv struct {
	t       *testing.T
	handler http.Handler
	store   store.Provider
	mailer  *fakeMailer
	token   string
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		CORSOrigins: []string{"*"},
		JWTSecret:   testSecret,
		Admin:       config.AdminConfig{Email: testAdminEmail, Password: testAdminPassword},
	}
}

// newTestEnv monte le routeur complet sur un stockage mémoire amorcé
func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWith(t, store.NewMemory())
}

func newTestEnvWith(t *testing.T, provider store.Provider) *testEnv {
	t.Helper()
	mailer := &fakeMailer{result: services.MailResult{Simulated: true}}
	handler := NewRouter(RouterDeps{
		Config:  testConfig(),
		Store:   provider,
		Log:     zap.NewNop().Sugar(),
		Mailer:  mailer,
		Metrics: services.NewMetricsService(),
		Monitor: fakeMonitor{status: database.MonitorStatus{State: database.StateDisabled}},
	})

	token, err := utils.GenerateToken(testAdminEmail, models.RoleAdmin, testSecret)
	require.NoError(t, err)

	return &testEnv{t: t, handler: handler, store: provider, mailer: mailer, token: token}
}

func (e *testEnv) request(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

// public envoie une requête sans token
func (e *testEnv) public(method, path string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()
	return e.request(method, path, body, "")
}

// admin envoie une requête avec le token administrateur
func (e *testEnv) admin(method, path string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()
	return e.request(method, path, body, e.token)
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

type messageBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

type contactBody struct {
	Message        string         `json:"message"`
	Contact        models.Contact `json:"contact"`
	EmailSimulated bool           `json:"emailSimulated"`
}

type inscriptionBody struct {
	Message     string             `json:"message"`
	Inscription models.Inscription `json:"inscription"`
}

type formationBody struct {
	Message   string           `json:"message"`
	Formation models.Formation `json:"formation"`
}
