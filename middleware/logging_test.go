package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"qwesty-backend/constants"
	"qwesty-backend/services"
)

func TestIsCriticalError(t *testing.T) {
	assert.True(t, isCriticalError(http.StatusInternalServerError))
	assert.True(t, isCriticalError(http.StatusServiceUnavailable))
	assert.True(t, isCriticalError(http.StatusForbidden))
	assert.False(t, isCriticalError(http.StatusBadRequest))
	assert.False(t, isCriticalError(http.StatusUnauthorized))
	assert.False(t, isCriticalError(http.StatusNotFound))
	assert.False(t, isCriticalError(http.StatusOK))
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rr.Header().Get(constants.HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.HeaderRequestID, "abc-123")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rr.Header().Get(constants.HeaderRequestID))
}

func TestLogging_champs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core).Sugar()

	handler := RequestID(Logging(log, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/inconnu", nil)
	req.Header.Set(constants.HeaderRequestID, "req-1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zap.WarnLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/api/inconnu", fields["path"])
	assert.EqualValues(t, http.StatusNotFound, fields["status"])
	assert.Equal(t, "req-1", fields["request_id"])
}

func TestLogging_succesEnDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	handler := Logging(zap.New(core).Sugar(), nil)(okHandler())
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zap.DebugLevel, logs.All()[0].Level)
}

func TestMetrics_gabaritDeRoute(t *testing.T) {
	metrics := services.NewMetricsService()
	r := mux.NewRouter()
	r.Use(Metrics(metrics))
	r.HandleFunc("/api/formations/{slug}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/formations/ia-pour-tous", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rr.Body.String(), `path="/api/formations/{slug}"`)
	assert.NotContains(t, rr.Body.String(), "ia-pour-tous")
}
