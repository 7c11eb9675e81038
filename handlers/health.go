package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"qwesty-backend/database"
	"qwesty-backend/store"
	"qwesty-backend/utils"
)

const apiVersion = "1.0.0"

var startTime = time.Now()

// ConnectionMonitor expose l'état de la connexion durable
type ConnectionMonitor interface {
	Status() database.MonitorStatus
	Ping(ctx context.Context) error
}

// HealthHandler gère les endpoints de santé
type HealthHandler struct {
	environment string
	store       store.Provider
	monitor     ConnectionMonitor
}

// NewHealthHandler crée un nouveau HealthHandler
func NewHealthHandler(environment string, provider store.Provider, monitor ConnectionMonitor) *HealthHandler {
	return &HealthHandler{environment: environment, store: provider, monitor: monitor}
}

// Health retourne l'état de santé du serveur. Le mode mémoire n'est pas une panne : le statut reste "ok".
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbStatus := "disabled"
	var connection *database.MonitorStatus
	if h.monitor != nil {
		status := h.monitor.Status()
		connection = &status
		dbStatus = string(status.State)
		if status.State == database.StateConnected {
			dbStatus = "ok"
			if err := h.monitor.Ping(r.Context()); err != nil {
				dbStatus = "error"
			}
		}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"message":    "Le serveur fonctionne correctement",
		"env":        h.environment,
		"mode":       h.store.Mode(),
		"db_status":  dbStatus,
		"connection": connection,
		"uptime":     time.Since(startTime).String(),
		"go_version": runtime.Version(),
	})
}

// Welcome décrit l'API sur GET /api
func (h *HealthHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Bienvenue sur l'API Qwesty-training",
		"version": apiVersion,
		"mode":    h.store.Mode(),
		"endpoints": map[string]string{
			"formations":   "/api/formations",
			"contact":      "/api/contact",
			"inscriptions": "/api/inscriptions",
			"auth":         "/api/auth",
			"admin":        "/api/admin",
			"health":       "/api/health",
		},
	})
}
