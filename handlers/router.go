package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"qwesty-backend/config"
	"qwesty-backend/middleware"
	"qwesty-backend/services"
	"qwesty-backend/store"
	"qwesty-backend/websocket"
)

// RouterDeps regroupe les dépendances des handlers
type RouterDeps struct {
	Config  *config.Config
	Store   store.Provider
	Log     *zap.SugaredLogger
	Mailer  services.Mailer
	Slack   *services.SlackService
	Metrics *services.MetricsService
	Hub     *websocket.Hub
	Monitor ConnectionMonitor
}

// NewRouter construit le routeur complet de l'API
func NewRouter(deps RouterDeps) http.Handler {
	cfg := deps.Config

	var events EventBroadcaster = noopBroadcaster{}
	if deps.Hub != nil {
		events = deps.Hub
	}

	healthHandler := NewHealthHandler(cfg.Environment, deps.Store, deps.Monitor)
	formationHandler := NewFormationHandler(deps.Store, deps.Log)
	contactHandler := NewContactHandler(deps.Store, deps.Log, deps.Slack, deps.Metrics, events)
	inscriptionHandler := NewInscriptionHandler(deps.Store, deps.Log, deps.Slack, deps.Metrics, events)
	authHandler := NewAuthHandler(cfg.Admin.Email, cfg.Admin.Password, cfg.JWTSecret, deps.Log)
	adminHandler := NewAdminHandler(deps.Store, deps.Mailer, deps.Log, events)

	r := mux.NewRouter()
	withJSONErrors(r)
	r.Use(middleware.Metrics(deps.Metrics))

	r.Handle("/metrics", deps.Metrics.Handler()).Methods(http.MethodGet)
	if deps.Hub != nil {
		r.HandleFunc("/ws/admin", websocket.NewHandler(deps.Hub, cfg.JWTSecret, cfg.CORSOrigins).ServeWS)
	}

	api := r.PathPrefix("/api").Subrouter()
	withJSONErrors(api)
	api.HandleFunc("", healthHandler.Welcome).Methods(http.MethodGet)
	api.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)

	// Catalogue public
	api.HandleFunc("/formations", formationHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/formations/featured", formationHandler.Featured).Methods(http.MethodGet)
	api.HandleFunc("/formations/levels", formationHandler.Levels).Methods(http.MethodGet)
	api.HandleFunc("/formations/{slug}", formationHandler.GetBySlug).Methods(http.MethodGet)

	// Leads
	api.HandleFunc("/contact", contactHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/inscriptions", inscriptionHandler.Create).Methods(http.MethodPost)

	// Authentification
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.Handle("/auth/me", middleware.Auth(cfg.JWTSecret)(http.HandlerFunc(authHandler.Me))).Methods(http.MethodGet)

	// Back-office
	admin := api.PathPrefix("/admin").Subrouter()
	withJSONErrors(admin)
	admin.Use(middleware.Auth(cfg.JWTSecret), middleware.RequireAdmin(deps.Log))

	admin.HandleFunc("/dashboard", adminHandler.Dashboard).Methods(http.MethodGet)

	admin.HandleFunc("/formations", adminHandler.ListFormations).Methods(http.MethodGet)
	admin.HandleFunc("/formations", adminHandler.CreateFormation).Methods(http.MethodPost)
	admin.HandleFunc("/formations/{id}", adminHandler.GetFormation).Methods(http.MethodGet)
	admin.HandleFunc("/formations/{id}", adminHandler.UpdateFormation).Methods(http.MethodPut)
	admin.HandleFunc("/formations/{id}", adminHandler.DeleteFormation).Methods(http.MethodDelete)

	admin.HandleFunc("/demandes", adminHandler.ListDemandes).Methods(http.MethodGet)
	admin.HandleFunc("/demandes/{id}", adminHandler.GetDemande).Methods(http.MethodGet)
	admin.HandleFunc("/demandes/{id}/statut", adminHandler.UpdateDemandeStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/demandes/{id}/reply", adminHandler.ReplyDemande).Methods(http.MethodPost, http.MethodPatch)
	admin.HandleFunc("/demandes/{id}", adminHandler.DeleteDemande).Methods(http.MethodDelete)

	admin.HandleFunc("/inscriptions", adminHandler.ListInscriptions).Methods(http.MethodGet)
	admin.HandleFunc("/inscriptions/{id}", adminHandler.GetInscription).Methods(http.MethodGet)
	admin.HandleFunc("/inscriptions/{id}/statut", adminHandler.UpdateInscriptionStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/inscriptions/{id}", adminHandler.DeleteInscription).Methods(http.MethodDelete)

	// Ordre d'exécution : CORS, identifiant de requête, logs, puis routage
	var handler http.Handler = r
	handler = middleware.Logging(deps.Log, deps.Slack)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.CORS(cfg.CORSOrigins)(handler)
	return handler
}

// withJSONErrors installe les réponses 404 et 405 JSON. Chaque sous-routeur a les siennes.
func withJSONErrors(r *mux.Router) {
	r.NotFoundHandler = http.HandlerFunc(NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(MethodNotAllowed)
}
