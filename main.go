package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"qwesty-backend/config"
	"qwesty-backend/database"
	"qwesty-backend/handlers"
	"qwesty-backend/logger"
	"qwesty-backend/services"
	"qwesty-backend/store"
	"qwesty-backend/websocket"
)

func main() {
	// Charger la configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Erreur lors du chargement de la configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("❌ Erreur lors de l'initialisation des logs: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck
	sugar := zapLogger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Stockage : mémoire au démarrage, MongoDB dès que la connexion aboutit
	metrics := services.NewMetricsService()
	sw := store.NewSwitch(store.NewMemory())
	sw.OnActivate(func(mode store.Mode) {
		metrics.SetStorageMode(mode)
		sugar.Infow("🗄️  Stockage actif", "mode", mode)
	})
	metrics.SetStorageMode(sw.Mode())

	slack := services.NewSlackService(cfg.SlackWebhookURL, sugar)
	if slack.Enabled() {
		sugar.Info("✓ Notifications Slack activées")
	}

	mailer := services.NewMailer(cfg.SMTP, sugar)
	if !mailer.Configured() {
		sugar.Warn("⚠️  SMTP non configuré - les réponses aux demandes seront simulées")
	}

	hub := websocket.NewHub(sugar)
	go hub.Run(ctx)
	sugar.Info("✅ Hub WebSocket initialisé et en cours d'exécution")

	monitor := database.NewMonitor(cfg.Mongo, sw, sugar)

	router := handlers.NewRouter(handlers.RouterDeps{
		Config:  cfg,
		Store:   sw,
		Log:     sugar,
		Mailer:  mailer,
		Slack:   slack,
		Metrics: metrics,
		Hub:     hub,
		Monitor: monitor,
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sugar.Infow("🚀 Serveur démarré",
			"adresse", "http://"+cfg.Addr(),
			"env", cfg.Environment,
			"mode", sw.Mode(),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("❌ Erreur du serveur", "erreur", err)
		}
	}()

	// La connexion MongoDB ne bloque jamais l'écoute HTTP
	monitor.Start(ctx)

	<-ctx.Done()
	sugar.Info("🛑 Arrêt du serveur...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("❌ Erreur lors de l'arrêt du serveur", "erreur", err)
	}
	if err := monitor.Stop(shutdownCtx); err != nil {
		sugar.Errorw("❌ Erreur lors de la fermeture de MongoDB", "erreur", err)
	}
	sugar.Info("✓ Serveur arrêté proprement")
}
