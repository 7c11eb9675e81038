package main

import (
	"context"
	"log"

	"github.com/spf13/pflag"

	"qwesty-backend/config"
	"qwesty-backend/database"
	"qwesty-backend/store"
)

func main() {
	reset := pflag.Bool("reset", false, "vider la collection formations avant l'insertion")
	pflag.Parse()

	cfg := config.LoadMongo()
	if !cfg.Enabled() {
		log.Fatal("❌ MONGODB_URI est requis pour amorcer le catalogue")
	}

	ctx := context.Background()
	log.Printf("🌱 Amorçage du catalogue dans la base %s...", cfg.Database)

	conn, err := database.Connect(ctx, cfg.URI, cfg.Database, cfg.ConnectTimeout)
	if err != nil {
		log.Fatalf("❌ Erreur de connexion à MongoDB: %v", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.EnsureCollections(ctx); err != nil {
		log.Fatalf("❌ Erreur lors de la création des collections: %v", err)
	}
	if err := conn.EnsureIndexes(ctx); err != nil {
		log.Fatalf("❌ Erreur lors de la création des index: %v", err)
	}

	repo := database.NewFormationRepository(conn.DB)
	if *reset {
		deleted, err := repo.DeleteAll(ctx)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		log.Printf("🗑️  %d formation(s) supprimée(s)", deleted)
	}

	catalogue := store.Catalogue()
	inserted, err := repo.InsertMissing(ctx, catalogue)
	if err != nil {
		log.Fatalf("❌ Erreur lors de l'insertion des formations: %v", err)
	}

	log.Printf("✅ %d formation(s) insérée(s), %d déjà présente(s)", inserted, len(catalogue)-inserted)
}
