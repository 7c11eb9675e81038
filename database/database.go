package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var errClientNil = errors.New("client MongoDB non initialisé")

// Connection regroupe le client MongoDB et la base de l'application
type Connection struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect établit la connexion à MongoDB et vérifie qu'elle répond dans le délai imparti
func Connect(ctx context.Context, uri, dbName string, timeout time.Duration) (*Connection, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la connexion à MongoDB: %w", err)
	}

	// Vérifier la connexion
	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("erreur lors du ping MongoDB: %w", err)
	}

	return &Connection{Client: client, DB: client.Database(dbName)}, nil
}

// Ping vérifie que la connexion MongoDB est active
func (c *Connection) Ping(ctx context.Context) error {
	if c == nil || c.Client == nil {
		return errClientNil
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.Client.Ping(ctx, nil)
}

// Close ferme la connexion à la base de données
func (c *Connection) Close(ctx context.Context) error {
	if c == nil || c.Client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return c.Client.Disconnect(ctx)
}

// EnsureCollections crée les collections manquantes et retourne celles qui ont été créées
func (c *Connection) EnsureCollections(ctx context.Context) ([]string, error) {
	if c == nil || c.DB == nil {
		return nil, errClientNil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	existing, err := c.DB.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la liste des collections: %w", err)
	}

	missing := missingCollections(existing, Collections())
	for _, name := range missing {
		if err := c.DB.CreateCollection(ctx, name); err != nil {
			// Une autre instance a pu la créer entre-temps
			var cmdErr mongo.CommandError
			if errors.As(err, &cmdErr) && cmdErr.Name == "NamespaceExists" {
				continue
			}
			return nil, fmt.Errorf("erreur lors de la création de la collection %s: %w", name, err)
		}
	}

	return missing, nil
}

// EnsureIndexes crée les index nécessaires
func (c *Connection) EnsureIndexes(ctx context.Context) error {
	if c == nil || c.DB == nil {
		return errClientNil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Slug unique : garantit l'unicité entre instances concurrentes
	_, err := c.DB.Collection(CollectionFormations).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "level.number", Value: 1}, {Key: "order", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("erreur lors de la création des index formations: %w", err)
	}

	_, err = c.DB.Collection(CollectionContacts).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("erreur lors de la création des index demandes: %w", err)
	}

	_, err = c.DB.Collection(CollectionInscriptions).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "formationId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("erreur lors de la création des index inscriptions: %w", err)
	}

	return nil
}

func missingCollections(existing, wanted []string) []string {
	present := make(map[string]bool, len(existing))
	for _, name := range existing {
		present[name] = true
	}
	missing := []string{}
	for _, name := range wanted {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing
}
