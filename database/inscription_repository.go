package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"qwesty-backend/models"
	"qwesty-backend/store"
)

// inscriptionDocument est la forme stockée d'une inscription
type inscriptionDocument struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	FormationID        primitive.ObjectID `bson:"formationId"`
	models.Inscription `bson:",inline"`
}

func (d inscriptionDocument) toModel() models.Inscription {
	i := d.Inscription
	i.ID = d.ID.Hex()
	i.FormationID = d.FormationID.Hex()
	return i
}

// InscriptionRepository gère les opérations sur les inscriptions
type InscriptionRepository struct {
	collection *mongo.Collection
}

// NewInscriptionRepository crée une nouvelle instance de InscriptionRepository
func NewInscriptionRepository(db *mongo.Database) *InscriptionRepository {
	return &InscriptionRepository{
		collection: db.Collection(CollectionInscriptions),
	}
}

// List retourne les inscriptions, plus récentes d'abord
func (r *InscriptionRepository) List(ctx context.Context, filter store.InscriptionFilter) ([]models.Inscription, error) {
	query, ok := inscriptionFilter(filter)
	if !ok {
		return []models.Inscription{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(newestFirst)
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche des inscriptions: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []inscriptionDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("erreur lors du décodage des inscriptions: %w", err)
	}

	inscriptions := make([]models.Inscription, 0, len(docs))
	for _, d := range docs {
		inscriptions = append(inscriptions, d.toModel())
	}
	return inscriptions, nil
}

// FindByID recherche une inscription par ID
func (r *InscriptionRepository) FindByID(ctx context.Context, id string) (*models.Inscription, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc inscriptionDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche de l'inscription: %w", err)
	}

	i := doc.toModel()
	return &i, nil
}

// Create crée une nouvelle inscription
func (r *InscriptionRepository) Create(ctx context.Context, i *models.Inscription) error {
	formationID, err := primitive.ObjectIDFromHex(i.FormationID)
	if err != nil {
		return store.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	doc := inscriptionDocument{ID: primitive.NewObjectID(), FormationID: formationID, Inscription: *i}
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("erreur lors de la création de l'inscription: %w", err)
	}

	i.ID = doc.ID.Hex()
	i.CreatedAt = now
	i.UpdatedAt = now
	return nil
}

// SetStatus remplace le statut de l'inscription
func (r *InscriptionRepository) SetStatus(ctx context.Context, id string, status models.InscriptionStatus) (*models.Inscription, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{BSONSet: bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc inscriptionDocument
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la mise à jour de l'inscription: %w", err)
	}

	i := doc.toModel()
	return &i, nil
}

// Delete supprime une inscription par son ID
func (r *InscriptionRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("erreur lors de la suppression de l'inscription: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Count compte les inscriptions, éventuellement pour un statut donné
func (r *InscriptionRepository) Count(ctx context.Context, status models.InscriptionStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{}
	if status != "" {
		query["status"] = status
	}
	n, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("erreur lors du comptage des inscriptions: %w", err)
	}
	return n, nil
}

// CountByFormation agrège le nombre d'inscriptions par formation
func (r *InscriptionRepository) CountByFormation(ctx context.Context) (map[string]int, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Aggregate(ctx, countByFormationPipeline())
	if err != nil {
		return nil, fmt.Errorf("erreur lors de l'agrégation: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		FormationID primitive.ObjectID `bson:"_id"`
		Count       int                `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("erreur lors du décodage de l'agrégation: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.FormationID.Hex()] = row.Count
	}
	return counts, nil
}

func countByFormationPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: BSONGroup, Value: bson.D{
			{Key: "_id", Value: "$formationId"},
			{Key: "count", Value: bson.D{{Key: BSONSum, Value: 1}}},
		}}},
	}
}

// inscriptionFilter traduit le filtre du store. ok vaut false si le filtre ne peut rien retourner.
func inscriptionFilter(filter store.InscriptionFilter) (bson.M, bool) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.FormationID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.FormationID)
		if err != nil {
			return nil, false
		}
		query["formationId"] = oid
	}
	return query, true
}
