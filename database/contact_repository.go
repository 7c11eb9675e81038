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

// contactDocument est la forme stockée d'une demande ("demandes")
type contactDocument struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty"`
	FormationRef   *primitive.ObjectID `bson:"formation"`
	models.Contact `bson:",inline"`
}

func (d contactDocument) toModel() models.Contact {
	c := d.Contact
	c.ID = d.ID.Hex()
	c.Formation = ""
	if d.FormationRef != nil {
		c.Formation = d.FormationRef.Hex()
	}
	return c
}

// ContactRepository gère les opérations sur les demandes de contact
type ContactRepository struct {
	collection *mongo.Collection
}

// NewContactRepository crée une nouvelle instance de ContactRepository
func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{
		collection: db.Collection(CollectionContacts),
	}
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

// List retourne les demandes, plus récentes d'abord
func (r *ContactRepository) List(ctx context.Context, filter store.ContactFilter) ([]models.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	opts := options.Find().SetSort(newestFirst)
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche des demandes: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []contactDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("erreur lors du décodage des demandes: %w", err)
	}

	contacts := make([]models.Contact, 0, len(docs))
	for _, d := range docs {
		contacts = append(contacts, d.toModel())
	}
	return contacts, nil
}

// FindByID recherche une demande par ID
func (r *ContactRepository) FindByID(ctx context.Context, id string) (*models.Contact, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc contactDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche de la demande: %w", err)
	}

	c := doc.toModel()
	return &c, nil
}

// Create enregistre une nouvelle demande
func (r *ContactRepository) Create(ctx context.Context, c *models.Contact) error {
	doc := contactDocument{ID: primitive.NewObjectID(), Contact: *c}
	if c.Formation != "" {
		ref, err := primitive.ObjectIDFromHex(c.Formation)
		if err != nil {
			return store.ErrNotFound
		}
		doc.FormationRef = &ref
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("erreur lors de la création de la demande: %w", err)
	}

	c.ID = doc.ID.Hex()
	c.CreatedAt = now
	c.UpdatedAt = now
	return nil
}

// MarkRead passe la demande à "lu" uniquement si elle est encore "nouveau"
func (r *ContactRepository) MarkRead(ctx context.Context, id string) (*models.Contact, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}

	c, err := r.findOneAndSet(ctx,
		bson.M{"_id": oid, "status": models.ContactNew},
		bson.M{"status": models.ContactRead},
	)
	if errors.Is(err, store.ErrNotFound) {
		// Déjà lue ou inexistante
		return r.FindByID(ctx, id)
	}
	return c, err
}

// SetStatus remplace le statut de la demande
func (r *ContactRepository) SetStatus(ctx context.Context, id string, status models.ContactStatus) (*models.Contact, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}
	return r.findOneAndSet(ctx, bson.M{"_id": oid}, bson.M{"status": status})
}

// Reply enregistre la réponse et passe la demande à "traité" en une seule écriture
func (r *ContactRepository) Reply(ctx context.Context, id, reply string, at time.Time) (*models.Contact, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}
	return r.findOneAndSet(ctx, bson.M{"_id": oid}, bson.M{
		"status":    models.ContactHandled,
		"reply":     reply,
		"repliedAt": at,
	})
}

// Delete supprime une demande
func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("erreur lors de la suppression de la demande: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Count compte les demandes, éventuellement pour un statut donné
func (r *ContactRepository) Count(ctx context.Context, status models.ContactStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{}
	if status != "" {
		query["status"] = status
	}
	n, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("erreur lors du comptage des demandes: %w", err)
	}
	return n, nil
}

func (r *ContactRepository) findOneAndSet(ctx context.Context, filter, set bson.M) (*models.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set["updatedAt"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc contactDocument
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{BSONSet: set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la mise à jour de la demande: %w", err)
	}

	c := doc.toModel()
	return &c, nil
}
