package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"qwesty-backend/models"
	"qwesty-backend/store"
)

// formationDocument est la forme stockée d'une formation
type formationDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	models.Formation `bson:",inline"`
}

func (d formationDocument) toModel() models.Formation {
	f := d.Formation.Clone()
	f.ID = d.ID.Hex()
	return f
}

// FormationRepository gère les opérations sur les formations
type FormationRepository struct {
	collection *mongo.Collection
}

// NewFormationRepository crée une nouvelle instance de FormationRepository
func NewFormationRepository(db *mongo.Database) *FormationRepository {
	return &FormationRepository{
		collection: db.Collection(CollectionFormations),
	}
}

var formationSort = bson.D{{Key: "level.number", Value: 1}, {Key: "order", Value: 1}, {Key: "_id", Value: 1}}

// List retourne les formations filtrées, triées par niveau puis ordre
func (r *FormationRepository) List(ctx context.Context, filter store.FormationFilter) ([]models.Formation, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return r.find(ctx, formationFilter(filter), options.Find().SetSort(formationSort))
}

// ListFeatured retourne les formations mises en avant, triées par ordre
func (r *FormationRepository) ListFeatured(ctx context.Context) ([]models.Formation, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}})
	return r.find(ctx, bson.M{"featured": true}, opts)
}

// FindByID recherche une formation par ID
func (r *FormationRepository) FindByID(ctx context.Context, id string) (*models.Formation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindBySlug recherche une formation par slug
func (r *FormationRepository) FindBySlug(ctx context.Context, slug string) (*models.Formation, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

// Create crée une nouvelle formation
func (r *FormationRepository) Create(ctx context.Context, f *models.Formation) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now

	doc := formationDocument{ID: primitive.NewObjectID(), Formation: f.Clone()}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrDuplicate
		}
		return fmt.Errorf("erreur lors de la création de la formation: %w", err)
	}

	f.ID = doc.ID.Hex()
	return nil
}

// Update applique une mise à jour partielle et retourne la formation à jour
func (r *FormationRepository) Update(ctx context.Context, id string, patch models.FormationPatch) (*models.Formation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := formationPatchSet(patch)
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc formationDocument
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{BSONSet: set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, store.ErrDuplicate
		}
		return nil, fmt.Errorf("erreur lors de la mise à jour de la formation: %w", err)
	}

	f := doc.toModel()
	return &f, nil
}

// Delete supprime une formation. Les inscriptions associées sont conservées.
func (r *FormationRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("erreur lors de la suppression de la formation: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Count retourne le nombre total de formations
func (r *FormationRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("erreur lors du comptage des formations: %w", err)
	}
	return n, nil
}

// InsertMissing insère les formations dont le slug est absent et retourne le nombre d'insertions
func (r *FormationRepository) InsertMissing(ctx context.Context, formations []models.Formation) (int, error) {
	inserted := 0
	for i := range formations {
		f := formations[i].Clone()
		err := r.Create(ctx, &f)
		if errors.Is(err, store.ErrDuplicate) {
			continue
		}
		if err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

// DeleteAll vide la collection des formations
func (r *FormationRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("erreur lors du vidage des formations: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *FormationRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Formation, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche des formations: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []formationDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("erreur lors du décodage des formations: %w", err)
	}

	formations := make([]models.Formation, 0, len(docs))
	for _, d := range docs {
		formations = append(formations, d.toModel())
	}
	return formations, nil
}

func (r *FormationRepository) findOne(ctx context.Context, filter bson.M) (*models.Formation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc formationDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche de la formation: %w", err)
	}

	f := doc.toModel()
	return &f, nil
}

// formationFilter traduit le filtre du store en requête MongoDB.
// La recherche est littérale (caractères spéciaux échappés) et insensible à la casse.
func formationFilter(filter store.FormationFilter) bson.M {
	query := bson.M{}
	if filter.Level != nil {
		query["level.number"] = *filter.Level
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := regexp.QuoteMeta(search)
		query[BSONOr] = []bson.M{
			{"title": bson.M{BSONRegex: pattern, BSONOptions: "i"}},
			{"subtitle": bson.M{BSONRegex: pattern, BSONOptions: "i"}},
		}
	}
	return query
}

// formationPatchSet construit le $set d'une mise à jour partielle
func formationPatchSet(p models.FormationPatch) bson.M {
	set := bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Slug != nil {
		set["slug"] = *p.Slug
	}
	if p.Subtitle != nil {
		set["subtitle"] = *p.Subtitle
	}
	if p.Level != nil {
		set["level"] = *p.Level
	}
	if p.Public != nil {
		set["public"] = *p.Public
	}
	if p.Duration != nil {
		set["duration"] = *p.Duration
	}
	if p.Prerequisites != nil {
		set["prerequisites"] = *p.Prerequisites
	}
	if p.Objectives != nil {
		set["objectives"] = nonNil(*p.Objectives)
	}
	if p.Program != nil {
		set["program"] = nonNil(*p.Program)
	}
	if p.Deliverables != nil {
		set["deliverables"] = nonNil(*p.Deliverables)
	}
	if p.Formats != nil {
		set["formats"] = nonNil(*p.Formats)
	}
	if p.Featured != nil {
		set["featured"] = *p.Featured
	}
	if p.Order != nil {
		set["order"] = *p.Order
	}
	return set
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
