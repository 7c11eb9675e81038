package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"qwesty-backend/models"
	"qwesty-backend/store"
)

func TestFormationFilter(t *testing.T) {
	t.Run("vide", func(t *testing.T) {
		assert.Empty(t, formationFilter(store.FormationFilter{}))
	})

	t.Run("niveau zéro conservé", func(t *testing.T) {
		q := formationFilter(store.ByLevel(0))
		assert.Equal(t, 0, q["level.number"])
	})

	t.Run("niveau et recherche littérale", func(t *testing.T) {
		filter := store.ByLevel(2)
		filter.Search = " IA (avancé) "
		q := formationFilter(filter)
		assert.Equal(t, 2, q["level.number"])

		or, ok := q[BSONOr].([]bson.M)
		require.True(t, ok)
		require.Len(t, or, 2)
		title := or[0]["title"].(bson.M)
		assert.Equal(t, `IA \(avancé\)`, title[BSONRegex])
		assert.Equal(t, "i", title[BSONOptions])
		assert.Contains(t, or[1], "subtitle")
	})
}

func TestFormationPatchSet(t *testing.T) {
	title, slug := "Nouveau", "nouveau"
	featured := false
	set := formationPatchSet(models.FormationPatch{
		Title:      &title,
		Slug:       &slug,
		Featured:   &featured,
		Objectives: new([]string),
	})

	assert.Equal(t, bson.M{
		"title":      "Nouveau",
		"slug":       "nouveau",
		"featured":   false,
		"objectives": []string{},
	}, set)
	assert.Empty(t, formationPatchSet(models.FormationPatch{}))
}

func TestInscriptionFilter(t *testing.T) {
	oid := primitive.NewObjectID()

	q, ok := inscriptionFilter(store.InscriptionFilter{Status: models.InscriptionConfirmed, FormationID: oid.Hex()})
	require.True(t, ok)
	assert.Equal(t, models.InscriptionConfirmed, q["status"])
	assert.Equal(t, oid, q["formationId"])

	_, ok = inscriptionFilter(store.InscriptionFilter{FormationID: "f1"})
	assert.False(t, ok, "un identifiant non ObjectID ne peut rien retourner")
}

func TestCountByFormationPipeline(t *testing.T) {
	pipeline := countByFormationPipeline()
	require.Len(t, pipeline, 1)
	assert.Equal(t, BSONGroup, pipeline[0][0].Key)
}

func TestDocumentsToModel(t *testing.T) {
	oid := primitive.NewObjectID()
	ref := primitive.NewObjectID()

	c := contactDocument{ID: oid, FormationRef: &ref, Contact: models.Contact{FirstName: "Ana"}}.toModel()
	assert.Equal(t, oid.Hex(), c.ID)
	assert.Equal(t, ref.Hex(), c.Formation)

	c = contactDocument{ID: oid}.toModel()
	assert.Empty(t, c.Formation)

	i := inscriptionDocument{ID: oid, FormationID: ref, Inscription: models.Inscription{FormationTitle: "IA"}}.toModel()
	assert.Equal(t, ref.Hex(), i.FormationID)
	assert.Equal(t, "IA", i.FormationTitle)

	f := formationDocument{ID: oid, Formation: models.Formation{Title: "T"}}.toModel()
	assert.Equal(t, oid.Hex(), f.ID)
	assert.NotNil(t, f.Objectives)
}
