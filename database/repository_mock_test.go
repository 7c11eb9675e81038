package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"qwesty-backend/models"
	"qwesty-backend/store"
)

func newMockT(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func TestInscriptionRepository_CountByFormation(t *testing.T) {
	mt := newMockT(t)

	mt.Run("compte par formation", func(mt *mtest.T) {
		repo := NewInscriptionRepository(mt.DB)
		f1, f2 := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.inscriptions", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: f1}, {Key: "count", Value: int32(3)}},
			bson.D{{Key: "_id", Value: f2}, {Key: "count", Value: int32(1)}},
		))

		counts, err := repo.CountByFormation(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, map[string]int{f1.Hex(): 3, f2.Hex(): 1}, counts)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "aggregate", evt.CommandName)
		group := evt.Command.Lookup("pipeline").Array().Index(0).Value().Document()
		assert.Equal(mt, "$formationId", group.Lookup(BSONGroup, "_id").StringValue())
	})

	mt.Run("aucune inscription", func(mt *mtest.T) {
		repo := NewInscriptionRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.inscriptions", mtest.FirstBatch))

		counts, err := repo.CountByFormation(context.Background())
		require.NoError(mt, err)
		assert.Empty(mt, counts)
	})
}

func TestContactRepository_MarkRead(t *testing.T) {
	mt := newMockT(t)
	id := primitive.NewObjectID()

	mt.Run("nouveau passe à lu", func(mt *mtest.T) {
		repo := NewContactRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "firstName", Value: "Jean"},
			{Key: "status", Value: string(models.ContactRead)},
		}}))

		c, err := repo.MarkRead(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), c.ID)
		assert.Equal(mt, models.ContactRead, c.Status)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "findAndModify", evt.CommandName)
		assert.Equal(mt, string(models.ContactNew), evt.Command.Lookup("query", "status").StringValue())
		assert.Equal(mt, string(models.ContactRead), evt.Command.Lookup("update", BSONSet, "status").StringValue())
	})

	mt.Run("déjà traitée reste inchangée", func(mt *mtest.T) {
		repo := NewContactRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, "test.demandes", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: id},
				{Key: "status", Value: string(models.ContactHandled)},
			}),
		)

		c, err := repo.MarkRead(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, models.ContactHandled, c.Status)

		assert.Equal(mt, "findAndModify", mt.GetStartedEvent().CommandName)
		assert.Equal(mt, "find", mt.GetStartedEvent().CommandName)
	})

	mt.Run("inexistante", func(mt *mtest.T) {
		repo := NewContactRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, "test.demandes", mtest.FirstBatch),
		)

		_, err := repo.MarkRead(context.Background(), id.Hex())
		assert.ErrorIs(mt, err, store.ErrNotFound)
	})

	mt.Run("identifiant mal formé", func(mt *mtest.T) {
		repo := NewContactRepository(mt.DB)

		_, err := repo.MarkRead(context.Background(), "c1")
		assert.ErrorIs(mt, err, store.ErrNotFound)
		assert.Nil(mt, mt.GetStartedEvent(), "aucune commande envoyée")
	})
}

func TestContactRepository_Reply(t *testing.T) {
	mt := newMockT(t)

	mt.Run("une seule écriture", func(mt *mtest.T) {
		repo := NewContactRepository(mt.DB)
		id := primitive.NewObjectID()
		at := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "status", Value: string(models.ContactHandled)},
			{Key: "reply", Value: "Merci"},
			{Key: "repliedAt", Value: at},
		}}))

		c, err := repo.Reply(context.Background(), id.Hex(), "Merci", at)
		require.NoError(mt, err)
		assert.Equal(mt, models.ContactHandled, c.Status)
		assert.Equal(mt, "Merci", c.Reply)
		require.NotNil(mt, c.RepliedAt)
		assert.True(mt, at.Equal(*c.RepliedAt))

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "findAndModify", evt.CommandName)
		assert.Equal(mt, id, evt.Command.Lookup("query", "_id").ObjectID())
		set := evt.Command.Lookup("update", BSONSet).Document()
		assert.Equal(mt, string(models.ContactHandled), set.Lookup("status").StringValue())
		assert.Equal(mt, "Merci", set.Lookup("reply").StringValue())
		assert.True(mt, at.Equal(set.Lookup("repliedAt").Time()))
		assert.NotZero(mt, set.Lookup("updatedAt").Time())
		assert.Nil(mt, mt.GetStartedEvent(), "pas de seconde écriture")
	})

	mt.Run("inexistante", func(mt *mtest.T) {
		repo := NewContactRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.Reply(context.Background(), primitive.NewObjectID().Hex(), "Merci", time.Now())
		assert.ErrorIs(mt, err, store.ErrNotFound)
	})
}

func TestFormationRepository_FindByID(t *testing.T) {
	mt := newMockT(t)

	mt.Run("trouvée", func(mt *mtest.T) {
		repo := NewFormationRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.formations", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "title", Value: "IA pour décideurs"},
			{Key: "slug", Value: "ia-pour-decideurs"},
			{Key: "level", Value: bson.D{{Key: "number", Value: int32(1)}}},
		}))

		f, err := repo.FindByID(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), f.ID)
		assert.Equal(mt, "ia-pour-decideurs", f.Slug)
		assert.Equal(mt, 1, f.Level.Number)
	})

	mt.Run("absente", func(mt *mtest.T) {
		repo := NewFormationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.formations", mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, store.ErrNotFound)
	})
}
