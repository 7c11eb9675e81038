package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qwesty-backend/models"
)

func newFormation(title, slug string, level, order int) *models.Formation {
	return &models.Formation{
		Title:    title,
		Slug:     slug,
		Level:    models.DefaultLevels[level],
		Public:   "Tous",
		Duration: "1 jour",
		Order:    order,
	}
}

func TestMemory_catalogueAmorce(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	list, err := m.Formations().List(ctx, FormationFilter{})
	require.NoError(t, err)
	require.Len(t, list, 8)
	assert.Equal(t, "f1", list[0].ID)
	assert.Equal(t, "f8", list[7].ID)

	for i := 1; i < len(list); i++ {
		prev, cur := list[i-1], list[i]
		ordered := prev.Level.Number < cur.Level.Number ||
			(prev.Level.Number == cur.Level.Number && prev.Order <= cur.Order)
		assert.True(t, ordered, "%s avant %s", prev.ID, cur.ID)
	}

	featured, err := m.Formations().ListFeatured(ctx)
	require.NoError(t, err)
	ids := []string{}
	for _, f := range featured {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{"f1", "f2", "f3", "f5"}, ids)
}

func TestMemory_formationFiltres(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	t.Run("par niveau", func(t *testing.T) {
		list, err := m.Formations().List(ctx, ByLevel(2))
		require.NoError(t, err)
		require.Len(t, list, 2)
		for _, f := range list {
			assert.Equal(t, 2, f.Level.Number)
		}
	})

	t.Run("recherche insensible à la casse", func(t *testing.T) {
		list, err := m.Formations().List(ctx, FormationFilter{Search: "FEUILLE"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "f5", list[0].ID)
	})

	t.Run("recherche dans le sous-titre", func(t *testing.T) {
		list, err := m.Formations().List(ctx, FormationFilter{Search: "productivité dès"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "f2", list[0].ID)
	})

	t.Run("caractères spéciaux traités littéralement", func(t *testing.T) {
		list, err := m.Formations().List(ctx, FormationFilter{Search: "(.*"})
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("niveau zéro filtré comme les autres", func(t *testing.T) {
		list, err := m.Formations().List(ctx, ByLevel(0))
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("aucun résultat", func(t *testing.T) {
		filter := ByLevel(3)
		filter.Search = "assistant"
		list, err := m.Formations().List(ctx, filter)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})
}

func TestMemory_formationCRUD(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	fs := m.Formations()

	f := newFormation("Prompting avancé", "prompting-avance", 2, 9)
	require.NoError(t, fs.Create(ctx, f))
	assert.Equal(t, "f101", f.ID)
	assert.False(t, f.CreatedAt.IsZero())

	second := newFormation("Agents IA", "agents-ia", 4, 10)
	require.NoError(t, fs.Create(ctx, second))
	assert.Equal(t, "f102", second.ID)

	t.Run("slug en doublon", func(t *testing.T) {
		err := fs.Create(ctx, newFormation("Prompting avancé", "prompting-avance", 2, 11))
		assert.ErrorIs(t, err, ErrDuplicate)

		slug := "agents-ia"
		_, err = fs.Update(ctx, f.ID, models.FormationPatch{Slug: &slug})
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("mise à jour partielle", func(t *testing.T) {
		title, slug := "Prompting expert", "prompting-expert"
		updated, err := fs.Update(ctx, f.ID, models.FormationPatch{Title: &title, Slug: &slug})
		require.NoError(t, err)
		assert.Equal(t, "Prompting expert", updated.Title)
		assert.Equal(t, "Tous", updated.Public)

		got, err := fs.FindBySlug(ctx, "prompting-expert")
		require.NoError(t, err)
		assert.Equal(t, f.ID, got.ID)

		_, err = fs.FindBySlug(ctx, "prompting-avance")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("suppression", func(t *testing.T) {
		require.NoError(t, fs.Delete(ctx, f.ID))
		_, err := fs.FindByID(ctx, f.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, fs.Delete(ctx, f.ID), ErrNotFound)

		n, err := fs.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 9, n)
	})

	t.Run("les copies retournées sont isolées", func(t *testing.T) {
		got, err := fs.FindByID(ctx, "f1")
		require.NoError(t, err)
		got.Objectives[0] = "modifié"
		again, err := fs.FindByID(ctx, "f1")
		require.NoError(t, err)
		assert.NotEqual(t, "modifié", again.Objectives[0])
	})
}

func TestMemory_contacts(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	cs := m.Contacts()

	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	tick := 0
	m.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	first := &models.Contact{FirstName: "Ana", LastName: "Roy", Email: "ana@x.fr", Subject: "Devis", Message: "Bonjour", Status: models.ContactNew}
	second := &models.Contact{FirstName: "Léo", LastName: "Blanc", Email: "leo@x.fr", Subject: "Info", Message: "Salut", Status: models.ContactNew}
	require.NoError(t, cs.Create(ctx, first))
	require.NoError(t, cs.Create(ctx, second))
	assert.Equal(t, "c1", first.ID)
	assert.Equal(t, "c2", second.ID)

	list, err := cs.List(ctx, ContactFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c2", list[0].ID, "plus récent d'abord")

	t.Run("nouveau vers lu une seule fois", func(t *testing.T) {
		c, err := cs.MarkRead(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ContactRead, c.Status)

		_, err = cs.SetStatus(ctx, first.ID, models.ContactHandled)
		require.NoError(t, err)
		c, err = cs.MarkRead(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ContactHandled, c.Status)
	})

	t.Run("réponse", func(t *testing.T) {
		at := base.Add(time.Hour)
		c, err := cs.Reply(ctx, second.ID, "Merci", at)
		require.NoError(t, err)
		assert.Equal(t, models.ContactHandled, c.Status)
		assert.Equal(t, "Merci", c.Reply)
		require.NotNil(t, c.RepliedAt)
		assert.True(t, c.RepliedAt.Equal(at))
	})

	t.Run("filtre et compteurs", func(t *testing.T) {
		handled, err := cs.List(ctx, ContactFilter{Status: models.ContactHandled})
		require.NoError(t, err)
		assert.Len(t, handled, 2)

		n, err := cs.Count(ctx, models.ContactNew)
		require.NoError(t, err)
		assert.EqualValues(t, 0, n)

		limited, err := cs.List(ctx, ContactFilter{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, limited, 1)
	})

	t.Run("introuvable", func(t *testing.T) {
		_, err := cs.MarkRead(ctx, "c99")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = cs.Reply(ctx, "c99", "x", base)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, cs.Delete(ctx, "c99"), ErrNotFound)
	})
}

func TestMemory_inscriptionsSurviventALaFormation(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	f := newFormation("Formation éphémère", "formation-ephemere", 1, 9)
	require.NoError(t, m.Formations().Create(ctx, f))

	for i := 0; i < 3; i++ {
		insc := &models.Inscription{FirstName: "A", LastName: "B", Email: "a@b.fr", FormationID: f.ID, FormationTitle: f.Title, Status: models.InscriptionNew}
		require.NoError(t, m.Inscriptions().Create(ctx, insc))
	}
	other := &models.Inscription{FirstName: "C", LastName: "D", Email: "c@d.fr", FormationID: "f1", FormationTitle: "IA", Status: models.InscriptionNew}
	require.NoError(t, m.Inscriptions().Create(ctx, other))
	assert.Equal(t, "i4", other.ID)

	counts, err := m.Inscriptions().CountByFormation(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, counts[f.ID])
	assert.Equal(t, 1, counts["f1"])
	assert.Zero(t, counts["f2"])

	require.NoError(t, m.Formations().Delete(ctx, f.ID))

	list, err := m.Inscriptions().List(ctx, InscriptionFilter{FormationID: f.ID})
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, insc := range list {
		assert.Equal(t, "Formation éphémère", insc.FormationTitle)
	}

	updated, err := m.Inscriptions().SetStatus(ctx, other.ID, models.InscriptionConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.InscriptionConfirmed, updated.Status)

	n, err := m.Inscriptions().Count(ctx, models.InscriptionNew)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}
