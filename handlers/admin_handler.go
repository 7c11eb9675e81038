package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"qwesty-backend/models"
	"qwesty-backend/services"
	"qwesty-backend/store"
	"qwesty-backend/utils"
)

const dashboardRecent = 5

// AdminHandler regroupe les endpoints du back-office
type AdminHandler struct {
	store  store.Provider
	mailer services.Mailer
	log    *zap.SugaredLogger
	events EventBroadcaster
}

// NewAdminHandler crée une nouvelle instance de AdminHandler
func NewAdminHandler(provider store.Provider, mailer services.Mailer, log *zap.SugaredLogger, events EventBroadcaster) *AdminHandler {
	if events == nil {
		events = noopBroadcaster{}
	}
	return &AdminHandler{store: provider, mailer: mailer, log: log, events: events}
}

// Dashboard retourne les compteurs et les 5 dernières demandes et inscriptions
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	resp, err := h.dashboard(r.Context())
	if err != nil {
		h.log.Errorw("❌ Erreur lors du calcul du tableau de bord", "erreur", err)
		utils.RespondServerError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) dashboard(ctx context.Context) (*models.DashboardResponse, error) {
	// Un seul backend pour toute la requête
	provider := h.store.Snapshot()
	formations, contacts, inscriptions := provider.Formations(), provider.Contacts(), provider.Inscriptions()

	var resp models.DashboardResponse
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		resp.Stats.Formations, err = formations.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		resp.Stats.DemandesTotal, err = contacts.Count(ctx, "")
		return err
	})
	g.Go(func() (err error) {
		resp.Stats.DemandesNouvelles, err = contacts.Count(ctx, models.ContactNew)
		return err
	})
	g.Go(func() (err error) {
		resp.Stats.DemandesTraitees, err = contacts.Count(ctx, models.ContactHandled)
		return err
	})
	g.Go(func() (err error) {
		resp.Stats.InscriptionsTotal, err = inscriptions.Count(ctx, "")
		return err
	})
	g.Go(func() (err error) {
		resp.Stats.InscriptionsNouvelles, err = inscriptions.Count(ctx, models.InscriptionNew)
		return err
	})
	g.Go(func() (err error) {
		resp.DernieresDemandes, err = contacts.List(ctx, store.ContactFilter{Limit: dashboardRecent})
		return err
	})
	g.Go(func() (err error) {
		resp.DernieresInscriptions, err = inscriptions.List(ctx, store.InscriptionFilter{Limit: dashboardRecent})
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &resp, nil
}
