package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"qwesty-backend/constants"
	"qwesty-backend/models"
	"qwesty-backend/services"
	"qwesty-backend/store"
	"qwesty-backend/utils"
	"qwesty-backend/websocket"
)

// InscriptionHandler reçoit les demandes d'inscription aux formations
type InscriptionHandler struct {
	store   store.Provider
	log     *zap.SugaredLogger
	slack   *services.SlackService
	metrics *services.MetricsService
	events  EventBroadcaster
}

// NewInscriptionHandler crée une nouvelle instance de InscriptionHandler
func NewInscriptionHandler(provider store.Provider, log *zap.SugaredLogger, slack *services.SlackService, metrics *services.MetricsService, events EventBroadcaster) *InscriptionHandler {
	if events == nil {
		events = noopBroadcaster{}
	}
	return &InscriptionHandler{store: provider, log: log, slack: slack, metrics: metrics, events: events}
}

// Create enregistre une inscription. Le titre de la formation est figé à cet instant.
func (h *InscriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.InscriptionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	trimAll(&req.FirstName, &req.LastName, &req.Email, &req.Phone, &req.Company, &req.FormationID, &req.Message)
	if err := utils.ValidateStruct(req); err != nil {
		var verr utils.ValidationError
		if errors.As(err, &verr) && !verr.IsRequired() {
			utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidEmail)
			return
		}
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInscriptionRequired)
		return
	}

	formation, err := h.store.Formations().FindByID(r.Context(), req.FormationID)
	if err != nil {
		respondStoreError(w, err, constants.ErrInscriptionFormationAbsent)
		return
	}

	inscription := models.Inscription{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          utils.NormalizeEmail(req.Email),
		Phone:          req.Phone,
		Company:        req.Company,
		FormationID:    formation.ID,
		FormationTitle: formation.Title,
		Message:        req.Message,
		Status:         models.InscriptionNew,
	}
	if err := h.store.Inscriptions().Create(r.Context(), &inscription); err != nil {
		h.log.Errorw("❌ Erreur lors de l'enregistrement de l'inscription", "erreur", err)
		utils.RespondServerError(w, err)
		return
	}

	h.log.Infow("✓ Nouvelle inscription", "inscription_id", inscription.ID, "formation", formation.Slug)
	h.metrics.RecordLead(services.LeadInscription)
	h.events.Broadcast(websocket.EventInscriptionCreated, inscription)
	go h.notify(inscription)

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     fmt.Sprintf(constants.MsgInscriptionCreated, formation.Title),
		"inscription": inscription,
	})
}

func (h *InscriptionHandler) notify(inscription models.Inscription) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	h.slack.NotifyNewInscription(ctx, inscription)
}
