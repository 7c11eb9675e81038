package handlers

import (
	"context"
	"errors"
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

// ContactHandler reçoit les demandes du formulaire de contact
type ContactHandler struct {
	store   store.Provider
	log     *zap.SugaredLogger
	slack   *services.SlackService
	metrics *services.MetricsService
	events  EventBroadcaster
}

// NewContactHandler crée une nouvelle instance de ContactHandler
func NewContactHandler(provider store.Provider, log *zap.SugaredLogger, slack *services.SlackService, metrics *services.MetricsService, events EventBroadcaster) *ContactHandler {
	if events == nil {
		events = noopBroadcaster{}
	}
	return &ContactHandler{store: provider, log: log, slack: slack, metrics: metrics, events: events}
}

// Create enregistre une demande de contact, toujours au statut "nouveau"
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if !decodeBody(w, r, &req) {
		return
	}

	trimAll(&req.FirstName, &req.LastName, &req.Email, &req.Company, &req.Phone, &req.Subject, &req.Formation, &req.Message)
	if err := utils.ValidateStruct(req); err != nil {
		var verr utils.ValidationError
		if errors.As(err, &verr) && !verr.IsRequired() {
			utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidEmail)
			return
		}
		utils.RespondError(w, http.StatusBadRequest, constants.ErrContactRequired)
		return
	}

	// La formation citée, si fournie, doit exister
	if req.Formation != "" {
		if _, err := h.store.Formations().FindByID(r.Context(), req.Formation); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				utils.RespondError(w, http.StatusBadRequest, constants.ErrContactUnknownCourse)
				return
			}
			utils.RespondServerError(w, err)
			return
		}
	}

	contact := models.Contact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     utils.NormalizeEmail(req.Email),
		Company:   req.Company,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Formation: req.Formation,
		Message:   req.Message,
		Status:    models.ContactNew,
	}
	if err := h.store.Contacts().Create(r.Context(), &contact); err != nil {
		h.log.Errorw("❌ Erreur lors de l'enregistrement de la demande", "erreur", err)
		utils.RespondServerError(w, err)
		return
	}

	h.log.Infow("✓ Nouvelle demande de contact", "contact_id", contact.ID, "subject", contact.Subject)
	h.metrics.RecordLead(services.LeadContact)
	h.events.Broadcast(websocket.EventContactCreated, contact)
	go h.notify(contact)

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": constants.MsgContactCreated,
		"contact": contact,
	})
}

func (h *ContactHandler) notify(contact models.Contact) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	h.slack.NotifyNewContact(ctx, contact)
}
