package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"qwesty-backend/constants"
	"qwesty-backend/models"
	"qwesty-backend/services"
	"qwesty-backend/store"
	"qwesty-backend/utils"
	"qwesty-backend/websocket"
)

// ListDemandes retourne les demandes, plus récentes d'abord, filtrées par ?statut=
func (h *AdminHandler) ListDemandes(w http.ResponseWriter, r *http.Request) {
	status := models.ContactStatus(r.URL.Query().Get("statut"))
	if status != "" && !status.Valid() {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidStatus)
		return
	}

	provider := h.store.Snapshot()
	contacts, err := provider.Contacts().List(r.Context(), store.ContactFilter{Status: status})
	if err != nil {
		utils.RespondServerError(w, err)
		return
	}

	refs, err := formationRefs(r.Context(), provider, contacts)
	if err != nil {
		utils.RespondServerError(w, err)
		return
	}
	views := make([]models.AdminContact, 0, len(contacts))
	for _, c := range contacts {
		views = append(views, models.AdminContact{Contact: c, Formation: refs[c.Formation]})
	}
	utils.RespondJSON(w, http.StatusOK, views)
}

// GetDemande retourne une demande. La première consultation la passe de "nouveau" à "lu".
func (h *AdminHandler) GetDemande(w http.ResponseWriter, r *http.Request) {
	provider := h.store.Snapshot()
	contact, err := provider.Contacts().MarkRead(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondStoreError(w, err, constants.ErrContactNotFound)
		return
	}

	view := models.AdminContact{Contact: *contact}
	if contact.Formation != "" {
		f, err := provider.Formations().FindByID(r.Context(), contact.Formation)
		switch {
		case err == nil:
			view.Formation = &models.FormationRef{ID: f.ID, Title: f.Title, Slug: f.Slug}
		case !errors.Is(err, store.ErrNotFound):
			utils.RespondServerError(w, err)
			return
		}
	}
	utils.RespondJSON(w, http.StatusOK, view)
}

// formationRefs résout les formations citées par les demandes, en une seule lecture du catalogue
func formationRefs(ctx context.Context, provider store.Provider, contacts []models.Contact) (map[string]*models.FormationRef, error) {
	refs := map[string]*models.FormationRef{}
	cited := false
	for _, c := range contacts {
		if c.Formation != "" {
			cited = true
			break
		}
	}
	if !cited {
		return refs, nil
	}

	formations, err := provider.Formations().List(ctx, store.FormationFilter{})
	if err != nil {
		return nil, err
	}
	for _, f := range formations {
		refs[f.ID] = &models.FormationRef{ID: f.ID, Title: f.Title, Slug: f.Slug}
	}
	return refs, nil
}

// UpdateDemandeStatus remplace le statut d'une demande par n'importe quelle valeur autorisée
func (h *AdminHandler) UpdateDemandeStatus(w http.ResponseWriter, r *http.Request) {
	var req models.StatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	status := models.ContactStatus(strings.TrimSpace(req.Statut))
	if !status.Valid() {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidStatus)
		return
	}

	contact, err := h.store.Contacts().SetStatus(r.Context(), mux.Vars(r)["id"], status)
	if err != nil {
		respondStoreError(w, err, constants.ErrContactNotFound)
		return
	}

	h.events.Broadcast(websocket.EventContactStatusChanged, contact)
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": constants.MsgContactStatusUpdated,
		"contact": contact,
	})
}

// ReplyDemande enregistre la réponse (statut "traité") puis l'envoie par email.
// L'issue de l'envoi est rapportée mais ne modifie jamais l'état enregistré.
func (h *AdminHandler) ReplyDemande(w http.ResponseWriter, r *http.Request) {
	var req models.ReplyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	reply := strings.TrimSpace(req.ReplyMessage)
	if reply == "" {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrReplyRequired)
		return
	}

	contact, err := h.store.Contacts().Reply(r.Context(), mux.Vars(r)["id"], reply, time.Now().UTC())
	if err != nil {
		respondStoreError(w, err, constants.ErrContactNotFound)
		return
	}
	h.events.Broadcast(websocket.EventContactStatusChanged, contact)

	message := constants.MsgReplySent
	result, err := h.mailer.SendReply(r.Context(), services.ReplyEmail{
		To:              contact.Email,
		ContactName:     contact.FullName(),
		OriginalSubject: contact.Subject,
		ReplyMessage:    reply,
	})
	switch {
	case err != nil:
		h.log.Errorw("❌ Erreur lors de l'envoi de la réponse", "contact_id", contact.ID, "erreur", err)
		message = constants.MsgReplyEmailFailed
	case result.Simulated:
		message = constants.MsgReplySimulated
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message":        message,
		"contact":        contact,
		"emailSimulated": result.Simulated,
	})
}

// DeleteDemande supprime une demande
func (h *AdminHandler) DeleteDemande(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Contacts().Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondStoreError(w, err, constants.ErrContactNotFound)
		return
	}
	utils.RespondMessage(w, http.StatusOK, constants.MsgContactDeleted)
}
