package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"qwesty-backend/constants"
	"qwesty-backend/models"
	"qwesty-backend/store"
	"qwesty-backend/utils"
	"qwesty-backend/websocket"
)

// ListInscriptions retourne les inscriptions, plus récentes d'abord.
// Filtres : ?statut= et ?formationId=. Le titre affiché est celui figé à l'inscription.
func (h *AdminHandler) ListInscriptions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	status := models.InscriptionStatus(query.Get("statut"))
	if status != "" && !status.Valid() {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidStatus)
		return
	}

	inscriptions, err := h.store.Inscriptions().List(r.Context(), store.InscriptionFilter{
		Status:      status,
		FormationID: query.Get("formationId"),
	})
	if err != nil {
		utils.RespondServerError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, inscriptions)
}

// GetInscription retourne une inscription
func (h *AdminHandler) GetInscription(w http.ResponseWriter, r *http.Request) {
	inscription, err := h.store.Inscriptions().FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondStoreError(w, err, constants.ErrInscriptionNotFound)
		return
	}
	utils.RespondJSON(w, http.StatusOK, inscription)
}

// UpdateInscriptionStatus remplace le statut d'une inscription
func (h *AdminHandler) UpdateInscriptionStatus(w http.ResponseWriter, r *http.Request) {
	var req models.StatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	status := models.InscriptionStatus(strings.TrimSpace(req.Statut))
	if !status.Valid() {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidStatus)
		return
	}

	inscription, err := h.store.Inscriptions().SetStatus(r.Context(), mux.Vars(r)["id"], status)
	if err != nil {
		respondStoreError(w, err, constants.ErrInscriptionNotFound)
		return
	}

	h.events.Broadcast(websocket.EventInscriptionStatusChanged, inscription)
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message":     constants.MsgInscriptionStatusUpdated,
		"inscription": inscription,
	})
}

// DeleteInscription supprime une inscription
func (h *AdminHandler) DeleteInscription(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Inscriptions().Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondStoreError(w, err, constants.ErrInscriptionNotFound)
		return
	}
	utils.RespondMessage(w, http.StatusOK, constants.MsgInscriptionDeleted)
}
