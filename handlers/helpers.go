package handlers

import (
	"errors"
	"net/http"
	"strings"

	"qwesty-backend/constants"
	"qwesty-backend/store"
	"qwesty-backend/utils"
)

// EventBroadcaster diffuse les événements temps réel du back-office
type EventBroadcaster interface {
	Broadcast(eventType string, data interface{})
}

type noopBroadcaster struct{}

func (noopBroadcaster) Broadcast(string, interface{}) {}

// decodeBody décode le JSON de la requête. Retourne false et écrit une 400 si le corps est illisible.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := utils.DecodeJSON(r, dst); err != nil {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidJSONBody)
		return false
	}
	return true
}

// respondStoreError traduit une erreur du stockage : 404, 409 ou 500 avec le message sous-jacent
func respondStoreError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.RespondError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, store.ErrDuplicate):
		utils.RespondError(w, http.StatusConflict, constants.ErrFormationDuplicate)
	default:
		utils.RespondServerError(w, err)
	}
}

// NotFound répond aux routes inconnues
func NotFound(w http.ResponseWriter, r *http.Request) {
	utils.RespondMessage(w, http.StatusNotFound, constants.ErrRouteNotFound)
}

// MethodNotAllowed répond quand la route existe pour une autre méthode
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	utils.RespondError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
}

func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
