package utils

import (
	"encoding/json"
	"net/http"

	"qwesty-backend/constants"
	"qwesty-backend/models"
)

// RespondJSON envoie une réponse JSON
func RespondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	if w.Header().Get(constants.HeaderContentType) == "" {
		w.Header().Set(constants.HeaderContentType, constants.HeaderApplicationJSON)
	}

	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	w.WriteHeader(statusCode)

	if data == nil {
		return
	}

	// Les en-têtes sont déjà partis : un échec d'encodage ne peut qu'être tronqué
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError envoie une réponse d'erreur JSON
func RespondError(w http.ResponseWriter, statusCode int, message string) {
	RespondJSON(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// RespondServerError envoie une 500 portant le message de l'erreur sous-jacente
func RespondServerError(w http.ResponseWriter, err error) {
	detail := http.StatusText(http.StatusInternalServerError)
	if err != nil {
		detail = err.Error()
	}
	RespondJSON(w, http.StatusInternalServerError, models.ErrorResponse{
		Error:   detail,
		Message: constants.ErrServerError,
	})
}

// RespondMessage envoie une réponse ne contenant qu'un message
func RespondMessage(w http.ResponseWriter, statusCode int, message string) {
	RespondJSON(w, statusCode, models.MessageResponse{Message: message})
}

// DecodeJSON décode le corps de la requête dans dst
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errEmptyBody
	}
	return json.NewDecoder(r.Body).Decode(dst)
}
