package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"qwesty-backend/constants"
)

const requestIDKey contextKey = "request_id"

// RequestID attribue un identifiant à chaque requête, ou reprend celui fourni par le client
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(constants.HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		w.Header().Set(constants.HeaderRequestID, reqID)
		ctx := context.WithValue(r.Context(), requestIDKey, reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext retourne l'identifiant de la requête courante
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
