package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"qwesty-backend/constants"
	"qwesty-backend/models"
	"qwesty-backend/utils"
)

// RequireAdmin vérifie que le token porte le rôle administrateur
func RequireAdmin(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Claims posés par le middleware Auth
			claims := GetUserFromContext(r.Context())
			if claims == nil {
				utils.RespondError(w, http.StatusUnauthorized, constants.ErrNotAuthenticated)
				return
			}

			if claims.Role != models.RoleAdmin {
				log.Warnw("⚠️  Accès admin refusé", "email", claims.Email, "role", claims.Role)
				utils.RespondError(w, http.StatusForbidden, constants.ErrAdminOnly)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
