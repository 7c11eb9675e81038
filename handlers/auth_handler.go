package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"qwesty-backend/constants"
	"qwesty-backend/middleware"
	"qwesty-backend/models"
	"qwesty-backend/utils"
)

// AuthHandler gère la connexion de l'administrateur unique
type AuthHandler struct {
	adminEmail string
	password   *utils.LazyPassword
	jwtSecret  string
	log        *zap.SugaredLogger
}

// NewAuthHandler crée une nouvelle instance de AuthHandler. Le mot de passe est haché au premier login.
func NewAuthHandler(adminEmail, adminPassword, jwtSecret string, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		adminEmail: utils.NormalizeEmail(adminEmail),
		password:   utils.NewLazyPassword(adminPassword),
		jwtSecret:  jwtSecret,
		log:        log,
	}
}

// Login vérifie les identifiants et délivre un token de 24h
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	email := utils.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrCredentialsMissing)
		return
	}

	if h.adminEmail == "" || email != h.adminEmail {
		h.log.Warnw("⚠️  Tentative de connexion refusée", "email", email)
		utils.RespondError(w, http.StatusUnauthorized, constants.ErrBadCredentials)
		return
	}

	ok, err := h.password.Check(req.Password)
	if err != nil {
		h.log.Errorw("❌ Erreur lors du hachage du mot de passe admin", "erreur", err)
		utils.RespondServerError(w, err)
		return
	}
	if !ok {
		h.log.Warnw("⚠️  Mot de passe admin incorrect", "email", email)
		utils.RespondError(w, http.StatusUnauthorized, constants.ErrBadCredentials)
		return
	}

	token, err := utils.GenerateToken(email, models.RoleAdmin, h.jwtSecret)
	if err != nil {
		h.log.Errorw("❌ Erreur lors de la génération du token", "erreur", err)
		utils.RespondServerError(w, err)
		return
	}

	h.log.Infow("✓ Connexion admin", "email", email)
	utils.RespondJSON(w, http.StatusOK, models.LoginResponse{
		Message: constants.MsgLoginSuccess,
		Token:   token,
		Admin:   models.AdminIdentity{Email: email, Role: models.RoleAdmin},
	})
}

// Me retourne l'identité portée par le token
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		utils.RespondError(w, http.StatusUnauthorized, constants.ErrNotAuthenticated)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"admin": models.AdminIdentity{Email: claims.Email, Role: claims.Role},
	})
}
