package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"qwesty-backend/constants"
	"qwesty-backend/models"
	"qwesty-backend/store"
	"qwesty-backend/utils"
)

// FormationHandler sert le catalogue public
type FormationHandler struct {
	store store.Provider
	log   *zap.SugaredLogger
}

// NewFormationHandler crée une nouvelle instance de FormationHandler
func NewFormationHandler(provider store.Provider, log *zap.SugaredLogger) *FormationHandler {
	return &FormationHandler{store: provider, log: log}
}

// List retourne le catalogue, filtré par ?level= et ?search=
func (h *FormationHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.FormationFilter{Search: r.URL.Query().Get("search")}

	if raw := strings.TrimSpace(r.URL.Query().Get("level")); raw != "" {
		level, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, constants.ErrFormationInvalidSearch)
			return
		}
		filter.Level = &level
	}

	formations, err := h.store.Formations().List(r.Context(), filter)
	if err != nil {
		h.log.Errorw("❌ Erreur lors de la récupération des formations", "erreur", err)
		utils.RespondServerError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, formations)
}

// Featured retourne les formations mises en avant
func (h *FormationHandler) Featured(w http.ResponseWriter, r *http.Request) {
	formations, err := h.store.Formations().ListFeatured(r.Context())
	if err != nil {
		h.log.Errorw("❌ Erreur lors de la récupération des formations phares", "erreur", err)
		utils.RespondServerError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, formations)
}

// Levels retourne les niveaux présents dans le catalogue, par numéro croissant
func (h *FormationHandler) Levels(w http.ResponseWriter, r *http.Request) {
	formations, err := h.store.Formations().List(r.Context(), store.FormationFilter{})
	if err != nil {
		h.log.Errorw("❌ Erreur lors de la récupération des niveaux", "erreur", err)
		utils.RespondServerError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, distinctLevels(formations))
}

// GetBySlug retourne le détail d'une formation
func (h *FormationHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	formation, err := h.store.Formations().FindBySlug(r.Context(), slug)
	if err != nil {
		respondStoreError(w, err, constants.ErrFormationNotFound)
		return
	}
	utils.RespondJSON(w, http.StatusOK, formation)
}

// distinctLevels garde le premier niveau rencontré pour chaque numéro. L'entrée est triée par niveau.
func distinctLevels(formations []models.Formation) []models.Level {
	levels := []models.Level{}
	seen := make(map[int]bool)
	for _, f := range formations {
		if seen[f.Level.Number] {
			continue
		}
		seen[f.Level.Number] = true
		levels = append(levels, f.Level)
	}
	return levels
}
