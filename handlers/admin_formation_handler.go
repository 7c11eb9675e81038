package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"qwesty-backend/constants"
	"qwesty-backend/models"
	"qwesty-backend/store"
	"qwesty-backend/utils"
)

const defaultPrerequisites = "Aucun"

// ListFormations retourne toutes les formations avec leur nombre d'inscriptions, calculé à chaque appel
func (h *AdminHandler) ListFormations(w http.ResponseWriter, r *http.Request) {
	formations, err := h.store.Formations().List(r.Context(), store.FormationFilter{})
	if err != nil {
		utils.RespondServerError(w, err)
		return
	}
	counts, err := h.store.Inscriptions().CountByFormation(r.Context())
	if err != nil {
		utils.RespondServerError(w, err)
		return
	}

	result := make([]models.FormationWithCount, 0, len(formations))
	for _, f := range formations {
		result = append(result, models.FormationWithCount{Formation: f, InscriptionsCount: counts[f.ID]})
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

// GetFormation retourne une formation par identifiant
func (h *AdminHandler) GetFormation(w http.ResponseWriter, r *http.Request) {
	formation, err := h.store.Formations().FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondStoreError(w, err, constants.ErrFormationNotFound)
		return
	}
	utils.RespondJSON(w, http.StatusOK, formation)
}

// CreateFormation ajoute une formation en fin de catalogue
func (h *AdminHandler) CreateFormation(w http.ResponseWriter, r *http.Request) {
	var req models.FormationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	formation, msg := newFormation(req)
	if msg != "" {
		utils.RespondError(w, http.StatusBadRequest, msg)
		return
	}

	if req.Order == nil {
		count, err := h.store.Formations().Count(r.Context())
		if err != nil {
			utils.RespondServerError(w, err)
			return
		}
		formation.Order = int(count) + 1
	}

	if err := h.store.Formations().Create(r.Context(), &formation); err != nil {
		respondStoreError(w, err, constants.ErrFormationNotFound)
		return
	}

	h.log.Infow("✓ Formation créée", "formation_id", formation.ID, "slug", formation.Slug)
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   constants.MsgFormationCreated,
		"formation": formation,
	})
}

// UpdateFormation applique une mise à jour partielle. Le slug suit le titre.
func (h *AdminHandler) UpdateFormation(w http.ResponseWriter, r *http.Request) {
	var req models.FormationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch, msg := formationPatch(req)
	if msg != "" {
		utils.RespondError(w, http.StatusBadRequest, msg)
		return
	}

	formation, err := h.store.Formations().Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		respondStoreError(w, err, constants.ErrFormationNotFound)
		return
	}

	h.log.Infow("✓ Formation mise à jour", "formation_id", formation.ID)
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message":   constants.MsgFormationUpdated,
		"formation": formation,
	})
}

// DeleteFormation supprime une formation. Ses inscriptions sont conservées.
func (h *AdminHandler) DeleteFormation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.store.Formations().Delete(r.Context(), id); err != nil {
		respondStoreError(w, err, constants.ErrFormationNotFound)
		return
	}

	h.log.Infow("✓ Formation supprimée", "formation_id", id)
	utils.RespondMessage(w, http.StatusOK, constants.MsgFormationDeleted)
}

// newFormation construit une formation complète. Retourne un message d'erreur si la requête est incomplète.
func newFormation(req models.FormationRequest) (models.Formation, string) {
	f := models.Formation{
		Title:         deref(req.Title),
		Subtitle:      deref(req.Subtitle),
		Public:        deref(req.Public),
		Duration:      deref(req.Duration),
		Prerequisites: deref(req.Prerequisites),
		Objectives:    derefList(req.Objectives),
		Program:       derefList(req.Program),
		Deliverables:  derefList(req.Deliverables),
		Formats:       derefList(req.Formats),
	}
	if req.Level != nil {
		f.Level = req.Level.Resolve()
	}
	if req.Featured != nil {
		f.Featured = *req.Featured
	}
	if req.Order != nil {
		f.Order = *req.Order
	}
	if f.Prerequisites == "" {
		f.Prerequisites = defaultPrerequisites
	}

	if err := utils.ValidateStruct(f); err != nil {
		var verr utils.ValidationError
		if errors.As(err, &verr) && !verr.IsRequired() {
			return f, constants.ErrFormationLevelRange
		}
		return f, constants.ErrFormationRequired
	}

	f.Slug = utils.Slugify(f.Title)
	if f.Slug == "" {
		return f, constants.ErrFormationEmptyTitle
	}
	return f, ""
}

// formationPatch traduit la requête en mise à jour partielle
func formationPatch(req models.FormationRequest) (models.FormationPatch, string) {
	var p models.FormationPatch

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		slug := utils.Slugify(title)
		if slug == "" {
			return p, constants.ErrFormationEmptyTitle
		}
		p.Title, p.Slug = &title, &slug
	}
	if req.Level != nil {
		lvl := req.Level.Resolve()
		if lvl.Number < 1 || lvl.Number > 4 {
			return p, constants.ErrFormationLevelRange
		}
		p.Level = &lvl
	}
	for _, field := range []struct {
		in  *string
		out **string
	}{{req.Public, &p.Public}, {req.Duration, &p.Duration}} {
		if field.in == nil {
			continue
		}
		v := strings.TrimSpace(*field.in)
		if v == "" {
			return p, constants.ErrFormationRequired
		}
		*field.out = &v
	}

	p.Subtitle = trimmedPtr(req.Subtitle)
	p.Prerequisites = trimmedPtr(req.Prerequisites)
	p.Objectives = req.Objectives
	p.Program = req.Program
	p.Deliverables = req.Deliverables
	p.Formats = req.Formats
	p.Featured = req.Featured
	p.Order = req.Order

	if p.IsEmpty() {
		return p, constants.ErrFormationEmptyUpdate
	}
	return p, ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func derefList(l *[]string) []string {
	if l == nil || *l == nil {
		return []string{}
	}
	return *l
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
