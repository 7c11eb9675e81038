package models

import (
	"time"
)

// Level représente un niveau du catalogue (dénormalisé dans chaque formation)
type Level struct {
	Number int    `json:"number" bson:"number" validate:"required,min=1,max=4"`
	Label  string `json:"label" bson:"label"`
	Color  string `json:"color" bson:"color"`
}

// Formation représente une formation du catalogue
type Formation struct {
	ID            string    `json:"_id" bson:"-"`
	Title         string    `json:"title" bson:"title" validate:"required"`
	Slug          string    `json:"slug" bson:"slug"`
	Subtitle      string    `json:"subtitle" bson:"subtitle"`
	Level         Level     `json:"level" bson:"level"`
	Public        string    `json:"public" bson:"public" validate:"required"`
	Duration      string    `json:"duration" bson:"duration" validate:"required"`
	Prerequisites string    `json:"prerequisites" bson:"prerequisites"`
	Objectives    []string  `json:"objectives" bson:"objectives"`
	Program       []string  `json:"program" bson:"program"`
	Deliverables  []string  `json:"deliverables" bson:"deliverables"`
	Formats       []string  `json:"formats" bson:"formats"`
	Featured      bool      `json:"featured" bson:"featured"`
	Order         int       `json:"order" bson:"order"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

// FormationWithCount est la vue admin d'une formation avec son nombre d'inscriptions
type FormationWithCount struct {
	Formation
	InscriptionsCount int `json:"inscriptionsCount"`
}

// FormationRequest représente le corps d'une création ou d'une mise à jour.
// Les champs absents (nil) ne sont pas modifiés lors d'une mise à jour.
type FormationRequest struct {
	Title         *string        `json:"title"`
	Subtitle      *string        `json:"subtitle"`
	Level         *FlexibleLevel `json:"level"`
	Public        *string        `json:"public"`
	Duration      *string        `json:"duration"`
	Prerequisites *string        `json:"prerequisites"`
	Objectives    *[]string      `json:"objectives"`
	Program       *[]string      `json:"program"`
	Deliverables  *[]string      `json:"deliverables"`
	Formats       *[]string      `json:"formats"`
	Featured      *bool          `json:"featured"`
	Order         *int           `json:"order"`
}

// FormationPatch est la mise à jour partielle transmise au stockage.
// Le slug est recalculé par l'appelant dès que le titre change.
type FormationPatch struct {
	Title         *string
	Slug          *string
	Subtitle      *string
	Level         *Level
	Public        *string
	Duration      *string
	Prerequisites *string
	Objectives    *[]string
	Program       *[]string
	Deliverables  *[]string
	Formats       *[]string
	Featured      *bool
	Order         *int
}

// Apply applique le patch sur une copie de la formation
func (p FormationPatch) Apply(f Formation) Formation {
	if p.Title != nil {
		f.Title = *p.Title
	}
	if p.Slug != nil {
		f.Slug = *p.Slug
	}
	if p.Subtitle != nil {
		f.Subtitle = *p.Subtitle
	}
	if p.Level != nil {
		f.Level = *p.Level
	}
	if p.Public != nil {
		f.Public = *p.Public
	}
	if p.Duration != nil {
		f.Duration = *p.Duration
	}
	if p.Prerequisites != nil {
		f.Prerequisites = *p.Prerequisites
	}
	if p.Objectives != nil {
		f.Objectives = cloneStrings(*p.Objectives)
	}
	if p.Program != nil {
		f.Program = cloneStrings(*p.Program)
	}
	if p.Deliverables != nil {
		f.Deliverables = cloneStrings(*p.Deliverables)
	}
	if p.Formats != nil {
		f.Formats = cloneStrings(*p.Formats)
	}
	if p.Featured != nil {
		f.Featured = *p.Featured
	}
	if p.Order != nil {
		f.Order = *p.Order
	}
	return f
}

// IsEmpty indique qu'aucun champ n'est fourni
func (p FormationPatch) IsEmpty() bool {
	return p == FormationPatch{}
}

// Clone retourne une copie profonde de la formation
func (f Formation) Clone() Formation {
	f.Objectives = cloneStrings(f.Objectives)
	f.Program = cloneStrings(f.Program)
	f.Deliverables = cloneStrings(f.Deliverables)
	f.Formats = cloneStrings(f.Formats)
	return f
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
