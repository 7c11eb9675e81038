package models

import (
	"time"
)

// InscriptionStatus est l'état d'une demande d'inscription
type InscriptionStatus string

const (
	InscriptionNew       InscriptionStatus = "nouveau"
	InscriptionConfirmed InscriptionStatus = "confirmé"
	InscriptionRefused   InscriptionStatus = "refusé"
)

// Valid vérifie que le statut fait partie de l'énumération
func (s InscriptionStatus) Valid() bool {
	switch s {
	case InscriptionNew, InscriptionConfirmed, InscriptionRefused:
		return true
	}
	return false
}

// Inscription représente une demande d'inscription à une formation.
// FormationTitle est figé à la création et n'est jamais réécrit.
type Inscription struct {
	ID             string            `json:"_id" bson:"-"`
	FirstName      string            `json:"firstName" bson:"firstName"`
	LastName       string            `json:"lastName" bson:"lastName"`
	Email          string            `json:"email" bson:"email"`
	Phone          string            `json:"phone" bson:"phone"`
	Company        string            `json:"company" bson:"company"`
	FormationID    string            `json:"formationId" bson:"-"`
	FormationTitle string            `json:"formationTitle" bson:"formationTitle"`
	Message        string            `json:"message" bson:"message"`
	Status         InscriptionStatus `json:"status" bson:"status"`
	CreatedAt      time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt" bson:"updatedAt"`
}

// InscriptionRequest représente le formulaire d'inscription public
type InscriptionRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,loose_email"`
	Phone       string `json:"phone"`
	Company     string `json:"company"`
	FormationID string `json:"formationId" validate:"required"`
	Message     string `json:"message"`
}

// StatusRequest représente le changement de statut envoyé par l'admin
type StatusRequest struct {
	Statut string `json:"statut" validate:"required"`
}
