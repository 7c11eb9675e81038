package models

import (
	"time"
)

// ContactStatus est l'état de traitement d'une demande de contact
type ContactStatus string

const (
	ContactNew     ContactStatus = "nouveau"
	ContactRead    ContactStatus = "lu"
	ContactHandled ContactStatus = "traité"
)

// Valid vérifie que le statut fait partie de l'énumération
func (s ContactStatus) Valid() bool {
	switch s {
	case ContactNew, ContactRead, ContactHandled:
		return true
	}
	return false
}

// Contact représente une demande de contact (collection "demandes")
type Contact struct {
	ID        string        `json:"_id" bson:"-"`
	FirstName string        `json:"firstName" bson:"firstName"`
	LastName  string        `json:"lastName" bson:"lastName"`
	Email     string        `json:"email" bson:"email"`
	Company   string        `json:"company" bson:"company"`
	Phone     string        `json:"phone" bson:"phone"`
	Subject   string        `json:"subject" bson:"subject"`
	Formation string        `json:"formation,omitempty" bson:"-"`
	Message   string        `json:"message" bson:"message"`
	Status    ContactStatus `json:"status" bson:"status"`
	Reply     string        `json:"reply" bson:"reply"`
	RepliedAt *time.Time    `json:"repliedAt" bson:"repliedAt"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// FormationRef résume la formation liée à une demande
type FormationRef struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// AdminContact est une demande vue par le back-office, formation résolue.
// Formation vaut nil quand la demande n'en cite pas ou que la formation a été supprimée.
type AdminContact struct {
	Contact
	Formation *FormationRef `json:"formation,omitempty"`
}

// FullName retourne "Prénom Nom"
func (c Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

// ContactRequest représente le formulaire de contact public
type ContactRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,loose_email"`
	Company   string `json:"company"`
	Phone     string `json:"phone"`
	Subject   string `json:"subject" validate:"required"`
	Formation string `json:"formation"`
	Message   string `json:"message" validate:"required"`
}

// ReplyRequest représente la réponse d'un administrateur à une demande
type ReplyRequest struct {
	ReplyMessage string `json:"replyMessage" validate:"required"`
}
