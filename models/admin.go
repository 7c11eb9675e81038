package models

// RoleAdmin est le rôle porté par le token de l'administrateur
const RoleAdmin = "admin"

// LoginRequest représente la requête de connexion admin
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminIdentity est l'identité exposée au back-office
type AdminIdentity struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResponse représente la réponse de connexion
type LoginResponse struct {
	Message string        `json:"message"`
	Token   string        `json:"token"`
	Admin   AdminIdentity `json:"admin"`
}

// DashboardStats regroupe les compteurs du tableau de bord
type DashboardStats struct {
	Formations            int64 `json:"formations"`
	DemandesTotal         int64 `json:"demandes_total"`
	DemandesNouvelles     int64 `json:"demandes_nouvelles"`
	DemandesTraitees      int64 `json:"demandes_traitees"`
	InscriptionsTotal     int64 `json:"inscriptions_total"`
	InscriptionsNouvelles int64 `json:"inscriptions_nouvelles"`
}

// DashboardResponse est la réponse du tableau de bord admin
type DashboardResponse struct {
	Stats                 DashboardStats `json:"stats"`
	DernieresDemandes     []Contact      `json:"dernieresDemandes"`
	DernieresInscriptions []Inscription  `json:"dernieresInscriptions"`
}

// ErrorResponse représente une réponse d'erreur
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// MessageResponse représente une réponse ne contenant qu'un message
type MessageResponse struct {
	Message string `json:"message"`
}
