package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"qwesty-backend/models"
)

const slackFooter = "Qwesty-Training - Backend"

// SlackService gère l'envoi de notifications Slack
type SlackService struct {
	webhookURL string
	client     *http.Client
	log        *zap.SugaredLogger
}

// SlackMessage représente un message Slack
type SlackMessage struct {
	Text        string       `json:"text,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment représente une pièce jointe Slack
type Attachment struct {
	Color     string  `json:"color,omitempty"`
	Title     string  `json:"title,omitempty"`
	Text      string  `json:"text,omitempty"`
	Fields    []Field `json:"fields,omitempty"`
	Timestamp int64   `json:"ts,omitempty"`
	Footer    string  `json:"footer,omitempty"`
}

// Field représente un champ dans une pièce jointe Slack
type Field struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// NewSlackService crée une nouvelle instance de SlackService
func NewSlackService(webhookURL string, log *zap.SugaredLogger) *SlackService {
	if webhookURL == "" {
		log.Warn("⚠️  Slack webhook URL non configuré - notifications Slack désactivées")
	}

	return &SlackService{
		webhookURL: webhookURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		log: log,
	}
}

// Enabled indique si un webhook est configuré
func (s *SlackService) Enabled() bool {
	return s != nil && s.webhookURL != ""
}

// Send poste le message sur le webhook
func (s *SlackService) Send(ctx context.Context, msg SlackMessage) error {
	if !s.Enabled() {
		return nil // Service désactivé
	}

	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("erreur lors de la sérialisation du message Slack: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("erreur lors de la création de la requête: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("erreur lors de l'envoi à Slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Slack a retourné un code d'erreur: %d", resp.StatusCode)
	}
	return nil
}

// SendErrorNotification envoie une notification d'erreur sur Slack
func (s *SlackService) SendErrorNotification(errorType, method, path, statusCode, message, origin, userAgent string) error {
	if !s.Enabled() {
		return nil
	}

	// Orange pour les 403, rouge sinon
	color := "danger"
	if statusCode == "403" {
		color = "warning"
	}

	attachment := Attachment{
		Color:     color,
		Title:     fmt.Sprintf("🚨 Erreur serveur: %s", errorType),
		Text:      message,
		Timestamp: time.Now().Unix(),
		Footer:    slackFooter,
		Fields: []Field{
			{Title: "Méthode", Value: method, Short: true},
			{Title: "Status Code", Value: statusCode, Short: true},
			{Title: "Chemin", Value: path, Short: false},
		},
	}
	if origin != "" {
		attachment.Fields = append(attachment.Fields, Field{Title: "Origin", Value: origin, Short: true})
	}
	if userAgent != "" {
		attachment.Fields = append(attachment.Fields, Field{Title: "User-Agent", Value: userAgent, Short: false})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Send(ctx, SlackMessage{Attachments: []Attachment{attachment}}); err != nil {
		return err
	}

	s.log.Infow("✓ Notification Slack envoyée pour l'erreur", "method", method, "path", path)
	return nil
}

// SendCriticalError envoie une notification pour une erreur critique
func (s *SlackService) SendCriticalError(method, path, statusCode, errorMessage, origin, userAgent string) {
	if err := s.SendErrorNotification("Erreur Critique", method, path, statusCode, errorMessage, origin, userAgent); err != nil {
		s.log.Errorw("❌ Erreur lors de l'envoi de la notification Slack", "erreur", err)
	}
}

// SendCORSError envoie une notification pour une erreur CORS
func (s *SlackService) SendCORSError(method, path, origin, userAgent string) {
	if err := s.SendErrorNotification(
		"Erreur CORS",
		method,
		path,
		"403",
		fmt.Sprintf("Origine non autorisée: %s", origin),
		origin,
		userAgent,
	); err != nil {
		s.log.Errorw("❌ Erreur lors de l'envoi de la notification Slack", "erreur", err)
	}
}

// NotifyNewContact signale une nouvelle demande de contact
func (s *SlackService) NotifyNewContact(ctx context.Context, c models.Contact) {
	if !s.Enabled() {
		return
	}

	fields := []Field{
		{Title: "Nom", Value: c.FullName(), Short: true},
		{Title: "Email", Value: c.Email, Short: true},
	}
	if c.Company != "" {
		fields = append(fields, Field{Title: "Entreprise", Value: c.Company, Short: true})
	}
	if c.Phone != "" {
		fields = append(fields, Field{Title: "Téléphone", Value: c.Phone, Short: true})
	}

	msg := SlackMessage{Attachments: []Attachment{{
		Color:     "#6366f1",
		Title:     fmt.Sprintf("📩 Nouvelle demande : %s", c.Subject),
		Text:      c.Message,
		Fields:    fields,
		Timestamp: c.CreatedAt.Unix(),
		Footer:    slackFooter,
	}}}

	if err := s.Send(ctx, msg); err != nil {
		s.log.Errorw("❌ Erreur lors de la notification Slack de la demande", "contact_id", c.ID, "erreur", err)
	}
}

// NotifyNewInscription signale une nouvelle demande d'inscription
func (s *SlackService) NotifyNewInscription(ctx context.Context, i models.Inscription) {
	if !s.Enabled() {
		return
	}

	fields := []Field{
		{Title: "Nom", Value: i.FirstName + " " + i.LastName, Short: true},
		{Title: "Email", Value: i.Email, Short: true},
	}
	if i.Company != "" {
		fields = append(fields, Field{Title: "Entreprise", Value: i.Company, Short: true})
	}

	msg := SlackMessage{Attachments: []Attachment{{
		Color:     "good",
		Title:     fmt.Sprintf("🎓 Nouvelle inscription : %s", i.FormationTitle),
		Text:      i.Message,
		Fields:    fields,
		Timestamp: i.CreatedAt.Unix(),
		Footer:    slackFooter,
	}}}

	if err := s.Send(ctx, msg); err != nil {
		s.log.Errorw("❌ Erreur lors de la notification Slack de l'inscription", "inscription_id", i.ID, "erreur", err)
	}
}
