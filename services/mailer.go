package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"qwesty-backend/config"
)

const (
	defaultFrom       = "noreply@qwestinum.com"
	placeholderUser   = "votre-email@gmail.com"
	implicitTLSPort   = 465
	defaultSubjectRef = "Votre demande"
)

// ReplyEmail décrit la réponse envoyée à l'auteur d'une demande
type ReplyEmail struct {
	To              string
	ContactName     string
	OriginalSubject string
	ReplyMessage    string
}

// MailResult indique si l'email a réellement été transmis au serveur SMTP
type MailResult struct {
	Simulated bool
}

// Mailer envoie les réponses aux demandes de contact
type Mailer interface {
	SendReply(ctx context.Context, email ReplyEmail) (MailResult, error)
}

type sendFunc func(ctx context.Context, from, to string, msg []byte) error

// SMTPMailer envoie via SMTP, ou simule l'envoi dans les logs si SMTP n'est pas configuré
type SMTPMailer struct {
	cfg  config.SMTPConfig
	from string
	log  *zap.SugaredLogger
	send sendFunc
	now  func() time.Time
}

// NewMailer crée le service d'envoi d'emails
func NewMailer(cfg config.SMTPConfig, log *zap.SugaredLogger) *SMTPMailer {
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	if from == "" {
		from = defaultFrom
	}

	m := &SMTPMailer{cfg: cfg, from: from, log: log, now: time.Now}
	m.send = m.sendSMTP

	if m.Configured() {
		log.Infow("✓ Transporteur SMTP configuré", "host", cfg.Host, "port", cfg.Port)
	} else {
		log.Warn("⚠️  SMTP non configuré - les emails seront simulés dans les logs")
	}
	return m
}

// Configured indique si un vrai serveur SMTP est utilisable
func (m *SMTPMailer) Configured() bool {
	return m.cfg.Host != "" && m.cfg.User != "" && m.cfg.Pass != "" && m.cfg.User != placeholderUser
}

// SendReply envoie la réponse à une demande de contact
func (m *SMTPMailer) SendReply(ctx context.Context, email ReplyEmail) (MailResult, error) {
	if email.OriginalSubject == "" {
		email.OriginalSubject = defaultSubjectRef
	}

	if !m.Configured() {
		m.log.Infow("📧 Email simulé",
			"de", m.from,
			"a", email.To,
			"sujet", "Re: "+email.OriginalSubject,
			"message", email.ReplyMessage,
		)
		return MailResult{Simulated: true}, nil
	}

	body, err := renderReply(email, m.now().Year())
	if err != nil {
		return MailResult{}, err
	}
	subject := fmt.Sprintf("Re: %s — Qwesty-Training", email.OriginalSubject)
	msg := buildMessage(m.from, email.To, subject, body, m.now())

	if err := m.send(ctx, m.from, email.To, msg); err != nil {
		return MailResult{}, fmt.Errorf("erreur lors de l'envoi de l'email: %w", err)
	}

	m.log.Infow("✓ Email envoyé", "a", email.To)
	return MailResult{}, nil
}

func (m *SMTPMailer) sendSMTP(ctx context.Context, from, to string, msg []byte) error {
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	tlsConfig := &tls.Config{ServerName: m.cfg.Host}

	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	// Port 465 : TLS implicite, sinon STARTTLS si le serveur le propose
	if m.cfg.Port == implicitTLSPort {
		conn = tls.Client(conn, tlsConfig)
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if m.cfg.Port != implicitTLSPort {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(tlsConfig); err != nil {
				return err
			}
		}
	}

	if ok, _ := client.Extension("AUTH"); ok {
		auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	wc, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := wc.Write(msg); err != nil {
		wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func buildMessage(from, to, subject, html string, at time.Time) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&b, "Date: %s\r\n", at.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(html, "\n", "\r\n"))
	return b.Bytes()
}

var replyTemplate = template.Must(template.New("reply").Parse(`<div style="font-family: 'Segoe UI', Arial, sans-serif; max-width: 600px; margin: 0 auto; background: #f8fafc; padding: 20px;">
  <div style="background: linear-gradient(135deg, #6366f1, #8b5cf6); padding: 24px; border-radius: 12px 12px 0 0;">
    <h1 style="color: white; margin: 0; font-size: 22px;">Qwesty-Training</h1>
    <p style="color: #e0e7ff; margin: 4px 0 0; font-size: 14px;">Réponse à votre demande</p>
  </div>
  <div style="background: white; padding: 24px; border-radius: 0 0 12px 12px; border: 1px solid #e2e8f0; border-top: none;">
    <p style="color: #334155; font-size: 15px;">Bonjour <strong>{{.ContactName}}</strong>,</p>
    <p style="color: #475569; font-size: 14px; margin-bottom: 4px;">Concernant votre demande : <em>"{{.OriginalSubject}}"</em></p>
    <div style="background: #f1f5f9; border-left: 4px solid #6366f1; padding: 16px; margin: 16px 0; border-radius: 0 8px 8px 0;">
      <p style="color: #334155; font-size: 14px; white-space: pre-wrap; margin: 0; line-height: 1.6;">{{.ReplyMessage}}</p>
    </div>
    <p style="color: #475569; font-size: 14px;">Cordialement,<br><strong>L'équipe Qwestinum</strong></p>
  </div>
  <p style="text-align: center; color: #94a3b8; font-size: 12px; margin-top: 16px;">© {{.Year}} Qwestinum - Formations IA</p>
</div>
`))

// renderReply produit le corps HTML, contenu utilisateur échappé
func renderReply(email ReplyEmail, year int) (string, error) {
	var b bytes.Buffer
	err := replyTemplate.Execute(&b, struct {
		ReplyEmail
		Year int
	}{email, year})
	if err != nil {
		return "", fmt.Errorf("erreur lors du rendu de l'email: %w", err)
	}
	return b.String(), nil
}
