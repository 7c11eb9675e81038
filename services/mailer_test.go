package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"qwesty-backend/config"
)

func configuredSMTP() config.SMTPConfig {
	return config.SMTPConfig{Host: "smtp.example.com", Port: 587, User: "contact@qwestinum.com", Pass: "secret"}
}

func TestMailer_Configured(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.SMTPConfig
		want bool
	}{
		{"complet", configuredSMTP(), true},
		{"sans hôte", config.SMTPConfig{User: "a@b.fr", Pass: "x"}, false},
		{"sans mot de passe", config.SMTPConfig{Host: "smtp", User: "a@b.fr"}, false},
		{"utilisateur exemple", config.SMTPConfig{Host: "smtp", User: placeholderUser, Pass: "x"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMailer(tt.cfg, zap.NewNop().Sugar())
			assert.Equal(t, tt.want, m.Configured())
		})
	}
}

func TestMailer_expediteurParDefaut(t *testing.T) {
	assert.Equal(t, defaultFrom, NewMailer(config.SMTPConfig{}, zap.NewNop().Sugar()).from)

	cfg := configuredSMTP()
	assert.Equal(t, cfg.User, NewMailer(cfg, zap.NewNop().Sugar()).from)

	cfg.From = "Qwesty <hello@qwestinum.com>"
	assert.Equal(t, cfg.From, NewMailer(cfg, zap.NewNop().Sugar()).from)
}

func TestMailer_simule(t *testing.T) {
	m := NewMailer(config.SMTPConfig{}, zap.NewNop().Sugar())
	m.send = func(ctx context.Context, from, to string, msg []byte) error {
		t.Fatal("aucun envoi attendu en mode simulé")
		return nil
	}

	res, err := m.SendReply(context.Background(), ReplyEmail{To: "jean@exemple.fr", ReplyMessage: "Bonjour"})
	require.NoError(t, err)
	assert.True(t, res.Simulated)
}

func TestMailer_envoi(t *testing.T) {
	m := NewMailer(configuredSMTP(), zap.NewNop().Sugar())
	m.now = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }

	var gotTo string
	var gotMsg string
	m.send = func(ctx context.Context, from, to string, msg []byte) error {
		gotTo = to
		gotMsg = string(msg)
		return nil
	}

	res, err := m.SendReply(context.Background(), ReplyEmail{
		To:              "jean@exemple.fr",
		ContactName:     "Jean Dupont",
		OriginalSubject: "Devis",
		ReplyMessage:    "Voici notre proposition.",
	})
	require.NoError(t, err)
	assert.False(t, res.Simulated)
	assert.Equal(t, "jean@exemple.fr", gotTo)
	assert.Contains(t, gotMsg, "To: jean@exemple.fr\r\n")
	assert.Contains(t, gotMsg, "Content-Type: text/html")
	assert.Contains(t, gotMsg, "Voici notre proposition.")
	assert.Contains(t, gotMsg, "© 2025 Qwestinum")
}

func TestMailer_echecEnvoi(t *testing.T) {
	m := NewMailer(configuredSMTP(), zap.NewNop().Sugar())
	m.send = func(ctx context.Context, from, to string, msg []byte) error {
		return errors.New("connexion refusée")
	}

	_, err := m.SendReply(context.Background(), ReplyEmail{To: "jean@exemple.fr", ReplyMessage: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connexion refusée")
}

func TestRenderReply_echappement(t *testing.T) {
	body, err := renderReply(ReplyEmail{
		ContactName:     "<b>Jean</b>",
		OriginalSubject: "Devis",
		ReplyMessage:    "<script>alert(1)</script>",
	}, 2025)
	require.NoError(t, err)

	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, "&lt;b&gt;Jean&lt;/b&gt;")
}

func TestBuildMessage_sujetEncode(t *testing.T) {
	msg := string(buildMessage("a@b.fr", "c@d.fr", "Re: Créer — Qwesty-Training", "<p>x</p>\n", time.Now()))

	assert.Contains(t, msg, "Subject: =?utf-8?q?")
	assert.True(t, strings.HasSuffix(msg, "<p>x</p>\r\n"))
}
