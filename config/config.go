package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config contient toutes les configurations de l'application
type Config struct {
	Port        string
	Host        string
	Environment string
	CORSOrigins []string

	Mongo MongoConfig
	Admin AdminConfig
	SMTP  SMTPConfig
	Log   LogConfig

	JWTSecret       string
	SlackWebhookURL string
}

// MongoConfig regroupe la connexion et la politique de reconnexion
type MongoConfig struct {
	URI              string
	Database         string
	ConnectTimeout   time.Duration
	RetryAttempts    int
	RetryDelay       time.Duration
	RecoverySchedule string
}

// Enabled indique qu'une base durable est configurée
func (m MongoConfig) Enabled() bool {
	return m.URI != ""
}

// AdminConfig est l'identité unique du back-office
type AdminConfig struct {
	Email    string
	Password string
}

// SMTPConfig configure l'envoi des réponses par email
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// LogConfig configure zap
type LogConfig struct {
	Level  string
	Format string
}

// Load charge la configuration depuis le fichier .env et les variables d'environnement
func Load() (*Config, error) {
	// Charger le fichier .env s'il existe
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Port:        v.GetString("PORT"),
		Host:        v.GetString("HOST"),
		Environment: v.GetString("ENVIRONMENT"),
		CORSOrigins: splitAndTrim(v.GetString("CORS_ALLOWED_ORIGINS")),
		Mongo:       mongoConfig(v),
		Admin: AdminConfig{
			Email:    strings.ToLower(strings.TrimSpace(v.GetString("ADMIN_EMAIL"))),
			Password: v.GetString("ADMIN_PASSWORD"),
		},
		SMTP: SMTPConfig{
			Host: v.GetString("SMTP_HOST"),
			Port: v.GetInt("SMTP_PORT"),
			User: v.GetString("SMTP_USER"),
			Pass: v.GetString("SMTP_PASS"),
			From: v.GetString("SMTP_FROM"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		JWTSecret:       v.GetString("JWT_SECRET"),
		SlackWebhookURL: v.GetString("SLACK_WEBHOOK_URL"),
	}

	// Valider les configurations critiques
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET est requis")
	}
	if cfg.Mongo.RetryAttempts < 1 {
		return nil, fmt.Errorf("MONGO_RETRY_ATTEMPTS doit être positif (reçu %d)", cfg.Mongo.RetryAttempts)
	}

	return cfg, nil
}

// LoadMongo charge uniquement la configuration MongoDB (outils en ligne de commande)
func LoadMongo() MongoConfig {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return mongoConfig(v)
}

func mongoConfig(v *viper.Viper) MongoConfig {
	return MongoConfig{
		URI:              strings.TrimSpace(v.GetString("MONGODB_URI")),
		Database:         v.GetString("MONGO_DB"),
		ConnectTimeout:   parseDuration(v.GetString("MONGO_CONNECT_TIMEOUT"), 8*time.Second),
		RetryAttempts:    v.GetInt("MONGO_RETRY_ATTEMPTS"),
		RetryDelay:       parseDuration(v.GetString("MONGO_RETRY_DELAY"), 5*time.Second),
		RecoverySchedule: v.GetString("MONGO_RECOVERY_SCHEDULE"),
	}
}

// IsProduction indique l'environnement de production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Addr retourne l'adresse d'écoute host:port
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "5000")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("ENVIRONMENT", EnvDevelopment)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	v.SetDefault("MONGODB_URI", "")
	v.SetDefault("MONGO_DB", "qwesty_training")
	v.SetDefault("MONGO_CONNECT_TIMEOUT", "8s")
	v.SetDefault("MONGO_RETRY_ATTEMPTS", 5)
	v.SetDefault("MONGO_RETRY_DELAY", "5s")
	v.SetDefault("MONGO_RECOVERY_SCHEDULE", "@every 1m")

	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")

	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASS", "")
	v.SetDefault("SMTP_FROM", "")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("SLACK_WEBHOOK_URL", "")
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
