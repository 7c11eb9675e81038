// Package logger construit le logger zap de l'application.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"qwesty-backend/config"
)

// New construit un logger zap selon l'environnement et la configuration de logs
func New(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Log.Format {
	case "json":
		zapCfg.Encoding = "json"
	default:
		zapCfg.Encoding = "console"
	}

	if cfg.Log.Level != "" {
		if err := zapCfg.Level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}
	}

	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zapCfg.Build()
}

// Nop retourne un logger silencieux, utilisé dans les tests
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
