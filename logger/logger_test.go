package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"qwesty-backend/config"
)

func TestNew(t *testing.T) {
	t.Run("production json", func(t *testing.T) {
		cfg := &config.Config{Environment: config.EnvProduction, Log: config.LogConfig{Level: "warn", Format: "json"}}
		l, err := New(cfg)
		require.NoError(t, err)
		assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("niveau invalide ramené à info", func(t *testing.T) {
		cfg := &config.Config{Environment: config.EnvDevelopment, Log: config.LogConfig{Level: "bavard"}}
		l, err := New(cfg)
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	})
}
