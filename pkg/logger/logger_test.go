package logger

import (
	"testing"

	"edu_platform_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLevel(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, zap.DebugLevel, Level(&cfg))

	cfg.Server.Mode = "release"
	assert.Equal(t, zap.InfoLevel, Level(&cfg))

	cfg.Log.Level = "warn"
	assert.Equal(t, zap.WarnLevel, Level(&cfg))

	cfg.Log.Level = "loud"
	assert.Equal(t, zap.InfoLevel, Level(&cfg))
}

func TestLogUsableBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() { Log.Info("before init", zap.String("k", "v")) })
}
