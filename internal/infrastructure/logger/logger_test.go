package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("creates a logger with defaults", func(t *testing.T) {
		logger, err := New(DefaultConfig())
		require.NoError(t, err)
		require.NotNil(t, logger)
	})

	t.Run("production config uses json", func(t *testing.T) {
		cfg := ProductionConfig()
		assert.Equal(t, "json", cfg.Format)
		logger, err := New(cfg)
		require.NoError(t, err)
		require.NotNil(t, logger)
	})
}

func TestNewForEnvironment(t *testing.T) {
	for _, env := range []string{"development", "production", "test", ""} {
		logger, err := NewForEnvironment(env)
		require.NoError(t, err, env)
		require.NotNil(t, logger, env)
	}
}

func TestNewFromSettings(t *testing.T) {
	t.Run("overrides apply on top of environment defaults", func(t *testing.T) {
		logger, err := NewFromSettings("production", "debug", "console", "stderr")
		require.NoError(t, err)
		require.NotNil(t, logger)
	})

	t.Run("empty overrides keep defaults", func(t *testing.T) {
		logger, err := NewFromSettings("development", "", "", "")
		require.NoError(t, err)
		require.NotNil(t, logger)
	})
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
		"INFO":    zapcore.InfoLevel,
		"bogus":   zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for input, want := range cases {
		assert.Equal(t, want, parseLevel(input), input)
	}
}
