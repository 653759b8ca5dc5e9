package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromEnv_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := NewFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, 300, cfg.Gemini.Timeout)
	assert.Equal(t, 50, cfg.Pipeline.BatchSize)
	assert.Equal(t, "0 * * * *", cfg.Watch.CronExpr)
	assert.Equal(t, "info", cfg.System.LogLevel)
}

func TestNewFromEnv_Overrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("BATCH_SIZE", "25")
	t.Setenv("GEMINI_TEMPERATURE", "0.7")

	cfg, err := NewFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-pro", cfg.Gemini.Model)
	assert.Equal(t, 25, cfg.Pipeline.BatchSize)
	assert.Equal(t, 0.7, cfg.Gemini.Temperature)
}

func TestNewFromEnv_MissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := NewFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestNewFromEnv_InvalidBatchSize(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("BATCH_SIZE", "-1")

	_, err := NewFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATCH_SIZE")
}

func TestNewFromEnv_Options(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := NewFromEnv(func(c *Config) {
		c.Pipeline.BatchSize = 10
	})
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Pipeline.BatchSize)
}
