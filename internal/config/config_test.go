package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MOVECHAT_EMAIL", "ann@example.com")
	t.Setenv("MOVECHAT_PASSWORD", "hunter2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8000", cfg.APIBaseURL)
	assert.True(t, cfg.GeolocationEnabled)
	assert.Equal(t, "http://ip-api.com/json", cfg.GeolocationURL)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.LogFile)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MOVECHAT_EMAIL", "ann@example.com")
	t.Setenv("MOVECHAT_PASSWORD", "hunter2")
	t.Setenv("API_BASE_URL", "https://assistant.example.com")
	t.Setenv("GEOLOCATION_ENABLED", "false")
	t.Setenv("DEBUG", "true")
	t.Setenv("LOG_FILE", "/tmp/movechat.log")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://assistant.example.com", cfg.APIBaseURL)
	assert.False(t, cfg.GeolocationEnabled)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "/tmp/movechat.log", cfg.LogFile)
}
