package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("NYLAS_CLIENT_ID", "cid")
	t.Setenv("NYLAS_CLIENT_SECRET", "csec")
	t.Setenv("NYLAS_CLIENT_URI", "http://localhost:3000")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "cid", cfg.ClientID)
	assert.Equal(t, "csec", cfg.ClientSecret)
	assert.Equal(t, "http://localhost:3000", cfg.ClientURI)
	assert.Equal(t, "email,calendar,contacts", cfg.Scopes)
	assert.Empty(t, cfg.LoginHint)
	assert.Empty(t, cfg.APIURL)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADDR", ":3000")
	t.Setenv("NYLAS_SCOPES", "email")
	t.Setenv("NYLAS_LOGIN_HINT", "a@b.com")
	t.Setenv("NYLAS_API_URL", "http://localhost:4000")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "email", cfg.Scopes)
	assert.Equal(t, "a@b.com", cfg.LoginHint)
	assert.Equal(t, "http://localhost:4000", cfg.APIURL)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_MissingCredentials(t *testing.T) {
	t.Setenv("NYLAS_CLIENT_ID", "")
	t.Setenv("NYLAS_CLIENT_SECRET", "")
	t.Setenv("NYLAS_CLIENT_URI", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{ShutdownTimeout: time.Second}
	assert.NoError(t, cfg.Validate())

	cfg.ShutdownTimeout = 0
	assert.Error(t, cfg.Validate())
}
