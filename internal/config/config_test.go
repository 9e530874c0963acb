package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("ALLOWED_EMAILS", "alice@example.com")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, "/login", cfg.LoginURL)
	assert.Equal(t, "web/tools", cfg.ToolsDir)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.MetricsEnabled)
	assert.Empty(t, cfg.FoldersFile)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoadRequiresGoogleCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GOOGLE_CLIENT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_CLIENT_ID")
}

func TestLoadRequiresSessionSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoadRejectsShortSessionSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SESSION_SECRET", "too-short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 characters")
}

func TestLoadAllowedEmailsLowercased(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ALLOWED_EMAILS", "Alice@Example.COM, bob@example.com , ,carol@example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"alice@example.com", "bob@example.com", "carol@example.com"}, cfg.AllowedEmails)
}

func TestLoadListsAndBools(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("METRICS_ENABLED", "true")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.1")
	t.Setenv("FOLDERS_FILE", "folders.yaml")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, cfg.TrustedProxies)
	assert.Equal(t, "folders.yaml", cfg.FoldersFile)
	assert.Equal(t, "console", cfg.Logging.Format)
}
