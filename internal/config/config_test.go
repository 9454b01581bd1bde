package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite:file::memory:")
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.RemoteAnalyticsTimeout)
	assert.Equal(t, 4, cfg.ExportConcurrency)
	assert.Equal(t, time.Duration(0), cfg.SummaryExportInterval)
	assert.Equal(t, "dev-secret-change-in-production", cfg.JWTSecret)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/farm")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/farm")
	t.Setenv("REMOTE_ANALYTICS_URL", "https://analytics.example.com")
	t.Setenv("REMOTE_ANALYTICS_TIMEOUT", "750ms")
	t.Setenv("SUMMARY_EXPORT_INTERVAL", "3600")
	t.Setenv("EXPORT_CONCURRENCY", "0")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://analytics.example.com", cfg.RemoteAnalyticsURL)
	assert.Equal(t, 750*time.Millisecond, cfg.RemoteAnalyticsTimeout)
	assert.Equal(t, time.Hour, cfg.SummaryExportInterval)
	assert.Equal(t, 1, cfg.ExportConcurrency)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}

func TestGetEnvAsDuration_InvalidFallsBack(t *testing.T) {
	t.Setenv("SOME_DURATION", "soon")
	assert.Equal(t, time.Minute, getEnvAsDuration("SOME_DURATION", time.Minute))

	t.Setenv("SOME_DURATION", "-5s")
	assert.Equal(t, time.Minute, getEnvAsDuration("SOME_DURATION", time.Minute))
}
