package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	os.Clearenv()

	cfg := Load()
	require.NotNil(t, cfg)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "imovelhub", cfg.Database.Database)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Analytics.Enabled)
	assert.Equal(t, 86400, cfg.Auth.SessionTTL)
}

func TestLoadFromEnv(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("DB_PORT", "5433")
	os.Setenv("DB_NAME", "imovelhub_test")
	os.Setenv("ANALYTICS_ENABLED", "false")
	os.Setenv("SITE_BASE_URL", "https://staging.imovelhub.com.br")
	defer os.Clearenv()

	cfg := Load()

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "imovelhub_test", cfg.Database.Database)
	assert.False(t, cfg.Analytics.Enabled)
	assert.Equal(t, "https://staging.imovelhub.com.br", cfg.Site.BaseURL)
}

func TestGetDSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "db", Port: 5432, User: "app", Password: "secret",
		Database: "imovelhub", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=app password=secret dbname=imovelhub sslmode=disable",
		c.GetDSN())
}

func TestParseIntFallback(t *testing.T) {
	assert.Equal(t, 7, parseInt("7", 3))
	assert.Equal(t, 3, parseInt("not-a-number", 3))
	assert.Equal(t, 3, parseInt("", 3))
}
