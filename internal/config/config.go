package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config imovelhub-api (HTTP API) configuration
type Config struct {
	HTTP struct {
		Addr string
	}
	Database DatabaseConfig
	Redis    struct {
		Addr     string
		Password string
		DB       int
	}
	Log struct {
		Level  string
		Format string
	}
	Site      SiteConfig
	Storage   StorageConfig
	Analytics AnalyticsConfig
	Auth      AuthConfig
}

// DatabaseConfig PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// GetDSN builds the lib/pq connection string.
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// SiteConfig public listing site settings.
// Property URLs are built as BaseURL/{company_slug}/imovel/{property_id}.
type SiteConfig struct {
	BaseURL string
}

// StorageConfig file-storage public URL resolution. The storage service
// itself is an external collaborator; we only compose its public URLs.
type StorageConfig struct {
	PublicBaseURL string
}

// AnalyticsConfig usage-counter increment endpoint (external collaborator)
type AnalyticsConfig struct {
	Enabled  bool
	Endpoint string
}

// AuthConfig hosted identity provider (token exchange only)
type AuthConfig struct {
	UserinfoURL string
	SessionTTL  int // seconds
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "imovelhub")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "20"), 20)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "5"), 5)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.Site.BaseURL = getEnv("SITE_BASE_URL", "https://imovelhub.com.br")
	cfg.Storage.PublicBaseURL = getEnv("STORAGE_PUBLIC_BASE_URL", "https://storage.imovelhub.com.br/public")

	cfg.Analytics.Enabled = getEnv("ANALYTICS_ENABLED", "true") == "true"
	cfg.Analytics.Endpoint = getEnv("ANALYTICS_ENDPOINT", "http://localhost:8091/usage/increment")

	cfg.Auth.UserinfoURL = getEnv("AUTH_USERINFO_URL", "http://localhost:9999/auth/v1/user")
	cfg.Auth.SessionTTL = parseInt(getEnv("AUTH_SESSION_TTL", "86400"), 86400)

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
