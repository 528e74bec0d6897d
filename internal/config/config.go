package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration. The analysis engine itself is
// stateless; the database is only used for the optional analysis history.
type Config struct {
	// Environment
	Environment string
	Port        string

	// Persistence (optional). History endpoints are disabled when unset.
	DatabaseURL string

	// Observability
	SentryDSN string // Sentry DSN for error tracking

	// Auth mode
	// - "none": No auth (self-hosted, local dev)
	// - "jwt": HMAC bearer tokens signed with JWTSecret
	// - "gateway": Trust X-User-* headers from an upstream gateway
	AuthMode  string
	JWTSecret string

	// Interpretation result cache
	CacheCapacity int
	CacheTTL      time.Duration
}

func Load() *Config {
	return &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		SentryDSN:     getEnv("SENTRY_DSN", ""),
		AuthMode:      getEnv("AUTH_MODE", "none"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		CacheCapacity: getEnvInt("ANALYSIS_CACHE_CAPACITY", 256),
		CacheTTL:      getEnvDuration("ANALYSIS_CACHE_TTL", 15*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// IsGatewayMode returns true if running behind an authenticating gateway
func (c *Config) IsGatewayMode() bool {
	return c.AuthMode == "gateway"
}

// HistoryEnabled reports whether the persistent analysis history is configured
func (c *Config) HistoryEnabled() bool {
	return c.DatabaseURL != ""
}
