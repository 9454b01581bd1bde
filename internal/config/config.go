package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string

	// Database. postgres:// URLs use the Postgres driver; sqlite: and file:
	// URLs open an embedded SQLite database.
	DatabaseURL string

	// JWT
	JWTSecret string

	// Storage
	StoragePath string

	// Background Workers
	WorkerCount       int
	ExportConcurrency int
	// SummaryExportInterval schedules a recurring all-farmer CSV export; zero disables it
	SummaryExportInterval time.Duration

	// CORS
	AllowedOrigins []string

	// Sentry
	SentryDSN string

	// Remote analytics provider. An empty URL disables the remote path.
	RemoteAnalyticsURL     string
	RemoteAnalyticsAPIKey  string
	RemoteAnalyticsTimeout time.Duration

	// RateTablePath optionally points at a yaml, xlsx or csv file of crop rate overrides
	RateTablePath string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                   getEnv("PORT", "8080"),
		Environment:            getEnv("ENVIRONMENT", "development"),
		DatabaseURL:            getEnv("DATABASE_URL", ""),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		StoragePath:            getEnv("STORAGE_PATH", "./storage"),
		WorkerCount:            getEnvAsInt("WORKER_COUNT", 5),
		ExportConcurrency:      getEnvAsInt("EXPORT_CONCURRENCY", 4),
		SummaryExportInterval:  getEnvAsDuration("SUMMARY_EXPORT_INTERVAL", 0),
		AllowedOrigins:         getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		SentryDSN:              getEnv("SENTRY_DSN", ""),
		RemoteAnalyticsURL:     getEnv("REMOTE_ANALYTICS_URL", ""),
		RemoteAnalyticsAPIKey:  getEnv("REMOTE_ANALYTICS_API_KEY", ""),
		RemoteAnalyticsTimeout: getEnvAsDuration("REMOTE_ANALYTICS_TIMEOUT", 5*time.Second),
		RateTablePath:          getEnv("RATE_TABLE_PATH", ""),
	}

	// Validate required configuration
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" && cfg.Environment == "production" {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}

	// Set default JWT secret for development
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-in-production"
	}

	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}
	if cfg.ExportConcurrency < 1 {
		cfg.ExportConcurrency = 1
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration reads an environment variable as a Go duration ("5s", "1h").
// A bare integer is taken as seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := strings.TrimSpace(getEnv(key, ""))
	if valueStr == "" {
		return defaultValue
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil || value < 0 {
		return defaultValue
	}
	return value
}

// getEnvAsSlice reads an environment variable as comma-separated slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
