package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Version is reported by the health endpoint and the healthcheck binary
const Version = "1.0.0"

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string
	Env  string // development or production

	// Auth configuration
	JWTSecret string

	// CORS configuration: "*" or comma-separated origin allow-list
	CORSOrigin string

	// Database configuration
	DBType            string // sqlite, mysql, postgres, sqlserver
	DatabaseURL       string // file path for sqlite, database name otherwise
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		Env:               getEnv("NODE_ENV", "development"),
		JWTSecret:         getEnv("JWT_SECRET", "fitsync-dev-secret"),
		CORSOrigin:        getEnv("CORS_ORIGIN", "*"),
		DBType:            getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:       getEnv("DATABASE_URL", "./fitsync.db"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}

	if cfg.Env != "development" && cfg.Env != "production" {
		return nil, fmt.Errorf("NODE_ENV must be development or production, got %q", cfg.Env)
	}

	// The signing key ships with a development default, never a production one
	if cfg.IsProduction() && os.Getenv("JWT_SECRET") == "" {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode,
// which suppresses error detail text in responses
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AllowedOrigins splits the CORS_ORIGIN allow-list
func (c *Config) AllowedOrigins() []string {
	parts := strings.Split(c.CORSOrigin, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
