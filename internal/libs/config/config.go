// Package config provides application configuration management from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Store backends
const (
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds application configuration
type Config struct {
	Backend     string
	MongoURI    string
	DatabaseURL string
	APIPort     string
	APIHost     string
	LogLevel    string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Backend:     strings.ToLower(getEnv("STORE_BACKEND", BackendMongo)),
		MongoURI:    getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		APIPort:     getEnv("API_PORT", "8080"),
		APIHost:     getEnv("API_HOST", "0.0.0.0"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	switch cfg.Backend {
	case BackendMongo, BackendMemory:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.Backend)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
