package config

import (
	"fmt"
	"os"
)

// DefaultServerURL is the chat server used when a client has not stored one.
// It matches the development default of the embedded chat service.
const DefaultServerURL = "https://localhost:3979"

type Config struct {
	AppEnv           string
	Port             string
	SessionSecret    string
	RedisURL         string
	DatabaseURL      string
	DefaultServerURL string
	RosterFile       string
	LogLevel         string
	LogFormat        string
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		SessionSecret:    getEnv("SESSION_SECRET", ""),
		RedisURL:         getEnv("REDIS_URL", ""),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DefaultServerURL: getEnv("DEFAULT_SERVER_URL", DefaultServerURL),
		RosterFile:       getEnv("ROSTER_FILE", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
	}

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}
	if len(cfg.SessionSecret) < 16 {
		return nil, fmt.Errorf("SESSION_SECRET must be at least 16 characters")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
