package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	HTTP     HTTPConfig
	Auth     AuthConfig
	Events   EventsConfig
	LogLevel string // "debug", "info", "warn", "error"
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string // SQLite database file path
}

// HTTPConfig contains HTTP server settings.
type HTTPConfig struct {
	Address string // listen address (e.g., ":8080")
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret string // JWT signing secret
}

// EventsConfig contains Kafka settings for order event publishing.
// An empty broker list disables Kafka; events still reach in-process
// subscribers.
type EventsConfig struct {
	Brokers []string // Kafka broker addresses
	Topic   string   // topic for order lifecycle events
}

// Load loads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := loadCommon()
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set; required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but uses a safe default for JWT_SECRET in
// development. WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	cfg := loadCommon()
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "dev-secret-change-me"
	}
	return cfg, nil
}

func loadCommon() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "pos.db"),
		},
		HTTP: HTTPConfig{
			Address: getEnv("HTTP_ADDRESS", ":8080"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Events: EventsConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_TOPIC", "pos.order.events"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
