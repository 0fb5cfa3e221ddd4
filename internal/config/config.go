// Package config loads application settings from the environment.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds the configuration for the application.
type Config struct {
	Port           int
	DatabaseURL    string
	AllowedOrigins []string
	LogLevel       string
}

// Load builds a Config from environment variables, applying defaults for
// anything unset. DATABASE_URL is optional: without it the server runs on
// the in-memory store.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", 8080)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:8081")
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Port:           v.GetInt("PORT"),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		AllowedOrigins: splitOrigins(v.GetString("ALLOWED_ORIGINS")),
		LogLevel:       v.GetString("LOG_LEVEL"),
	}
	return cfg, nil
}

// splitOrigins parses a comma-separated origin list, dropping empty entries.
func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
