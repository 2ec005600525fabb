// Package config loads runtime configuration from the environment.
package config

import (
	"os"
	"strconv"
)

// Config holds the runtime settings for the server and the editing defaults
// seeded into new invoices.
type Config struct {
	Port            int
	DBPath          string
	DefaultCurrency string
	DefaultTaxRate  float64
}

// Load reads configuration from the environment, falling back to defaults
// suitable for local use.
func Load() Config {
	return Config{
		Port:            getEnvInt("PORT", 8080),
		DBPath:          getEnv("DB_PATH", "./data/invoices.db"),
		DefaultCurrency: getEnv("DEFAULT_CURRENCY", "$"),
		DefaultTaxRate:  getEnvFloat("DEFAULT_TAX_RATE", 5),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}
