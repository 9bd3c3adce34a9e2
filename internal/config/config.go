package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port       string
	Env        string
	CORSOrigin string

	// Reports
	DashboardMonths int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port:       getEnv("PORT", "8080"),
		Env:        getEnv("ENV", "development"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),
	}

	if _, err := strconv.Atoi(config.Port); err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", config.Port, err)
	}

	monthsStr := getEnv("DASHBOARD_MONTHS", "6")
	months, err := strconv.Atoi(monthsStr)
	if err != nil || months < 1 || months > 60 {
		return nil, fmt.Errorf("invalid DASHBOARD_MONTHS %q: must be between 1 and 60", monthsStr)
	}
	config.DashboardMonths = months

	return config, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
