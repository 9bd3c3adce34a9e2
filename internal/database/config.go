package database

import (
	"fmt"
	"os"
	"time"
)

// Config holds database configuration
type Config struct {
	// Path is the SQLite data file. The parent directory is created on open.
	Path        string
	BusyTimeout time.Duration
}

// NewConfig creates a new database configuration from the environment.
// Call config.Load first so values from .env are visible here.
func NewConfig() (*Config, error) {
	timeoutStr := getEnv("DB_BUSY_TIMEOUT", "5s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout < 0 {
		return nil, fmt.Errorf("invalid DB_BUSY_TIMEOUT %q", timeoutStr)
	}

	path := getEnv("DB_PATH", "./data/mywallet.db")
	if path == "" {
		return nil, fmt.Errorf("DB_PATH must not be empty")
	}

	return &Config{
		Path:        path,
		BusyTimeout: timeout,
	}, nil
}

// DSN returns the modernc.org/sqlite connection string with the pragmas
// every connection needs.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		c.Path, c.BusyTimeout.Milliseconds())
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
