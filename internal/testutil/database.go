// Package testutil provides test helpers for setting up migrated SQLite
// databases, creating fixtures, and making assertions.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"mywallet/internal/database"
	"mywallet/internal/logger"

	"gorm.io/gorm"
)

// SetupTestDB creates a fresh SQLite file in a temporary directory and runs
// the same migrations and repairs as the application.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	logger.Init("test", "")

	cfg := &database.Config{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		BusyTimeout: 5 * time.Second,
	}
	manager, err := database.NewManager(cfg)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := manager.Migrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return manager.DB()
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}
