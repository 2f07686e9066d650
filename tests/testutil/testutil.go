package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/kendall-kelly/cookie-orders-api/config"
	"gorm.io/gorm"
)

// RequireTestEnvironment ensures that tests are running in the test environment.
// This prevents accidental execution of tests against production or development databases.
// It will fail the test immediately if GO_ENV is not set to "test".
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: Tests must run with GO_ENV=test to prevent data loss. Current GO_ENV=%q. Set GO_ENV=test before running tests.", env)
	}
}

// NewTestDB opens a migrated in-memory SQLite database with foreign keys enabled.
// The database is closed when the test finishes.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := config.DefaultDatabaseConfig()
	cfg.Driver = config.DriverSQLite
	cfg.SQLitePath = ":memory:"

	db, err := config.ConnectDatabase(cfg, nil)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := config.Migrate(context.Background(), db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if err := config.CloseDatabase(db); err != nil {
			t.Logf("warning: failed to close test database: %v", err)
		}
	})
	return db
}

// PrintEnvironmentInfo prints the current test environment configuration.
// Useful for debugging test environment issues.
func PrintEnvironmentInfo() {
	fmt.Printf("Test Environment Info:\n")
	fmt.Printf("  GO_ENV: %s\n", os.Getenv("GO_ENV"))
	fmt.Printf("  DATABASE_DRIVER: %s\n", os.Getenv("DATABASE_DRIVER"))
	fmt.Printf("  DATABASE_URL: %s\n", maskDatabaseURL(os.Getenv("DATABASE_URL")))
	fmt.Printf("  PORT: %s\n", os.Getenv("PORT"))
}

// maskDatabaseURL hides everything past the scheme and host prefix
func maskDatabaseURL(url string) string {
	if url == "" {
		return "(not set)"
	}
	if len(url) > 20 {
		return url[:20] + "..."
	}
	return url
}
