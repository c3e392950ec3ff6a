package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pkordes/travel-calendar/migrations"
)

// TestMain applies pending migrations once for the whole test binary so the
// Postgres tests can assume kv_entries exists. Without TEST_DATABASE_URL the
// Postgres tests skip themselves and only the file and memory tests run.
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		os.Exit(m.Run())
	}

	if _, err := migrations.Up(context.Background(), dsn); err != nil {
		log.Fatalf("TestMain: run migrations: %v", err)
	}

	os.Exit(m.Run())
}
