package db

import (
	"context"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestRunMigrationsNilDatabase(t *testing.T) {
	version, err := RunMigrations(context.Background(), nil)
	if err != nil || version != 0 {
		t.Fatalf("expected no-op, got version=%d err=%v", version, err)
	}
}

func TestRunMigrationsSurfacesDriverErrors(t *testing.T) {
	database, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer database.Close()

	version, err := RunMigrations(context.Background(), database)
	if err == nil || !strings.Contains(err.Error(), "goose up") {
		t.Fatalf("expected wrapped goose error, got %v", err)
	}
	if version != 0 {
		t.Fatalf("expected version 0, got %d", version)
	}
}

func TestMigrationsAreEmbedded(t *testing.T) {
	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) == 0 || !strings.HasSuffix(entries[0].Name(), ".sql") {
		t.Fatalf("expected embedded .sql migrations, got %v", entries)
	}
}
