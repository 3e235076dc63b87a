package main

// Run database migrations for the postgres library store:
//   go run ./cmd/migrate

import (
	"context"
	"os"

	"github.com/nessydroid1192/may-tejiarte/internal/shared/config"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/storage/db"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.Configure(cfg.Env)
	defer telemetry.Sync()
	ctx := context.Background()

	if cfg.DatabaseURL == "" {
		telemetry.Error("migrate.missing_database_url", nil)
		os.Exit(1)
	}

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"error": err})
		os.Exit(1)
	}
	defer sqlDB.Close()

	version, err := db.RunMigrations(ctx, sqlDB)
	if err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err})
		os.Exit(1)
	}
	telemetry.Info("migrate.done", map[string]any{"version": version})
}
