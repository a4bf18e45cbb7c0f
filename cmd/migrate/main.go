package main

// Run database migrations:
//   go run ./cmd/migrate

import (
	"context"
	"os"

	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.Configure(os.Stdout, cfg.LogLevel)
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Error("failed to connect database", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer sqlDB.Close()

	version, err := db.RunMigrations(ctx, sqlDB)
	if err != nil {
		telemetry.Error("failed to run migrations", map[string]any{"error": err.Error()})
		sqlDB.Close()
		os.Exit(1)
	}
	telemetry.Info("migrations applied", map[string]any{"version": version})
}
