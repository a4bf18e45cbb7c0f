package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"

	"resume-builder/internal/shared/telemetry"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations applies the embedded users and resumes migrations and returns
// the schema version afterwards. A nil database is a no-op at version 0.
func RunMigrations(ctx context.Context, database *sql.DB) (int64, error) {
	if database == nil {
		return 0, nil
	}
	goose.SetBaseFS(migrationFiles)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect("postgres"); err != nil {
		return 0, err
	}
	if err := goose.UpContext(ctx, database, "migrations"); err != nil {
		return 0, err
	}
	version, err := goose.GetDBVersionContext(ctx, database)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

// gooseLogger routes goose progress lines into telemetry.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) {
	telemetry.Info("db.migrate", map[string]any{"detail": strings.TrimSpace(fmt.Sprintf(format, v...))})
}

// Fatalf is only reached on goose internal errors; it logs instead of exiting
// so the caller's error path decides.
func (gooseLogger) Fatalf(format string, v ...any) {
	telemetry.Error("db.migrate", map[string]any{"detail": strings.TrimSpace(fmt.Sprintf(format, v...))})
}
