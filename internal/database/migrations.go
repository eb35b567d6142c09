package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

//go:embed migrations/001_init_schema.sql
var migrationSQL string

// schemaMarkerTable is the table whose presence means the agent schema is in place.
const schemaMarkerTable = "agents"

// RunMigrations applies the agent schema unless the current schema already has it
func RunMigrations(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) error {
	logger.Info("running database migrations", zap.String("marker_table", schemaMarkerTable))

	var exists bool
	err := db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = current_schema() AND table_name = $1
		)
	`, schemaMarkerTable).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check if migrations needed: %w", err)
	}

	if exists {
		logger.Info("agent schema present, skipping migrations")
		return nil
	}

	if _, err := db.Exec(ctx, migrationSQL); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("database migrations completed")
	return nil
}
