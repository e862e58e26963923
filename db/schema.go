package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
)

// schema is applied by Migrate. gen_random_uuid() is built in since PostgreSQL 13.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS merch_requests (
		id              VARCHAR PRIMARY KEY DEFAULT gen_random_uuid()::text,
		zip_code        VARCHAR(10) NOT NULL,
		deadline        TEXT,
		budget          TEXT,
		products        JSONB NOT NULL,
		colorways       TEXT[],
		custom_colors   JSONB,
		print_method    TEXT,
		print_locations TEXT[],
		files           JSONB,
		contact_name    TEXT NOT NULL,
		contact_email   TEXT NOT NULL,
		contact_phone   TEXT,
		company         TEXT,
		message         TEXT,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS merch_requests_created_at_idx ON merch_requests (created_at DESC)`,
}

// Migrate creates the tables the repositories need
func Migrate(ctx context.Context, conn *sql.DB) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start migration transaction: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration statement %d failed: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}

	log.Info().Int("statements", len(schema)).Msg("✓ Database schema up to date")
	return nil
}
