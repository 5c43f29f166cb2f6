package postgres

import (
	"context"
	"fmt"

	"deskbooker/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

type migration struct {
	Name string
	SQL  string
}

// Statements are idempotent so the job can run on every deploy.
var migrations = []migration{
	{
		Name: "create_desks",
		SQL: `CREATE TABLE IF NOT EXISTS desks (
	id    INTEGER PRIMARY KEY CHECK (id > 0),
	label TEXT NOT NULL DEFAULT ''
)`,
	},
	{
		Name: "create_desk_bookings",
		SQL: `CREATE TABLE IF NOT EXISTS desk_bookings (
	id         UUID PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL,
	email      TEXT NOT NULL,
	date       DATE NOT NULL,
	desk_id    INTEGER NOT NULL REFERENCES desks (id),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT desk_bookings_desk_date_unique UNIQUE (desk_id, date)
)`,
	},
	{
		Name: "index_desk_bookings_date",
		SQL:  `CREATE INDEX IF NOT EXISTS desk_bookings_date_idx ON desk_bookings (date, desk_id)`,
	},
	{
		Name: "index_desk_bookings_email",
		SQL:  `CREATE INDEX IF NOT EXISTS desk_bookings_email_idx ON desk_bookings (email, date)`,
	},
}

// RunMigration applies every statement in one transaction.
func RunMigration(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	log.Info("Running Postgres migrations", "count", len(migrations))

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin migration transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, m := range migrations {
		if _, err := tx.Exec(ctx, m.SQL); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.Name, err)
		}
		log.Info("Applied migration", "migration", m.Name)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit migrations: %w", err)
	}

	log.Info("All Postgres migrations applied")
	return nil
}
