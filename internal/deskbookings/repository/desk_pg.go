package repository

import (
	"context"
	"fmt"
	"time"

	"deskbooker/pkg/config"
	"deskbooker/pkg/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgDeskRepository struct {
	cfg  *config.Config
	pool *pgxpool.Pool
}

func NewPostgresDeskRepository(cfg *config.Config) DeskRepository {
	return &pgDeskRepository{cfg: cfg, pool: cfg.Client.Postgres}
}

// GetAvailableDesks returns the desks with no booking on date, ordered by ascending id.
func (r *pgDeskRepository) GetAvailableDesks(ctx context.Context, date time.Time) ([]*model.Desk, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	const q = `
		SELECT d.id, d.label
		FROM desks d
		WHERE NOT EXISTS (
			SELECT 1 FROM desk_bookings b
			WHERE b.desk_id = d.id AND b.date = $1
		)
		ORDER BY d.id`

	rows, err := r.pool.Query(ctx, q, model.DateOnly(date))
	if err != nil {
		return nil, fmt.Errorf("failed to query available desks: %w", err)
	}

	desks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*model.Desk, error) {
		var d model.Desk
		if err := row.Scan(&d.ID, &d.Label); err != nil {
			return nil, err
		}
		return &d, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan desks: %w", err)
	}
	return desks, nil
}

func (r *pgDeskRepository) Upsert(ctx context.Context, desk *model.Desk) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	const q = `
		INSERT INTO desks (id, label) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET label = EXCLUDED.label`

	if _, err := r.pool.Exec(ctx, q, desk.ID, desk.Label); err != nil {
		return fmt.Errorf("failed to upsert desk %d: %w", desk.ID, err)
	}
	return nil
}

func (r *pgDeskRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM desks`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count desks: %w", err)
	}
	return count, nil
}
