package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	deskbookingserrors "deskbooker/internal/deskbookings/errors"
	"deskbooker/pkg/config"
	"deskbooker/pkg/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

type pgDeskBookingRepository struct {
	cfg  *config.Config
	pool *pgxpool.Pool
}

func NewPostgresDeskBookingRepository(cfg *config.Config) DeskBookingRepository {
	return &pgDeskBookingRepository{cfg: cfg, pool: cfg.Client.Postgres}
}

func (r *pgDeskBookingRepository) Save(ctx context.Context, booking *model.DeskBooking) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	const q = `
		INSERT INTO desk_bookings (id, first_name, last_name, email, date, desk_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	id := uuid.NewString()
	date := model.DateOnly(booking.Date)

	var createdAt time.Time
	err := r.pool.QueryRow(ctx, q,
		id, booking.FirstName, booking.LastName, booking.Email, date, booking.DeskID,
	).Scan(&createdAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: desk %d on %s", deskbookingserrors.ErrDeskAlreadyBooked, booking.DeskID, date.Format(model.DateLayout))
		}
		return fmt.Errorf("failed to save desk booking: %w", err)
	}

	booking.ID = id
	booking.CreatedAt = createdAt
	return nil
}

func (r *pgDeskBookingRepository) FindByDate(ctx context.Context, date time.Time, limit int, offset int64) ([]*model.DeskBooking, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	const q = `
		SELECT id::text, first_name, last_name, email, date, desk_id, created_at
		FROM desk_bookings
		WHERE date = $1
		ORDER BY desk_id
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, q, model.DateOnly(date), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to find desk bookings: %w", err)
	}

	bookings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*model.DeskBooking, error) {
		var b model.DeskBooking
		if err := row.Scan(&b.ID, &b.FirstName, &b.LastName, &b.Email, &b.Date, &b.DeskID, &b.CreatedAt); err != nil {
			return nil, err
		}
		return &b, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan desk bookings: %w", err)
	}
	return bookings, nil
}

func (r *pgDeskBookingRepository) CountByDate(ctx context.Context, date time.Time) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM desk_bookings WHERE date = $1`, model.DateOnly(date)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count desk bookings: %w", err)
	}
	return count, nil
}
