package repository

import (
	"context"
	"time"

	"deskbooker/pkg/model"
)

// AvailabilitySource answers which desks are free on a date. Implementations return
// desks ordered by ascending ID; callers rely on that order to pick a desk.
type AvailabilitySource interface {
	GetAvailableDesks(ctx context.Context, date time.Time) ([]*model.Desk, error)
}

// BookingStore persists confirmed bookings. Save assigns ID and CreatedAt.
type BookingStore interface {
	Save(ctx context.Context, booking *model.DeskBooking) error
}

type DeskRepository interface {
	AvailabilitySource
	Upsert(ctx context.Context, desk *model.Desk) error
	Count(ctx context.Context) (int64, error)
}

type DeskBookingRepository interface {
	BookingStore
	FindByDate(ctx context.Context, date time.Time, limit int, offset int64) ([]*model.DeskBooking, error)
	CountByDate(ctx context.Context, date time.Time) (int64, error)
}
