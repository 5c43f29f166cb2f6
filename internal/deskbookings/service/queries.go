package service

import (
	"context"
	"sync"
	"time"

	"deskbooker/internal/deskbookings/repository"
	"deskbooker/pkg/config"
	apperrors "deskbooker/pkg/errors"
	"deskbooker/pkg/logger"
	"deskbooker/pkg/model"
)

// DeskQueryService serves the read side: what is free on a date and who booked what.
type DeskQueryService interface {
	GetAvailableDesks(ctx context.Context, date time.Time) ([]*model.Desk, error)
	GetBookingsByDate(ctx context.Context, date time.Time, limit int, offset int64) ([]*model.DeskBooking, int64, error)
}

type deskQueryService struct {
	desks    repository.AvailabilitySource
	bookings repository.DeskBookingRepository
	log      *logger.Logger
}

func NewDeskQueryService(
	desks repository.AvailabilitySource,
	bookings repository.DeskBookingRepository,
	log *logger.Logger,
) DeskQueryService {
	return &deskQueryService{
		desks:    desks,
		bookings: bookings,
		log:      log,
	}
}

func (s *deskQueryService) GetAvailableDesks(ctx context.Context, date time.Time) ([]*model.Desk, error) {
	desks, err := s.desks.GetAvailableDesks(ctx, date)
	if err != nil {
		s.log.Error("Failed to query available desks", "date", date.Format(model.DateLayout), "error", err)
		return nil, apperrors.Internal("Failed to retrieve available desks", err)
	}
	if desks == nil {
		desks = []*model.Desk{}
	}
	return desks, nil
}

func (s *deskQueryService) GetBookingsByDate(ctx context.Context, date time.Time, limit int, offset int64) ([]*model.DeskBooking, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var bookings []*model.DeskBooking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.bookings.CountByDate(ctx, date)
		if errCount != nil {
			s.log.Error("Failed to count desk bookings", "date", date.Format(model.DateLayout), "error", errCount)
			errCount = apperrors.Internal("Failed to count desk bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.bookings.FindByDate(ctx, date, limit, offset)
		if errFind != nil {
			s.log.Error("Failed to list desk bookings",
				"date", date.Format(model.DateLayout),
				"limit", limit,
				"offset", offset,
				"error", errFind,
			)
			errFind = apperrors.Internal("Failed to retrieve desk bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	if bookings == nil {
		bookings = []*model.DeskBooking{}
	}

	return bookings, count, nil
}
