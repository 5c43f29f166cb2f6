package service

import (
	"context"

	"deskbooker/internal/deskbookings/repository"
	apperrors "deskbooker/pkg/errors"
	"deskbooker/pkg/logger"
	"deskbooker/pkg/model"
)

type DeskBookingProcessor interface {
	BookDesk(ctx context.Context, request *model.DeskBookingRequest) (*model.DeskBookingResult, error)
}

type deskBookingProcessor struct {
	bookings repository.BookingStore
	desks    repository.AvailabilitySource
	log      *logger.Logger
}

func NewDeskBookingProcessor(
	bookings repository.BookingStore,
	desks repository.AvailabilitySource,
	log *logger.Logger,
) DeskBookingProcessor {
	return &deskBookingProcessor{
		bookings: bookings,
		desks:    desks,
		log:      log,
	}
}

// BookDesk reserves the first desk free on request.Date. "No desk available" is a
// result code, not an error. Errors from either collaborator are returned as they are;
// nothing is retried, and repeated calls are not deduplicated.
func (p *deskBookingProcessor) BookDesk(ctx context.Context, request *model.DeskBookingRequest) (*model.DeskBookingResult, error) {
	if request == nil {
		return nil, apperrors.InvalidArgument("request")
	}

	result := model.NewDeskBookingResult(request)

	availableDesks, err := p.desks.GetAvailableDesks(ctx, request.Date)
	if err != nil {
		p.log.Error("Failed to query available desks", "date", request.Date.Format(model.DateLayout), "error", err)
		return nil, err
	}

	if len(availableDesks) == 0 {
		result.Code = model.NoDeskAvailable
		p.log.Info("No desk available",
			"email", request.Email,
			"date", request.Date.Format(model.DateLayout),
		)
		return result, nil
	}

	desk := availableDesks[0]
	booking := model.NewDeskBooking(request, desk.ID)
	if err := p.bookings.Save(ctx, booking); err != nil {
		p.log.Error("Failed to save desk booking", "desk_id", desk.ID, "error", err)
		return nil, err
	}

	result.Code = model.Success
	p.log.Info("Desk booked successfully",
		"booking_id", booking.ID,
		"desk_id", desk.ID,
		"email", request.Email,
		"date", request.Date.Format(model.DateLayout),
	)
	return result, nil
}
