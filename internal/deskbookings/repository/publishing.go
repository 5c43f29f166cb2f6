package repository

import (
	"context"
	"fmt"

	"deskbooker/pkg/kafka"
	"deskbooker/pkg/logger"
	"deskbooker/pkg/middleware"
	"deskbooker/pkg/model"
)

const eventSource = "deskbookings"

// EventPublisher is satisfied by *kafka.Producer.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type eventPublishingBookingStore struct {
	store     BookingStore
	publisher EventPublisher
	log       *logger.Logger
}

// NewEventPublishingBookingStore announces every saved booking as a desk_booking.created
// event. A failed publish is logged only: the booking is already stored.
func NewEventPublishingBookingStore(store BookingStore, publisher EventPublisher, log *logger.Logger) BookingStore {
	return &eventPublishingBookingStore{
		store:     store,
		publisher: publisher,
		log:       log,
	}
}

func (s *eventPublishingBookingStore) Save(ctx context.Context, booking *model.DeskBooking) error {
	if err := s.store.Save(ctx, booking); err != nil {
		return err
	}

	msg := kafka.NewMessage().
		WithKey(bookingEventKey(booking)).
		WithValue(model.NewDeskBookingCreatedEvent(booking)).
		WithEventType(model.EventDeskBookingCreated).
		WithSchemaVersion(model.EventSchemaVersion).
		WithSource(eventSource).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.log.Error("Failed to publish desk booking event",
			"booking_id", booking.ID,
			"desk_id", booking.DeskID,
			"event_id", msg.GetEventID(),
			"error", err,
		)
	}

	return nil
}

// bookingEventKey keeps all events for one desk and day on the same partition.
func bookingEventKey(booking *model.DeskBooking) string {
	return fmt.Sprintf("%d:%s", booking.DeskID, booking.Date.Format(model.DateLayout))
}
