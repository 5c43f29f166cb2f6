package model

import "time"

const (
	EventDeskBookingCreated = "desk_booking.created"
	EventSchemaVersion      = "1"
)

type DeskBookingCreatedEvent struct {
	BookingID string    `json:"booking_id"`
	DeskID    int       `json:"desk_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

func NewDeskBookingCreatedEvent(booking *DeskBooking) DeskBookingCreatedEvent {
	return DeskBookingCreatedEvent{
		BookingID: booking.ID,
		DeskID:    booking.DeskID,
		FirstName: booking.FirstName,
		LastName:  booking.LastName,
		Email:     booking.Email,
		Date:      booking.Date.Format(DateLayout),
		CreatedAt: booking.CreatedAt,
	}
}
