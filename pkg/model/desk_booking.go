package model

import "time"

// DateLayout is the wire format of a booking date.
const DateLayout = time.DateOnly

type DeskBookingResultCode string

const (
	Unassigned      DeskBookingResultCode = ""
	Success         DeskBookingResultCode = "success"
	NoDeskAvailable DeskBookingResultCode = "no_desk_available"
)

// DeskBookingRequest is what a requester asks for. It is never modified once built.
type DeskBookingRequest struct {
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Date      time.Time `json:"date"`
}

type DeskBooking struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	FirstName string    `json:"first_name" bson:"first_name"`
	LastName  string    `json:"last_name" bson:"last_name"`
	Email     string    `json:"email" bson:"email"`
	Date      time.Time `json:"date" bson:"date"`
	DeskID    int       `json:"desk_id" bson:"desk_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type DeskBookingResult struct {
	FirstName string                `json:"first_name"`
	LastName  string                `json:"last_name"`
	Email     string                `json:"email"`
	Date      time.Time             `json:"date"`
	Code      DeskBookingResultCode `json:"code"`
}

// NewDeskBookingResult copies the requester identity into a result with no code yet.
func NewDeskBookingResult(req *DeskBookingRequest) *DeskBookingResult {
	return &DeskBookingResult{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Date:      req.Date,
	}
}

// NewDeskBooking copies the requester identity into a booking for the given desk.
func NewDeskBooking(req *DeskBookingRequest, deskID int) *DeskBooking {
	return &DeskBooking{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Date:      req.Date,
		DeskID:    deskID,
	}
}

// DateOnly truncates t to midnight UTC of the calendar day it names in its own location.
// Stores key bookings by this value so "2020-09-05" matches regardless of the clock part.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DeskBookingInput is the wire form of a booking request, with the date still a string.
type DeskBookingInput struct {
	FirstName string `json:"first_name" validate:"required,max=100,person_name"`
	LastName  string `json:"last_name" validate:"required,max=100,person_name"`
	Email     string `json:"email" validate:"required,max=254,email"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
}

// ToRequest assumes the input has passed validation.
func (in *DeskBookingInput) ToRequest() (*DeskBookingRequest, error) {
	date, err := ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	return &DeskBookingRequest{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Date:      date,
	}, nil
}
