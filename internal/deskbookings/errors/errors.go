package errors

import "errors"

// ErrDeskAlreadyBooked is returned by a store when the (desk, date) pair is already taken.
var ErrDeskAlreadyBooked = errors.New("desk is already booked for this date")
