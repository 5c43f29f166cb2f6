package repository

const (
	DesksCollection        = "Desks"
	DeskBookingsCollection = "Desk_bookings"
)
