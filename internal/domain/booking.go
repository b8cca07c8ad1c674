package domain

import "time"

// Booking ties a reservation reference to the user who made it. Tickets
// in the POSTBOOKING category relate to one of these.
type Booking struct {
	ID        string
	UserID    string
	Reference string
	CreatedAt time.Time
}
