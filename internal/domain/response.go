package domain

import "time"

// Response is a single threaded reply on a ticket. Role records the
// relationship the author acted under when posting: AGENT responses are
// written by the ticket's assigned agent, CUSTOMER responses by the
// owning customer.
type Response struct {
	ID        string
	TicketID  string
	AuthorID  string
	Role      Role
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
