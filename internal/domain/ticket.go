package domain

import (
	"fmt"
	"strings"
	"time"
)

// TicketStatus enumerates lifecycle states for tickets. The only
// transition is ACTIVE -> RESOLVED; RESOLVED is terminal.
type TicketStatus string

const (
	TicketStatusActive   TicketStatus = "ACTIVE"
	TicketStatusResolved TicketStatus = "RESOLVED"
)

// TicketCategory enumerates the booking phase a ticket relates to.
type TicketCategory string

const (
	CategoryPrebooking  TicketCategory = "PREBOOKING"
	CategoryPostbooking TicketCategory = "POSTBOOKING"
)

// ParseCategory interprets a caller-supplied category case-insensitively.
func ParseCategory(raw string) (TicketCategory, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(CategoryPrebooking):
		return CategoryPrebooking, nil
	case string(CategoryPostbooking):
		return CategoryPostbooking, nil
	default:
		return "", fmt.Errorf("invalid category %q: must be 'prebooking' or 'postbooking'", raw)
	}
}

// DefaultDescription is stored when a customer omits the description.
const DefaultDescription = "No description provided by the user."

// Ticket is the aggregate for support requests. The customer is set at
// creation and never reassigned; the agent is bound once by assignment.
type Ticket struct {
	ID          string
	CustomerID  string
	AgentID     *string
	Category    TicketCategory
	Status      TicketStatus
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ResolvedAt  *time.Time
}

// AssignedTo reports whether the given user is the ticket's agent.
func (t *Ticket) AssignedTo(userID string) bool {
	return t.AgentID != nil && *t.AgentID == userID
}
