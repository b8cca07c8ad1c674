package events

import (
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated   EventType = "ticket_created"
	EventTicketAssigned  EventType = "ticket_assigned"
	EventTicketResolved  EventType = "ticket_resolved"
	EventResponseAdded   EventType = "response_added"
	EventResponseUpdated EventType = "response_updated"
	EventResponseDeleted EventType = "response_deleted"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Category   domain.TicketCategory `json:"category"`
	AgentID    string                `json:"agent_id"`
	AgentEmail string                `json:"agent_email"`
}

// TicketResolvedPayload payload.
type TicketResolvedPayload struct {
	ResolvedAt time.Time `json:"resolved_at"`
}

// ResponsePayload describes a response mutation.
type ResponsePayload struct {
	ResponseID string      `json:"response_id"`
	Role       domain.Role `json:"role,omitempty"`
}
