package dto

import (
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
)

// CreateReplyRequest payload.
type CreateReplyRequest struct {
	ResponseText string `json:"response_text"`
}

// UpdateReplyRequest payload.
type UpdateReplyRequest struct {
	ResponseText string `json:"response_text"`
}

// ResponseSummary represents a single thread reply.
type ResponseSummary struct {
	ID               string      `json:"id"`
	TicketID         string      `json:"ticket_id"`
	ResponseText     string      `json:"response_text"`
	Role             domain.Role `json:"role"`
	AuthorEmail      string      `json:"author_email"`
	CounterpartEmail string      `json:"counterpart_email"`
	CreatedAt        time.Time   `json:"created_at"`
}
