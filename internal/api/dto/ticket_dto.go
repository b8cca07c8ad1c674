package dto

import (
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	UserID      string `json:"user_id"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// TicketSummary response.
type TicketSummary struct {
	ID            string                `json:"id"`
	Description   string                `json:"description"`
	Status        domain.TicketStatus   `json:"status"`
	Category      domain.TicketCategory `json:"category"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	AgentEmail    string                `json:"agent_email"`
	CustomerEmail string                `json:"customer_email"`
}

// TicketDetailResponse provides full ticket info with one page of
// responses.
type TicketDetailResponse struct {
	TicketSummary
	Page           int               `json:"page"`
	Size           int               `json:"size"`
	TotalResponses int               `json:"total_responses"`
	Responses      []ResponseSummary `json:"responses"`
}

// TicketListResponse is one page of a filtered listing.
type TicketListResponse struct {
	Items      []TicketSummary `json:"items"`
	Page       int             `json:"page"`
	Size       int             `json:"size"`
	TotalItems int             `json:"total_items"`
	TotalPages int             `json:"total_pages"`
}
