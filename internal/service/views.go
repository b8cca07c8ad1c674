package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/repository"
)

// View shapes returned to the transport layer.

// TicketSummary is the listing shape for a ticket.
type TicketSummary struct {
	ID            string
	Description   string
	Status        domain.TicketStatus
	Category      domain.TicketCategory
	CreatedAt     time.Time
	UpdatedAt     time.Time
	AgentEmail    string
	CustomerEmail string
}

// TicketDetail carries the summary fields plus one page of responses.
type TicketDetail struct {
	TicketSummary
	Page           int
	Size           int
	TotalResponses int
	Responses      []ResponseSummary
}

// ResponseSummary is the transport shape of a single response. The
// counterpart email is the ticket's agent email when an agent is
// assigned, otherwise the customer email.
type ResponseSummary struct {
	ID               string
	TicketID         string
	Text             string
	Role             domain.Role
	AuthorEmail      string
	CounterpartEmail string
	CreatedAt        time.Time
}

// TicketPage is one page of a filtered ticket listing.
type TicketPage struct {
	Items      []TicketSummary
	Page       int
	Size       int
	TotalItems int
	TotalPages int
}

// emailResolver memoizes user email lookups within one call so listing
// a page of tickets does not refetch the same participants.
type emailResolver struct {
	users repository.UserRepository
	cache map[string]string
}

func newEmailResolver(users repository.UserRepository) *emailResolver {
	return &emailResolver{users: users, cache: make(map[string]string)}
}

// email resolves a user id to its email. A dangling reference resolves
// to the empty string rather than failing the whole view.
func (r *emailResolver) email(ctx context.Context, id string) (string, error) {
	if email, ok := r.cache[id]; ok {
		return email, nil
	}
	user, err := r.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.cache[id] = ""
			return "", nil
		}
		return "", err
	}
	r.cache[id] = user.Email
	return user.Email, nil
}

func (r *emailResolver) ticketEmails(ctx context.Context, ticket *domain.Ticket) (customer, agent string, err error) {
	customer, err = r.email(ctx, ticket.CustomerID)
	if err != nil {
		return "", "", err
	}
	if ticket.AgentID != nil {
		agent, err = r.email(ctx, *ticket.AgentID)
		if err != nil {
			return "", "", err
		}
	}
	return customer, agent, nil
}

// counterpart returns the agent email when present, else the customer
// email.
func (r *emailResolver) counterpart(ctx context.Context, ticket *domain.Ticket) (string, error) {
	customer, agent, err := r.ticketEmails(ctx, ticket)
	if err != nil {
		return "", err
	}
	if agent != "" {
		return agent, nil
	}
	return customer, nil
}

func (r *emailResolver) ticketSummary(ctx context.Context, ticket *domain.Ticket) (TicketSummary, error) {
	customer, agent, err := r.ticketEmails(ctx, ticket)
	if err != nil {
		return TicketSummary{}, err
	}
	return TicketSummary{
		ID:            ticket.ID,
		Description:   ticket.Description,
		Status:        ticket.Status,
		Category:      ticket.Category,
		CreatedAt:     ticket.CreatedAt,
		UpdatedAt:     ticket.UpdatedAt,
		AgentEmail:    agent,
		CustomerEmail: customer,
	}, nil
}

func (r *emailResolver) responseSummary(ctx context.Context, ticket *domain.Ticket, response *domain.Response) (ResponseSummary, error) {
	author, err := r.email(ctx, response.AuthorID)
	if err != nil {
		return ResponseSummary{}, err
	}
	counterpart, err := r.counterpart(ctx, ticket)
	if err != nil {
		return ResponseSummary{}, err
	}
	return ResponseSummary{
		ID:               response.ID,
		TicketID:         ticket.ID,
		Text:             response.Text,
		Role:             response.Role,
		AuthorEmail:      author,
		CounterpartEmail: counterpart,
		CreatedAt:        response.CreatedAt,
	}, nil
}
