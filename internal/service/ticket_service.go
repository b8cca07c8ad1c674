package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/observability"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/errorutil"
)

// TicketService coordinates ticket creation, lookup and the
// filtering/counting used by listing endpoints.
type TicketService struct {
	users      repository.UserRepository
	tickets    repository.TicketRepository
	responses  repository.ResponseRepository
	assigner   *AssignmentService
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	UserRepo     repository.UserRepository
	TicketRepo   repository.TicketRepository
	ResponseRepo repository.ResponseRepository
	Assigner     *AssignmentService
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		users:      deps.UserRepo,
		tickets:    deps.TicketRepo,
		responses:  deps.ResponseRepo,
		assigner:   deps.Assigner,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// CreateTicket opens a ticket for a customer and binds an agent via
// round-robin assignment.
func (s *TicketService) CreateTicket(ctx context.Context, userID, category, description string) (*TicketSummary, error) {
	customer, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "user", userID)
	}
	if customer.Role != domain.RoleCustomer {
		return nil, apperrors.NewValidationError("only customers can create tickets", nil)
	}

	cat, err := domain.ParseCategory(category)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}

	description = strings.TrimSpace(description)
	if description == "" {
		description = domain.DefaultDescription
	}

	agent, err := s.assigner.NextAgent(ctx)
	if err != nil {
		return nil, err
	}

	agentID := agent.ID
	ticket := &domain.Ticket{
		CustomerID:  customer.ID,
		AgentID:     &agentID,
		Category:    cat,
		Status:      domain.TicketStatusActive,
		Description: description,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.ToDomainError(err)
	}

	observability.TicketsCreatedTotal.WithLabelValues(string(cat)).Inc()
	s.logger.Info("ticket created",
		zap.String("ticket_id", ticket.ID),
		zap.String("customer_id", customer.ID),
		zap.String("agent_id", agent.ID),
	)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    events.Actor{UserID: customer.ID, Role: domain.RoleCustomer},
		Payload: events.TicketCreatedPayload{
			Category:   ticket.Category,
			AgentID:    agent.ID,
			AgentEmail: agent.Email,
		},
	})
	return &TicketSummary{
		ID:            ticket.ID,
		Description:   ticket.Description,
		Status:        ticket.Status,
		Category:      ticket.Category,
		CreatedAt:     ticket.CreatedAt,
		UpdatedAt:     ticket.UpdatedAt,
		AgentEmail:    agent.Email,
		CustomerEmail: customer.Email,
	}, nil
}

// SearchTicket returns the ticket detail with one page of responses.
// Out-of-range pagination yields an empty page, not an error.
func (s *TicketService) SearchTicket(ctx context.Context, userID, ticketID string, page, size int) (*TicketDetail, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "user", userID)
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, lookupError(err, "ticket", ticketID)
	}
	if !canReadTicket(ticket, user) {
		return nil, forbiddenView(userID, ticketID)
	}

	responses, err := s.responses.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	total := len(responses)

	var window []domain.Response
	if page >= 0 && size > 0 && page*size < total {
		start := page * size
		end := start + size
		if end > total {
			end = total
		}
		window = responses[start:end]
	}

	resolver := newEmailResolver(s.users)
	summary, err := resolver.ticketSummary(ctx, ticket)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	items := make([]ResponseSummary, 0, len(window))
	for i := range window {
		item, err := resolver.responseSummary(ctx, ticket, &window[i])
		if err != nil {
			return nil, apperrors.ToDomainError(err)
		}
		items = append(items, item)
	}

	return &TicketDetail{
		TicketSummary:  summary,
		Page:           page,
		Size:           size,
		TotalResponses: total,
		Responses:      items,
	}, nil
}

// TicketResponses returns every response on the ticket in thread order.
// A ticket without responses yields an empty slice.
func (s *TicketService) TicketResponses(ctx context.Context, userID, ticketID string) ([]ResponseSummary, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "user", userID)
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, lookupError(err, "ticket", ticketID)
	}
	if !canReadTicket(ticket, user) {
		return nil, forbiddenView(userID, ticketID)
	}

	responses, err := s.responses.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}

	resolver := newEmailResolver(s.users)
	items := make([]ResponseSummary, 0, len(responses))
	for i := range responses {
		item, err := resolver.responseSummary(ctx, ticket, &responses[i])
		if err != nil {
			return nil, apperrors.ToDomainError(err)
		}
		items = append(items, item)
	}
	return items, nil
}

// ListTickets filters the user's tickets by status and category ("ALL"
// matches everything, comparisons are case-insensitive) and paginates
// the result.
func (s *TicketService) ListTickets(ctx context.Context, userID, role, status, category string, page, size int) (*TicketPage, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "user", userID)
	}
	parsedRole, err := parseRole(role)
	if err != nil {
		return nil, err
	}

	tickets, err := s.ticketsForRole(ctx, user.ID, parsedRole)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}

	filtered := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if matchesStatus(&ticket, status) && matchesCategory(&ticket, category) {
			filtered = append(filtered, ticket)
		}
	}

	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}

	totalItems := len(filtered)
	totalPages := (totalItems + size - 1) / size

	var window []domain.Ticket
	if start := page * size; start < totalItems {
		end := start + size
		if end > totalItems {
			end = totalItems
		}
		window = filtered[start:end]
	}

	resolver := newEmailResolver(s.users)
	items := make([]TicketSummary, 0, len(window))
	for i := range window {
		summary, err := resolver.ticketSummary(ctx, &window[i])
		if err != nil {
			return nil, apperrors.ToDomainError(err)
		}
		items = append(items, summary)
	}

	return &TicketPage{
		Items:      items,
		Page:       page,
		Size:       size,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}, nil
}

// CountActiveResolved produces the aggregate count map keyed
// Active_tickets / Resolved_tickets, optionally narrowed by category.
func (s *TicketService) CountActiveResolved(ctx context.Context, userID, role, category string) (map[string]int64, error) {
	parsedRole, err := parseRole(role)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "user", userID)
	}

	tickets, err := s.ticketsForRole(ctx, user.ID, parsedRole)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}

	var active, resolved int64
	for _, ticket := range tickets {
		if !matchesCategory(&ticket, category) {
			continue
		}
		switch ticket.Status {
		case domain.TicketStatusActive:
			active++
		case domain.TicketStatusResolved:
			resolved++
		}
	}

	return map[string]int64{
		"Active_tickets":   active,
		"Resolved_tickets": resolved,
	}, nil
}

func (s *TicketService) ticketsForRole(ctx context.Context, userID string, role domain.Role) ([]domain.Ticket, error) {
	if role == domain.RoleAgent {
		return s.tickets.ListByAgent(ctx, userID)
	}
	return s.tickets.ListByCustomer(ctx, userID)
}

func matchesStatus(ticket *domain.Ticket, status string) bool {
	return strings.EqualFold(status, "ALL") || strings.EqualFold(status, string(ticket.Status))
}

func matchesCategory(ticket *domain.Ticket, category string) bool {
	return strings.EqualFold(category, "ALL") || strings.EqualFold(category, string(ticket.Category))
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
