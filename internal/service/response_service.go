package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/observability"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/errorutil"
)

// ResponseService manages the threaded replies on a ticket and the
// agent-initiated status transition to RESOLVED.
type ResponseService struct {
	users      repository.UserRepository
	tickets    repository.TicketRepository
	responses  repository.ResponseRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ResponseDependencies bundles collaborators for the response service.
type ResponseDependencies struct {
	UserRepo     repository.UserRepository
	TicketRepo   repository.TicketRepository
	ResponseRepo repository.ResponseRepository
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewResponseService constructs the service.
func NewResponseService(deps ResponseDependencies) *ResponseService {
	return &ResponseService{
		users:      deps.UserRepo,
		tickets:    deps.TicketRepo,
		responses:  deps.ResponseRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// CreateReply appends a response to the ticket. Creation authorizes by
// the asserted role's relationship to the ticket, not authorship.
func (s *ResponseService) CreateReply(ctx context.Context, ticketID, userID, role, text string) (*ResponseSummary, error) {
	parsedRole, err := parseRole(role)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("reply must include a non-null response text", nil)
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, lookupError(err, "ticket", ticketID)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "user", userID)
	}
	if err := authorizeTicketRole(ticket, user, parsedRole); err != nil {
		return nil, err
	}

	response := &domain.Response{
		TicketID: ticket.ID,
		AuthorID: user.ID,
		Role:     parsedRole,
		Text:     text,
	}
	if err := s.responses.Create(ctx, response); err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	// Second write of the aggregate. When it fails the response is
	// already persisted; surface the failure and leave reconciliation
	// to the caller.
	if err := s.tickets.Touch(ctx, ticket.ID); err != nil {
		s.logger.Error("response saved but ticket update failed",
			zap.String("ticket_id", ticket.ID),
			zap.String("response_id", response.ID),
			zap.Error(err),
		)
		return nil, apperrors.NewInternalError(err)
	}

	observability.ResponsesTotal.WithLabelValues("created").Inc()
	s.logger.Info("ticket response created",
		zap.String("ticket_id", ticket.ID),
		zap.String("response_id", response.ID),
	)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventResponseAdded,
		TicketID: ticket.ID,
		Actor:    events.Actor{UserID: user.ID, Role: parsedRole},
		Payload:  events.ResponsePayload{ResponseID: response.ID, Role: parsedRole},
	})

	summary, err := newEmailResolver(s.users).responseSummary(ctx, ticket, response)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	return &summary, nil
}

// UpdateReply replaces the text of a response. Only the original author
// may edit, regardless of role.
func (s *ResponseService) UpdateReply(ctx context.Context, userID, ticketID, responseID, text string) (*ResponseSummary, error) {
	user, ticket, response, err := s.resolveMutation(ctx, userID, ticketID, responseID)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("update text cannot be empty", nil)
	}
	if err := authorizeAuthor(response, user); err != nil {
		return nil, err
	}

	response.Text = text
	if err := s.responses.Update(ctx, response); err != nil {
		return nil, apperrors.ToDomainError(err)
	}

	observability.ResponsesTotal.WithLabelValues("updated").Inc()
	s.publishEvent(ctx, events.Event{
		Type:     events.EventResponseUpdated,
		TicketID: ticket.ID,
		Actor:    events.Actor{UserID: user.ID, Role: user.Role},
		Payload:  events.ResponsePayload{ResponseID: response.ID},
	})

	summary, err := newEmailResolver(s.users).responseSummary(ctx, ticket, response)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	return &summary, nil
}

// DeleteReply removes a single response from the ticket thread. Only
// the original author may delete.
func (s *ResponseService) DeleteReply(ctx context.Context, userID, ticketID, responseID string) error {
	user, ticket, response, err := s.resolveMutation(ctx, userID, ticketID, responseID)
	if err != nil {
		return err
	}
	if err := authorizeAuthor(response, user); err != nil {
		return err
	}

	if err := s.responses.Delete(ctx, response.ID); err != nil {
		return apperrors.ToDomainError(err)
	}

	observability.ResponsesTotal.WithLabelValues("deleted").Inc()
	s.logger.Info("ticket response deleted",
		zap.String("ticket_id", ticket.ID),
		zap.String("response_id", response.ID),
	)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventResponseDeleted,
		TicketID: ticket.ID,
		Actor:    events.Actor{UserID: user.ID, Role: user.Role},
		Payload:  events.ResponsePayload{ResponseID: response.ID},
	})
	return nil
}

// Resolve transitions the ticket to RESOLVED. Only the assigned agent
// with the AGENT role on file may resolve. Returns false without error
// when the ticket does not exist; resolving an already resolved ticket
// is a no-op that keeps the original resolvedAt.
func (s *ResponseService) Resolve(ctx context.Context, userID, ticketID string) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false, lookupError(err, "user", userID)
	}
	if user.Role != domain.RoleAgent {
		return false, apperrors.NewForbidden("only agents can update the ticket status")
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, apperrors.ToDomainError(err)
	}
	if err := authorizeResolve(ticket, user); err != nil {
		return false, err
	}

	if ticket.Status == domain.TicketStatusResolved {
		// First resolution wins.
		return true, nil
	}

	now := time.Now()
	ticket.Status = domain.TicketStatusResolved
	ticket.ResolvedAt = &now
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return false, apperrors.ToDomainError(err)
	}

	observability.TicketsResolvedTotal.Inc()
	s.logger.Info("ticket resolved",
		zap.String("ticket_id", ticket.ID),
		zap.String("agent_id", user.ID),
	)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketResolved,
		TicketID: ticket.ID,
		Actor:    events.Actor{UserID: user.ID, Role: domain.RoleAgent},
		Payload:  events.TicketResolvedPayload{ResolvedAt: now},
	})
	return true, nil
}

// resolveMutation loads the user, ticket and response for an
// edit/delete, reporting a distinct not-found kind for each and
// requiring the response to belong to the addressed ticket.
func (s *ResponseService) resolveMutation(ctx context.Context, userID, ticketID, responseID string) (*domain.User, *domain.Ticket, *domain.Response, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, nil, lookupError(err, "user", userID)
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, nil, nil, lookupError(err, "ticket", ticketID)
	}
	response, err := s.responses.GetByID(ctx, responseID)
	if err != nil {
		return nil, nil, nil, lookupError(err, "response", responseID)
	}
	if response.TicketID != ticket.ID {
		return nil, nil, nil, apperrors.NewNotFound("response", map[string]any{
			"response_id": responseID,
			"ticket_id":   ticketID,
		})
	}
	return user, ticket, response, nil
}

func (s *ResponseService) publishEvent(ctx context.Context, event events.Event) {
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
