package service

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/support-desk/internal/domain"
	apperrors "github.com/spec-kit/support-desk/pkg/errorutil"
)

// Ticket-scoped authorization rules. Read access and response creation
// authorize by the user's relationship to the ticket; response
// edit/delete authorize by authorship alone; resolution requires the
// stored AGENT role and the assignment.

// canReadTicket reports whether the user may view the ticket: the
// owning customer or the assigned agent.
func canReadTicket(ticket *domain.Ticket, user *domain.User) bool {
	return ticket.CustomerID == user.ID || ticket.AssignedTo(user.ID)
}

// authorizeTicketRole checks the asserted role against the user's
// actual relationship to the ticket.
func authorizeTicketRole(ticket *domain.Ticket, user *domain.User, role domain.Role) error {
	switch role {
	case domain.RoleAgent:
		if ticket.AssignedTo(user.ID) {
			return nil
		}
	case domain.RoleCustomer:
		if ticket.CustomerID == user.ID {
			return nil
		}
	}
	return apperrors.NewForbidden("user is not authorized to perform this action on the ticket")
}

// authorizeAuthor permits response mutation only to the original
// author, regardless of role.
func authorizeAuthor(response *domain.Response, user *domain.User) error {
	if response.AuthorID != user.ID {
		return apperrors.NewForbidden("only the author may modify this response")
	}
	return nil
}

// authorizeResolve permits resolution only to the assigned agent with
// the AGENT role on file.
func authorizeResolve(ticket *domain.Ticket, user *domain.User) error {
	if user.Role != domain.RoleAgent {
		return apperrors.NewForbidden("only agents can update the ticket status")
	}
	if !ticket.AssignedTo(user.ID) {
		return apperrors.NewForbidden("user is not the assigned agent for this ticket")
	}
	return nil
}

// parseRole wraps domain role parsing into the validation error kind.
func parseRole(raw string) (domain.Role, error) {
	role, err := domain.ParseRole(raw)
	if err != nil {
		return "", apperrors.NewValidationError(err.Error(), nil)
	}
	return role, nil
}

// lookupError translates a repository miss into the NOT_FOUND kind for
// the named resource; any other failure becomes a domain error. Lookups
// are never reported as authorization failures, or vice versa.
func lookupError(err error, resource string, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, map[string]any{resource + "_id": id})
	}
	return apperrors.ToDomainError(err)
}

func forbiddenView(userID, ticketID string) error {
	return apperrors.NewForbidden(fmt.Sprintf("user %s is not authorized to view ticket %s", userID, ticketID))
}
