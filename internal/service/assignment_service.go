package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/observability"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/errorutil"
)

// AssignmentService picks the agent for a newly created ticket using
// round-robin over the active agent pool. The cursor is persisted (see
// repository.AssignmentCursor) so the rotation is fair across restarts
// and across service instances.
type AssignmentService struct {
	users  repository.UserRepository
	cursor repository.AssignmentCursor
	logger *zap.Logger
}

// NewAssignmentService creates the service.
func NewAssignmentService(users repository.UserRepository, cursor repository.AssignmentCursor, logger *zap.Logger) *AssignmentService {
	return &AssignmentService{users: users, cursor: cursor, logger: logger}
}

// NextAgent selects exactly one agent. The agent pool is enumerated in
// ascending id order, so the selection sequence is deterministic given
// the cursor value.
func (s *AssignmentService) NextAgent(ctx context.Context) (*domain.User, error) {
	agents, err := s.users.ListByRole(ctx, domain.RoleAgent)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	if len(agents) == 0 {
		s.logger.Error("no available agents for ticket assignment")
		return nil, apperrors.NewNoAgentsAvailable()
	}

	seq, err := s.cursor.Next(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	agent := agents[int(seq%uint64(len(agents)))]
	observability.AssignmentsTotal.Inc()
	s.logger.Info("assigned agent", zap.String("agent_email", agent.Email))
	return &agent, nil
}
