package relationships

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/peopledir/peopledir-api/internal/domain/user"
)

// Service handles block relationship business logic
type Service struct {
	repo  Repository
	users user.Repository
}

// NewService creates relationships service
func NewService(repo Repository, users user.Repository) *Service {
	return &Service{repo: repo, users: users}
}

// Block creates a directed edge from actor to target and returns the target's
// record. Self-blocks and duplicate edges are rejected; a race between two
// concurrent blocks for the same pair is settled by the store's uniqueness
// constraint.
func (s *Service) Block(ctx context.Context, actorID, targetID uuid.UUID) (*user.User, error) {
	if actorID == targetID {
		return nil, ErrCannotBlockSelf
	}

	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, user.ErrUserNotFound
	}

	block := &BlockRelation{
		ID:            uuid.New(),
		BlockerUserID: actorID,
		BlockedUserID: targetID,
		CreatedAt:     time.Now(),
	}
	if err := s.repo.CreateBlock(ctx, block); err != nil {
		return nil, err
	}

	return target, nil
}

// Unblock removes the (actor, target) edge. Idempotent: succeeds when no such
// edge exists.
func (s *Service) Unblock(ctx context.Context, actorID, targetID uuid.UUID) error {
	return s.repo.DeleteBlock(ctx, actorID, targetID)
}

// ListBlockedIDs returns the actor's outgoing block set
func (s *Service) ListBlockedIDs(ctx context.Context, actorID uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.ListBlockedIDs(ctx, actorID)
}
