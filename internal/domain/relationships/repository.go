package relationships

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines block edge data access interface
type Repository interface {
	// CreateBlock persists a new edge. A duplicate ordered pair surfaces as
	// ErrAlreadyBlocked; a missing endpoint as user.ErrUserNotFound.
	CreateBlock(ctx context.Context, block *BlockRelation) error
	// DeleteBlock removes the exact (blocker, blocked) edge; no-op when absent.
	DeleteBlock(ctx context.Context, blockerID, blockedID uuid.UUID) error
	// ListBlockedIDs returns the IDs of every user blockerID has blocked.
	ListBlockedIDs(ctx context.Context, blockerID uuid.UUID) ([]uuid.UUID, error)
}
