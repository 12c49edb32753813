package relationships

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/peopledir/peopledir-api/internal/domain/user"
)

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new relationships repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBlock(ctx context.Context, block *BlockRelation) error {
	query := `
		INSERT INTO user_blocks (id, blocker_user_id, blocked_user_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, block.ID, block.BlockerUserID, block.BlockedUserID, block.CreatedAt)
	if err != nil {
		if isDuplicateBlockError(err) {
			return ErrAlreadyBlocked
		}
		if isMissingUserError(err) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("relationships repository create block: %w", err)
	}
	return nil
}

func (r *repository) DeleteBlock(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	query := `DELETE FROM user_blocks WHERE blocker_user_id = $1 AND blocked_user_id = $2`
	_, err := r.db.ExecContext(ctx, query, blockerID, blockedID)
	return err
}

func (r *repository) ListBlockedIDs(ctx context.Context, blockerID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT blocked_user_id FROM user_blocks WHERE blocker_user_id = $1`
	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids, query, blockerID)
	return ids, err
}
