package relationships

import (
	"errors"

	"github.com/lib/pq"
)

const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
)

// isDuplicateBlockError reports whether err is the unique-constraint violation
// on the (blocker, blocked) pair. Races between concurrent blocks land here.
func isDuplicateBlockError(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == sqlStateUniqueViolation && pqErr.Table == "user_blocks"
}

// isMissingUserError reports whether err is an FK violation on user_blocks,
// meaning an endpoint user vanished between the existence check and the insert.
func isMissingUserError(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == sqlStateForeignKeyViolation && pqErr.Table == "user_blocks"
}
