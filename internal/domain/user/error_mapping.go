package user

import (
	"errors"

	"github.com/lib/pq"
)

const sqlStateUniqueViolation = "23505"

// isUsernameTakenError reports whether err is the unique-constraint violation
// on users.username.
func isUsernameTakenError(err error) bool {
	if errors.Is(err, ErrUsernameTaken) {
		return true
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if string(pqErr.Code) != sqlStateUniqueViolation {
		return false
	}
	if pqErr.Constraint == "users_username_key" {
		return true
	}
	return pqErr.Table == "users" && pqErr.Column == "username"
}
