package relationships

import "errors"

var (
	ErrAlreadyBlocked  = errors.New("user already blocked")
	ErrCannotBlockSelf = errors.New("cannot block yourself")
)
