package relationships

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestBlockConstraintMapping(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantDuplicate bool
		wantMissing   bool
	}{
		{
			name:          "duplicate pair",
			err:           &pq.Error{Code: "23505", Table: "user_blocks", Constraint: "user_blocks_blocker_user_id_blocked_user_id_key"},
			wantDuplicate: true,
		},
		{
			name:        "missing endpoint",
			err:         &pq.Error{Code: "23503", Table: "user_blocks", Constraint: "user_blocks_blocked_user_id_fkey"},
			wantMissing: true,
		},
		{
			name:          "wrapped duplicate",
			err:           fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Table: "user_blocks"}),
			wantDuplicate: true,
		},
		{
			name: "unique violation on another table",
			err:  &pq.Error{Code: "23505", Table: "users", Column: "username"},
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDuplicateBlockError(tt.err); got != tt.wantDuplicate {
				t.Fatalf("isDuplicateBlockError: expected %v, got %v", tt.wantDuplicate, got)
			}
			if got := isMissingUserError(tt.err); got != tt.wantMissing {
				t.Fatalf("isMissingUserError: expected %v, got %v", tt.wantMissing, got)
			}
		})
	}
}
