package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// SearchFilter describes the server-side search predicate. ExcludeIDs always
// carries the actor plus the actor's outgoing block set. The username and
// birthdate-window conditions are combined with OR.
type SearchFilter struct {
	ExcludeIDs       []uuid.UUID
	UsernameFragment *string
	BornAfter        *time.Time
	BornBefore       *time.Time
}

// Repository defines user data access interface
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*User, error)
	Search(ctx context.Context, filter *SearchFilter) ([]*User, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new user repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create creates a new user. A duplicate username surfaces as ErrUsernameTaken.
func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, name, surname, username, birthdate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Surname,
		user.Username,
		user.Birthdate,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUsernameTakenError(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("user repository create: %w", err)
	}

	return nil
}

// GetByID returns user by ID, nil when absent
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `
		SELECT id, name, surname, username, birthdate, created_at, updated_at
		FROM users WHERE id = $1
	`
	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// Update updates user
func (r *repository) Update(ctx context.Context, user *User) error {
	query := `
		UPDATE users
		SET name = $2, surname = $3, username = $4, birthdate = $5, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Surname,
		user.Username,
		user.Birthdate,
	)
	if err != nil {
		if isUsernameTakenError(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("user repository update: %w", err)
	}

	return nil
}

// Delete removes the user; block edges referencing it go with it via FK cascade
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

// List returns every user, store default order
func (r *repository) List(ctx context.Context) ([]*User, error) {
	query := `SELECT id, name, surname, username, birthdate, created_at, updated_at FROM users`
	var users []*User
	err := r.db.SelectContext(ctx, &users, query)
	return users, err
}

// Search evaluates the whole predicate in one statement
func (r *repository) Search(ctx context.Context, filter *SearchFilter) ([]*User, error) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if len(filter.ExcludeIDs) > 0 {
		conditions = append(conditions, fmt.Sprintf("id <> ALL($%d::uuid[])", argIndex))
		args = append(args, pq.Array(filter.ExcludeIDs))
		argIndex++
	}

	orConds := []string{}
	if filter.UsernameFragment != nil && *filter.UsernameFragment != "" {
		orConds = append(orConds, fmt.Sprintf("username ILIKE $%d", argIndex))
		args = append(args, "%"+*filter.UsernameFragment+"%")
		argIndex++
	}
	switch {
	case filter.BornAfter != nil && filter.BornBefore != nil:
		orConds = append(orConds, fmt.Sprintf("birthdate BETWEEN $%d AND $%d", argIndex, argIndex+1))
		args = append(args, *filter.BornAfter, *filter.BornBefore)
		argIndex += 2
	case filter.BornAfter != nil:
		orConds = append(orConds, fmt.Sprintf("birthdate >= $%d", argIndex))
		args = append(args, *filter.BornAfter)
		argIndex++
	case filter.BornBefore != nil:
		orConds = append(orConds, fmt.Sprintf("birthdate <= $%d", argIndex))
		args = append(args, *filter.BornBefore)
		argIndex++
	}
	if len(orConds) > 0 {
		conditions = append(conditions, "("+strings.Join(orConds, " OR ")+")")
	}

	query := `SELECT id, name, surname, username, birthdate, created_at, updated_at FROM users`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	var users []*User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, err
	}
	return users, nil
}
