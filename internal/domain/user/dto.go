package user

import (
	"time"

	"github.com/google/uuid"
)

// SignUpRequest for POST /users
type SignUpRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=100"`
	Surname   string `json:"surname" validate:"omitempty,max=100"`
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Birthdate string `json:"birthdate" validate:"required,birthdate"`
}

// UpdateRequest for PUT /users; nil fields are left untouched
type UpdateRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=100"`
	Surname   *string `json:"surname" validate:"omitempty,max=100"`
	Username  *string `json:"username" validate:"omitempty,min=3,max=50"`
	Birthdate *string `json:"birthdate" validate:"omitempty,birthdate"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Surname   *string   `json:"surname,omitempty"`
	Username  string    `json:"username"`
	Birthdate string    `json:"birthdate"`
	CreatedAt string    `json:"created_at"`
}

// SignUpResponse returned after account creation
type SignUpResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// NewUserResponse creates UserResponse from an entity
func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Surname:   u.Surname,
		Username:  u.Username,
		Birthdate: u.Birthdate.Format("2006-01-02"),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// NewUserResponseList converts a result set
func NewUserResponseList(users []*User) []UserResponse {
	items := make([]UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, NewUserResponse(u))
	}
	return items
}
