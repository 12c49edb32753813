package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents a directory account (matches users table)
type User struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Surname   *string   `db:"surname" json:"surname,omitempty"`
	Username  string    `db:"username" json:"username"`
	Birthdate time.Time `db:"birthdate" json:"birthdate"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Age returns the user's age in full years as of now
func (u *User) Age(now time.Time) int {
	years := now.Year() - u.Birthdate.Year()
	anniversary := u.Birthdate.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}
