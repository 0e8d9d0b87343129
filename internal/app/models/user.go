package models

import (
	"strings"
	"time"
)

// User defines the user model based on the 'users' table. Users are created
// by the launch flow with the identity the platform supplies.
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`                           // Unique identifier for the user
	Username  string    `json:"username" db:"username" example:"staff_bob"`       // Platform-supplied user id
	Email     string    `json:"email" db:"email" example:"bob@school.edu"`        // User's email address
	Password  string    `json:"-" db:"password"`                                  // Hashed password for the dev login (excluded from JSON)
	FirstName string    `json:"firstName" db:"first_name" example:"Bob"`          // User's first name
	LastName  string    `json:"lastName" db:"last_name" example:"Smith"`          // User's last name
	CreatedAt time.Time `json:"createdAt" db:"created_at"`                        // Timestamp when the user was created
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`                        // Timestamp when the user was last updated
}

// FullName returns the user's display name, falling back to the username
// when no name parts are set.
func (u *User) FullName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		return u.Username
	}
	return name
}
