package domain

import "time"

// User is the domain entity for a user account. Handle is an optional
// display name chosen by the user, distinct from the login username.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Handle       *string
	IsAdmin      bool
	CreatedAt    time.Time
}
