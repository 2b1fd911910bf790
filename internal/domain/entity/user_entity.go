package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password holds the bcrypt hash and must never leave the application layer.
type User struct {
	ID        string
	Email     string
	Password  string
	Name      string
	CreatedAt time.Time
}

// Identity is the per-request view of an authenticated caller, derived from a bearer token.
type Identity struct {
	UserID    string
	Email     string
	TokenID   string
	ExpiresAt time.Time
}
