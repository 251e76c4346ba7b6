package domain

import "time"

// User represents an authenticated account. Accounts are created lazily on
// the first Google sign-in and every other entity is scoped to a user id.
type User struct {
	ID        string
	GoogleSub string
	Email     string
	Name      string
	Picture   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
