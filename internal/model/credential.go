package model

import "time"

// Credential holds the login secret for a user account.
// Stored separately from the profile so the hash never travels with
// session state.
type Credential struct {
	UserID       UserID
	Email        string
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
