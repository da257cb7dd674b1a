package model

import "time"

// UserID uniquely identifies an authenticated user across the system
type UserID string

// Profile holds the user-editable details attached to an identity.
// The Role field is a legacy single-role value kept for accounts that
// predate per-team role assignments; resolution falls back to it only
// when no assignments exist.
type Profile struct {
	UserID    UserID
	FirstName string
	LastName  string
	Email     string
	ClubID    ClubID
	Role      Role // legacy, may be empty
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns the display name for the profile
func (p Profile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}
