package model

import "errors"

// Common errors used across the application.
// Absence of a record is a valid state for most reads; callers treat
// the not-found sentinels as "none" rather than failures.
var (
	// Profile errors
	ErrProfileNotFound = errors.New("profile not found")

	// Club errors
	ErrClubNotFound = errors.New("club not found")

	// Role errors
	ErrInvalidRole = errors.New("invalid role")

	// Credential errors
	ErrCredentialNotFound = errors.New("credential not found")

	// Membership record errors
	ErrHouseholdNotFound    = errors.New("household not found")
	ErrPlayerRecordNotFound = errors.New("player record not found")
	ErrTeamStaffNotFound    = errors.New("team staff record not found")
)
