package model

import "time"

// HouseholdID uniquely identifies a household
type HouseholdID string

// Household groups a family's players under a single wallet and
// contact. OwnerUserID is empty until a registered account claims the
// household by matching contact email.
type Household struct {
	ID           HouseholdID
	ClubID       ClubID
	Name         string
	ContactEmail string
	OwnerUserID  UserID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PlayerRecordID uniquely identifies a club player record
type PlayerRecordID string

// PlayerRecord is a club's registration record for a playing member,
// distinct from any user account. It may be claimed at sign-up by
// email match, which sets OwnerUserID.
type PlayerRecord struct {
	ID          PlayerRecordID
	ClubID      ClubID
	HouseholdID HouseholdID
	TeamID      TeamID
	FirstName   string
	LastName    string
	Email       string
	OwnerUserID UserID
	CreatedAt   time.Time
}

// TeamStaffID uniquely identifies a team staff record
type TeamStaffID string

// TeamStaff records a coaching or support appointment to a team. A
// user may hold several across teams; each claimed record yields one
// coach assignment scoped to its team.
type TeamStaff struct {
	ID          TeamStaffID
	ClubID      ClubID
	TeamID      TeamID
	Name        string
	Email       string
	OwnerUserID UserID
	CreatedAt   time.Time
}
