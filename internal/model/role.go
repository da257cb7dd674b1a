package model

import "time"

// Role is a capability-granting position within a club
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleSecretary      Role = "secretary"
	RoleTreasurer      Role = "treasurer"
	RoleCoach          Role = "coach"
	RoleParent         Role = "parent"
	RolePlayer         Role = "player"
	RoleWelfareOfficer Role = "welfare_officer"
)

// allRoles is the closed set of roles the system recognises
var allRoles = map[Role]bool{
	RoleAdmin:          true,
	RoleSecretary:      true,
	RoleTreasurer:      true,
	RoleCoach:          true,
	RoleParent:         true,
	RolePlayer:         true,
	RoleWelfareOfficer: true,
}

// Valid reports whether r is a recognised role
func (r Role) Valid() bool {
	return allRoles[r]
}

// RoleAssignment grants a role to a user, optionally scoped to a team.
// Assignments are immutable records sourced from storage; resolution
// only reads them.
type RoleAssignment struct {
	ID        string
	UserID    UserID
	ClubID    ClubID
	Role      Role
	TeamID    TeamID // empty when the grant is club-wide
	CreatedAt time.Time
}

// ClubWide reports whether the assignment applies across all teams
func (a RoleAssignment) ClubWide() bool {
	return a.TeamID == ""
}
