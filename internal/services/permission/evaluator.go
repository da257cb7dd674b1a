package permission

import (
	"github.com/tmorey/clubdesk/internal/model"
)

// rule decides whether a single effective assignment satisfies an
// action, given the team the target resource belongs to (empty when
// the check is not scoped to a team).
type rule func(assignment model.RoleAssignment, resourceTeamID model.TeamID) bool

// rules is the closed action table. Actions not present here are
// denied for every role; admin is short-circuited before lookup.
var rules = map[model.Action]rule{
	model.ActionManageClub:       hasRole(model.RoleSecretary),
	model.ActionManageFinance:    hasRole(model.RoleTreasurer),
	model.ActionManageTeam:       manageTeam,
	model.ActionEditCompliance:   hasRole(model.RoleSecretary, model.RoleTreasurer),
	model.ActionViewSafeguarding: hasRole(model.RoleWelfareOfficer),
	model.ActionPayWallet:        hasRole(model.RoleParent, model.RolePlayer),
}

// hasRole builds a rule satisfied by any of the given roles,
// regardless of team scope
func hasRole(roles ...model.Role) rule {
	return func(assignment model.RoleAssignment, _ model.TeamID) bool {
		for _, role := range roles {
			if assignment.Role == role {
				return true
			}
		}
		return false
	}
}

// manageTeam grants secretaries club-wide; coaches are granted unless
// they are scoped to a specific team and the resource belongs to a
// different one
func manageTeam(assignment model.RoleAssignment, resourceTeamID model.TeamID) bool {
	switch assignment.Role {
	case model.RoleSecretary, model.RoleAdmin:
		return true
	case model.RoleCoach:
		return resourceTeamID == "" || assignment.ClubWide() || assignment.TeamID == resourceTeamID
	default:
		return false
	}
}

// Can reports whether the effective role set permits the action.
// An admin role anywhere in the set allows everything; unknown actions
// are always denied.
func Can(effective []model.RoleAssignment, action model.Action, resourceTeamID model.TeamID) bool {
	for _, assignment := range effective {
		if assignment.Role == model.RoleAdmin {
			return true
		}
	}

	r, ok := rules[action]
	if !ok {
		return false
	}

	for _, assignment := range effective {
		if r(assignment, resourceTeamID) {
			return true
		}
	}
	return false
}

// ManagedTeams describes which teams a role set can manage
type ManagedTeams struct {
	// All is set when a club-wide office (admin, secretary, treasurer)
	// makes the team list irrelevant
	All bool
	// TeamIDs lists the teams the holder coaches; empty when All is set
	// or the holder coaches nothing
	TeamIDs []model.TeamID
}

// TeamsManagedBy derives the managed-team view of a role set
func TeamsManagedBy(effective []model.RoleAssignment) ManagedTeams {
	for _, assignment := range effective {
		switch assignment.Role {
		case model.RoleAdmin, model.RoleSecretary, model.RoleTreasurer:
			return ManagedTeams{All: true}
		}
	}

	var teams []model.TeamID
	for _, assignment := range effective {
		if assignment.Role == model.RoleCoach && assignment.TeamID != "" {
			teams = append(teams, assignment.TeamID)
		}
	}
	return ManagedTeams{TeamIDs: teams}
}
