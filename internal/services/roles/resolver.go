package roles

import "github.com/tmorey/clubdesk/internal/model"

// Resolve derives the effective role set for permission checks.
// Strict precedence, first match wins:
//  1. a persona override replaces everything with a single club-wide role
//  2. real assignments are used as-is, order preserved
//  3. a legacy single-role profile field becomes a single club-wide role
//  4. otherwise the set is empty
//
// Resolution never mutates its inputs and never fails.
func Resolve(override model.Role, assignments []model.RoleAssignment, profile *model.Profile) []model.RoleAssignment {
	if override != "" {
		return []model.RoleAssignment{{Role: override}}
	}

	if len(assignments) > 0 {
		return assignments
	}

	if profile != nil && profile.Role != "" {
		return []model.RoleAssignment{{UserID: profile.UserID, ClubID: profile.ClubID, Role: profile.Role}}
	}

	return nil
}
