package permission

import (
	"github.com/tmorey/clubdesk/internal/model"
	"github.com/tmorey/clubdesk/internal/services/roles"
)

// HybridLabel is shown when a user holds several real assignments and
// no persona override is active
const HybridLabel = "Hybrid (All)"

// GuestLabel is shown when no role at all can be resolved
const GuestLabel = "guest"

// Snapshot bundles the per-action decisions for a resolved role set so
// consumers can branch without issuing point queries. Team-scoped
// nuance (a coach limited to one team) is not captured here; callers
// needing it use Can with a resource team id.
type Snapshot struct {
	CanManageClub       bool
	CanManageFinance    bool
	CanManageTeam       bool
	CanEditCompliance   bool
	CanViewSafeguarding bool
	CanPayWallet        bool

	IsAuthenticated bool
	CurrentLabel    string
}

// BuildSnapshot composes the permissions view for a session's state
func BuildSnapshot(identity model.UserID, override model.Role, assignments []model.RoleAssignment, profile *model.Profile) Snapshot {
	effective := roles.Resolve(override, assignments, profile)

	return Snapshot{
		CanManageClub:       Can(effective, model.ActionManageClub, ""),
		CanManageFinance:    Can(effective, model.ActionManageFinance, ""),
		CanManageTeam:       Can(effective, model.ActionManageTeam, ""),
		CanEditCompliance:   Can(effective, model.ActionEditCompliance, ""),
		CanViewSafeguarding: Can(effective, model.ActionViewSafeguarding, ""),
		CanPayWallet:        Can(effective, model.ActionPayWallet, ""),

		IsAuthenticated: identity != "",
		CurrentLabel:    Label(override, assignments, profile),
	}
}

// Label derives the human-readable name for the active role
func Label(override model.Role, assignments []model.RoleAssignment, profile *model.Profile) string {
	if override != "" {
		return string(override)
	}

	if len(assignments) > 1 {
		return HybridLabel
	}

	effective := roles.Resolve("", assignments, profile)
	if len(effective) == 0 {
		return GuestLabel
	}
	return string(effective[0].Role)
}
