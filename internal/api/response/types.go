package response

import (
	"github.com/tmorey/clubdesk/internal/model"
	"github.com/tmorey/clubdesk/internal/services/permission"
	"github.com/tmorey/clubdesk/internal/services/session"
)

// Profile represents a user profile in API responses
type Profile struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	ClubID    string `json:"club_id,omitempty"`
}

// ProfileFromModel converts a model.Profile to a response Profile
func ProfileFromModel(p *model.Profile) Profile {
	return Profile{
		UserID:    string(p.UserID),
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		ClubID:    string(p.ClubID),
	}
}

// Club represents a club in API responses
type Club struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug,omitempty"`
	Sport  string `json:"sport,omitempty"`
	County string `json:"county,omitempty"`
	Color  string `json:"color,omitempty"`
}

// ClubFromModel converts a model.Club to a response Club
func ClubFromModel(c *model.Club) Club {
	return Club{
		ID:     string(c.ID),
		Name:   c.Name,
		Slug:   c.Slug,
		Sport:  c.Sport,
		County: c.County,
		Color:  c.Color,
	}
}

// RoleAssignment represents a role assignment in API responses
type RoleAssignment struct {
	Role   string `json:"role"`
	ClubID string `json:"club_id,omitempty"`
	TeamID string `json:"team_id,omitempty"`
}

// RoleAssignmentFromModel converts a model.RoleAssignment
func RoleAssignmentFromModel(a model.RoleAssignment) RoleAssignment {
	return RoleAssignment{
		Role:   string(a.Role),
		ClubID: string(a.ClubID),
		TeamID: string(a.TeamID),
	}
}

// Permissions represents the composed permission snapshot
type Permissions struct {
	CanManageClub       bool   `json:"can_manage_club"`
	CanManageFinance    bool   `json:"can_manage_finance"`
	CanManageTeam       bool   `json:"can_manage_team"`
	CanEditCompliance   bool   `json:"can_edit_compliance"`
	CanViewSafeguarding bool   `json:"can_view_safeguarding"`
	CanPayWallet        bool   `json:"can_pay_wallet"`
	IsAuthenticated     bool   `json:"is_authenticated"`
	CurrentLabel        string `json:"current_label"`
}

// PermissionsFromSnapshot converts a permission.Snapshot
func PermissionsFromSnapshot(s permission.Snapshot) Permissions {
	return Permissions{
		CanManageClub:       s.CanManageClub,
		CanManageFinance:    s.CanManageFinance,
		CanManageTeam:       s.CanManageTeam,
		CanEditCompliance:   s.CanEditCompliance,
		CanViewSafeguarding: s.CanViewSafeguarding,
		CanPayWallet:        s.CanPayWallet,
		IsAuthenticated:     s.IsAuthenticated,
		CurrentLabel:        s.CurrentLabel,
	}
}

// ManagedTeams represents the managed-team view of a session
type ManagedTeams struct {
	All     bool     `json:"all"`
	TeamIDs []string `json:"team_ids"`
}

// ManagedTeamsFromModel converts a permission.ManagedTeams
func ManagedTeamsFromModel(m permission.ManagedTeams) ManagedTeams {
	teamIDs := make([]string, len(m.TeamIDs))
	for i, id := range m.TeamIDs {
		teamIDs[i] = string(id)
	}
	return ManagedTeams{
		All:     m.All,
		TeamIDs: teamIDs,
	}
}

// CanResult is the response for a point permission query
type CanResult struct {
	Action  string `json:"action"`
	TeamID  string `json:"team_id,omitempty"`
	Allowed bool   `json:"allowed"`
}

// Session is the full session view for API responses
type Session struct {
	State       string           `json:"state"`
	Token       string           `json:"token,omitempty"`
	Profile     *Profile         `json:"profile"`
	Assignments []RoleAssignment `json:"assignments"`
	Override    string           `json:"override,omitempty"`
	ActiveClub  Club             `json:"active_club"`
	Permissions Permissions      `json:"permissions"`
}

// SessionFromStore composes the session view from a session store.
// The token is included only when includeToken is set (auth endpoints
// issuing a fresh token).
func SessionFromStore(s *session.Store, includeToken bool) Session {
	var profile *Profile
	if p := s.Profile(); p != nil {
		pr := ProfileFromModel(p)
		profile = &pr
	}

	assignments := s.Assignments()
	assignmentsResp := make([]RoleAssignment, len(assignments))
	for i, a := range assignments {
		assignmentsResp[i] = RoleAssignmentFromModel(a)
	}

	activeClub := s.ActiveClub()

	resp := Session{
		State:       string(s.State()),
		Profile:     profile,
		Assignments: assignmentsResp,
		Override:    string(s.Override()),
		ActiveClub:  ClubFromModel(&activeClub),
		Permissions: PermissionsFromSnapshot(s.Permissions()),
	}
	if includeToken {
		resp.Token = s.Token()
	}
	return resp
}
