package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tmorey/clubdesk/internal/model"
)

func assignments(roles ...model.Role) []model.RoleAssignment {
	out := make([]model.RoleAssignment, len(roles))
	for i, role := range roles {
		out[i] = model.RoleAssignment{UserID: "u1", Role: role}
	}
	return out
}

func TestAdminCanDoAnything(t *testing.T) {
	admin := assignments(model.RoleAdmin)

	for _, action := range model.Actions() {
		assert.True(t, Can(admin, action, ""), "admin denied %s", action)
		assert.True(t, Can(admin, action, "t1"), "admin denied %s for team", action)
	}

	// Even unknown actions pass the admin short-circuit
	assert.True(t, Can(admin, model.Action("launch_rockets"), ""))
}

func TestUnknownActionDeniedForEveryoneElse(t *testing.T) {
	for _, role := range []model.Role{
		model.RoleSecretary, model.RoleTreasurer, model.RoleCoach,
		model.RoleParent, model.RolePlayer, model.RoleWelfareOfficer,
	} {
		assert.False(t, Can(assignments(role), model.Action("launch_rockets"), ""), "role %s", role)
	}
	assert.False(t, Can(nil, model.Action("launch_rockets"), ""))
}

func TestActionTable(t *testing.T) {
	tests := []struct {
		action  model.Action
		allowed []model.Role
	}{
		{model.ActionManageClub, []model.Role{model.RoleSecretary}},
		{model.ActionManageFinance, []model.Role{model.RoleTreasurer}},
		{model.ActionEditCompliance, []model.Role{model.RoleSecretary, model.RoleTreasurer}},
		{model.ActionViewSafeguarding, []model.Role{model.RoleWelfareOfficer}},
		{model.ActionPayWallet, []model.Role{model.RoleParent, model.RolePlayer}},
	}

	allRoles := []model.Role{
		model.RoleSecretary, model.RoleTreasurer, model.RoleCoach,
		model.RoleParent, model.RolePlayer, model.RoleWelfareOfficer,
	}

	for _, tt := range tests {
		allowed := make(map[model.Role]bool)
		for _, role := range tt.allowed {
			allowed[role] = true
		}
		for _, role := range allRoles {
			got := Can(assignments(role), tt.action, "")
			assert.Equal(t, allowed[role], got, "%s / %s", tt.action, role)
		}
	}
}

func TestManageTeamCoachScoping(t *testing.T) {
	scoped := []model.RoleAssignment{{UserID: "u1", Role: model.RoleCoach, TeamID: "t1"}}

	assert.True(t, Can(scoped, model.ActionManageTeam, "t1"))
	assert.True(t, Can(scoped, model.ActionManageTeam, ""), "unscoped check should pass")
	assert.False(t, Can(scoped, model.ActionManageTeam, "t2"), "different team must be denied")

	unscoped := []model.RoleAssignment{{UserID: "u1", Role: model.RoleCoach}}
	assert.True(t, Can(unscoped, model.ActionManageTeam, "t1"))
	assert.True(t, Can(unscoped, model.ActionManageTeam, "t2"))
}

func TestManageTeamSecretaryIgnoresTeamScope(t *testing.T) {
	secretary := assignments(model.RoleSecretary)
	assert.True(t, Can(secretary, model.ActionManageTeam, "t1"))
	assert.True(t, Can(secretary, model.ActionManageTeam, ""))
}

func TestEmptyRoleSetDeniedEverything(t *testing.T) {
	for _, action := range model.Actions() {
		assert.False(t, Can(nil, action, ""))
	}
}

func TestTeamsManagedByClubOffice(t *testing.T) {
	for _, role := range []model.Role{model.RoleAdmin, model.RoleSecretary, model.RoleTreasurer} {
		managed := TeamsManagedBy(assignments(role))
		assert.True(t, managed.All, "role %s", role)
		assert.Empty(t, managed.TeamIDs)
	}
}

func TestTeamsManagedByCoach(t *testing.T) {
	effective := []model.RoleAssignment{
		{UserID: "u1", Role: model.RoleCoach, TeamID: "t1"},
		{UserID: "u1", Role: model.RoleCoach, TeamID: "t2"},
		{UserID: "u1", Role: model.RoleParent},
	}

	managed := TeamsManagedBy(effective)
	assert.False(t, managed.All)
	assert.Equal(t, []model.TeamID{"t1", "t2"}, managed.TeamIDs)
}

func TestTeamsManagedByNone(t *testing.T) {
	managed := TeamsManagedBy(assignments(model.RoleParent))
	assert.False(t, managed.All)
	assert.Empty(t, managed.TeamIDs)
}
