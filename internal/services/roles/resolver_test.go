package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmorey/clubdesk/internal/model"
)

func TestResolveOverrideWins(t *testing.T) {
	assignments := []model.RoleAssignment{
		{ID: "ra1", UserID: "u1", Role: model.RoleAdmin},
	}
	profile := &model.Profile{UserID: "u1", Role: model.RoleSecretary}

	effective := Resolve(model.RoleParent, assignments, profile)

	require.Len(t, effective, 1)
	assert.Equal(t, model.RoleParent, effective[0].Role)
	assert.Empty(t, effective[0].TeamID)
}

func TestResolveAssignmentsPreserveOrder(t *testing.T) {
	assignments := []model.RoleAssignment{
		{ID: "ra1", UserID: "u1", Role: model.RoleCoach, TeamID: "t1"},
		{ID: "ra2", UserID: "u1", Role: model.RoleParent},
	}

	effective := Resolve("", assignments, nil)

	require.Len(t, effective, 2)
	assert.Equal(t, model.RoleCoach, effective[0].Role)
	assert.Equal(t, model.TeamID("t1"), effective[0].TeamID)
	assert.Equal(t, model.RoleParent, effective[1].Role)
}

func TestResolveFallsBackToLegacyProfileRole(t *testing.T) {
	profile := &model.Profile{UserID: "u1", ClubID: "c1", Role: model.RoleTreasurer}

	effective := Resolve("", nil, profile)

	require.Len(t, effective, 1)
	assert.Equal(t, model.RoleTreasurer, effective[0].Role)
	assert.Equal(t, model.ClubID("c1"), effective[0].ClubID)
	assert.Empty(t, effective[0].TeamID)
}

func TestResolveEmptyWhenNothingApplies(t *testing.T) {
	assert.Empty(t, Resolve("", nil, nil))
	assert.Empty(t, Resolve("", nil, &model.Profile{UserID: "u1"}))
}

func TestResolveDoesNotMutateAssignments(t *testing.T) {
	assignments := []model.RoleAssignment{
		{ID: "ra1", UserID: "u1", Role: model.RoleCoach, TeamID: "t1"},
	}

	_ = Resolve(model.RoleParent, assignments, nil)

	assert.Equal(t, model.RoleCoach, assignments[0].Role)
	assert.Equal(t, model.TeamID("t1"), assignments[0].TeamID)
}
