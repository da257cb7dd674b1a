package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tmorey/clubdesk/internal/dependencies/mocks"
	"github.com/tmorey/clubdesk/internal/model"
	"github.com/tmorey/clubdesk/internal/services/authn"
	"github.com/tmorey/clubdesk/internal/services/permission"
	"github.com/tmorey/clubdesk/internal/storage"
	"github.com/tmorey/clubdesk/internal/storage/memory"
)

// hookStorage lets tests interleave work with a fetch or inject
// failures for specific reads
type hookStorage struct {
	storage.Storage
	onGetProfile func()
	profileErr   error
	rolesErr     error
}

func (h *hookStorage) GetProfile(ctx context.Context, id model.UserID) (*model.Profile, error) {
	if h.onGetProfile != nil {
		h.onGetProfile()
	}
	if h.profileErr != nil {
		return nil, h.profileErr
	}
	return h.Storage.GetProfile(ctx, id)
}

func (h *hookStorage) GetRoleAssignmentsForUser(ctx context.Context, id model.UserID) ([]model.RoleAssignment, error) {
	if h.rolesErr != nil {
		return nil, h.rolesErr
	}
	return h.Storage.GetRoleAssignmentsForUser(ctx, id)
}

type StoreSuite struct {
	suite.Suite
	mem    *memory.Storage
	hooks  *hookStorage
	auth   *authn.Service
	clock  *mocks.MockClock
	random *mocks.MockRandom
	store  *Store
	ctx    context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.mem = memory.New()
	s.hooks = &hookStorage{Storage: s.mem}
	s.clock = mocks.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.auth = authn.New(s.mem, s.clock, authn.DefaultConfig())

	cfg := DefaultConfig()
	cfg.ReconcileDelay = 0 // synchronous reconcile fetch in tests
	s.store = New(s.hooks, s.auth, s.clock, s.random, cfg, nil)
	s.ctx = context.Background()
}

// seedUser registers a credential and profile directly, bypassing the
// store under test
func (s *StoreSuite) seedUser(email string, role model.Role, clubID model.ClubID) model.UserID {
	sess, err := s.auth.SignUp(s.ctx, email, "password123")
	s.Require().NoError(err)

	profile := &model.Profile{
		UserID: sess.UserID,
		Email:  email,
		ClubID: clubID,
		Role:   role,
	}
	s.Require().NoError(s.mem.SaveProfile(s.ctx, profile))
	s.Require().NoError(s.auth.SignOut(s.ctx, sess.Token))
	return sess.UserID
}

// InitAuth tests

func (s *StoreSuite) TestInitAuthAdoptsExistingSession() {
	userID := s.seedUser("ann@example.com", model.RoleTreasurer, "")
	sess, err := s.auth.SignInWithPassword(s.ctx, "ann@example.com", "password123")
	s.Require().NoError(err)

	s.store.InitAuth(s.ctx, sess.Token)

	s.Equal(StateAuthenticated, s.store.State())
	s.Equal(userID, s.store.Identity())
	s.Require().NotNil(s.store.Profile())
	s.Equal("ann@example.com", s.store.Profile().Email)
	s.False(s.store.Loading())
}

func (s *StoreSuite) TestInitAuthWithInvalidTokenStaysAnonymous() {
	s.store.InitAuth(s.ctx, "bogus")

	s.Equal(StateAnonymous, s.store.State())
	s.False(s.store.IsAuthenticated())
	s.False(s.store.Loading())
}

func (s *StoreSuite) TestInitAuthWithEmptyTokenStaysAnonymous() {
	s.store.InitAuth(s.ctx, "")

	s.False(s.store.IsAuthenticated())
	s.False(s.store.Loading())
}

func (s *StoreSuite) TestInitAuthNoopWhenAlreadyAuthenticated() {
	s.seedUser("ann@example.com", "", "")
	s.Require().NoError(s.store.Login(s.ctx, "ann@example.com", "password123"))
	identity := s.store.Identity()

	s.store.InitAuth(s.ctx, "bogus")

	s.Equal(identity, s.store.Identity())
}

// Login tests

func (s *StoreSuite) TestLoginPropagatesAuthErrorUnchanged() {
	err := s.store.Login(s.ctx, "nobody@example.com", "password123")
	s.ErrorIs(err, authn.ErrInvalidCredentials)
	s.Equal(StateAnonymous, s.store.State())
	s.False(s.store.Loading())
}

func (s *StoreSuite) TestLoginFetchesProfileAndAssignments() {
	userID := s.seedUser("ann@example.com", "", "")
	s.Require().NoError(s.mem.SaveRoleAssignment(s.ctx, &model.RoleAssignment{
		ID: "ra1", UserID: userID, Role: model.RoleCoach, TeamID: "t1",
	}))

	s.Require().NoError(s.store.Login(s.ctx, "ann@example.com", "password123"))

	s.Equal(StateAuthenticated, s.store.State())
	s.Require().Len(s.store.Assignments(), 1)
	s.Equal(model.RoleCoach, s.store.Assignments()[0].Role)
	s.False(s.store.Loading())
}

func (s *StoreSuite) TestLoginUpdatesActiveClubFromProfile() {
	club := &model.Club{ID: "c1", Name: "Ashford Town FC", Color: "#ff0000"}
	s.Require().NoError(s.mem.SaveClub(s.ctx, club))
	s.seedUser("ann@example.com", "", "c1")

	s.Require().NoError(s.store.Login(s.ctx, "ann@example.com", "password123"))

	s.Equal(model.ClubID("c1"), s.store.ActiveClub().ID)
	s.Equal("Ashford Town FC", s.store.ActiveClub().Name)
}

// FetchProfile tests

func (s *StoreSuite) TestFetchProfileNoopWhenAnonymous() {
	s.store.FetchProfile(s.ctx)

	s.Nil(s.store.Profile())
	s.False(s.store.Loading())
}

func (s *StoreSuite) TestFetchProfileFailureLeavesPriorStateUntouched() {
	userID := s.seedUser("ann@example.com", "", "")
	s.Require().NoError(s.mem.SaveRoleAssignment(s.ctx, &model.RoleAssignment{
		ID: "ra1", UserID: userID, Role: model.RoleParent,
	}))
	s.Require().NoError(s.store.Login(s.ctx, "ann@example.com", "password123"))
	s.Require().Len(s.store.Assignments(), 1)

	s.hooks.rolesErr = context.DeadlineExceeded
	s.store.FetchProfile(s.ctx)

	s.Require().NotNil(s.store.Profile())
	s.Len(s.store.Assignments(), 1)
	s.False(s.store.Loading())
}

func (s *StoreSuite) TestStaleFetchDiscardedAfterLogout() {
	s.seedUser("ann@example.com", model.RoleTreasurer, "")
	s.Require().NoError(s.store.Login(s.ctx, "ann@example.com", "password123"))

	// Logout lands while the fetch is reading from storage; the fetch
	// must not resurrect the cleared session
	s.hooks.onGetProfile = func() {
		s.hooks.onGetProfile = nil
		s.store.Logout(s.ctx)
	}
	s.store.FetchProfile(s.ctx)

	s.False(s.store.IsAuthenticated())
	s.Nil(s.store.Profile())
	s.Empty(s.store.Assignments())
	s.Equal(permission.GuestLabel, s.store.CurrentLabel())
}

// Register tests

func (s *StoreSuite) TestRegisterCreatesIdentityAndProfile() {
	err := s.store.Register(s.ctx, "ann@example.com", "password123", "Ann", "Smith")
	s.Require().NoError(err)

	s.Equal(StateAuthenticated, s.store.State())
	s.Require().NotNil(s.store.Profile())
	s.Equal("Ann", s.store.Profile().FirstName)
	s.Empty(s.store.Assignments())
	s.False(s.store.Loading())
}

func (s *StoreSuite) TestRegisterPropagatesDuplicateEmail() {
	s.seedUser("ann@example.com", "", "")

	err := s.store.Register(s.ctx, "ann@example.com", "password123", "Ann", "Smith")
	s.ErrorIs(err, authn.ErrEmailExists)
	s.False(s.store.IsAuthenticated())
}

func (s *StoreSuite) TestRegisterLinksHousehold() {
	club := &model.Club{ID: "c1", Name: "Ashford Town FC"}
	s.Require().NoError(s.mem.SaveClub(s.ctx, club))
	s.Require().NoError(s.mem.SaveHousehold(s.ctx, &model.Household{
		ID:           "h1",
		ClubID:       "c1",
		Name:         "The Smith Family",
		ContactEmail: "a@x.com",
	}))

	s.Require().NoError(s.store.Register(s.ctx, "a@x.com", "pw", "Ann", "Smith"))
	identity := s.store.Identity()

	// Household owner rewritten to the new identity
	household, err := s.mem.GetHousehold(s.ctx, "h1")
	s.Require().NoError(err)
	s.Equal(identity, household.OwnerUserID)

	// Parent role granted and visible after the reconcile fetch
	assignments := s.store.Assignments()
	s.Require().Len(assignments, 1)
	s.Equal(model.RoleParent, assignments[0].Role)
	s.Equal(model.ClubID("c1"), assignments[0].ClubID)

	// Profile club reference follows the linked household's club
	s.Equal(model.ClubID("c1"), s.store.Profile().ClubID)
	s.Equal("Ashford Town FC", s.store.ActiveClub().Name)
}

func (s *StoreSuite) TestRegisterLinksStaffRecordsPerTeam() {
	s.Require().NoError(s.mem.SaveTeamStaff(s.ctx, &model.TeamStaff{
		ID: "s1", ClubID: "c1", TeamID: "t1", Email: "coach@x.com",
	}))
	s.Require().NoError(s.mem.SaveTeamStaff(s.ctx, &model.TeamStaff{
		ID: "s2", ClubID: "c1", TeamID: "t2", Email: "coach@x.com",
	}))

	s.Require().NoError(s.store.Register(s.ctx, "coach@x.com", "pw", "Cal", "Jones"))

	assignments := s.store.Assignments()
	s.Require().Len(assignments, 2)
	teams := map[model.TeamID]bool{}
	for _, assignment := range assignments {
		s.Equal(model.RoleCoach, assignment.Role)
		teams[assignment.TeamID] = true
	}
	s.True(teams["t1"])
	s.True(teams["t2"])
	s.Equal(permission.HybridLabel, s.store.CurrentLabel())
}

func (s *StoreSuite) TestRegisterLinksPlayerRecord() {
	s.Require().NoError(s.mem.SavePlayerRecord(s.ctx, &model.PlayerRecord{
		ID: "p1", ClubID: "c1", TeamID: "t1", Email: "kid@x.com",
	}))

	s.Require().NoError(s.store.Register(s.ctx, "kid@x.com", "pw", "Kit", "Smith"))

	assignments := s.store.Assignments()
	s.Require().Len(assignments, 1)
	s.Equal(model.RolePlayer, assignments[0].Role)

	records, err := s.mem.GetPlayerRecordsByEmail(s.ctx, "kid@x.com")
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal(s.store.Identity(), records[0].OwnerUserID)
}

func (s *StoreSuite) TestRegisterWithoutMatchesIsNotAnError() {
	err := s.store.Register(s.ctx, "new@x.com", "pw", "New", "User")
	s.Require().NoError(err)
	s.Empty(s.store.Assignments())
	s.Equal(permission.GuestLabel, s.store.CurrentLabel())
}

// Persona tests

func (s *StoreSuite) TestSetPersonaOverridesRealRoles() {
	userID := s.seedUser("ann@example.com", "", "")
	s.Require().NoError(s.mem.SaveRoleAssignment(s.ctx, &model.RoleAssignment{
		ID: "ra1", UserID: userID, Role: model.RoleAdmin,
	}))
	s.Require().NoError(s.store.Login(s.ctx, "ann@example.com", "password123"))
	s.Require().True(s.store.Can(model.ActionManageClub, ""))

	s.Require().NoError(s.store.SetPersona("parent"))

	// Admin short-circuit no longer applies under the override
	s.False(s.store.Can(model.ActionManageClub, ""))
	s.True(s.store.Can(model.ActionPayWallet, ""))
	s.Equal("parent", s.store.CurrentLabel())
}

func (s *StoreSuite) TestSetPersonaRejectsUnknownRole() {
	s.ErrorIs(s.store.SetPersona("superuser"), model.ErrInvalidRole)
}

func (s *StoreSuite) TestSetPersonaDefaultClearsIdempotently() {
	s.Require().NoError(s.store.SetPersona("coach"))

	s.Require().NoError(s.store.SetPersona("default"))
	first := s.store.Permissions()

	s.Require().NoError(s.store.SetPersona("default"))
	second := s.store.Permissions()

	s.Empty(s.store.Override())
	s.Equal(first, second)
}

// Logout tests

func (s *StoreSuite) TestLogoutResetsEverything() {
	club := &model.Club{ID: "c1", Name: "Ashford Town FC"}
	s.Require().NoError(s.mem.SaveClub(s.ctx, club))
	s.seedUser("ann@example.com", model.RoleSecretary, "c1")
	s.Require().NoError(s.store.Login(s.ctx, "ann@example.com", "password123"))
	s.Require().NoError(s.store.SetPersona("coach"))
	token := s.store.Token()

	s.store.Logout(s.ctx)

	s.Equal(StateAnonymous, s.store.State())
	s.False(s.store.IsAuthenticated())
	s.Nil(s.store.Profile())
	s.Empty(s.store.Assignments())
	s.Empty(s.store.Override())
	s.Equal(model.DefaultClub(), s.store.ActiveClub())

	_, err := s.auth.GetSession(s.ctx, token)
	s.ErrorIs(err, authn.ErrInvalidSession)
}

// Permission plumbing tests

func (s *StoreSuite) TestCoachTeamScopeThroughStore() {
	userID := s.seedUser("coach@example.com", "", "")
	s.Require().NoError(s.mem.SaveRoleAssignment(s.ctx, &model.RoleAssignment{
		ID: "ra1", UserID: userID, Role: model.RoleCoach, TeamID: "t1",
	}))
	s.Require().NoError(s.store.Login(s.ctx, "coach@example.com", "password123"))

	s.True(s.store.Can(model.ActionManageTeam, "t1"))
	s.True(s.store.Can(model.ActionManageTeam, ""))
	s.False(s.store.Can(model.ActionManageTeam, "t2"))

	managed := s.store.ManagedTeams()
	s.False(managed.All)
	s.Equal([]model.TeamID{"t1"}, managed.TeamIDs)
}

func (s *StoreSuite) TestLegacyProfileRoleFallback() {
	s.seedUser("old@example.com", model.RoleTreasurer, "")
	s.Require().NoError(s.store.Login(s.ctx, "old@example.com", "password123"))

	s.True(s.store.Can(model.ActionManageFinance, ""))
	s.Equal("treasurer", s.store.CurrentLabel())
	s.True(s.store.ManagedTeams().All)
}

func (s *StoreSuite) TestPermissionsSnapshotAnonymous() {
	snap := s.store.Permissions()
	s.False(snap.IsAuthenticated)
	s.Equal(permission.GuestLabel, snap.CurrentLabel)
}
