package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tmorey/clubdesk/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Profile tests

func (s *StorageSuite) TestSaveAndGetProfile() {
	profile := &model.Profile{
		UserID:    "u1",
		FirstName: "Ann",
		LastName:  "Smith",
		Email:     "ann@example.com",
		ClubID:    "c1",
	}
	s.Require().NoError(s.storage.SaveProfile(s.ctx, profile))

	got, err := s.storage.GetProfile(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal("Ann", got.FirstName)
	s.Equal(model.ClubID("c1"), got.ClubID)
}

func (s *StorageSuite) TestGetProfileNotFound() {
	_, err := s.storage.GetProfile(s.ctx, "missing")
	s.ErrorIs(err, model.ErrProfileNotFound)
}

// Club tests

func (s *StorageSuite) TestSaveAndGetClub() {
	club := &model.Club{ID: "c1", Name: "Ashford Town FC", Slug: "ashford-town-fc-1234"}
	s.Require().NoError(s.storage.SaveClub(s.ctx, club))

	got, err := s.storage.GetClub(s.ctx, "c1")
	s.Require().NoError(err)
	s.Equal("Ashford Town FC", got.Name)
}

func (s *StorageSuite) TestGetClubNotFound() {
	_, err := s.storage.GetClub(s.ctx, "missing")
	s.ErrorIs(err, model.ErrClubNotFound)
}

func (s *StorageSuite) TestClubSlugExists() {
	club := &model.Club{ID: "c1", Name: "Ashford Town FC", Slug: "ashford-town-fc-1234"}
	s.Require().NoError(s.storage.SaveClub(s.ctx, club))

	exists, err := s.storage.ClubSlugExists(s.ctx, "ashford-town-fc-1234")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.ClubSlugExists(s.ctx, "other-club-0000")
	s.Require().NoError(err)
	s.False(exists)
}

// Role assignment tests

func (s *StorageSuite) TestRoleAssignmentsPreserveOrder() {
	first := &model.RoleAssignment{ID: "ra1", UserID: "u1", Role: model.RoleCoach, TeamID: "t1"}
	second := &model.RoleAssignment{ID: "ra2", UserID: "u1", Role: model.RoleParent}
	s.Require().NoError(s.storage.SaveRoleAssignment(s.ctx, first))
	s.Require().NoError(s.storage.SaveRoleAssignment(s.ctx, second))

	assignments, err := s.storage.GetRoleAssignmentsForUser(s.ctx, "u1")
	s.Require().NoError(err)
	s.Require().Len(assignments, 2)
	s.Equal(model.RoleCoach, assignments[0].Role)
	s.Equal(model.RoleParent, assignments[1].Role)
}

func (s *StorageSuite) TestRoleAssignmentsEmptyForUnknownUser() {
	assignments, err := s.storage.GetRoleAssignmentsForUser(s.ctx, "nobody")
	s.Require().NoError(err)
	s.Empty(assignments)
}

// Credential tests

func (s *StorageSuite) TestSaveAndGetCredentialByEmail() {
	credential := &model.Credential{
		UserID:       "u1",
		Email:        "ann@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	}
	s.Require().NoError(s.storage.SaveCredential(s.ctx, credential))

	got, err := s.storage.GetCredentialByEmail(s.ctx, "ann@example.com")
	s.Require().NoError(err)
	s.Equal(model.UserID("u1"), got.UserID)
}

func (s *StorageSuite) TestGetCredentialByEmailNotFound() {
	_, err := s.storage.GetCredentialByEmail(s.ctx, "nobody@example.com")
	s.ErrorIs(err, model.ErrCredentialNotFound)
}

// Household tests

func (s *StorageSuite) TestGetHouseholdByEmail() {
	household := &model.Household{
		ID:           "h1",
		ClubID:       "c1",
		Name:         "The Smith Family",
		ContactEmail: "ann@example.com",
	}
	s.Require().NoError(s.storage.SaveHousehold(s.ctx, household))

	got, err := s.storage.GetHouseholdByEmail(s.ctx, "ann@example.com")
	s.Require().NoError(err)
	s.Equal(model.HouseholdID("h1"), got.ID)
}

func (s *StorageSuite) TestGetHouseholdByEmailNotFound() {
	_, err := s.storage.GetHouseholdByEmail(s.ctx, "nobody@example.com")
	s.ErrorIs(err, model.ErrHouseholdNotFound)
}

func (s *StorageSuite) TestRewriteHouseholdOwner() {
	household := &model.Household{ID: "h1", ContactEmail: "ann@example.com"}
	s.Require().NoError(s.storage.SaveHousehold(s.ctx, household))

	household.OwnerUserID = "u1"
	s.Require().NoError(s.storage.SaveHousehold(s.ctx, household))

	got, err := s.storage.GetHousehold(s.ctx, "h1")
	s.Require().NoError(err)
	s.Equal(model.UserID("u1"), got.OwnerUserID)
}

// Player record tests

func (s *StorageSuite) TestGetPlayerRecordsByEmail() {
	record := &model.PlayerRecord{ID: "p1", ClubID: "c1", Email: "kid@example.com", TeamID: "t1"}
	s.Require().NoError(s.storage.SavePlayerRecord(s.ctx, record))

	records, err := s.storage.GetPlayerRecordsByEmail(s.ctx, "kid@example.com")
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal(model.TeamID("t1"), records[0].TeamID)
}

// Team staff tests

func (s *StorageSuite) TestGetTeamStaffByEmailReturnsAllTeams() {
	s.Require().NoError(s.storage.SaveTeamStaff(s.ctx, &model.TeamStaff{ID: "s1", TeamID: "t1", Email: "coach@example.com"}))
	s.Require().NoError(s.storage.SaveTeamStaff(s.ctx, &model.TeamStaff{ID: "s2", TeamID: "t2", Email: "coach@example.com"}))

	records, err := s.storage.GetTeamStaffByEmail(s.ctx, "coach@example.com")
	s.Require().NoError(err)
	s.Len(records, 2)
}

func (s *StorageSuite) TestGetTeamStaffByEmailEmpty() {
	records, err := s.storage.GetTeamStaffByEmail(s.ctx, "nobody@example.com")
	s.Require().NoError(err)
	s.Empty(records)
}
