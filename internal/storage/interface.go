package storage

import (
	"context"

	"github.com/tmorey/clubdesk/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Profile operations
	SaveProfile(ctx context.Context, profile *model.Profile) error
	GetProfile(ctx context.Context, id model.UserID) (*model.Profile, error)

	// Club operations
	SaveClub(ctx context.Context, club *model.Club) error
	GetClub(ctx context.Context, id model.ClubID) (*model.Club, error)
	ClubSlugExists(ctx context.Context, slug string) (bool, error)

	// Role assignment operations; lists preserve insertion order
	SaveRoleAssignment(ctx context.Context, assignment *model.RoleAssignment) error
	GetRoleAssignmentsForUser(ctx context.Context, id model.UserID) ([]model.RoleAssignment, error)

	// Credential operations
	SaveCredential(ctx context.Context, credential *model.Credential) error
	GetCredentialByEmail(ctx context.Context, email string) (*model.Credential, error)

	// Household operations
	SaveHousehold(ctx context.Context, household *model.Household) error
	GetHousehold(ctx context.Context, id model.HouseholdID) (*model.Household, error)
	GetHouseholdByEmail(ctx context.Context, email string) (*model.Household, error)

	// Player record operations
	SavePlayerRecord(ctx context.Context, record *model.PlayerRecord) error
	GetPlayerRecordsByEmail(ctx context.Context, email string) ([]*model.PlayerRecord, error)

	// Team staff operations
	SaveTeamStaff(ctx context.Context, staff *model.TeamStaff) error
	GetTeamStaffByEmail(ctx context.Context, email string) ([]*model.TeamStaff, error)
}
