package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tmorey/clubdesk/internal/model"
	"github.com/tmorey/clubdesk/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Profile operations

func (s *Storage) SaveProfile(ctx context.Context, profile *model.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, profileKey(profile.UserID), data, 0).Err()
}

func (s *Storage) GetProfile(ctx context.Context, id model.UserID) (*model.Profile, error) {
	data, err := s.client.Get(ctx, profileKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrProfileNotFound
		}
		return nil, err
	}

	var profile model.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Club operations

func (s *Storage) SaveClub(ctx context.Context, club *model.Club) error {
	data, err := json.Marshal(club)
	if err != nil {
		return err
	}

	// Pipeline for atomic save + slug index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, clubKey(club.ID), data, 0)
	if club.Slug != "" {
		pipe.Set(ctx, clubSlugIndexKey(club.Slug), string(club.ID), 0)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetClub(ctx context.Context, id model.ClubID) (*model.Club, error) {
	data, err := s.client.Get(ctx, clubKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrClubNotFound
		}
		return nil, err
	}

	var club model.Club
	if err := json.Unmarshal(data, &club); err != nil {
		return nil, err
	}
	return &club, nil
}

func (s *Storage) ClubSlugExists(ctx context.Context, slug string) (bool, error) {
	n, err := s.client.Exists(ctx, clubSlugIndexKey(slug)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Role assignment operations

func (s *Storage) SaveRoleAssignment(ctx context.Context, assignment *model.RoleAssignment) error {
	data, err := json.Marshal(assignment)
	if err != nil {
		return err
	}
	// RPUSH keeps the grant order, which resolution preserves
	return s.client.RPush(ctx, userRolesKey(assignment.UserID), data).Err()
}

func (s *Storage) GetRoleAssignmentsForUser(ctx context.Context, id model.UserID) ([]model.RoleAssignment, error) {
	items, err := s.client.LRange(ctx, userRolesKey(id), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	assignments := make([]model.RoleAssignment, 0, len(items))
	for _, item := range items {
		var assignment model.RoleAssignment
		if err := json.Unmarshal([]byte(item), &assignment); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}
	return assignments, nil
}

// Credential operations

func (s *Storage) SaveCredential(ctx context.Context, credential *model.Credential) error {
	data, err := json.Marshal(credential)
	if err != nil {
		return err
	}

	// Pipeline for atomic save + email index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, credentialKey(credential.UserID), data, 0)
	pipe.Set(ctx, credentialEmailIndexKey(credential.Email), string(credential.UserID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetCredentialByEmail(ctx context.Context, email string) (*model.Credential, error) {
	userID, err := s.client.Get(ctx, credentialEmailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCredentialNotFound
		}
		return nil, err
	}

	data, err := s.client.Get(ctx, credentialKey(model.UserID(userID))).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCredentialNotFound
		}
		return nil, err
	}

	var credential model.Credential
	if err := json.Unmarshal(data, &credential); err != nil {
		return nil, err
	}
	return &credential, nil
}

// Household operations

func (s *Storage) SaveHousehold(ctx context.Context, household *model.Household) error {
	data, err := json.Marshal(household)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, householdKey(household.ID), data, 0)
	if household.ContactEmail != "" {
		pipe.Set(ctx, householdEmailIndexKey(household.ContactEmail), string(household.ID), 0)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetHousehold(ctx context.Context, id model.HouseholdID) (*model.Household, error) {
	data, err := s.client.Get(ctx, householdKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrHouseholdNotFound
		}
		return nil, err
	}

	var household model.Household
	if err := json.Unmarshal(data, &household); err != nil {
		return nil, err
	}
	return &household, nil
}

func (s *Storage) GetHouseholdByEmail(ctx context.Context, email string) (*model.Household, error) {
	id, err := s.client.Get(ctx, householdEmailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrHouseholdNotFound
		}
		return nil, err
	}
	return s.GetHousehold(ctx, model.HouseholdID(id))
}

// Player record operations

func (s *Storage) SavePlayerRecord(ctx context.Context, record *model.PlayerRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerRecordKey(record.ID), data, 0)
	if record.Email != "" {
		pipe.SAdd(ctx, playerEmailIndexKey(record.Email), string(record.ID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayerRecordsByEmail(ctx context.Context, email string) ([]*model.PlayerRecord, error) {
	ids, err := s.client.SMembers(ctx, playerEmailIndexKey(email)).Result()
	if err != nil {
		return nil, err
	}

	var records []*model.PlayerRecord
	for _, id := range ids {
		data, err := s.client.Get(ctx, playerRecordKey(model.PlayerRecordID(id))).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Index entry outlived the record; skip it
				continue
			}
			return nil, err
		}

		var record model.PlayerRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, err
		}
		records = append(records, &record)
	}
	return records, nil
}

// Team staff operations

func (s *Storage) SaveTeamStaff(ctx context.Context, staff *model.TeamStaff) error {
	data, err := json.Marshal(staff)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, teamStaffKey(staff.ID), data, 0)
	if staff.Email != "" {
		pipe.SAdd(ctx, staffEmailIndexKey(staff.Email), string(staff.ID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetTeamStaffByEmail(ctx context.Context, email string) ([]*model.TeamStaff, error) {
	ids, err := s.client.SMembers(ctx, staffEmailIndexKey(email)).Result()
	if err != nil {
		return nil, err
	}

	var records []*model.TeamStaff
	for _, id := range ids {
		data, err := s.client.Get(ctx, teamStaffKey(model.TeamStaffID(id))).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, err
		}

		var staff model.TeamStaff
		if err := json.Unmarshal(data, &staff); err != nil {
			return nil, err
		}
		records = append(records, &staff)
	}
	return records, nil
}
