package memory

import (
	"context"
	"sync"

	"github.com/tmorey/clubdesk/internal/model"
	"github.com/tmorey/clubdesk/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	profiles      map[model.UserID]*model.Profile
	clubs         map[model.ClubID]*model.Club
	slugIndex     map[string]model.ClubID
	assignments   map[model.UserID][]model.RoleAssignment
	credentials   map[model.UserID]*model.Credential
	emailIndex    map[string]model.UserID
	households    map[model.HouseholdID]*model.Household
	playerRecords map[model.PlayerRecordID]*model.PlayerRecord
	teamStaff     map[model.TeamStaffID]*model.TeamStaff
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		profiles:      make(map[model.UserID]*model.Profile),
		clubs:         make(map[model.ClubID]*model.Club),
		slugIndex:     make(map[string]model.ClubID),
		assignments:   make(map[model.UserID][]model.RoleAssignment),
		credentials:   make(map[model.UserID]*model.Credential),
		emailIndex:    make(map[string]model.UserID),
		households:    make(map[model.HouseholdID]*model.Household),
		playerRecords: make(map[model.PlayerRecordID]*model.PlayerRecord),
		teamStaff:     make(map[model.TeamStaffID]*model.TeamStaff),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Profile operations

func (s *Storage) SaveProfile(ctx context.Context, profile *model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = profile
	return nil
}

func (s *Storage) GetProfile(ctx context.Context, id model.UserID) (*model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[id]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	return profile, nil
}

// Club operations

func (s *Storage) SaveClub(ctx context.Context, club *model.Club) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clubs[club.ID] = club
	if club.Slug != "" {
		s.slugIndex[club.Slug] = club.ID
	}
	return nil
}

func (s *Storage) GetClub(ctx context.Context, id model.ClubID) (*model.Club, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	club, ok := s.clubs[id]
	if !ok {
		return nil, model.ErrClubNotFound
	}
	return club, nil
}

func (s *Storage) ClubSlugExists(ctx context.Context, slug string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.slugIndex[slug]
	return ok, nil
}

// Role assignment operations

func (s *Storage) SaveRoleAssignment(ctx context.Context, assignment *model.RoleAssignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[assignment.UserID] = append(s.assignments[assignment.UserID], *assignment)
	return nil
}

func (s *Storage) GetRoleAssignmentsForUser(ctx context.Context, id model.UserID) ([]model.RoleAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.assignments[id]
	out := make([]model.RoleAssignment, len(list))
	copy(out, list)
	return out, nil
}

// Credential operations

func (s *Storage) SaveCredential(ctx context.Context, credential *model.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials[credential.UserID] = credential
	s.emailIndex[credential.Email] = credential.UserID
	return nil
}

func (s *Storage) GetCredentialByEmail(ctx context.Context, email string) (*model.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrCredentialNotFound
	}
	credential, ok := s.credentials[userID]
	if !ok {
		return nil, model.ErrCredentialNotFound
	}
	return credential, nil
}

// Household operations

func (s *Storage) SaveHousehold(ctx context.Context, household *model.Household) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.households[household.ID] = household
	return nil
}

func (s *Storage) GetHousehold(ctx context.Context, id model.HouseholdID) (*model.Household, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	household, ok := s.households[id]
	if !ok {
		return nil, model.ErrHouseholdNotFound
	}
	return household, nil
}

func (s *Storage) GetHouseholdByEmail(ctx context.Context, email string) (*model.Household, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, household := range s.households {
		if household.ContactEmail == email {
			return household, nil
		}
	}
	return nil, model.ErrHouseholdNotFound
}

// Player record operations

func (s *Storage) SavePlayerRecord(ctx context.Context, record *model.PlayerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playerRecords[record.ID] = record
	return nil
}

func (s *Storage) GetPlayerRecordsByEmail(ctx context.Context, email string) ([]*model.PlayerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var records []*model.PlayerRecord
	for _, record := range s.playerRecords {
		if record.Email == email {
			records = append(records, record)
		}
	}
	return records, nil
}

// Team staff operations

func (s *Storage) SaveTeamStaff(ctx context.Context, staff *model.TeamStaff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teamStaff[staff.ID] = staff
	return nil
}

func (s *Storage) GetTeamStaffByEmail(ctx context.Context, email string) ([]*model.TeamStaff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var records []*model.TeamStaff
	for _, staff := range s.teamStaff {
		if staff.Email == email {
			records = append(records, staff)
		}
	}
	return records, nil
}
