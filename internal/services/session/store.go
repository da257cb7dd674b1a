package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/tmorey/clubdesk/internal/dependencies/clock"
	"github.com/tmorey/clubdesk/internal/dependencies/random"
	"github.com/tmorey/clubdesk/internal/model"
	"github.com/tmorey/clubdesk/internal/services/authn"
	"github.com/tmorey/clubdesk/internal/services/permission"
	"github.com/tmorey/clubdesk/internal/services/roles"
	"github.com/tmorey/clubdesk/internal/storage"
)

// State is the authentication phase of a session
type State string

const (
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
)

// assignmentIDAlphabet is used for generated role assignment ids
const assignmentIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Config holds configuration for session stores
type Config struct {
	// ReconcileDelay is how long to wait after sign-up linking before
	// re-fetching the profile, so linking writes land first.
	// Zero makes the reconcile fetch synchronous (used in tests).
	ReconcileDelay time.Duration
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		ReconcileDelay: 2 * time.Second,
	}
}

// Store is the session context for one signed-in (or anonymous)
// client: identity, profile, role assignments, persona override and
// active club, with the permission views derived from them.
// Constructed per client session and reset by Logout.
type Store struct {
	storage storage.Storage
	auth    authn.Provider
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
	cfg     Config

	mu          sync.RWMutex
	state       State
	loading     bool
	token       string
	identity    model.UserID
	profile     *model.Profile
	assignments []model.RoleAssignment
	override    model.Role
	activeClub  model.Club

	// generation is bumped on every identity change; an in-flight
	// profile fetch discards its results when the generation it
	// started under has moved on (stale write-after-clear hazard)
	generation uint64
}

// New creates an anonymous session store
func New(store storage.Storage, auth authn.Provider, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Store{
		storage:    store,
		auth:       auth,
		clock:      clk,
		random:     rnd,
		logger:     logger,
		cfg:        cfg,
		state:      StateAnonymous,
		activeClub: model.DefaultClub(),
	}
}

// Observable fields

// State returns the current authentication phase
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Loading reports whether a background fetch is in flight
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Token returns the auth-provider session token, if any
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Identity returns the signed-in user id, empty when anonymous
func (s *Store) Identity() model.UserID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// IsAuthenticated reports whether an identity is present
func (s *Store) IsAuthenticated() bool {
	return s.Identity() != ""
}

// Profile returns the fetched profile, nil when none
func (s *Store) Profile() *model.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Assignments returns the raw role assignments for the identity
func (s *Store) Assignments() []model.RoleAssignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.RoleAssignment, len(s.assignments))
	copy(out, s.assignments)
	return out
}

// Override returns the active persona override, empty when none
func (s *Store) Override() model.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.override
}

// ActiveClub returns the club the session is scoped to
func (s *Store) ActiveClub() model.Club {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeClub
}

// SetActiveClub scopes the session to the given club
func (s *Store) SetActiveClub(club model.Club) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeClub = club
}

// Derived permission views

// EffectiveRoles resolves the role set used for permission checks
func (s *Store) EffectiveRoles() []model.RoleAssignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return roles.Resolve(s.override, s.assignments, s.profile)
}

// Can reports whether the session may perform the action, optionally
// against a resource belonging to a team
func (s *Store) Can(action model.Action, resourceTeamID model.TeamID) bool {
	return permission.Can(s.EffectiveRoles(), action, resourceTeamID)
}

// ManagedTeams returns the teams the session can manage
func (s *Store) ManagedTeams() permission.ManagedTeams {
	return permission.TeamsManagedBy(s.EffectiveRoles())
}

// Permissions returns the composed snapshot for UI consumers
func (s *Store) Permissions() permission.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return permission.BuildSnapshot(s.identity, s.override, s.assignments, s.profile)
}

// CurrentLabel returns the human-readable active role name
func (s *Store) CurrentLabel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return permission.Label(s.override, s.assignments, s.profile)
}

// Lifecycle

// InitAuth asks the auth collaborator whether the token belongs to an
// existing session and, if so, adopts the identity and fetches the
// profile. Failures are logged, never returned; the loading flag is
// cleared on every path.
func (s *Store) InitAuth(ctx context.Context, token string) {
	s.mu.Lock()
	if s.identity != "" {
		s.mu.Unlock()
		return
	}
	s.loading = true
	s.mu.Unlock()
	defer s.clearLoading()

	if token == "" {
		return
	}

	userID, err := s.auth.GetSession(ctx, token)
	if err != nil {
		if !errors.Is(err, authn.ErrInvalidSession) {
			s.logger.Error("init auth failed", slog.String("error", err.Error()))
		}
		return
	}

	s.adoptIdentity(token, userID)
	s.FetchProfile(ctx)
}

// Login authenticates credentials via the auth collaborator. Auth
// errors propagate unchanged; on success the identity is adopted and
// the profile fetched.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.setAuthenticating()
	defer s.clearLoading()

	sess, err := s.auth.SignInWithPassword(ctx, email, password)
	if err != nil {
		s.resetToAnonymousIfUnauthenticated()
		return err
	}

	s.adoptIdentity(sess.Token, sess.UserID)
	s.FetchProfile(ctx)
	return nil
}

// Register creates a new identity and profile, then runs a best-effort
// linking pass claiming any pre-existing household, player or staff
// records matching the email. A reconcile fetch is scheduled after a
// short delay so the linking writes land before the session settles.
func (s *Store) Register(ctx context.Context, email, password, firstName, lastName string) error {
	email = authn.NormalizeEmail(email)

	s.setAuthenticating()
	defer s.clearLoading()

	sess, err := s.auth.SignUp(ctx, email, password)
	if err != nil {
		s.resetToAnonymousIfUnauthenticated()
		return err
	}

	now := s.clock.Now()
	profile := &model.Profile{
		UserID:    sess.UserID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.storage.SaveProfile(ctx, profile); err != nil {
		s.resetToAnonymousIfUnauthenticated()
		return err
	}

	s.adoptIdentity(sess.Token, sess.UserID)
	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()

	s.linkExistingRecords(ctx, sess.UserID, email)

	if s.cfg.ReconcileDelay > 0 {
		time.AfterFunc(s.cfg.ReconcileDelay, func() {
			s.FetchProfile(context.Background())
		})
	} else {
		s.FetchProfile(ctx)
	}
	return nil
}

// Logout clears the whole session and resets the active club to the
// demo default. The auth collaborator sign-out is best-effort.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	token := s.token
	s.token = ""
	s.identity = ""
	s.profile = nil
	s.assignments = nil
	s.override = ""
	s.activeClub = model.DefaultClub()
	s.state = StateAnonymous
	s.generation++
	s.mu.Unlock()

	if token != "" {
		if err := s.auth.SignOut(ctx, token); err != nil {
			s.logger.Warn("sign out failed", slog.String("error", err.Error()))
		}
	}
}

// SetPersona sets or clears the demo-mode role override.
// The key "default" (or empty) clears it; anything else must be a
// recognised role.
func (s *Store) SetPersona(roleKey string) error {
	if roleKey == "default" || roleKey == "" {
		s.mu.Lock()
		s.override = ""
		s.mu.Unlock()
		return nil
	}

	role := model.Role(roleKey)
	if !role.Valid() {
		return model.ErrInvalidRole
	}

	s.mu.Lock()
	s.override = role
	s.mu.Unlock()
	return nil
}

// FetchProfile loads the profile, related club and role assignments
// for the current identity. No-op when anonymous. Failures are logged
// and leave prior state untouched; results are discarded wholesale if
// the identity changed while the fetch was in flight.
func (s *Store) FetchProfile(ctx context.Context) {
	s.mu.Lock()
	if s.identity == "" {
		s.mu.Unlock()
		return
	}
	id := s.identity
	gen := s.generation
	s.loading = true
	s.mu.Unlock()
	defer s.clearLoading()

	profile, err := s.storage.GetProfile(ctx, id)
	if err != nil {
		if !errors.Is(err, model.ErrProfileNotFound) {
			s.logger.Error("profile fetch failed", slog.String("user_id", string(id)), slog.String("error", err.Error()))
		}
		return
	}

	assignments, err := s.storage.GetRoleAssignmentsForUser(ctx, id)
	if err != nil {
		s.logger.Error("role assignment fetch failed", slog.String("user_id", string(id)), slog.String("error", err.Error()))
		return
	}

	var club *model.Club
	if profile.ClubID != "" {
		club, err = s.storage.GetClub(ctx, profile.ClubID)
		if err != nil && !errors.Is(err, model.ErrClubNotFound) {
			s.logger.Error("club fetch failed", slog.String("club_id", string(profile.ClubID)), slog.String("error", err.Error()))
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		// Identity changed while fetching; these results are stale
		return
	}
	s.profile = profile
	s.assignments = assignments
	if club != nil {
		s.activeClub.ID = club.ID
		s.activeClub.Name = club.Name
	}
}

// linkExistingRecords claims membership records matching the email:
// a household grants parent, each player record grants player, each
// staff record grants coach for its team. Absence of a match is not an
// error and individual failures only log.
func (s *Store) linkExistingRecords(ctx context.Context, userID model.UserID, email string) {
	var linkedClub model.ClubID

	household, err := s.storage.GetHouseholdByEmail(ctx, email)
	switch {
	case err == nil:
		household.OwnerUserID = userID
		if err := s.storage.SaveHousehold(ctx, household); err != nil {
			s.logger.Warn("household link failed", slog.String("error", err.Error()))
		} else {
			s.grantRole(ctx, userID, household.ClubID, model.RoleParent, "")
			linkedClub = household.ClubID
		}
	case !errors.Is(err, model.ErrHouseholdNotFound):
		s.logger.Warn("household lookup failed", slog.String("error", err.Error()))
	}

	players, err := s.storage.GetPlayerRecordsByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("player record lookup failed", slog.String("error", err.Error()))
	}
	for _, record := range players {
		record.OwnerUserID = userID
		if err := s.storage.SavePlayerRecord(ctx, record); err != nil {
			s.logger.Warn("player record link failed", slog.String("error", err.Error()))
			continue
		}
		s.grantRole(ctx, userID, record.ClubID, model.RolePlayer, "")
		if linkedClub == "" {
			linkedClub = record.ClubID
		}
	}

	staff, err := s.storage.GetTeamStaffByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("team staff lookup failed", slog.String("error", err.Error()))
	}
	for _, record := range staff {
		record.OwnerUserID = userID
		if err := s.storage.SaveTeamStaff(ctx, record); err != nil {
			s.logger.Warn("team staff link failed", slog.String("error", err.Error()))
			continue
		}
		s.grantRole(ctx, userID, record.ClubID, model.RoleCoach, record.TeamID)
		if linkedClub == "" {
			linkedClub = record.ClubID
		}
	}

	if linkedClub == "" {
		return
	}

	// Point the fresh profile at the club the linked records belong to
	s.mu.RLock()
	profile := s.profile
	s.mu.RUnlock()
	if profile == nil || profile.ClubID != "" {
		return
	}
	profile.ClubID = linkedClub
	profile.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveProfile(ctx, profile); err != nil {
		s.logger.Warn("profile club link failed", slog.String("error", err.Error()))
	}
}

// grantRole persists a role assignment created by the linking pass
func (s *Store) grantRole(ctx context.Context, userID model.UserID, clubID model.ClubID, role model.Role, teamID model.TeamID) {
	assignment := &model.RoleAssignment{
		ID:        "ra_" + s.random.String(12, assignmentIDAlphabet),
		UserID:    userID,
		ClubID:    clubID,
		Role:      role,
		TeamID:    teamID,
		CreatedAt: s.clock.Now(),
	}
	if err := s.storage.SaveRoleAssignment(ctx, assignment); err != nil {
		s.logger.Warn("role grant failed",
			slog.String("role", string(role)),
			slog.String("error", err.Error()),
		)
	}
}

// internal state helpers

func (s *Store) adoptIdentity(token string, userID model.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.identity = userID
	s.state = StateAuthenticated
	s.generation++
}

func (s *Store) setAuthenticating() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAuthenticating
	s.loading = true
}

func (s *Store) resetToAnonymousIfUnauthenticated() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == "" {
		s.state = StateAnonymous
	} else {
		s.state = StateAuthenticated
	}
}

func (s *Store) clearLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}
