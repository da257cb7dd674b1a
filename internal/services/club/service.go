package club

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/tmorey/clubdesk/internal/dependencies/clock"
	"github.com/tmorey/clubdesk/internal/dependencies/random"
	"github.com/tmorey/clubdesk/internal/model"
	"github.com/tmorey/clubdesk/internal/storage"
)

const (
	// SlugSuffixLength is the number of random digits appended to a
	// club slug for uniqueness
	SlugSuffixLength = 4

	// clubIDAlphabet is used for generated club and assignment ids
	clubIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	// Defaults applied when club details are omitted
	DefaultSport = "football"
	DefaultColor = "#1d4ed8"
)

// slugStrip removes everything a URL-safe slug cannot carry
var slugStrip = regexp.MustCompile(`[^a-z0-9_-]+`)

// ActiveSetter receives the newly created club as the session's active
// club. Satisfied by the session store.
type ActiveSetter interface {
	SetActiveClub(club model.Club)
}

// Params holds the details for a new club. Name is required by caller
// convention; the rest fall back to defaults.
type Params struct {
	Name   string
	Sport  string
	County string
	Color  string
}

// Service creates clubs and wires their creators in as admins
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new club Service
func New(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Service{
		storage: store,
		clock:   clk,
		random:  rnd,
		logger:  logger,
	}
}

// CreateClub persists a new club with a unique URL-safe slug. When a
// creator is supplied it is granted an admin assignment for the club
// and its profile's club reference is rewritten. When a session is
// supplied the new club becomes its active club. Any persistence
// failure aborts the operation and surfaces to the caller; rows
// already written are not rolled back.
func (s *Service) CreateClub(ctx context.Context, params Params, creator model.UserID, sess ActiveSetter) (*model.Club, error) {
	slug, err := s.uniqueSlug(ctx, params.Name)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	club := &model.Club{
		ID:        model.ClubID("c_" + s.random.String(16, clubIDAlphabet)),
		Name:      params.Name,
		Slug:      slug,
		Sport:     params.Sport,
		County:    params.County,
		Color:     params.Color,
		CreatedAt: now,
	}
	if club.Sport == "" {
		club.Sport = DefaultSport
	}
	if club.Color == "" {
		club.Color = DefaultColor
	}

	if err := s.storage.SaveClub(ctx, club); err != nil {
		return nil, err
	}

	if creator != "" {
		assignment := &model.RoleAssignment{
			ID:        "ra_" + s.random.String(12, clubIDAlphabet),
			UserID:    creator,
			ClubID:    club.ID,
			Role:      model.RoleAdmin,
			CreatedAt: now,
		}
		if err := s.storage.SaveRoleAssignment(ctx, assignment); err != nil {
			return nil, err
		}

		profile, err := s.storage.GetProfile(ctx, creator)
		if err != nil {
			return nil, err
		}
		profile.ClubID = club.ID
		profile.UpdatedAt = now
		if err := s.storage.SaveProfile(ctx, profile); err != nil {
			return nil, err
		}
	}

	if sess != nil {
		sess.SetActiveClub(*club)
	}

	s.logger.Info("club created",
		slog.String("club_id", string(club.ID)),
		slog.String("slug", club.Slug),
	)
	return club, nil
}

// Updates holds the mutable club settings. Empty fields are left
// unchanged.
type Updates struct {
	Name   string
	Sport  string
	County string
	Color  string
}

// GetClub fetches a club by id
func (s *Service) GetClub(ctx context.Context, id model.ClubID) (*model.Club, error) {
	return s.storage.GetClub(ctx, id)
}

// UpdateClub applies settings changes to an existing club. The slug is
// not re-derived on rename, so links to the club keep working.
func (s *Service) UpdateClub(ctx context.Context, id model.ClubID, updates Updates) (*model.Club, error) {
	club, err := s.storage.GetClub(ctx, id)
	if err != nil {
		return nil, err
	}

	if updates.Name != "" {
		club.Name = updates.Name
	}
	if updates.Sport != "" {
		club.Sport = updates.Sport
	}
	if updates.County != "" {
		club.County = updates.County
	}
	if updates.Color != "" {
		club.Color = updates.Color
	}

	if err := s.storage.SaveClub(ctx, club); err != nil {
		return nil, err
	}

	s.logger.Info("club updated", slog.String("club_id", string(club.ID)))
	return club, nil
}

// uniqueSlug derives the URL-safe slug for a club name plus a short
// numeric suffix, retrying until the slug is unused
func (s *Service) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := Slugify(name)

	for {
		slug := base + "-" + s.random.String(SlugSuffixLength, random.DigitAlphabet)
		exists, err := s.storage.ClubSlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
	}
}

// Slugify lowercases a name, turns spaces into dashes and strips
// everything else that is not URL-safe
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")
	return slugStrip.ReplaceAllString(slug, "")
}
