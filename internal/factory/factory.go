package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/tmorey/clubdesk/internal/dependencies/clock"
	"github.com/tmorey/clubdesk/internal/dependencies/random"
	"github.com/tmorey/clubdesk/internal/services/authn"
	"github.com/tmorey/clubdesk/internal/services/club"
	"github.com/tmorey/clubdesk/internal/services/session"
	"github.com/tmorey/clubdesk/internal/storage"
	"github.com/tmorey/clubdesk/internal/storage/memory"
	redisstorage "github.com/tmorey/clubdesk/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AuthService    *authn.Service
	SessionManager *session.Manager
	ClubService    *club.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to authn.DefaultConfig()
	AuthConfig authn.Config
	// SessionConfig holds configuration for session stores (optional)
	// If zero value, defaults to session.DefaultConfig()
	SessionConfig session.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = authn.DefaultConfig()
	}
	sessionCfg := cfg.SessionConfig
	if sessionCfg.ReconcileDelay == 0 {
		sessionCfg = session.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, authCfg, sessionCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	authCfg authn.Config,
	sessionCfg session.Config,
	logger *slog.Logger,
) *App {
	authService := authn.New(store, clk, authCfg)
	sessionManager := session.NewManager(store, authService, clk, rnd, sessionCfg, logger)
	clubService := club.New(store, clk, rnd, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		AuthService:    authService,
		SessionManager: sessionManager,
		ClubService:    clubService,
	}
}
