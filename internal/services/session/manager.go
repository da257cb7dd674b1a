package session

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/tmorey/clubdesk/internal/dependencies/clock"
	"github.com/tmorey/clubdesk/internal/dependencies/random"
	"github.com/tmorey/clubdesk/internal/services/authn"
	"github.com/tmorey/clubdesk/internal/storage"
)

// Manager tracks one session store per auth token so stateful session
// context (persona override, active club) survives across requests
// from the same client.
type Manager struct {
	storage storage.Storage
	auth    authn.Provider
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
	cfg     Config

	mu     sync.Mutex
	stores map[string]*Store
}

// NewManager creates a session manager
func NewManager(store storage.Storage, auth authn.Provider, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Manager{
		storage: store,
		auth:    auth,
		clock:   clk,
		random:  rnd,
		logger:  logger,
		cfg:     cfg,
		stores:  make(map[string]*Store),
	}
}

// NewStore creates a fresh anonymous session store
func (m *Manager) NewStore() *Store {
	return New(m.storage, m.auth, m.clock, m.random, m.cfg, m.logger)
}

// ForToken returns the session store for a token, running InitAuth on
// a fresh store when the token has not been seen. An invalid token
// yields an anonymous store, not an error.
func (m *Manager) ForToken(ctx context.Context, token string) *Store {
	if token != "" {
		m.mu.Lock()
		store, ok := m.stores[token]
		m.mu.Unlock()
		if ok {
			return store
		}
	}

	store := m.NewStore()
	store.InitAuth(ctx, token)

	if store.IsAuthenticated() {
		m.mu.Lock()
		m.stores[token] = store
		m.mu.Unlock()
	}
	return store
}

// Login authenticates credentials on a fresh store and tracks it under
// the issued token. The auth error propagates unchanged.
func (m *Manager) Login(ctx context.Context, email, password string) (*Store, error) {
	store := m.NewStore()
	if err := store.Login(ctx, email, password); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.stores[store.Token()] = store
	m.mu.Unlock()
	return store, nil
}

// Register creates an identity and profile on a fresh store and tracks
// it under the issued token.
func (m *Manager) Register(ctx context.Context, email, password, firstName, lastName string) (*Store, error) {
	store := m.NewStore()
	if err := store.Register(ctx, email, password, firstName, lastName); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.stores[store.Token()] = store
	m.mu.Unlock()
	return store, nil
}

// Logout resets and forgets the store for a token, if any
func (m *Manager) Logout(ctx context.Context, token string) {
	m.mu.Lock()
	store, ok := m.stores[token]
	delete(m.stores, token)
	m.mu.Unlock()

	if ok {
		store.Logout(ctx)
	}
}
