package authn

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tmorey/clubdesk/internal/dependencies/clock"
	"github.com/tmorey/clubdesk/internal/model"
	"github.com/tmorey/clubdesk/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrEmailExists        = errors.New("email already registered")
)

// Session represents an authenticated auth-provider session
type Session struct {
	Token     string
	UserID    model.UserID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Provider is the authentication collaborator the session store talks
// to. Implementations own credential checks and session tokens; the
// session store never sees passwords after handing them over.
type Provider interface {
	// GetSession resolves a token to the identity it was issued for
	GetSession(ctx context.Context, token string) (model.UserID, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, token string) error
}

// Service is the storage-backed Provider implementation
type Service struct {
	storage storage.Storage
	clock   clock.Clock

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// Ensure Service implements Provider
var _ Provider = (*Service)(nil)

// SignUp creates a new identity with the given credentials
func (s *Service) SignUp(ctx context.Context, email, password string) (*Session, error) {
	email = NormalizeEmail(email)

	_, err := s.storage.GetCredentialByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailExists
	}
	if !errors.Is(err, model.ErrCredentialNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	credential := &model.Credential{
		UserID:       model.UserID(s.generateID("u_")),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveCredential(ctx, credential); err != nil {
		return nil, err
	}

	return s.createSession(credential.UserID), nil
}

// SignInWithPassword authenticates credentials and creates a session
func (s *Service) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	credential, err := s.storage.GetCredentialByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, model.ErrCredentialNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.createSession(credential.UserID), nil
}

// GetSession resolves a token to an identity, expiring stale sessions
func (s *Service) GetSession(ctx context.Context, token string) (model.UserID, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return "", ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return "", ErrInvalidSession
	}

	return session.UserID, nil
}

// SignOut removes a session
func (s *Service) SignOut(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

// createSession creates a new session for an identity
func (s *Service) createSession(userID model.UserID) *Session {
	token := s.generateID("sess_")
	now := s.clock.Now()

	session := &Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session
}

// generateID generates a random ID with a prefix
func (s *Service) generateID(prefix string) string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return prefix + base64.RawURLEncoding.EncodeToString(b)
}

// NormalizeEmail canonicalizes an email for storage and lookup
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
