package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tmorey/clubdesk/internal/dependencies/mocks"
	"github.com/tmorey/clubdesk/internal/services/authn"
	"github.com/tmorey/clubdesk/internal/storage/memory"
)

type ManagerSuite struct {
	suite.Suite
	mem     *memory.Storage
	auth    *authn.Service
	manager *Manager
	ctx     context.Context
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.mem = memory.New()
	clk := mocks.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s.auth = authn.New(s.mem, clk, authn.DefaultConfig())

	cfg := DefaultConfig()
	cfg.ReconcileDelay = 0
	s.manager = NewManager(s.mem, s.auth, clk, mocks.NewMockRandom(), cfg, nil)
	s.ctx = context.Background()
}

func (s *ManagerSuite) TestForTokenAnonymousForUnknownToken() {
	store := s.manager.ForToken(s.ctx, "bogus")
	s.False(store.IsAuthenticated())
}

func (s *ManagerSuite) TestLoginTracksStoreUnderToken() {
	_, err := s.manager.Register(s.ctx, "ann@example.com", "password123", "Ann", "Smith")
	s.Require().NoError(err)

	store, err := s.manager.Login(s.ctx, "ann@example.com", "password123")
	s.Require().NoError(err)

	again := s.manager.ForToken(s.ctx, store.Token())
	s.Same(store, again)
}

func (s *ManagerSuite) TestForTokenSurvivesSessionStateChanges() {
	store, err := s.manager.Register(s.ctx, "ann@example.com", "password123", "Ann", "Smith")
	s.Require().NoError(err)
	s.Require().NoError(store.SetPersona("treasurer"))

	// The persona override must survive a second request on the token
	again := s.manager.ForToken(s.ctx, store.Token())
	s.Equal("treasurer", again.CurrentLabel())
}

func (s *ManagerSuite) TestForTokenAdoptsProviderSession() {
	// A token issued by the provider directly (not via the manager)
	// still resolves to an authenticated store
	sess, err := s.auth.SignUp(s.ctx, "ann@example.com", "password123")
	s.Require().NoError(err)

	store := s.manager.ForToken(s.ctx, sess.Token)
	s.True(store.IsAuthenticated())
	s.Equal(sess.UserID, store.Identity())
}

func (s *ManagerSuite) TestLogoutForgetsStore() {
	store, err := s.manager.Register(s.ctx, "ann@example.com", "password123", "Ann", "Smith")
	s.Require().NoError(err)
	token := store.Token()

	s.manager.Logout(s.ctx, token)

	s.False(store.IsAuthenticated())
	again := s.manager.ForToken(s.ctx, token)
	s.NotSame(store, again)
	s.False(again.IsAuthenticated())
}

func (s *ManagerSuite) TestLoginErrorPropagates() {
	_, err := s.manager.Login(s.ctx, "nobody@example.com", "password123")
	s.ErrorIs(err, authn.ErrInvalidCredentials)
}
