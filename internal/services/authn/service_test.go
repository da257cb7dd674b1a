package authn

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tmorey/clubdesk/internal/dependencies/mocks"
	"github.com/tmorey/clubdesk/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, DefaultConfig())
	s.ctx = context.Background()
}

// SignUp tests

func (s *ServiceSuite) TestSignUpSucceeds() {
	session, err := s.service.SignUp(s.ctx, "ann@example.com", "password123")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.NotEmpty(session.UserID)
}

func (s *ServiceSuite) TestSignUpPersistsHashedCredential() {
	_, err := s.service.SignUp(s.ctx, "ann@example.com", "password123")
	s.Require().NoError(err)

	credential, err := s.storage.GetCredentialByEmail(s.ctx, "ann@example.com")
	s.Require().NoError(err)
	s.NotEmpty(credential.PasswordHash)
	s.NotEqual("password123", credential.PasswordHash)
}

func (s *ServiceSuite) TestSignUpNormalizesEmail() {
	_, err := s.service.SignUp(s.ctx, "  Ann@Example.COM ", "password123")
	s.Require().NoError(err)

	_, err = s.storage.GetCredentialByEmail(s.ctx, "ann@example.com")
	s.NoError(err)
}

func (s *ServiceSuite) TestSignUpFailsIfEmailExists() {
	_, _ = s.service.SignUp(s.ctx, "ann@example.com", "password123")

	_, err := s.service.SignUp(s.ctx, "ann@example.com", "different")
	s.ErrorIs(err, ErrEmailExists)
}

// SignInWithPassword tests

func (s *ServiceSuite) TestSignInSucceeds() {
	signup, _ := s.service.SignUp(s.ctx, "ann@example.com", "password123")

	session, err := s.service.SignInWithPassword(s.ctx, "ann@example.com", "password123")
	s.Require().NoError(err)
	s.Equal(signup.UserID, session.UserID)
	s.NotEqual(signup.Token, session.Token)
}

func (s *ServiceSuite) TestSignInFailsWithWrongPassword() {
	_, _ = s.service.SignUp(s.ctx, "ann@example.com", "password123")

	_, err := s.service.SignInWithPassword(s.ctx, "ann@example.com", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestSignInFailsWithUnknownEmail() {
	_, err := s.service.SignInWithPassword(s.ctx, "nobody@example.com", "password123")
	s.ErrorIs(err, ErrInvalidCredentials)
}

// GetSession tests

func (s *ServiceSuite) TestGetSessionSucceeds() {
	session, _ := s.service.SignUp(s.ctx, "ann@example.com", "password123")

	userID, err := s.service.GetSession(s.ctx, session.Token)
	s.Require().NoError(err)
	s.Equal(session.UserID, userID)
}

func (s *ServiceSuite) TestGetSessionFailsWithUnknownToken() {
	_, err := s.service.GetSession(s.ctx, "bogus")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestGetSessionFailsWhenExpired() {
	session, _ := s.service.SignUp(s.ctx, "ann@example.com", "password123")

	s.clock.Advance(25 * time.Hour)

	_, err := s.service.GetSession(s.ctx, session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

// SignOut tests

func (s *ServiceSuite) TestSignOutInvalidatesToken() {
	session, _ := s.service.SignUp(s.ctx, "ann@example.com", "password123")

	s.Require().NoError(s.service.SignOut(s.ctx, session.Token))

	_, err := s.service.GetSession(s.ctx, session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestCleanExpiredSessions() {
	old, _ := s.service.SignUp(s.ctx, "ann@example.com", "password123")
	s.clock.Advance(25 * time.Hour)
	fresh, _ := s.service.SignInWithPassword(s.ctx, "ann@example.com", "password123")

	s.service.CleanExpiredSessions()

	_, err := s.service.GetSession(s.ctx, old.Token)
	s.ErrorIs(err, ErrInvalidSession)
	_, err = s.service.GetSession(s.ctx, fresh.Token)
	s.NoError(err)
}
