package factory

import (
	"time"

	"github.com/tmorey/clubdesk/internal/dependencies/mocks"
	"github.com/tmorey/clubdesk/internal/services/authn"
	"github.com/tmorey/clubdesk/internal/services/session"
	"github.com/tmorey/clubdesk/internal/storage/memory"
	"github.com/tmorey/clubdesk/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked
// dependencies and synchronous reconcile fetches
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	sessionCfg := session.DefaultConfig()
	sessionCfg.ReconcileDelay = 0

	app := newWithDependencies(store, mockClock, mockRandom, authn.DefaultConfig(), sessionCfg, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
