package factory

import (
	"time"

	"github.com/covidslayer/covidslayer-go/internal/dependencies/mocks"
	"github.com/covidslayer/covidslayer-go/internal/services/auth"
	"github.com/covidslayer/covidslayer-go/internal/storage/memory"
	"github.com/covidslayer/covidslayer-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	authCfg := auth.Config{
		Secret:        "test-secret",
		TokenDuration: time.Hour,
	}

	app := newWithDependencies(store, mockClock, mockRandom, authCfg, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
