package factory

import (
	"time"

	"github.com/pugroyal/pugroyal-go/internal/dependencies/mocks"
	"github.com/pugroyal/pugroyal-go/internal/dependencies/random"
	"github.com/pugroyal/pugroyal-go/internal/storage/memory"
	"github.com/pugroyal/pugroyal-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// MockClock allows tests to control time
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with in-memory storage
// and a controllable clock. The random source is real: start tile dealing
// retries on duplicate picks, so a constant mock source would never
// terminate.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	app := newWithDependencies(store, mockClock, random.New(), testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
