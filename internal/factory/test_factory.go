package factory

import (
	"time"

	"github.com/promptduel/promptduel-go/internal/dependencies/clock"
	"github.com/promptduel/promptduel-go/internal/dependencies/mocks"
	"github.com/promptduel/promptduel-go/internal/dependencies/random"
	"github.com/promptduel/promptduel-go/internal/services/session"
	"github.com/promptduel/promptduel-go/internal/storage/memory"
	"github.com/promptduel/promptduel-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// MockProvider scripts the AI responses
	MockProvider *mocks.MockProvider
}

// NewTestApp creates an App configured for testing: in-memory storage, a
// scripted AI provider and a fast transition countdown. The clock is real
// because the transition timer ticks in wall-clock time.
func NewTestApp() *TestApp {
	store := memory.New()
	provider := mocks.NewMockProvider()

	cfg := session.Config{
		TurnLimit:        3,
		MaxMessageLength: 250,
		TransitionTicks:  2,
		TickInterval:     10 * time.Millisecond,
	}

	app := newWithDependencies(store, clock.New(), random.New(), provider, cfg, testutil.NopLogger())

	return &TestApp{
		App:          app,
		MockProvider: provider,
	}
}
