package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/promptduel/promptduel-go/internal/ai"
	"github.com/promptduel/promptduel-go/internal/ai/openai"
	"github.com/promptduel/promptduel-go/internal/dependencies/clock"
	"github.com/promptduel/promptduel-go/internal/dependencies/random"
	"github.com/promptduel/promptduel-go/internal/events"
	"github.com/promptduel/promptduel-go/internal/services/matchmaking"
	"github.com/promptduel/promptduel-go/internal/services/scenario"
	"github.com/promptduel/promptduel-go/internal/services/session"
	"github.com/promptduel/promptduel-go/internal/storage"
	"github.com/promptduel/promptduel-go/internal/storage/memory"
	redisstorage "github.com/promptduel/promptduel-go/internal/storage/redis"
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
	Clock      clock.Clock
	Random     random.Random
	AIProvider ai.Provider

	// Services
	AIService         *ai.Service
	ScenarioService   *scenario.Service
	Matchmaking       *matchmaking.Service
	SessionController *session.Controller
	HubManager        *events.HubManager
	Broadcaster       *events.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// OpenAI settings for the AI provider
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	// SessionConfig holds the game rules (zero value uses defaults)
	SessionConfig session.Config
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

	provider := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)

	sessionCfg := cfg.SessionConfig
	if sessionCfg.TurnLimit == 0 {
		sessionCfg = session.DefaultConfig()
	}

	return newWithDependencies(store, clock.New(), random.New(), provider, sessionCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	provider ai.Provider,
	sessionCfg session.Config,
	logger *slog.Logger,
) *App {
	// Create services
	aiService := ai.New(provider, logger)
	scenarioService := scenario.New(rnd, logger)
	matchmakingService := matchmaking.New(clk, logger)
	hubManager := events.NewHubManager(logger)
	broadcaster := events.NewBroadcaster(hubManager, logger)
	sessionController := session.NewController(store, aiService, scenarioService, broadcaster, clk, rnd, sessionCfg, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		AIProvider:        provider,
		AIService:         aiService,
		ScenarioService:   scenarioService,
		Matchmaking:       matchmakingService,
		SessionController: sessionController,
		HubManager:        hubManager,
		Broadcaster:       broadcaster,
	}
}
