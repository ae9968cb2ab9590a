package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/covidslayer/covidslayer-go/internal/dependencies/clock"
	"github.com/covidslayer/covidslayer-go/internal/dependencies/random"
	"github.com/covidslayer/covidslayer-go/internal/services/auth"
	"github.com/covidslayer/covidslayer-go/internal/services/game"
	"github.com/covidslayer/covidslayer-go/internal/services/stats"
	"github.com/covidslayer/covidslayer-go/internal/storage"
	"github.com/covidslayer/covidslayer-go/internal/storage/memory"
	redisstorage "github.com/covidslayer/covidslayer-go/internal/storage/redis"
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
	GameEngine   *game.Engine
	StatsService *stats.Service
	AuthService  *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
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

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.TokenDuration == 0 {
		authCfg.TokenDuration = auth.DefaultConfig().TokenDuration
	}

	return newWithDependencies(store, clk, rnd, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config, logger *slog.Logger) *App {
	gameEngine := game.NewEngine(store, clk, rnd, logger)
	statsService := stats.New(store, logger)
	authService := auth.New(store, clk, authCfg)

	return &App{
		Storage:      store,
		Clock:        clk,
		Random:       rnd,
		GameEngine:   gameEngine,
		StatsService: statsService,
		AuthService:  authService,
	}
}
