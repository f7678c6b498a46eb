package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/piranhas-client/internal/dependencies/clock"
	"github.com/mcoot/piranhas-client/internal/dependencies/random"
	"github.com/mcoot/piranhas-client/internal/model"
	"github.com/mcoot/piranhas-client/internal/observer"
	"github.com/mcoot/piranhas-client/internal/protocol"
	"github.com/mcoot/piranhas-client/internal/services/bot"
	"github.com/mcoot/piranhas-client/internal/storage"
	"github.com/mcoot/piranhas-client/internal/storage/memory"
	redisstorage "github.com/mcoot/piranhas-client/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Cache storage.Cache

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	BotService *bot.Service
	Tracker    *observer.Tracker
	Hub        *observer.Hub // nil unless events are enabled

	logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the evaluation cache ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Seed makes the bot's choices reproducible when non-nil
	Seed *uint64
	// MoveTimeout bounds each move search; zero uses bot.DefaultMoveTimeout
	MoveTimeout time.Duration
	// EnableEvents starts a hub so game updates reach websocket viewers
	EnableEvents bool
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var cache storage.Cache
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		cache = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisCache, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		cache = redisCache
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	var rnd random.Random = random.New()
	if cfg.Seed != nil {
		rnd = random.NewSeeded(*cfg.Seed)
	}

	var hub *observer.Hub
	if cfg.EnableEvents {
		hub = observer.NewHub(logger)
		go hub.Run()
	}

	return newWithDependencies(cache, clk, rnd, hub, cfg.MoveTimeout, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	cache storage.Cache,
	clk clock.Clock,
	rnd random.Random,
	hub *observer.Hub,
	moveTimeout time.Duration,
	logger *slog.Logger,
) *App {
	strategies := map[string]bot.Strategy{
		model.BotStrategyRandom: bot.NewRandomStrategy(rnd),
		model.BotStrategySwarm:  bot.NewSwarmStrategy(cache, rnd, logger),
	}

	return &App{
		Cache:      cache,
		Clock:      clk,
		Random:     rnd,
		BotService: bot.NewService(strategies, moveTimeout, clk, logger),
		Tracker:    observer.NewTracker(hub, clk, logger),
		Hub:        hub,
		logger:     logger,
	}
}

// NewSession creates a session playing with the named strategy and
// reporting to the tracker
func (a *App) NewSession(transport protocol.Transport, cfg protocol.Config, strategy string) (*protocol.Session, error) {
	newLogic, err := a.BotService.LogicFactory(strategy)
	if err != nil {
		return nil, err
	}
	return protocol.NewSession(transport, cfg, newLogic, a.logger, a.Tracker), nil
}

// Close releases the hub and the cache
func (a *App) Close() error {
	if a.Hub != nil {
		a.Hub.Close()
	}
	return a.Cache.Close()
}
