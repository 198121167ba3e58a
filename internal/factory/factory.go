package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/dotsgame/internal/dependencies/clock"
	"github.com/mcoot/dotsgame/internal/services/board"
	"github.com/mcoot/dotsgame/internal/services/game"
	"github.com/mcoot/dotsgame/internal/storage"
	"github.com/mcoot/dotsgame/internal/storage/memory"
	redisstorage "github.com/mcoot/dotsgame/internal/storage/redis"
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
	Clock clock.Clock

	// Services
	BoardService   *board.Service
	GameController *game.Controller
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
	// DisableBoardCache makes every board request replay the game's history
	DisableBoardCache bool
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.NewWithClock(clk)
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore.WithClock(clk)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	var cache *board.Cache
	if !cfg.DisableBoardCache {
		cache = board.NewCache()
	}

	logger.Info("storage ready",
		slog.String("type", storageType),
		slog.Bool("board_cache", cache != nil),
	)

	return newWithDependencies(store, clk, cache, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, cache *board.Cache, logger *slog.Logger) *App {
	boardService := board.New(store, cache, logger)
	gameController := game.NewController(store, boardService, clk, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		BoardService:   boardService,
		GameController: gameController,
	}
}
