package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/mcoot/dotsgame/internal/api"
	redisstorage "github.com/mcoot/dotsgame/internal/storage/redis"
)

// Config is the server configuration, read from a YAML file and overridden by environment
type Config struct {
	LogLevel string  `yaml:"log-level" env:"DOTS_LOG_LEVEL" env-default:"info"`
	HTTP     HTTP    `yaml:"http"`
	Storage  Storage `yaml:"storage"`
}

type HTTP struct {
	Host            string        `yaml:"host" env:"DOTS_HTTP_HOST" env-default:""`
	Port            int           `yaml:"port" env:"DOTS_HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read-timeout" env:"DOTS_HTTP_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write-timeout" env:"DOTS_HTTP_WRITE_TIMEOUT" env-default:"15s"`
	ShutdownTimeout time.Duration `yaml:"shutdown-timeout" env:"DOTS_HTTP_SHUTDOWN_TIMEOUT" env-default:"30s"`
}

type Storage struct {
	Type  string `yaml:"type" env:"DOTS_STORAGE_TYPE" env-default:"memory"`
	Redis Redis  `yaml:"redis"`

	// An env-default would override an explicit false, so the switch is an opt-out
	DisableBoardCache bool `yaml:"disable-board-cache" env:"DOTS_DISABLE_BOARD_CACHE"`
}

type Redis struct {
	URL          string        `yaml:"url" env:"DOTS_REDIS_URL" env-default:"redis://localhost:6379"`
	PoolSize     int           `yaml:"pool-size" env:"DOTS_REDIS_POOL_SIZE" env-default:"10"`
	MinIdleConns int           `yaml:"min-idle-conns" env:"DOTS_REDIS_MIN_IDLE_CONNS" env-default:"2"`
	GameTTL      time.Duration `yaml:"game-ttl" env:"DOTS_REDIS_GAME_TTL" env-default:"0s"`
}

// Load reads path if it exists and applies environment overrides. An empty path or a
// missing file means environment only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			if err := cleanenv.ReadConfig(path, cfg); err != nil {
				return nil, fmt.Errorf("unable to load config file: %w", err)
			}
			return cfg, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("unable to stat config file: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("unable to read config from environment: %w", err)
	}
	return cfg, nil
}

// MustLoad is Load for process startup
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Level parses LogLevel, falling back to info
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// ServerConfig converts the HTTP section for api.NewServer
func (h HTTP) ServerConfig() api.ServerConfig {
	return api.ServerConfig{
		Host:            h.Host,
		Port:            h.Port,
		ReadTimeout:     h.ReadTimeout,
		WriteTimeout:    h.WriteTimeout,
		ShutdownTimeout: h.ShutdownTimeout,
	}
}

// StorageConfig converts the redis section for the redis storage
func (r Redis) StorageConfig() redisstorage.Config {
	return redisstorage.Config{
		URL:          r.URL,
		PoolSize:     r.PoolSize,
		MinIdleConns: r.MinIdleConns,
		GameTTL:      r.GameTTL,
	}
}
