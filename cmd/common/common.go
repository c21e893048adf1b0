// Package common provides shared configuration handling for the scoring API
// binaries: the YAML config shape, defaults, the logger setup and the store
// backend factory.
package common

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/WeirdIdea/OTUS-06/store"
)

// Store backend names accepted in configuration.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// StoreConfig selects and configures the key-value backend.
type StoreConfig struct {
	// Backend is one of "memory", "redis" or "postgres".
	Backend  string               `yaml:"backend"`
	Redis    store.RedisConfig    `yaml:"redis"`
	Postgres store.PostgresConfig `yaml:"postgres"`
}

// LogConfig shapes the process logger.
type LogConfig struct {
	JSON  bool `yaml:"json"`
	Debug bool `yaml:"debug"`
}

// Config is the full YAML configuration of a scoring API binary.
type Config struct {
	ListenAddr  string `yaml:"listen_addr"`
	MetricsAddr string `yaml:"metrics_addr"`
	EnablePprof bool   `yaml:"enable_pprof"`

	DrainDuration            time.Duration `yaml:"drain_duration"`
	GracefulShutdownDuration time.Duration `yaml:"graceful_shutdown_duration"`
	ReadTimeout              time.Duration `yaml:"read_timeout"`
	WriteTimeout             time.Duration `yaml:"write_timeout"`

	Log   LogConfig   `yaml:"log"`
	Store StoreConfig `yaml:"store"`
}

// DefaultConfig returns a config suitable for local development: an
// in-memory store and plain-text logging.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:               ":8080",
		MetricsAddr:              ":8090",
		DrainDuration:            5 * time.Second,
		GracefulShutdownDuration: 10 * time.Second,
		ReadTimeout:              15 * time.Second,
		WriteTimeout:             15 * time.Second,
		Store: StoreConfig{
			Backend: BackendMemory,
			Redis: store.RedisConfig{
				Addr:    "localhost:6379",
				Timeout: 3 * time.Second,
			},
			Postgres: store.PostgresConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "postgres",
				Database: "scoring",
				SSLMode:  "disable",
			},
		},
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(body, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// NewLogger builds the process logger from the log configuration.
func NewLogger(cfg LogConfig) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// NewStore builds the configured key-value backend.
func NewStore(cfg StoreConfig, log *slog.Logger) (store.Store, error) {
	switch cfg.Backend {
	case BackendMemory, "":
		return store.NewMemoryStore(), nil
	case BackendRedis:
		return store.NewRedisStore(cfg.Redis, log)
	case BackendPostgres:
		return store.NewPostgresStore(&cfg.Postgres, log)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
