package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/umalmyha/customers-viewer/internal/cache"
)

type AppSyncCfg struct {
	Endpoint string        `env:"APPSYNC_GRAPHQL_ENDPOINT"`
	APIKey   string        `env:"APPSYNC_API_KEY"`
	Timeout  time.Duration `env:"APPSYNC_TIMEOUT" envDefault:"10s"`
}

type HTTPCfg struct {
	Port            int           `env:"HTTP_PORT" envDefault:"3000"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RateLimit       float64       `env:"HTTP_RATE_LIMIT" envDefault:"20"`
}

type LogCfg struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

type CacheCfg struct {
	Backend     cache.Backend     `env:"CACHE_BACKEND" envDefault:"memory"`
	FetchPolicy cache.FetchPolicy `env:"CACHE_FETCH_POLICY" envDefault:"network-only"`
	TimeToLive  time.Duration     `env:"CACHE_TTL" envDefault:"10m"`
}

type RedisCfg struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type SessionCfg struct {
	IdleTimeout   time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1m"`
}

type Config struct {
	AppSyncCfg AppSyncCfg
	HTTPCfg    HTTPCfg
	LogCfg     LogCfg
	CacheCfg   CacheCfg
	RedisCfg   RedisCfg
	SessionCfg SessionCfg
}

// Build reads configuration from environment, variables from .env files are loaded first if files exist
func Build(dotenvFiles ...string) (Config, error) {
	var cfg Config

	if err := godotenv.Load(dotenvFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load .env file - %w", err)
	}

	opts := env.Options{RequiredIfNoDef: true}
	if err := env.Parse(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("failed to parse environment variables - %w", err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (cfg Config) validate() error {
	if _, err := cache.ParseFetchPolicy(string(cfg.CacheCfg.FetchPolicy)); err != nil {
		return fmt.Errorf("invalid CACHE_FETCH_POLICY - %w", err)
	}

	switch cfg.CacheCfg.Backend {
	case cache.BackendMemory, cache.BackendRedis:
	default:
		return fmt.Errorf("invalid CACHE_BACKEND - unsupported backend %q", cfg.CacheCfg.Backend)
	}

	if cfg.SessionCfg.IdleTimeout <= 0 {
		return errors.New("invalid SESSION_IDLE_TIMEOUT - must be positive")
	}

	if cfg.SessionCfg.SweepInterval <= 0 {
		return errors.New("invalid SESSION_SWEEP_INTERVAL - must be positive")
	}
	return nil
}
