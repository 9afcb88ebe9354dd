package rategate

import (
	"fmt"

	"github.com/TomasKoutek/stlouisfed/rategate/backends"
	"github.com/TomasKoutek/stlouisfed/rategate/backends/memory"
	"github.com/TomasKoutek/stlouisfed/rategate/backends/postgres"
	"github.com/TomasKoutek/stlouisfed/rategate/backends/redis"
)

type config struct {
	quota       Quota
	key         string
	storage     backends.Backend
	tokenBucket bool
}

// Option is a functional option for configuring the gate
type Option func(*config) error

// WithQuota sets the call quota. Defaults to DefaultQuota (120 calls / 60 s).
func WithQuota(quota Quota) Option {
	return func(c *config) error {
		c.quota = quota
		return nil
	}
}

// WithKey sets the storage key under which the admission log is kept. Gates
// sharing a backend and a key share one ceiling.
func WithKey(key string) Option {
	return func(c *config) error {
		if err := validateKey(key); err != nil {
			return err
		}
		c.key = key
		return nil
	}
}

// WithMemoryBackend configures the gate to use in-process storage (default)
func WithMemoryBackend() Option {
	return func(c *config) error {
		c.storage = memory.New()
		return nil
	}
}

// WithRedisBackend configures the gate to use Redis storage
func WithRedisBackend(redisConfig redis.Config) Option {
	return func(c *config) error {
		storage, err := redis.New(redisConfig)
		if err != nil {
			return fmt.Errorf("failed to create Redis storage: %w", err)
		}
		c.storage = storage
		return nil
	}
}

// WithPostgresBackend configures the gate to use PostgreSQL storage
func WithPostgresBackend(postgresConfig postgres.Config) Option {
	return func(c *config) error {
		storage, err := postgres.New(postgresConfig)
		if err != nil {
			return fmt.Errorf("failed to create PostgreSQL storage: %w", err)
		}
		c.storage = storage
		return nil
	}
}

// WithBackend configures the gate to use a custom storage backend
func WithBackend(storage backends.Backend) Option {
	return func(c *config) error {
		c.storage = storage
		return nil
	}
}

// WithTokenBucket selects the token-bucket gate instead of the sliding
// window log. It admits bursts the window log would spread out and cannot
// share state through a storage backend.
func WithTokenBucket() Option {
	return func(c *config) error {
		c.tokenBucket = true
		return nil
	}
}

// New creates a gate with functional options. Without options it enforces
// DefaultQuota with a sliding-window log in process memory.
func New(opts ...Option) (Gate, error) {
	cfg := config{
		quota: DefaultQuota,
		key:   "default",
	}

	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if err := cfg.quota.Validate(); err != nil {
		return nil, err
	}

	if cfg.tokenBucket {
		if cfg.storage != nil {
			return nil, ErrTokenBucketStorage
		}
		return newTokenBucketGate(cfg.quota), nil
	}

	if cfg.storage == nil {
		cfg.storage = memory.New()
	}

	return &slidingGate{
		quota:   cfg.quota,
		storage: cfg.storage,
		key:     cfg.key,
	}, nil
}
