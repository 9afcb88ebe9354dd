package stlouisfed

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/TomasKoutek/stlouisfed/internal/api"
	"github.com/TomasKoutek/stlouisfed/rategate"
)

// FRED is a client for the FRED and ALFRED economic data services hosted on
// api.stlouisfed.org. All calls pass through a shared rate gate before any
// request leaves the process.
type FRED struct {
	client *api.Client

	// Default real-time period applied when a caller leaves the dates
	// unset: today/today for FRED, the full archival period for ALFRED.
	realtimeStart func() time.Time
	realtimeEnd   func() time.Time
}

type clientConfig struct {
	apiKey      string
	baseURL     string
	httpClient  *http.Client
	gate        rategate.Gate
	gateQuota   rategate.Quota
	gateEnabled bool
	logger      *slog.Logger
}

// Option is a functional option for configuring the client
type Option func(*clientConfig) error

// WithAPIKey sets the API key. Keys are issued at
// https://fred.stlouisfed.org/docs/api/api_key.html and are 32 character
// alphanumeric strings; upper case input is folded down.
func WithAPIKey(key string) Option {
	return func(c *clientConfig) error {
		if err := validateAPIKey(key); err != nil {
			return err
		}
		c.apiKey = strings.ToLower(key)
		return nil
	}
}

// WithQuota replaces the default call quota of 120 calls per 60 seconds.
func WithQuota(quota rategate.Quota) Option {
	return func(c *clientConfig) error {
		c.gateQuota = quota
		return nil
	}
}

// WithoutRateLimit disables client-side throttling. The service still
// enforces its own ceiling and answers violations with error status 429
// (or 420 for bursts).
func WithoutRateLimit() Option {
	return func(c *clientConfig) error {
		c.gateEnabled = false
		return nil
	}
}

// WithGate supplies a pre-built gate, for sharing one quota between several
// clients or processes through a storage backend.
func WithGate(gate rategate.Gate) Option {
	return func(c *clientConfig) error {
		c.gate = gate
		return nil
	}
}

// WithHTTPClient replaces the default transport.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) error {
		c.httpClient = client
		return nil
	}
}

// WithBaseURL overrides the production host (tests).
func WithBaseURL(baseURL string) Option {
	return func(c *clientConfig) error {
		c.baseURL = baseURL
		return nil
	}
}

// WithLogger sets the logger for request debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) error {
		c.logger = logger
		return nil
	}
}

// envConfig mirrors the configurable surface onto environment variables.
type envConfig struct {
	APIKey             string        `env:"STLOUISFED_API_KEY"`
	RateLimiterEnabled bool          `env:"STLOUISFED_RATELIMITER_ENABLED" envDefault:"true"`
	RateLimiterCalls   int           `env:"STLOUISFED_RATELIMITER_MAX_CALLS" envDefault:"120"`
	RateLimiterPeriod  time.Duration `env:"STLOUISFED_RATELIMITER_PERIOD" envDefault:"60s"`
}

// FromEnv builds options from STLOUISFED_* environment variables:
// STLOUISFED_API_KEY, STLOUISFED_RATELIMITER_ENABLED,
// STLOUISFED_RATELIMITER_MAX_CALLS and STLOUISFED_RATELIMITER_PERIOD.
// Explicit options passed to New after FromEnv take precedence.
func FromEnv() Option {
	return func(c *clientConfig) error {
		var cfg envConfig
		if err := env.Parse(&cfg); err != nil {
			return fmt.Errorf("failed to parse environment: %w", err)
		}
		if cfg.APIKey != "" {
			if err := validateAPIKey(cfg.APIKey); err != nil {
				return err
			}
			c.apiKey = strings.ToLower(cfg.APIKey)
		}
		c.gateEnabled = cfg.RateLimiterEnabled
		c.gateQuota = rategate.Quota{MaxCalls: cfg.RateLimiterCalls, Window: cfg.RateLimiterPeriod}
		return nil
	}
}

// New creates a client. An API key is required, either through WithAPIKey
// or FromEnv.
func New(opts ...Option) (*FRED, error) {
	cfg := clientConfig{
		gateQuota:   rategate.DefaultQuota,
		gateEnabled: true,
	}

	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if cfg.apiKey == "" {
		return nil, ErrInvalidAPIKey
	}

	gate := cfg.gate
	if gate == nil && cfg.gateEnabled {
		var err error
		gate, err = rategate.New(rategate.WithQuota(cfg.gateQuota))
		if err != nil {
			return nil, err
		}
	}

	client, err := api.New(api.Config{
		APIKey:     cfg.apiKey,
		BaseURL:    cfg.baseURL,
		HTTPClient: cfg.httpClient,
		Gate:       gate,
		Logger:     cfg.logger,
	})
	if err != nil {
		return nil, err
	}

	return &FRED{
		client:        client,
		realtimeStart: today,
		realtimeEnd:   today,
	}, nil
}

// ALFRED is a client with archival real-time defaults: where FRED defaults
// the real-time period to today, ALFRED defaults it to the full
// 1776-07-04 .. 9999-12-31 archive, so revised values are returned as they
// existed over time.
type ALFRED struct {
	*FRED
}

// NewALFRED creates an archival client. It accepts the same options as New.
func NewALFRED(opts ...Option) (*ALFRED, error) {
	f, err := New(opts...)
	if err != nil {
		return nil, err
	}
	f.realtimeStart = func() time.Time { return minRealtimeDate }
	f.realtimeEnd = func() time.Time { return maxRealtimeDate }
	return &ALFRED{FRED: f}, nil
}

// Gate exposes the client's rate gate for inspection or reset.
func (f *FRED) Gate() rategate.Gate {
	return f.client.Gate()
}

func validateAPIKey(key string) error {
	if err := api.ValidateAPIKey(key); err != nil {
		return ErrInvalidAPIKey
	}
	return nil
}

// decodeList decodes every raw item into T.
func decodeList[T any](items []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, raw := range items {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("failed to decode record: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}

// decodeOne decodes the single record endpoints such as /fred/category
// return.
func decodeOne[T any](items []json.RawMessage) (T, error) {
	var v T
	if len(items) == 0 {
		return v, ErrNotFound
	}
	if err := json.Unmarshal(items[0], &v); err != nil {
		return v, fmt.Errorf("failed to decode record: %w", err)
	}
	return v, nil
}
