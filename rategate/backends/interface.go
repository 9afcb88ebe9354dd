package backends

import (
	"context"
	"time"
)

// Backend defines the storage interface for the admission log.
//
// Values are opaque strings; the gate encodes its window log before storing.
// CheckAndSet is the only primitive the gate relies on for atomicity, so a
// backend is correct as long as its CheckAndSet is linearizable per key.
type Backend interface {
	// Get retrieves a value from storage. A missing or expired key returns
	// an empty string with no error.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a value with expiration, unconditionally.
	Set(ctx context.Context, key, value string, expiration time.Duration) error

	// CheckAndSet atomically sets key to newValue only if the current value
	// matches oldValue. An empty oldValue means "only set if the key does
	// not exist". Returns true if the set was applied.
	CheckAndSet(ctx context.Context, key, oldValue, newValue string, expiration time.Duration) (bool, error)

	// Delete removes a key from storage.
	Delete(ctx context.Context, key string) error

	// Close releases resources used by the storage backend.
	Close() error
}
