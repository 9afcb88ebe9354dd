package rategate

import (
	"errors"
	"fmt"
)

var (
	// Configuration errors
	ErrInvalidQuota       = errors.New("invalid quota")
	ErrInvalidKey         = errors.New("invalid gate key")
	ErrTokenBucketStorage = errors.New("token bucket gate keeps its state in process and cannot use a storage backend")

	// State operation errors
	ErrStateParsing     = errors.New("failed to parse admission log: invalid encoding")
	ErrConcurrentAccess = errors.New("failed to update admission log after max attempts due to concurrent access")
)

func NewInvalidQuotaError(field string, got any) error {
	return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidQuota, field, got)
}

func NewStateRetrievalError(key string, err error) error {
	return fmt.Errorf("failed to get admission log for key '%s': %w", key, err)
}

func NewStateParsingError(key string) error {
	return fmt.Errorf("%w (key '%s')", ErrStateParsing, key)
}

func NewStateSaveError(key string, err error) error {
	return fmt.Errorf("failed to save admission log for key '%s': %w", key, err)
}

func NewConcurrentAccessError(attempts int) error {
	return fmt.Errorf("%w (%d attempts)", ErrConcurrentAccess, attempts)
}

func NewContextCancelledError(err error) error {
	return fmt.Errorf("context cancelled or timed out: %w", err)
}
