package rategate

import (
	"fmt"
	"time"
)

// DefaultQuota is the documented FRED API ceiling.
var DefaultQuota = Quota{MaxCalls: 120, Window: 60 * time.Second}

// Quota is the allowed call rate: at most MaxCalls admissions in any
// trailing interval of length Window. Fixed for the lifetime of a gate.
type Quota struct {
	MaxCalls int
	Window   time.Duration
}

// Validate validates the quota
func (q Quota) Validate() error {
	if q.MaxCalls <= 0 {
		return NewInvalidQuotaError("max calls", q.MaxCalls)
	}
	if q.Window <= 0 {
		return NewInvalidQuotaError("window", q.Window)
	}
	return nil
}

// Status describes the gate state at a point in time without consuming quota.
type Status struct {
	// Remaining is the number of calls that would be admitted immediately.
	Remaining int
	// Reset is when the oldest recorded admission falls out of the window.
	// Zero when the log is empty.
	Reset time.Time
}

// allowedCharsArray is a precomputed boolean array for O(1) character validation
var allowedCharsArray [128]bool

func init() {
	for _, c := range "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_-:.@" {
		allowedCharsArray[c] = true
	}
}

// validateKey validates that a storage key meets the requirements:
//   - Maximum 64 bytes length
//   - Contains only alphanumeric ASCII characters, underscore (_), hyphen (-),
//     colon (:), period (.), and at (@)
func validateKey(key string) error {
	if len(key) == 0 {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	}

	if len(key) > 64 {
		return fmt.Errorf("%w: key cannot exceed 64 bytes, got %d bytes", ErrInvalidKey, len(key))
	}

	for i, r := range key {
		if r >= 128 || !allowedCharsArray[r] {
			return fmt.Errorf("%w: key contains invalid character '%c' at position %d", ErrInvalidKey, r, i)
		}
	}

	return nil
}
