package backends

import "errors"

var (
	// ErrBackendNotFound is returned by Create for an unregistered backend name
	ErrBackendNotFound = errors.New("backend not found")

	// ErrInvalidConfig is returned when a factory receives the wrong config type
	ErrInvalidConfig = errors.New("invalid backend configuration")
)
