package stlouisfed

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidAPIKey signals an API key that is not a 32 character
	// alphanumeric string.
	ErrInvalidAPIKey = errors.New("api key must be a 32 character alphanumeric string")

	// ErrInvalidParameter signals a request parameter rejected before any
	// HTTP request was made.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNotFound signals an endpoint that answered successfully but with
	// an empty result where exactly one record was expected.
	ErrNotFound = errors.New("not found")
)

func NewInvalidParameterError(name string, value any) error {
	return fmt.Errorf("%w: %s (%v)", ErrInvalidParameter, name, value)
}

func NewEnumParameterError(name string, value any) error {
	return fmt.Errorf("%w: %s (%v) is not an allowed value", ErrInvalidParameter, name, value)
}

func NewDateRangeError(name string, value, bound time.Time) error {
	return fmt.Errorf("%w: %s (%s) is outside the allowed range (%s)",
		ErrInvalidParameter, name, value.Format(dateLayout), bound.Format(dateLayout))
}
