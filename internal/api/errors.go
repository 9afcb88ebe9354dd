package api

import (
	"encoding/xml"
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedContentType signals a response that is neither the JSON
	// payload asked for nor a recognizable upstream error document.
	ErrUnexpectedContentType = errors.New("unexpected content type")

	// ErrMissingListKey signals a JSON payload without the expected list.
	ErrMissingListKey = errors.New("response is missing the expected list")

	// ErrInvalidAPIKey signals an API key that is not a 32 character
	// alphanumeric string.
	ErrInvalidAPIKey = errors.New("api key must be a 32 character alphanumeric string")
)

// ValidateAPIKey checks the shape of an API key. Keys are issued lower
// case; callers fold upper case input before sending.
func ValidateAPIKey(key string) error {
	if len(key) != 32 {
		return ErrInvalidAPIKey
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return ErrInvalidAPIKey
		}
	}
	return nil
}

// APIError is an upstream rejection: the service answered with one of its
// documented error statuses and an error payload.
type APIError struct {
	Code    int
	Message string
	URL     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("received error code: %d and message: %q for URL %s", e.Code, e.Message, e.URL)
}

// xmlError is the error document the maps endpoints return even when JSON
// output was requested.
type xmlError struct {
	XMLName xml.Name `xml:"error"`
	Code    int      `xml:"code,attr"`
	Message string   `xml:"message,attr"`
}

func NewUnexpectedContentTypeError(contentType, url string) error {
	return fmt.Errorf("%w %q for URL %s", ErrUnexpectedContentType, contentType, url)
}

func NewUnexpectedStatusError(status int, url string) error {
	return fmt.Errorf("received status code: %d for URL %s", status, url)
}

func NewMissingListKeyError(listKey, url string) error {
	return fmt.Errorf("%w: key %q for URL %s", ErrMissingListKey, listKey, url)
}

func NewDecodeError(url string, err error) error {
	return fmt.Errorf("failed to decode response for URL %s: %w", url, err)
}
