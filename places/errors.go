package places

import (
	"errors"
	"fmt"
)

// Common Places/Geocoding API errors.
var (
	// ErrRequestDenied indicates the API key was rejected upstream.
	ErrRequestDenied = errors.New("request denied (invalid or unauthorised API key)")

	// ErrNoResults indicates a geocoding lookup with no matching location.
	ErrNoResults = errors.New("no matching results")
)

// StatusError wraps a non-OK status returned in a Places or Geocoding API
// response body.
type StatusError struct {
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (%s)", e.Status, e.Message)
	}

	return e.Status
}

// IsRequestDenied returns true if the error indicates a rejected API key.
func IsRequestDenied(err error) bool {
	return errors.Is(err, ErrRequestDenied)
}

// IsNoResults returns true if the error indicates a geocoding miss.
func IsNoResults(err error) bool {
	return errors.Is(err, ErrNoResults)
}

func statusError(status, message string) error {
	switch status {
	case "REQUEST_DENIED":
		if message != "" {
			return fmt.Errorf("%w: %s", ErrRequestDenied, message)
		}

		return ErrRequestDenied

	default:
		return &StatusError{Status: status, Message: message}
	}
}
