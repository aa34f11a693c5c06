package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized marks 401/403 responses. 403s are additionally
	// rewrapped with a re-authentication hint.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation marks requests rejected client-side before any network
	// round-trip.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks 404 responses.
	ErrNotFound = errors.New("not found")
)

// ServerError is a non-2xx response that carried a business error body.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("server error (status %d): %s", e.StatusCode, e.Message)
}
