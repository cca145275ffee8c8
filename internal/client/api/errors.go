package api

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL reports a request that could not be constructed.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrUnauthorized reports a 401. By the time a caller sees it the
	// session token has already been cleared.
	ErrUnauthorized = errors.New("unauthorized")
)

// DecodeError wraps the cause of a failed response-body decode on an
// otherwise successful (2xx) response.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding error: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ServerError carries the backend's message for a non-2xx response, or a
// synthetic "HTTP Error: <code>" / "Invalid response" when no structured
// message was available.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string { return e.Message }
