package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the conditions callers branch on. Match with
// errors.Is; everything else is carried as a wrapped *StatusError with the
// server-provided message.
var (
	// ErrUnavailable means no usable response was obtained (connectivity,
	// timeout, malformed reply).
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized means the server rejected the credentials and the
	// refresh-and-retry protocol could not recover.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoSession means an operation requiring credentials was attempted
	// with none held.
	ErrNoSession = errors.New("no active session")

	// ErrNotFound means the request target does not exist on the server.
	ErrNotFound = errors.New("not found")

	// ErrValidation means the server rejected the request payload.
	ErrValidation = errors.New("request rejected")
)

// StatusError carries a non-success HTTP status together with the
// server-reported message so the UI can present it verbatim.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Code)
}

// Unwrap maps the status to a sentinel so callers can use errors.Is
// without inspecting codes.
func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return ErrValidation
	}
}
