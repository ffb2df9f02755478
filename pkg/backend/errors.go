package backend

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized matches any 401 answer.
	ErrUnauthorized = errors.New("backend: unauthorized")
	// ErrNotFound matches any 404 answer.
	ErrNotFound = errors.New("backend: not found")
	// ErrUnavailable wraps transport failures: refused connections,
	// timeouts, cancelled contexts.
	ErrUnavailable = errors.New("backend: unavailable")
	// ErrInvalidResponse is returned when a 2xx body cannot be decoded.
	ErrInvalidResponse = errors.New("backend: invalid response")
	ErrInvalidBaseURL  = errors.New("backend: invalid base URL")
)

// Error is a non-2xx answer. Message is the backend's {"error": ...} text
// when it sent one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend: %d %s", e.Status, http.StatusText(e.Status))
}

// Is lets callers match status classes with errors.Is.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// MessageOf returns the backend's error message carried by err, or "".
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
