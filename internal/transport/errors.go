package transport

import (
	"errors"
	"net/http"
)

// fallbackMessage is used when neither the envelope nor the HTTP client
// produced any error text.
const fallbackMessage = "An unexpected error occurred"

// Error is the one error type callers of this package see. Error() returns
// just the human-readable message so it can be shown as-is.
type Error struct {
	Message    string
	StatusCode int // 0 for network failures
	Method     string
	Path       string
	Err        error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// StatusCode extracts the HTTP status from err, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
