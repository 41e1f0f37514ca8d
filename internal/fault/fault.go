// Package fault classifies failures of the external AI boundaries so that
// handlers and the orchestrator can act on a code instead of parsing upstream
// message text.
package fault

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a failure class.
type Code string

const (
	// CodeConfig means a required server-side credential is missing.
	CodeConfig Code = "CONFIG_ERROR"
	// CodeRateLimited means the upstream returned a 429-equivalent signal
	// after bounded retries were exhausted.
	CodeRateLimited Code = "RATE_LIMITED"
	// CodeContentBlocked means the upstream safety filter rejected the prompt.
	CodeContentBlocked Code = "CONTENT_BLOCKED"
	// CodeNoImage means the upstream response was well formed but carried no
	// image payload.
	CodeNoImage Code = "NO_IMAGE_RETURNED"
	// CodeResolutionFailed means action inference failed for a non-retryable
	// reason.
	CodeResolutionFailed Code = "RESOLUTION_FAILED"
)

// Error wraps an upstream failure with its classification and a user-facing
// message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a classified error without an upstream cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap builds a classified error around an upstream cause.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf extracts the classification of err, or "" when it carries none.
func CodeOf(err error) Code {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return ""
}

// MessageOf extracts the user-facing message of err, falling back to the plain
// error text.
func MessageOf(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// HTTPStatus maps a classification to the status the JSON envelope uses.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeContentBlocked:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
