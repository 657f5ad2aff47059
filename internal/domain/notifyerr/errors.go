// Package notifyerr provides typed errors for build notifications.
package notifyerr

import (
	"errors"
	"fmt"
)

// Kind represents the category of a notification failure.
type Kind int

const (
	// KindConfig indicates missing or invalid configuration. No network call was made.
	KindConfig Kind = iota
	// KindInvalidEndpoint indicates a malformed webhook address.
	KindInvalidEndpoint
	// KindTransport indicates a connect, write or read failure.
	KindTransport
	// KindUnexpectedStatus indicates an HTTP status other than 200, 400 or 429.
	KindUnexpectedStatus
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "CONFIG"
	case KindInvalidEndpoint:
		return "INVALID_ENDPOINT"
	case KindTransport:
		return "TRANSPORT"
	case KindUnexpectedStatus:
		return "UNEXPECTED_STATUS"
	default:
		return "UNKNOWN"
	}
}

// Error is the error type returned by notifier components.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Cause      error
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error.
func New(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// ConfigError creates a configuration error.
func ConfigError(message string, cause error) *Error {
	return New(KindConfig, message, cause)
}

// InvalidEndpoint creates a delivery error for a malformed webhook address.
func InvalidEndpoint(message string, cause error) *Error {
	return New(KindInvalidEndpoint, message, cause)
}

// TransportFailure creates a delivery error for an I/O failure.
func TransportFailure(message string, cause error) *Error {
	return New(KindTransport, message, cause)
}

// UnexpectedStatus creates a delivery error for an unhandled HTTP status.
func UnexpectedStatus(code int) *Error {
	e := New(KindUnexpectedStatus, fmt.Sprintf("unexpected HTTP response status %d", code), nil)
	e.StatusCode = code
	return e
}

// IsKind reports whether err wraps an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var nerr *Error
	if errors.As(err, &nerr) {
		return nerr.Kind == kind
	}
	return false
}

// IsDelivery reports whether err is a delivery failure, i.e. anything but a configuration error.
func IsDelivery(err error) bool {
	var nerr *Error
	if errors.As(err, &nerr) {
		return nerr.Kind != KindConfig
	}
	return false
}

// StatusCode returns the HTTP status carried by an unexpected-status error, or 0.
func StatusCode(err error) int {
	var nerr *Error
	if errors.As(err, &nerr) {
		return nerr.StatusCode
	}
	return 0
}
