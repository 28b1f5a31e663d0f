// Package domainerrors defines coded errors shared by the service and the
// transport edge. Services attach a Code describing the business outcome;
// the HTTP layer maps codes to status codes without inspecting messages.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error for transport mapping and tests.
type Code string

const (
	// CodeNotFound: the addressed record does not exist.
	CodeNotFound Code = "not_found"
	// CodeConflict: the operation collides with existing state
	// (e.g. create on an existing key).
	CodeConflict Code = "conflict"
	// CodeBadRequest: malformed or inconsistent caller input.
	CodeBadRequest Code = "bad_request"
	// CodeInvariantViolation: a model invariant would be broken.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeInternal: unexpected infrastructure failure.
	CodeInternal Code = "internal"
)

// Error carries a code, a caller-safe message and an optional cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) is a domain error
// carrying the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ToHTTPStatus maps a domain error code to an HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeBadRequest, CodeInvariantViolation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
