// Package errors defines the coded errors returned by the catalog store and
// services. Two errors with the same Code compare equal under errors.Is, so
// callers test against the Err* values whatever the message says. The HTTP
// layer maps each Code onto a status.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for API clients.
type Code string

// Codes returned in API error envelopes.
const (
	CodeNotFound      Code = "NOT_FOUND"
	CodeAlreadyExists Code = "ALREADY_EXISTS"
	CodeValidation    Code = "VALIDATION"
	CodeUnavailable   Code = "UNAVAILABLE"
	CodeInternal      Code = "INTERNAL"
)

// HTTPStatus maps c onto a response status. Unknown codes are 500.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodeValidation:
		return http.StatusBadRequest
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a Code, a human-readable message and, for validation
// failures, per-field details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error carrying the same Code.
func (e *Error) Is(target error) bool {
	var other *Error
	return errors.As(target, &other) && other.Code == e.Code
}

// HTTPStatus is shorthand for e.Code.HTTPStatus().
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// Targets for errors.Is. Their messages are never shown.
var (
	ErrNotFound      = &Error{Code: CodeNotFound, Message: "not found"}
	ErrAlreadyExists = &Error{Code: CodeAlreadyExists, Message: "already exists"}
	ErrValidation    = &Error{Code: CodeValidation, Message: "validation error"}
	ErrUnavailable   = &Error{Code: CodeUnavailable, Message: "unavailable"}
)

func newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf reports a missing entity.
func NotFoundf(format string, args ...any) *Error {
	return newf(CodeNotFound, format, args...)
}

// AlreadyExistsf reports a uniqueness conflict, such as a duplicate
// category name.
func AlreadyExistsf(format string, args ...any) *Error {
	return newf(CodeAlreadyExists, format, args...)
}

// Validation reports rejected input.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf is Validation with formatting.
func Validationf(format string, args ...any) *Error {
	return newf(CodeValidation, format, args...)
}

// ValidationWithDetails attaches per-field messages for the response body.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// Unavailable reports a feature that is switched off by configuration.
func Unavailable(msg string) *Error {
	return &Error{Code: CodeUnavailable, Message: msg}
}

// Wrap classifies err under code, keeping it reachable through Unwrap.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}
