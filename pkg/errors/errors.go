// Package errors provides structured error types for roadnet.
//
// Errors carry a machine-readable [Code] so callers (CLI, HTTP API, tests)
// can distinguish caller mistakes from exhausted generation budgets without
// matching on message text.
//
// # Error Codes
//
//   - INVALID_*: input validation and precondition failures
//   - NO_BOUNDARY, PLACEMENT_EXHAUSTED: generation could not proceed
//   - PORT_CONFLICT: a junction would receive two roads on one port
//   - NOT_FOUND: a stored network does not exist
//   - INTERNAL: a generated network failed its invariant check
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidStart, "point %v is not a corner", p)
//	if errors.Is(err, errors.ErrCodeInvalidStart) {
//	    // caller bug
//	}
//
//	err := errors.Wrap(errors.ErrCodeInternal, cause, "validate network")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidStart  Code = "INVALID_START"

	// Generation errors
	ErrCodeNoBoundary         Code = "NO_BOUNDARY"
	ErrCodePlacementExhausted Code = "PLACEMENT_EXHAUSTED"
	ErrCodePortConflict       Code = "PORT_CONFLICT"

	// Storage errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsCallerError reports whether err stems from bad input rather than from
// the generator running out of room.
func IsCallerError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidConfig, ErrCodeInvalidStart:
		return true
	}
	return false
}
