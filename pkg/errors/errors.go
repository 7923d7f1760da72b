// Package errors provides structured error types for the Talegraph application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and web server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - CONFIG_*: Missing or invalid operator configuration
//   - FETCH_*, NETWORK_*: Failures talking to the document database
//   - SNAPSHOT_*: Local snapshot problems
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeConfigMissing, "TIMELINE_DATABASE_ID is not set")
//	if errors.Is(err, errors.ErrCodeConfigMissing) {
//	    // Report to operator and exit
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFetch, origErr, "query database %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors (fatal, shown to the operator)
	ErrCodeConfigMissing Code = "CONFIG_MISSING"
	ErrCodeConfigInvalid Code = "CONFIG_INVALID"

	// Fetch errors (recoverable via the last-good snapshot)
	ErrCodeFetch        Code = "FETCH_FAILED"
	ErrCodeNetwork      Code = "NETWORK_ERROR"
	ErrCodeUnauthorized Code = "UNAUTHORIZED"
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeRateLimited  Code = "RATE_LIMITED"

	// Snapshot errors
	ErrCodeSnapshotVersion Code = "SNAPSHOT_VERSION_MISMATCH"
	ErrCodeSnapshotIO      Code = "SNAPSHOT_IO"

	// Build warnings
	ErrCodeMalformedRecord Code = "MALFORMED_RECORD"

	// Internal errors
	ErrCodeRender   Code = "RENDER_FAILED"
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
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsFatal reports whether the error should abort startup rather than be
// recovered by falling back to the last-good snapshot. Only configuration
// errors are fatal; fetch and snapshot errors are recoverable.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeConfigMissing, ErrCodeConfigInvalid:
		return true
	}
	return false
}
