// Package errors provides structured error types for pinwalk.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the library packages
//   - Machine-readable error codes for programmatic handling
//   - A split between fatal failures and warnings that degrade gracefully
//
// # Error Codes
//
// Fatal codes abort a run before any output is written:
//   - PARSE_ERROR: the input is not well-formed XML
//   - SEED_NOT_FOUND: no element carries the seed sentinel
//   - BROKEN_REFERENCE: a chain link names an element that does not exist
//   - INVALID_PATH, INVALID_CONFIG, IO_ERROR: environment problems
//
// Warning codes are collected and reported, the run still succeeds:
//   - CYCLE_DETECTED: traversal reached an already numbered connector
//   - REFERENCE_MISMATCH: a cross-reference points outside the mapping
//
// # Usage
//
//	err := errors.New(errors.ErrCodeSeedNotFound, "no element with id %q", "connector0pin")
//	if errors.Is(err, errors.ErrCodeSeedNotFound) {
//	    // Handle missing seed
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeParse, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeParse           Code = "PARSE_ERROR"
	ErrCodeSeedNotFound    Code = "SEED_NOT_FOUND"
	ErrCodeBrokenReference Code = "BROKEN_REFERENCE"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidGeometry Code = "INVALID_GEOMETRY"

	// Traversal and rewrite anomalies (non-fatal)
	ErrCodeCycleDetected     Code = "CYCLE_DETECTED"
	ErrCodeReferenceMismatch Code = "REFERENCE_MISMATCH"

	// Environment errors
	ErrCodeIO       Code = "IO_ERROR"
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

// IsWarning reports whether err carries one of the non-fatal codes.
func IsWarning(err error) bool {
	switch GetCode(err) {
	case ErrCodeCycleDetected, ErrCodeReferenceMismatch:
		return true
	}
	return false
}
