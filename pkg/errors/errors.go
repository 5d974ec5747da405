// Package errors provides structured error types for the ofl tools.
//
// Error codes split failures into two tiers:
//   - input and environment problems reported to the user (INVALID_*,
//     FILE_NOT_FOUND, DIRTY_WORKTREE, VCS_FAILURE)
//   - internal contract violations that must never be swallowed
//     (CAPTURE_MISSING, RENDERER_UNAVAILABLE, INTERNAL_ERROR)
//
// A renderer that exits non-zero, or prints a disqualifying warning, is not
// an error in this sense: it is reported through the invocation result.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidVersion, "%s does not match the expected version pattern", v)
//	if errors.Is(err, errors.ErrCodeInvalidVersion) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeCaptureMissing, origErr, "open %s", path)
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
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidVersion  Code = "INVALID_VERSION"
	ErrCodeInvalidTemplate Code = "INVALID_TEMPLATE"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Source control errors
	ErrCodeDirtyWorktree Code = "DIRTY_WORKTREE"
	ErrCodeVCS           Code = "VCS_FAILURE"

	// Internal errors
	ErrCodeCaptureMissing      Code = "CAPTURE_MISSING"
	ErrCodeRendererUnavailable Code = "RENDERER_UNAVAILABLE"
	ErrCodeInternal            Code = "INTERNAL_ERROR"
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

// IsInternal reports whether err signals a violated internal contract
// rather than a bad input or a failing external tool.
func IsInternal(err error) bool {
	switch GetCode(err) {
	case ErrCodeCaptureMissing, ErrCodeRendererUnavailable, ErrCodeInternal:
		return true
	}
	return false
}
