// Package errors provides structured error types for commitpin.
//
// Every fatal condition the verifier can hit carries a machine-readable
// [Code] so that callers (the pipeline runner, the CLI, tests) can tell a
// supply-chain rejection apart from a network hiccup or a broken config:
//
//   - CONFIGURATION_ERROR: unusable whitelist or unknown package profile
//   - INVALID_FORMAT: a requested version with an unsupported leading character
//   - UNWHITELISTED_DEPENDENCY: a declared dependency absent from the whitelist
//   - FLOOR_VERSION: a requested version above the whitelisted version
//   - UNAPPROVED_COMMIT: a matching tag whose commit was never vetted
//   - NETWORK_ERROR, NOT_FOUND, UNAUTHORIZED, ...: remote API failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnwhitelisted, "%s not whitelisted", name)
//	if errors.Is(err, errors.ErrCodeUnwhitelisted) {
//	    // Handle rejection
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "list tags for %s", repo)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Verification failures
	ErrCodeConfiguration    Code = "CONFIGURATION_ERROR"
	ErrCodeFormat           Code = "INVALID_FORMAT"
	ErrCodeUnwhitelisted    Code = "UNWHITELISTED_DEPENDENCY"
	ErrCodeFloorVersion     Code = "FLOOR_VERSION"
	ErrCodeUnapprovedCommit Code = "UNAPPROVED_COMMIT"

	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidPackage    Code = "INVALID_PACKAGE"
	ErrCodeInvalidManifest   Code = "INVALID_MANIFEST"
	ErrCodeInvalidRepository Code = "INVALID_REPOSITORY"
	ErrCodeInvalidPath       Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Network errors
	ErrCodeNetwork         Code = "NETWORK_ERROR"
	ErrCodeInvalidResponse Code = "INVALID_RESPONSE"
	ErrCodeRateLimited     Code = "RATE_LIMITED"

	// Authentication errors
	ErrCodeUnauthorized Code = "UNAUTHORIZED"
	ErrCodeForbidden    Code = "FORBIDDEN"

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
	var rl *RateLimitedError
	if errors.As(err, &rl) {
		return rl.Code()
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + UserMessage(e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// Rejected reports whether err rejects a dependency on supply-chain grounds
// (format, whitelist, floor version or commit approval). Remote and I/O
// failures also abort a run but are not rejections.
func Rejected(err error) bool {
	switch GetCode(err) {
	case ErrCodeFormat, ErrCodeUnwhitelisted, ErrCodeFloorVersion, ErrCodeUnapprovedCommit:
		return true
	}
	return false
}

// RateLimitedError provides additional information for rate-limited responses.
type RateLimitedError struct {
	RetryAfter int // Seconds to wait before retrying
	Message    string
}

// Error implements the error interface.
func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
	}
	return "rate limited"
}

// Code returns the error code for this error type.
func (e *RateLimitedError) Code() Code {
	return ErrCodeRateLimited
}
