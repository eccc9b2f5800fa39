// Package errors provides structured error types for trsplat.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and library packages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Resource not found
//   - TWPRGE_MISMATCH, MIXED_HEMISPHERE, CANVAS_TOO_LARGE: plat configuration errors
//   - INTERNAL_*: Unexpected internal errors
//
// Configuration errors are fatal for a batch and are raised before any
// drawing happens. Plattability problems are never errors; they are reported
// as warnings by the plat package.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeTwpRgeMismatch, "tract %s does not belong to %s", trs, twprge)
//	if errors.Is(err, errors.ErrCodeTwpRgeMismatch) {
//	    // Route the tract to a PlatGroup instead
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidCSV, origErr, "read lot definitions %s", path)
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
	ErrCodeInvalidTRS      Code = "INVALID_TRS"
	ErrCodeInvalidAliquot  Code = "INVALID_ALIQUOT"
	ErrCodeInvalidLot      Code = "INVALID_LOT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidSettings Code = "INVALID_SETTINGS"
	ErrCodeInvalidCSV      Code = "INVALID_CSV"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Plat configuration errors
	ErrCodeTwpRgeMismatch  Code = "TWPRGE_MISMATCH"
	ErrCodeMixedHemisphere Code = "MIXED_HEMISPHERE"
	ErrCodeCanvasTooLarge  Code = "CANVAS_TOO_LARGE"

	// Resource not found errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"
	ErrCodeFontNotFound   Code = "FONT_NOT_FOUND"
	ErrCodePresetNotFound Code = "PRESET_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// IsConfiguration reports whether err is one of the plat configuration
// errors that abort a whole batch.
func IsConfiguration(err error) bool {
	switch GetCode(err) {
	case ErrCodeTwpRgeMismatch, ErrCodeMixedHemisphere, ErrCodeCanvasTooLarge:
		return true
	}
	return false
}
