// Package errors provides structured error types for the drawio module.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and the CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The codes that matter to exporters are:
//   - UNSUPPORTED_FORMAT: an export or image format name is not recognized.
//     The export aborts and nothing is written.
//   - MISSING_RENDER_DEPENDENCY: an optional rasterization collaborator is not
//     installed. Image export recovers by writing an instructional stand-in.
//   - DANGLING_REFERENCE: an edge names a node id that is not in the diagram.
//     Renderers skip such edges; [diagram.Diagram.Validate] reports them.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnsupportedFormat, "unsupported format: %s", name)
//	if errors.Is(err, errors.ErrCodeUnsupportedFormat) {
//	    // Handle the bad format name
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "write %s", path)
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
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidPath       Code = "INVALID_PATH"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"
	ErrCodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"

	// Model consistency errors
	ErrCodeDanglingReference Code = "DANGLING_REFERENCE"

	// Resource errors
	ErrCodeFileNotFound            Code = "FILE_NOT_FOUND"
	ErrCodeMissingRenderDependency Code = "MISSING_RENDER_DEPENDENCY"
	ErrCodeRenderFailed            Code = "RENDER_FAILED"

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
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// DanglingReferenceError lists the edge endpoints that do not resolve to a
// node. It unwraps to an *Error with [ErrCodeDanglingReference].
type DanglingReferenceError struct {
	Refs []Reference
}

// Reference is one unresolved edge endpoint.
type Reference struct {
	EdgeID string // Edge holding the reference
	End    string // "source" or "target"
	NodeID string // Id that did not resolve
}

// Error implements the error interface.
func (e *DanglingReferenceError) Error() string {
	if len(e.Refs) == 1 {
		r := e.Refs[0]
		return fmt.Sprintf("%s: edge %s %s %q does not exist", ErrCodeDanglingReference, r.EdgeID, r.End, r.NodeID)
	}
	return fmt.Sprintf("%s: %d edge endpoints do not exist", ErrCodeDanglingReference, len(e.Refs))
}

// Unwrap lets [Is] match the dangling reference code.
func (e *DanglingReferenceError) Unwrap() error {
	return &Error{Code: ErrCodeDanglingReference, Message: "dangling edge reference"}
}
