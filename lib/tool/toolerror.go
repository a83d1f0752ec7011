// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies tool errors so that MCP clients can make
// programmatic decisions (retry, fix input, escalate) without parsing
// error message text.
type ErrorCategory string

const (
	// CategoryValidation indicates the caller provided invalid input:
	// missing required parameters, a malformed branch name, an
	// unparseable value. The caller should fix the input and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced resource does not exist:
	// unknown repository, missing file path, closed installation.
	// Retrying with the same parameters will not help.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryForbidden indicates the token lacks permission for the
	// requested operation. The caller should escalate or request a
	// broader scope.
	CategoryForbidden ErrorCategory = "forbidden"

	// CategoryConflict indicates the operation conflicts with existing
	// state: branch already exists, merge conflict, stale file SHA.
	CategoryConflict ErrorCategory = "conflict"

	// CategoryTransient indicates a temporary failure: network error,
	// timeout, rate limit. The caller should back off and retry.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal indicates an unexpected error: bugs, I/O
	// failures, responses that do not decode. The caller should report
	// the error rather than retry.
	CategoryInternal ErrorCategory = "internal"
)

// Retryable reports whether errors in the category may succeed on a
// later attempt with the same input.
func (category ErrorCategory) Retryable() bool {
	return category == CategoryTransient
}

// Error is a categorized error returned by tool handlers. The MCP
// server inspects the Category to produce structured error metadata
// alongside the human-readable error text.
//
// Error wraps an inner error, preserving the chain for debugging
// while adding category metadata for the protocol layer. Use the
// category constructors (Validation, NotFound, etc.) rather than
// constructing Error directly.
type Error struct {
	// Category classifies the error for programmatic handling.
	Category ErrorCategory

	// Err is the underlying error with the human-readable message.
	Err error
}

// Error returns the underlying message. The category is not included
// in the string; it travels separately in the MCP errorInfo field.
func (e *Error) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error, allowing errors.Is and
// errors.As to walk the full chain through the wrapper.
func (e *Error) Unwrap() error { return e.Err }

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *Error {
	return &Error{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error: a referenced resource does not exist.
func NotFound(format string, args ...any) *Error {
	return &Error{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Forbidden creates a forbidden error: the caller lacks permission.
func Forbidden(format string, args ...any) *Error {
	return &Error{Category: CategoryForbidden, Err: fmt.Errorf(format, args...)}
}

// Conflict creates a conflict error: the operation conflicts with existing state.
func Conflict(format string, args ...any) *Error {
	return &Error{Category: CategoryConflict, Err: fmt.Errorf(format, args...)}
}

// Transient creates a transient error: a temporary failure that may succeed on retry.
func Transient(format string, args ...any) *Error {
	return &Error{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure, bug, or I/O error.
func Internal(format string, args ...any) *Error {
	return &Error{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// CategoryOf extracts the category from an error chain. Errors that do
// not carry a category default to internal.
func CategoryOf(err error) ErrorCategory {
	var toolError *Error
	if errors.As(err, &toolError) {
		return toolError.Category
	}
	return CategoryInternal
}
