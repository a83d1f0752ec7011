// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"errors"
	"fmt"
	"strings"
)

// APIError is a non-2xx response from the GitHub REST API. GitHub's
// error bodies carry a message, an optional documentation link, and on
// 422 responses a list of field-level validation failures.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Message is GitHub's top-level error description.
	Message string

	// DocumentationURL links to the relevant API documentation.
	DocumentationURL string

	// Errors holds field-level validation failures from 422 responses.
	Errors []ValidationError
}

// ValidationError is a single field-level failure inside a 422 response.
type ValidationError struct {
	Resource string `json:"resource"`
	Code     string `json:"code"`
	Field    string `json:"field"`
	Message  string `json:"message"`
}

func (err *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "github: HTTP %d: %s", err.StatusCode, err.Message)
	for _, ve := range err.Errors {
		detail := ve.Message
		if detail == "" {
			detail = ve.Code
		}
		fmt.Fprintf(&b, "; %s.%s: %s", ve.Resource, ve.Field, detail)
	}
	return b.String()
}

// IsNotFound reports whether err is a 404 from the GitHub API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}

// IsForbidden reports whether err is a 403 from the GitHub API that is
// a genuine permission failure rather than a rate limit.
func IsForbidden(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 403 && !isRateLimitMessage(apiErr.Message)
}

// IsRateLimited reports whether err is a GitHub rate-limit response.
// Primary rate limits surface as 403 with a recognizable message;
// secondary (abuse) limits surface as 429.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == 429 || (apiErr.StatusCode == 403 && isRateLimitMessage(apiErr.Message))
}

// IsValidationFailed reports whether err is a 422 from the GitHub API.
func IsValidationFailed(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 422
}

// IsConflict reports whether err is a 409 from the GitHub API.
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 409
}

// isRateLimitMessage distinguishes rate-limit 403s from permission 403s
// by the phrases GitHub puts in the message.
func isRateLimitMessage(message string) bool {
	lower := strings.ToLower(message)
	return strings.Contains(lower, "rate limit") ||
		strings.Contains(lower, "abuse detection")
}
