// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package githubtool

import (
	"context"
	"errors"
	"net"

	"github.com/forgetools/github-mcp/lib/github"
	"github.com/forgetools/github-mcp/lib/tool"
)

// classify wraps a client error in a categorized tool error. Already
// categorized errors pass through unchanged, so validation failures
// raised before the HTTP call keep their category.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var toolError *tool.Error
	if errors.As(err, &toolError) {
		return err
	}

	switch {
	case github.IsRateLimited(err):
		return &tool.Error{Category: tool.CategoryTransient, Err: err}
	case github.IsNotFound(err):
		return &tool.Error{Category: tool.CategoryNotFound, Err: err}
	case github.IsForbidden(err):
		return &tool.Error{Category: tool.CategoryForbidden, Err: err}
	case github.IsConflict(err):
		return &tool.Error{Category: tool.CategoryConflict, Err: err}
	case github.IsValidationFailed(err):
		return &tool.Error{Category: tool.CategoryValidation, Err: err}
	}

	// Network failures and cancelled contexts may succeed on retry.
	var netError net.Error
	if errors.As(err, &netError) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return &tool.Error{Category: tool.CategoryTransient, Err: err}
	}

	var apiError *github.APIError
	if errors.As(err, &apiError) {
		// Merge attempts on unmergeable pull requests return 405.
		if apiError.StatusCode == 405 {
			return &tool.Error{Category: tool.CategoryConflict, Err: err}
		}
	}

	return &tool.Error{Category: tool.CategoryInternal, Err: err}
}
