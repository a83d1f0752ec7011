// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

// Package github provides a typed client for the GitHub REST API
// (version 2022-11-28). It covers the endpoints the tool layer needs:
// repositories, contents, git data, branches, commits, issues, pull
// requests, reviews, Actions workflows, and search.
//
// Authentication is either a personal access token or a GitHub App
// (private key JWT exchanged for installation tokens, rotated before
// expiry). The client tracks rate-limit headers and blocks before
// sending a request that would be rejected, caches ETags so repeated
// GETs of unchanged resources are served from a 304, and paginates
// list endpoints lazily through PageIterator.
//
// All errors from the API surface as *APIError; the IsNotFound,
// IsForbidden, IsRateLimited, IsValidationFailed, and IsConflict
// predicates classify them without inspecting status codes at call
// sites.
package github
