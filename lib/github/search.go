// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"fmt"
)

// SearchOptions controls sorting and pagination for the search
// endpoints. The search API caps results at 1000 per query regardless
// of pagination.
type SearchOptions struct {
	Sort    string `url:"sort,omitempty"`  // result-type specific, e.g. "stars", "created"
	Order   string `url:"order,omitempty"` // "asc" or "desc" (default: "desc")
	PerPage int    `url:"per_page,omitempty"`
	Page    int    `url:"page,omitempty"`
}

// searchQuery carries the q parameter alongside the shared options.
type searchQuery struct {
	Query string `url:"q"`
	SearchOptions
}

// SearchRepositories searches repositories with GitHub's search
// syntax, e.g. "language:go stars:>100".
func (client *Client) SearchRepositories(ctx context.Context, query string, options SearchOptions) (*RepositorySearchResult, error) {
	var result RepositorySearchResult
	path := listPath("/search/repositories", searchQuery{Query: query, SearchOptions: options})
	if err := client.get(ctx, path, &result); err != nil {
		return nil, fmt.Errorf("searching repositories for %q: %w", query, err)
	}
	return &result, nil
}

// SearchIssues searches issues and pull requests. Qualifiers like
// "is:issue" or "is:pr" narrow the result type.
func (client *Client) SearchIssues(ctx context.Context, query string, options SearchOptions) (*IssueSearchResult, error) {
	var result IssueSearchResult
	path := listPath("/search/issues", searchQuery{Query: query, SearchOptions: options})
	if err := client.get(ctx, path, &result); err != nil {
		return nil, fmt.Errorf("searching issues for %q: %w", query, err)
	}
	return &result, nil
}

// SearchCode searches file contents. The code search API requires a
// repo, org, or user qualifier in the query.
func (client *Client) SearchCode(ctx context.Context, query string, options SearchOptions) (*CodeSearchResult, error) {
	var result CodeSearchResult
	path := listPath("/search/code", searchQuery{Query: query, SearchOptions: options})
	if err := client.get(ctx, path, &result); err != nil {
		return nil, fmt.Errorf("searching code for %q: %w", query, err)
	}
	return &result, nil
}

// SearchUsers searches users and organizations.
func (client *Client) SearchUsers(ctx context.Context, query string, options SearchOptions) (*UserSearchResult, error) {
	var result UserSearchResult
	path := listPath("/search/users", searchQuery{Query: query, SearchOptions: options})
	if err := client.get(ctx, path, &result); err != nil {
		return nil, fmt.Errorf("searching users for %q: %w", query, err)
	}
	return &result, nil
}
