// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"fmt"
)

// CreatePullRequest contains the fields for opening a pull request.
type CreatePullRequest struct {
	Title string `json:"title"`

	// Head is the branch with the changes. Cross-repository pull
	// requests use the "owner:branch" form.
	Head string `json:"head"`

	// Base is the branch to merge into.
	Base string `json:"base"`

	Body  string `json:"body,omitempty"`
	Draft bool   `json:"draft,omitempty"`
}

// UpdatePullRequest contains the fields for updating a pull request.
// Only non-nil fields are sent.
type UpdatePullRequest struct {
	Title *string `json:"title,omitempty"`
	Body  *string `json:"body,omitempty"`
	State *string `json:"state,omitempty"` // "open" or "closed"
	Base  *string `json:"base,omitempty"`
}

// ListPullRequestsOptions controls filtering for ListPullRequests.
type ListPullRequestsOptions struct {
	State     string `url:"state,omitempty"`     // "open", "closed", "all" (default: "open")
	Head      string `url:"head,omitempty"`      // filter by head, "owner:branch"
	Base      string `url:"base,omitempty"`      // filter by base branch
	Sort      string `url:"sort,omitempty"`      // "created", "updated", "popularity", "long-running"
	Direction string `url:"direction,omitempty"` // "asc" or "desc"
	PerPage   int    `url:"per_page,omitempty"`
}

// CreatePull opens a pull request.
func (client *Client) CreatePull(ctx context.Context, owner, repo string, request CreatePullRequest) (*PullRequest, error) {
	var pull PullRequest
	path := fmt.Sprintf("/repos/%s/%s/pulls", owner, repo)
	if err := client.post(ctx, path, request, &pull); err != nil {
		return nil, fmt.Errorf("creating pull request in %s/%s: %w", owner, repo, err)
	}
	return &pull, nil
}

// GetPull retrieves a single pull request by number.
func (client *Client) GetPull(ctx context.Context, owner, repo string, number int) (*PullRequest, error) {
	var pull PullRequest
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d", owner, repo, number)
	if err := client.get(ctx, path, &pull); err != nil {
		return nil, fmt.Errorf("getting pull request %s/%s#%d: %w", owner, repo, number, err)
	}
	return &pull, nil
}

// UpdatePull updates a pull request's title, body, state, or base.
func (client *Client) UpdatePull(ctx context.Context, owner, repo string, number int, request UpdatePullRequest) (*PullRequest, error) {
	var pull PullRequest
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d", owner, repo, number)
	if err := client.patch(ctx, path, request, &pull); err != nil {
		return nil, fmt.Errorf("updating pull request %s/%s#%d: %w", owner, repo, number, err)
	}
	return &pull, nil
}

// ListPullRequests returns a paginated iterator over pull requests.
func (client *Client) ListPullRequests(owner, repo string, options *ListPullRequestsOptions) *PageIterator[PullRequest] {
	basePath := fmt.Sprintf("/repos/%s/%s/pulls", owner, repo)
	return list[PullRequest](client, listPath(basePath, options))
}

// ListPullFiles returns a paginated iterator over the files changed
// in a pull request.
func (client *Client) ListPullFiles(owner, repo string, number int) *PageIterator[CommitFile] {
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d/files", owner, repo, number)
	return list[CommitFile](client, path)
}

// MergePullRequest contains the fields for merging a pull request.
type MergePullRequest struct {
	// CommitTitle overrides the merge commit title.
	CommitTitle string `json:"commit_title,omitempty"`

	// CommitMessage overrides the merge commit body.
	CommitMessage string `json:"commit_message,omitempty"`

	// MergeMethod is "merge", "squash", or "rebase" (default: "merge").
	MergeMethod string `json:"merge_method,omitempty"`

	// SHA, when set, requires the head to match it; the merge fails
	// with a conflict if the branch moved.
	SHA string `json:"sha,omitempty"`
}

// MergePull merges a pull request. A 405 from GitHub (not mergeable)
// and a 409 (head moved) both surface as *APIError.
func (client *Client) MergePull(ctx context.Context, owner, repo string, number int, request MergePullRequest) (*MergeResult, error) {
	var result MergeResult
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d/merge", owner, repo, number)
	if err := client.put(ctx, path, request, &result); err != nil {
		return nil, fmt.Errorf("merging pull request %s/%s#%d: %w", owner, repo, number, err)
	}
	return &result, nil
}

// UpdatePullBranch updates a pull request's head branch with the
// latest base branch changes. GitHub processes the update
// asynchronously and returns 202.
func (client *Client) UpdatePullBranch(ctx context.Context, owner, repo string, number int) error {
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d/update-branch", owner, repo, number)
	if err := client.put(ctx, path, struct{}{}, nil); err != nil {
		return fmt.Errorf("updating branch of pull request %s/%s#%d: %w", owner, repo, number, err)
	}
	return nil
}
