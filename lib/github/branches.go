// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"fmt"
	"net/url"
)

// ListBranchesOptions controls filtering for ListBranches.
type ListBranchesOptions struct {
	Protected *bool `url:"protected,omitempty"` // filter to (un)protected branches
	PerPage   int   `url:"per_page,omitempty"`  // results per page (max 100, default 30)
}

// ListBranches returns a paginated iterator over a repository's
// branches.
func (client *Client) ListBranches(owner, repo string, options *ListBranchesOptions) *PageIterator[Branch] {
	basePath := fmt.Sprintf("/repos/%s/%s/branches", owner, repo)
	return list[Branch](client, listPath(basePath, options))
}

// GetBranch retrieves a single branch.
func (client *Client) GetBranch(ctx context.Context, owner, repo, branch string) (*Branch, error) {
	var result Branch
	path := fmt.Sprintf("/repos/%s/%s/branches/%s", owner, repo, url.PathEscape(branch))
	if err := client.get(ctx, path, &result); err != nil {
		return nil, fmt.Errorf("getting branch %s in %s/%s: %w", branch, owner, repo, err)
	}
	return &result, nil
}

// CreateBranch creates a branch pointing at sha. The branch name is
// validated against git ref naming rules before any request is sent.
func (client *Client) CreateBranch(ctx context.Context, owner, repo, branch, sha string) (*Ref, error) {
	if err := ValidateBranchName(branch); err != nil {
		return nil, err
	}
	return client.CreateRef(ctx, owner, repo, "refs/heads/"+branch, sha)
}

// DeleteBranch deletes a branch.
func (client *Client) DeleteBranch(ctx context.Context, owner, repo, branch string) error {
	if err := ValidateBranchName(branch); err != nil {
		return err
	}
	return client.DeleteRef(ctx, owner, repo, "heads/"+branch)
}

// ProtectBranchRequest contains the protection rules to apply to a
// branch. GitHub requires every top-level field to be present, null
// when unset, so pointer fields are serialized even when nil.
type ProtectBranchRequest struct {
	RequiredStatusChecks *RequiredStatusChecks       `json:"required_status_checks"`
	RequiredReviews      *RequiredPullRequestReviews `json:"required_pull_request_reviews"`
	EnforceAdmins        bool                        `json:"enforce_admins"`
	Restrictions         *struct{}                   `json:"restrictions"`
}

// ProtectBranch applies protection rules to a branch.
func (client *Client) ProtectBranch(ctx context.Context, owner, repo, branch string, request ProtectBranchRequest) (*BranchProtection, error) {
	var protection BranchProtection
	path := fmt.Sprintf("/repos/%s/%s/branches/%s/protection", owner, repo, url.PathEscape(branch))
	if err := client.put(ctx, path, request, &protection); err != nil {
		return nil, fmt.Errorf("protecting branch %s in %s/%s: %w", branch, owner, repo, err)
	}
	return &protection, nil
}

// GetBranchProtection retrieves the protection rules for a branch.
// Unprotected branches return a not-found error.
func (client *Client) GetBranchProtection(ctx context.Context, owner, repo, branch string) (*BranchProtection, error) {
	var protection BranchProtection
	path := fmt.Sprintf("/repos/%s/%s/branches/%s/protection", owner, repo, url.PathEscape(branch))
	if err := client.get(ctx, path, &protection); err != nil {
		return nil, fmt.Errorf("getting protection for branch %s in %s/%s: %w", branch, owner, repo, err)
	}
	return &protection, nil
}

// RemoveBranchProtection removes all protection rules from a branch.
func (client *Client) RemoveBranchProtection(ctx context.Context, owner, repo, branch string) error {
	path := fmt.Sprintf("/repos/%s/%s/branches/%s/protection", owner, repo, url.PathEscape(branch))
	if err := client.delete(ctx, path, nil); err != nil {
		return fmt.Errorf("removing protection from branch %s in %s/%s: %w", branch, owner, repo, err)
	}
	return nil
}
