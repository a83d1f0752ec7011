// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"fmt"
)

// GetRepository retrieves a repository by owner and name.
func (client *Client) GetRepository(ctx context.Context, owner, repo string) (*Repository, error) {
	var repository Repository
	path := fmt.Sprintf("/repos/%s/%s", owner, repo)
	if err := client.get(ctx, path, &repository); err != nil {
		return nil, fmt.Errorf("getting repository %s/%s: %w", owner, repo, err)
	}
	return &repository, nil
}

// ListRepositoriesOptions controls filtering for ListRepositories.
type ListRepositoriesOptions struct {
	Type      string `url:"type,omitempty"`      // "all", "owner", "member" (default: "owner")
	Sort      string `url:"sort,omitempty"`      // "created", "updated", "pushed", "full_name"
	Direction string `url:"direction,omitempty"` // "asc" or "desc"
	PerPage   int    `url:"per_page,omitempty"`  // results per page (max 100, default 30)
}

// ListRepositories returns a paginated iterator over repositories.
// An empty owner lists the authenticated user's repositories
// (including private ones); otherwise the /users/ endpoint lists the
// named account's, which works for both users and organizations.
func (client *Client) ListRepositories(owner string, options *ListRepositoriesOptions) *PageIterator[Repository] {
	basePath := "/user/repos"
	if owner != "" {
		basePath = fmt.Sprintf("/users/%s/repos", owner)
	}
	return list[Repository](client, listPath(basePath, options))
}

// CreateRepositoryRequest contains the fields for creating a
// repository under the authenticated user or an organization.
type CreateRepositoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Private     bool   `json:"private"`
	AutoInit    bool   `json:"auto_init,omitempty"`

	// GitignoreTemplate and LicenseTemplate name templates from
	// github/gitignore and choosealicense.com, e.g. "Go", "mit".
	GitignoreTemplate string `json:"gitignore_template,omitempty"`
	LicenseTemplate   string `json:"license_template,omitempty"`

	// Merge settings. Pointers so that false is distinguishable from
	// unset; GitHub defaults all three to true.
	AllowSquashMerge *bool `json:"allow_squash_merge,omitempty"`
	AllowMergeCommit *bool `json:"allow_merge_commit,omitempty"`
	AllowRebaseMerge *bool `json:"allow_rebase_merge,omitempty"`
}

// CreateRepository creates a repository. An empty org creates under
// the authenticated user.
func (client *Client) CreateRepository(ctx context.Context, org string, request CreateRepositoryRequest) (*Repository, error) {
	path := "/user/repos"
	if org != "" {
		path = fmt.Sprintf("/orgs/%s/repos", org)
	}
	var repository Repository
	if err := client.post(ctx, path, request, &repository); err != nil {
		return nil, fmt.Errorf("creating repository %q: %w", request.Name, err)
	}
	return &repository, nil
}

// DeleteRepository permanently deletes a repository. Requires the
// delete_repo scope; there is no undo.
func (client *Client) DeleteRepository(ctx context.Context, owner, repo string) error {
	path := fmt.Sprintf("/repos/%s/%s", owner, repo)
	if err := client.delete(ctx, path, nil); err != nil {
		return fmt.Errorf("deleting repository %s/%s: %w", owner, repo, err)
	}
	return nil
}

// ForkRepository forks a repository into the authenticated user's
// account, or into org when non-empty. defaultBranchOnly skips the
// other branches. GitHub processes forks asynchronously; the returned
// repository may not be fully populated yet.
func (client *Client) ForkRepository(ctx context.Context, owner, repo, org string, defaultBranchOnly bool) (*Repository, error) {
	request := struct {
		Organization      string `json:"organization,omitempty"`
		DefaultBranchOnly bool   `json:"default_branch_only,omitempty"`
	}{Organization: org, DefaultBranchOnly: defaultBranchOnly}
	var repository Repository
	path := fmt.Sprintf("/repos/%s/%s/forks", owner, repo)
	if err := client.post(ctx, path, request, &repository); err != nil {
		return nil, fmt.Errorf("forking %s/%s: %w", owner, repo, err)
	}
	return &repository, nil
}
