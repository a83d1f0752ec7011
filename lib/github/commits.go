// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// ListCommitsOptions controls filtering for ListCommits.
type ListCommitsOptions struct {
	SHA     string     `url:"sha,omitempty"`    // branch, tag, or SHA to start from
	Path    string     `url:"path,omitempty"`   // only commits touching this path
	Author  string     `url:"author,omitempty"` // GitHub login or email
	Since   *time.Time `url:"since,omitempty"`  // only commits after this time
	Until   *time.Time `url:"until,omitempty"`  // only commits before this time
	PerPage int        `url:"per_page,omitempty"`
}

// ListCommits returns a paginated iterator over a repository's
// commits, newest first.
func (client *Client) ListCommits(owner, repo string, options *ListCommitsOptions) *PageIterator[RepoCommit] {
	basePath := fmt.Sprintf("/repos/%s/%s/commits", owner, repo)
	return list[RepoCommit](client, listPath(basePath, options))
}

// GetCommit retrieves a single commit, including the files it touched.
// ref is a commit SHA, branch, or tag.
func (client *Client) GetCommit(ctx context.Context, owner, repo, ref string) (*RepoCommit, error) {
	var commit RepoCommit
	path := fmt.Sprintf("/repos/%s/%s/commits/%s", owner, repo, url.PathEscape(ref))
	if err := client.get(ctx, path, &commit); err != nil {
		return nil, fmt.Errorf("getting commit %s in %s/%s: %w", ref, owner, repo, err)
	}
	return &commit, nil
}

// CompareCommits compares two refs and returns the commits and file
// changes between them. base and head may be branches, tags, or SHAs.
func (client *Client) CompareCommits(ctx context.Context, owner, repo, base, head string) (*CommitComparison, error) {
	var comparison CommitComparison
	path := fmt.Sprintf("/repos/%s/%s/compare/%s...%s", owner, repo, url.PathEscape(base), url.PathEscape(head))
	if err := client.get(ctx, path, &comparison); err != nil {
		return nil, fmt.Errorf("comparing %s...%s in %s/%s: %w", base, head, owner, repo, err)
	}
	return &comparison, nil
}

// GetCombinedStatus retrieves the combined commit status (legacy
// status API) for a ref. The combined state is "failure" if any
// status failed, "pending" if any is pending, "success" otherwise.
func (client *Client) GetCombinedStatus(ctx context.Context, owner, repo, ref string) (*CombinedStatus, error) {
	var status CombinedStatus
	path := fmt.Sprintf("/repos/%s/%s/commits/%s/status", owner, repo, url.PathEscape(ref))
	if err := client.get(ctx, path, &status); err != nil {
		return nil, fmt.Errorf("getting combined status for %s in %s/%s: %w", ref, owner, repo, err)
	}
	return &status, nil
}
