// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"fmt"
	"net/url"
)

// GetRef retrieves a git reference. ref is the path without the
// "refs/" prefix, e.g. "heads/main" or "tags/v1.0.0".
func (client *Client) GetRef(ctx context.Context, owner, repo, ref string) (*Ref, error) {
	var result Ref
	path := fmt.Sprintf("/repos/%s/%s/git/ref/%s", owner, repo, escapeRef(ref))
	if err := client.get(ctx, path, &result); err != nil {
		return nil, fmt.Errorf("getting ref %s in %s/%s: %w", ref, owner, repo, err)
	}
	return &result, nil
}

// CreateRef creates a git reference pointing at sha. ref must carry
// the full "refs/" prefix, e.g. "refs/heads/feature".
func (client *Client) CreateRef(ctx context.Context, owner, repo, ref, sha string) (*Ref, error) {
	request := struct {
		Ref string `json:"ref"`
		SHA string `json:"sha"`
	}{Ref: ref, SHA: sha}

	var result Ref
	path := fmt.Sprintf("/repos/%s/%s/git/refs", owner, repo)
	if err := client.post(ctx, path, request, &result); err != nil {
		return nil, fmt.Errorf("creating ref %s in %s/%s: %w", ref, owner, repo, err)
	}
	return &result, nil
}

// UpdateRef moves a git reference to a new commit. ref is the path
// without the "refs/" prefix. force permits non-fast-forward updates.
func (client *Client) UpdateRef(ctx context.Context, owner, repo, ref, sha string, force bool) (*Ref, error) {
	request := struct {
		SHA   string `json:"sha"`
		Force bool   `json:"force"`
	}{SHA: sha, Force: force}

	var result Ref
	path := fmt.Sprintf("/repos/%s/%s/git/refs/%s", owner, repo, escapeRef(ref))
	if err := client.patch(ctx, path, request, &result); err != nil {
		return nil, fmt.Errorf("updating ref %s in %s/%s: %w", ref, owner, repo, err)
	}
	return &result, nil
}

// DeleteRef deletes a git reference. ref is the path without the
// "refs/" prefix.
func (client *Client) DeleteRef(ctx context.Context, owner, repo, ref string) error {
	path := fmt.Sprintf("/repos/%s/%s/git/refs/%s", owner, repo, escapeRef(ref))
	if err := client.delete(ctx, path, nil); err != nil {
		return fmt.Errorf("deleting ref %s in %s/%s: %w", ref, owner, repo, err)
	}
	return nil
}

// CreateTreeRequest contains the fields for creating a git tree. This
// is the first step of the API-mediated commit path: tree, then
// commit, then ref update.
type CreateTreeRequest struct {
	// BaseTree is the SHA of the tree to apply changes on top of.
	// Empty creates a tree from scratch.
	BaseTree string `json:"base_tree,omitempty"`

	// Entries are the tree entries to create or modify.
	Entries []CreateTreeEntry `json:"tree"`
}

// CreateTreeEntry describes a single entry in a tree creation request.
type CreateTreeEntry struct {
	Path string `json:"path"`

	// Mode is the file mode: "100644" (regular), "100755" (executable),
	// "120000" (symlink), "160000" (submodule), "040000" (directory).
	Mode string `json:"mode"`

	// Type is the object type: "blob", "tree", or "commit".
	Type string `json:"type"`

	// Content is inline blob content. Mutually exclusive with SHA. A
	// nil SHA with nil Content deletes the entry from the base tree.
	Content *string `json:"content,omitempty"`

	// SHA is the object SHA of an existing blob or tree.
	SHA *string `json:"sha,omitempty"`
}

// CreateTree creates a git tree object in a repository.
func (client *Client) CreateTree(ctx context.Context, owner, repo string, request CreateTreeRequest) (*Tree, error) {
	var tree Tree
	path := fmt.Sprintf("/repos/%s/%s/git/trees", owner, repo)
	if err := client.post(ctx, path, request, &tree); err != nil {
		return nil, fmt.Errorf("creating tree in %s/%s: %w", owner, repo, err)
	}
	return &tree, nil
}

// GetTree retrieves a git tree by SHA. recursive expands the full
// subtree; GitHub truncates very large trees and sets Truncated.
func (client *Client) GetTree(ctx context.Context, owner, repo, sha string, recursive bool) (*Tree, error) {
	path := fmt.Sprintf("/repos/%s/%s/git/trees/%s", owner, repo, url.PathEscape(sha))
	if recursive {
		path += "?recursive=1"
	}
	var tree Tree
	if err := client.get(ctx, path, &tree); err != nil {
		return nil, fmt.Errorf("getting tree %s in %s/%s: %w", sha, owner, repo, err)
	}
	return &tree, nil
}

// CreateCommitRequest contains the fields for creating a git commit.
type CreateCommitRequest struct {
	Message string   `json:"message"`
	Tree    string   `json:"tree"`
	Parents []string `json:"parents"`

	// Author overrides the commit author; nil uses the authenticated
	// identity.
	Author *CommitAuthor `json:"author,omitempty"`
}

// CreateCommit creates a git commit object in a repository.
func (client *Client) CreateCommit(ctx context.Context, owner, repo string, request CreateCommitRequest) (*Commit, error) {
	if err := ValidateCommitMessage(request.Message); err != nil {
		return nil, err
	}
	var commit Commit
	path := fmt.Sprintf("/repos/%s/%s/git/commits", owner, repo)
	if err := client.post(ctx, path, request, &commit); err != nil {
		return nil, fmt.Errorf("creating commit in %s/%s: %w", owner, repo, err)
	}
	return &commit, nil
}

// escapeRef escapes a ref path like "heads/feature/x" segment by
// segment, keeping the slashes literal.
func escapeRef(ref string) string {
	return escapePath(ref)
}
