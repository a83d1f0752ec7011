// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"fmt"
)

// Tag is a tag listing entry with its target commit.
type Tag struct {
	Name       string       `json:"name"`
	Commit     BranchCommit `json:"commit"`
	ZipballURL string       `json:"zipball_url,omitempty"`
	TarballURL string       `json:"tarball_url,omitempty"`
}

// ListTagsOptions controls pagination for ListTags.
type ListTagsOptions struct {
	PerPage int `url:"per_page,omitempty"` // results per page (max 100, default 30)
}

// ListTags returns a paginated iterator over a repository's tags,
// newest first.
func (client *Client) ListTags(owner, repo string, options *ListTagsOptions) *PageIterator[Tag] {
	basePath := fmt.Sprintf("/repos/%s/%s/tags", owner, repo)
	return list[Tag](client, listPath(basePath, options))
}

// CreateTag creates a lightweight tag pointing at sha. The tag name
// is validated against git ref naming rules before any request is
// sent.
func (client *Client) CreateTag(ctx context.Context, owner, repo, tag, sha string) (*Ref, error) {
	if err := ValidateTagName(tag); err != nil {
		return nil, err
	}
	return client.CreateRef(ctx, owner, repo, "refs/tags/"+tag, sha)
}

// DeleteTag deletes a tag.
func (client *Client) DeleteTag(ctx context.Context, owner, repo, tag string) error {
	if err := ValidateTagName(tag); err != nil {
		return err
	}
	return client.DeleteRef(ctx, owner, repo, "tags/"+tag)
}
