// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package githubtool

import (
	"context"

	"github.com/forgetools/github-mcp/lib/github"
	"github.com/forgetools/github-mcp/lib/tool"
)

type listTagsParams struct {
	repoParams
	Limit int `json:"limit,omitempty" desc:"maximum tags to return" default:"100"`
}

type createTagParams struct {
	repoParams
	Tag  string `json:"tag" desc:"name for the new tag" required:"true"`
	From string `json:"from,omitempty" desc:"branch, tag, or commit SHA to tag; defaults to the repository default branch"`
}

type deleteTagParams struct {
	repoParams
	Tag string `json:"tag" desc:"tag name" required:"true"`
}

func registerTags(registry *tool.Registry, client *github.Client) {
	registry.Register(&tool.Tool{
		Name:        "github_tags_list",
		Title:       "List tags",
		Description: "List tags in a repository, newest first.",
		Annotations: tool.Annotations{ReadOnly: true},
		NewParams:   func() any { return &listTagsParams{} },
		Output:      []github.Tag{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*listTagsParams)
			options := &github.ListTagsOptions{PerPage: pageSize(p.Limit)}
			tags, err := collectLimited(ctx, client.ListTags(p.Owner, p.Repo, options), p.Limit)
			if err != nil {
				return nil, classify(err)
			}
			return tags, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_tags_create",
		Title:       "Create tag",
		Description: "Create a lightweight tag pointing at a branch, a commit SHA, or the repository default branch.",
		NewParams:   func() any { return &createTagParams{} },
		Output:      &github.Ref{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*createTagParams)
			sha, err := resolveSourceSHA(ctx, client, p.Owner, p.Repo, p.From)
			if err != nil {
				return nil, err
			}
			ref, err := client.CreateTag(ctx, p.Owner, p.Repo, p.Tag, sha)
			if err != nil {
				return nil, classify(err)
			}
			return ref, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_tags_delete",
		Title:       "Delete tag",
		Description: "Delete a tag. The tagged commit is unaffected.",
		Annotations: tool.Annotations{Destructive: true, Idempotent: true},
		NewParams:   func() any { return &deleteTagParams{} },
		Output:      &deletedResult{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*deleteTagParams)
			if err := client.DeleteTag(ctx, p.Owner, p.Repo, p.Tag); err != nil {
				return nil, classify(err)
			}
			return &deletedResult{Deleted: true}, nil
		},
	})
}
