// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package githubtool

import (
	"context"

	"github.com/forgetools/github-mcp/lib/github"
	"github.com/forgetools/github-mcp/lib/tool"
)

type getRepositoryParams struct {
	repoParams
}

type listRepositoriesParams struct {
	Owner   string `json:"owner" desc:"user or organization to list; empty lists the authenticated user's repositories"`
	Type    string `json:"type" desc:"filter: all, owner, or member" default:"owner"`
	Sort    string `json:"sort" desc:"sort key: created, updated, pushed, or full_name"`
	PerPage int    `json:"per_page" desc:"results per page, max 100" default:"30"`
	Limit   int    `json:"limit" desc:"maximum repositories to return across pages" default:"100"`
}

type createRepositoryParams struct {
	Name        string `json:"name" desc:"repository name" required:"true"`
	Org         string `json:"org" desc:"organization to create in; empty creates under the authenticated user"`
	Description string `json:"description" desc:"repository description"`
	Private     bool   `json:"private" desc:"create as a private repository"`
	AutoInit    bool   `json:"auto_init" desc:"initialize with an empty commit and README"`
	Gitignore   string `json:"gitignore,omitempty" desc:"gitignore template name, e.g. Go"`
	License     string `json:"license,omitempty" desc:"license template keyword, e.g. mit"`
}

type forkRepositoryParams struct {
	repoParams
	Org               string `json:"org" desc:"organization to fork into; empty forks to the authenticated user"`
	DefaultBranchOnly bool   `json:"default_branch_only,omitempty" desc:"fork only the default branch"`
}

type deleteRepositoryParams struct {
	repoParams
}

func registerRepos(registry *tool.Registry, client *github.Client) {
	registry.Register(&tool.Tool{
		Name:        "github_repos_get",
		Title:       "Get repository",
		Description: "Retrieve a repository's metadata: description, default branch, visibility, star and fork counts.",
		Annotations: tool.Annotations{ReadOnly: true, Idempotent: true},
		NewParams:   func() any { return &getRepositoryParams{} },
		Output:      &github.Repository{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*getRepositoryParams)
			repository, err := client.GetRepository(ctx, p.Owner, p.Repo)
			if err != nil {
				return nil, classify(err)
			}
			return repository, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_repos_list",
		Title:       "List repositories",
		Description: "List repositories for a user or organization, or the authenticated user's own when owner is omitted.",
		Annotations: tool.Annotations{ReadOnly: true, Idempotent: true},
		NewParams:   func() any { return &listRepositoriesParams{} },
		Output:      &[]github.Repository{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*listRepositoriesParams)
			iterator := client.ListRepositories(p.Owner, &github.ListRepositoriesOptions{
				Type:    p.Type,
				Sort:    p.Sort,
				PerPage: p.PerPage,
			})
			repositories, err := collectLimited(ctx, iterator, p.Limit)
			if err != nil {
				return nil, classify(err)
			}
			return repositories, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_repos_create",
		Title:       "Create repository",
		Description: "Create a repository under the authenticated user or an organization.",
		NewParams:   func() any { return &createRepositoryParams{} },
		Output:      &github.Repository{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*createRepositoryParams)
			repository, err := client.CreateRepository(ctx, p.Org, github.CreateRepositoryRequest{
				Name:              p.Name,
				Description:       p.Description,
				Private:           p.Private,
				AutoInit:          p.AutoInit,
				GitignoreTemplate: p.Gitignore,
				LicenseTemplate:   p.License,
			})
			if err != nil {
				return nil, classify(err)
			}
			return repository, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_repos_fork",
		Title:       "Fork repository",
		Description: "Fork a repository into the authenticated user's account or an organization. Forking is asynchronous; the returned repository may still be populating.",
		Annotations: tool.Annotations{Idempotent: true},
		NewParams:   func() any { return &forkRepositoryParams{} },
		Output:      &github.Repository{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*forkRepositoryParams)
			repository, err := client.ForkRepository(ctx, p.Owner, p.Repo, p.Org, p.DefaultBranchOnly)
			if err != nil {
				return nil, classify(err)
			}
			return repository, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_repos_delete",
		Title:       "Delete repository",
		Description: "Permanently delete a repository. Requires the delete_repo scope. There is no undo.",
		Annotations: tool.Annotations{Destructive: true, Idempotent: true},
		NewParams:   func() any { return &deleteRepositoryParams{} },
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*deleteRepositoryParams)
			if err := client.DeleteRepository(ctx, p.Owner, p.Repo); err != nil {
				return nil, classify(err)
			}
			return deletedResult{Deleted: true}, nil
		},
	})
}

// deletedResult acknowledges a deletion, which otherwise has no
// response body.
type deletedResult struct {
	Deleted bool `json:"deleted"`
}

// pageSize picks a per-page size for a bounded listing: the limit
// itself when it fits in one page, otherwise the API maximum.
func pageSize(limit int) int {
	if limit > 0 && limit < 100 {
		return limit
	}
	return 100
}

// collectLimited drains an iterator up to limit items. A limit of zero
// or less collects everything.
func collectLimited[T any](ctx context.Context, iterator *github.PageIterator[T], limit int) ([]T, error) {
	if limit <= 0 {
		return iterator.Collect(ctx)
	}
	var items []T
	for len(items) < limit {
		page, err := iterator.Next(ctx)
		if err != nil {
			return nil, err
		}
		if page == nil {
			break
		}
		items = append(items, page...)
	}
	if len(items) > limit {
		items = items[:limit]
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
