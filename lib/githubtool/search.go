// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package githubtool

import (
	"context"

	"github.com/forgetools/github-mcp/lib/github"
	"github.com/forgetools/github-mcp/lib/tool"
)

type searchParams struct {
	Query string `json:"query" desc:"search query with optional qualifiers, e.g. language:go stars:>100" required:"true"`
	Sort  string `json:"sort,omitempty" desc:"sort key; valid values depend on the result type"`
	Order string `json:"order,omitempty" desc:"asc or desc" default:"desc"`
	Limit int    `json:"limit,omitempty" desc:"maximum results per page, max 100" default:"30"`
	Page  int    `json:"page,omitempty" desc:"result page to fetch" default:"1"`
}

func (p *searchParams) options() github.SearchOptions {
	return github.SearchOptions{
		Sort:    p.Sort,
		Order:   p.Order,
		PerPage: pageSize(p.Limit),
		Page:    p.Page,
	}
}

func registerSearch(registry *tool.Registry, client *github.Client) {
	registry.Register(&tool.Tool{
		Name:        "github_search_repositories",
		Title:       "Search repositories",
		Description: "Search repositories across GitHub. Supports qualifiers like language:, stars:, and user:.",
		Annotations: tool.Annotations{ReadOnly: true},
		NewParams:   func() any { return &searchParams{} },
		Output:      &github.RepositorySearchResult{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*searchParams)
			result, err := client.SearchRepositories(ctx, p.Query, p.options())
			if err != nil {
				return nil, classify(err)
			}
			return result, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_search_issues",
		Title:       "Search issues",
		Description: "Search issues and pull requests across GitHub. Supports qualifiers like repo:, is:open, and is:pr.",
		Annotations: tool.Annotations{ReadOnly: true},
		NewParams:   func() any { return &searchParams{} },
		Output:      &github.IssueSearchResult{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*searchParams)
			result, err := client.SearchIssues(ctx, p.Query, p.options())
			if err != nil {
				return nil, classify(err)
			}
			return result, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_search_code",
		Title:       "Search code",
		Description: "Search file contents across GitHub. The query must include at least one qualifier such as repo: or org:.",
		Annotations: tool.Annotations{ReadOnly: true},
		NewParams:   func() any { return &searchParams{} },
		Output:      &github.CodeSearchResult{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*searchParams)
			result, err := client.SearchCode(ctx, p.Query, p.options())
			if err != nil {
				return nil, classify(err)
			}
			return result, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_search_users",
		Title:       "Search users",
		Description: "Search users and organizations across GitHub.",
		Annotations: tool.Annotations{ReadOnly: true},
		NewParams:   func() any { return &searchParams{} },
		Output:      &github.UserSearchResult{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*searchParams)
			result, err := client.SearchUsers(ctx, p.Query, p.options())
			if err != nil {
				return nil, classify(err)
			}
			return result, nil
		},
	})
}
