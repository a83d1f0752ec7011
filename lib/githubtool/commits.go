// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package githubtool

import (
	"context"
	"time"

	"github.com/forgetools/github-mcp/lib/github"
	"github.com/forgetools/github-mcp/lib/tool"
)

type getCommitParams struct {
	repoParams
	Ref string `json:"ref" desc:"commit SHA, branch, or tag" required:"true"`
}

type listCommitsParams struct {
	repoParams
	SHA    string `json:"sha,omitempty" desc:"branch, tag, or SHA to start listing from"`
	Path   string `json:"path,omitempty" desc:"only commits touching this path"`
	Author string `json:"author,omitempty" desc:"filter by author login or email"`
	Since  string `json:"since,omitempty" desc:"only commits after this RFC 3339 timestamp"`
	Until  string `json:"until,omitempty" desc:"only commits before this RFC 3339 timestamp"`
	Limit  int    `json:"limit,omitempty" desc:"maximum commits to return" default:"100"`
}

type compareCommitsParams struct {
	repoParams
	Base string `json:"base" desc:"base ref: branch, tag, or SHA" required:"true"`
	Head string `json:"head" desc:"head ref: branch, tag, or SHA" required:"true"`
}

func registerCommits(registry *tool.Registry, client *github.Client) {
	registry.Register(&tool.Tool{
		Name:        "github_commits_get",
		Title:       "Get commit",
		Description: "Get a single commit with its message, author, and the files it touched.",
		Annotations: tool.Annotations{ReadOnly: true},
		NewParams:   func() any { return &getCommitParams{} },
		Output:      &github.RepoCommit{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*getCommitParams)
			commit, err := client.GetCommit(ctx, p.Owner, p.Repo, p.Ref)
			if err != nil {
				return nil, classify(err)
			}
			return commit, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_commits_list",
		Title:       "List commits",
		Description: "List commits on a branch, newest first, optionally filtered by path, author, or date range.",
		Annotations: tool.Annotations{ReadOnly: true},
		NewParams:   func() any { return &listCommitsParams{} },
		Output:      []github.RepoCommit{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*listCommitsParams)
			options := &github.ListCommitsOptions{
				SHA:     p.SHA,
				Path:    p.Path,
				Author:  p.Author,
				PerPage: pageSize(p.Limit),
			}
			var err error
			if options.Since, err = parseTimestamp("since", p.Since); err != nil {
				return nil, err
			}
			if options.Until, err = parseTimestamp("until", p.Until); err != nil {
				return nil, err
			}
			commits, err := collectLimited(ctx, client.ListCommits(p.Owner, p.Repo, options), p.Limit)
			if err != nil {
				return nil, classify(err)
			}
			return commits, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_commits_compare",
		Title:       "Compare commits",
		Description: "Compare two refs: how far ahead or behind, the commits between them, and the changed files.",
		Annotations: tool.Annotations{ReadOnly: true},
		NewParams:   func() any { return &compareCommitsParams{} },
		Output:      &github.CommitComparison{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*compareCommitsParams)
			comparison, err := client.CompareCommits(ctx, p.Owner, p.Repo, p.Base, p.Head)
			if err != nil {
				return nil, classify(err)
			}
			return comparison, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_commits_status",
		Title:       "Get combined status",
		Description: "Get the combined commit status for a ref: overall state plus the individual status contexts.",
		Annotations: tool.Annotations{ReadOnly: true},
		NewParams:   func() any { return &getCommitParams{} },
		Output:      &github.CombinedStatus{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*getCommitParams)
			status, err := client.GetCombinedStatus(ctx, p.Owner, p.Repo, p.Ref)
			if err != nil {
				return nil, classify(err)
			}
			return status, nil
		},
	})
}

// parseTimestamp parses an optional RFC 3339 parameter, returning nil
// for the empty string.
func parseTimestamp(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, tool.Validation("%s must be an RFC 3339 timestamp: %v", name, err)
	}
	return &parsed, nil
}
