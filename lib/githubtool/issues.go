// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package githubtool

import (
	"context"

	"github.com/forgetools/github-mcp/lib/github"
	"github.com/forgetools/github-mcp/lib/tool"
)

type issueParams struct {
	repoParams
	Number int `json:"number" desc:"issue number" required:"true"`
}

type createIssueParams struct {
	repoParams
	Title     string   `json:"title" desc:"issue title" required:"true"`
	Body      string   `json:"body,omitempty" desc:"issue body, markdown"`
	Labels    []string `json:"labels,omitempty" desc:"labels to apply"`
	Assignees []string `json:"assignees,omitempty" desc:"logins to assign"`
	Milestone int      `json:"milestone,omitempty" desc:"milestone number to associate"`
}

type updateIssueParams struct {
	repoParams
	Number    int      `json:"number" desc:"issue number" required:"true"`
	Title     string   `json:"title,omitempty" desc:"new title; unset fields are left unchanged"`
	Body      string   `json:"body,omitempty" desc:"new body"`
	State     string   `json:"state,omitempty" desc:"open or closed"`
	Labels    []string `json:"labels,omitempty" desc:"replacement label set"`
	Assignees []string `json:"assignees,omitempty" desc:"replacement assignee set"`
}

type listIssuesParams struct {
	repoParams
	State    string   `json:"state,omitempty" desc:"open, closed, or all" default:"open"`
	Labels   []string `json:"labels,omitempty" desc:"only issues carrying all of these labels"`
	Assignee string   `json:"assignee,omitempty" desc:"assignee login, none, or *"`
	Sort     string   `json:"sort,omitempty" desc:"created, updated, or comments"`
	Since    string   `json:"since,omitempty" desc:"only issues updated after this RFC 3339 timestamp"`
	Limit    int      `json:"limit,omitempty" desc:"maximum issues to return" default:"100"`
}

type commentParams struct {
	repoParams
	Number int    `json:"number" desc:"issue or pull request number" required:"true"`
	Body   string `json:"body" desc:"comment body, markdown" required:"true"`
}

func registerIssues(registry *tool.Registry, client *github.Client) {
	registry.Register(&tool.Tool{
		Name:        "github_issues_create",
		Title:       "Create issue",
		Description: "Open a new issue with optional labels, assignees, and milestone.",
		NewParams:   func() any { return &createIssueParams{} },
		Output:      &github.Issue{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*createIssueParams)
			issue, err := client.CreateIssue(ctx, p.Owner, p.Repo, github.CreateIssueRequest{
				Title:     p.Title,
				Body:      p.Body,
				Labels:    p.Labels,
				Assignees: p.Assignees,
				Milestone: p.Milestone,
			})
			if err != nil {
				return nil, classify(err)
			}
			return issue, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_issues_get",
		Title:       "Get issue",
		Description: "Get an issue by number, including its body, labels, and state.",
		Annotations: tool.Annotations{ReadOnly: true},
		NewParams:   func() any { return &issueParams{} },
		Output:      &github.Issue{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*issueParams)
			issue, err := client.GetIssue(ctx, p.Owner, p.Repo, p.Number)
			if err != nil {
				return nil, classify(err)
			}
			return issue, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_issues_update",
		Title:       "Update issue",
		Description: "Update an issue's title, body, state, labels, or assignees. Omitted fields are left unchanged; set state to closed or open to close or reopen.",
		Annotations: tool.Annotations{Idempotent: true},
		NewParams:   func() any { return &updateIssueParams{} },
		Output:      &github.Issue{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*updateIssueParams)
			request := github.UpdateIssueRequest{
				Labels:    p.Labels,
				Assignees: p.Assignees,
			}
			if p.Title != "" {
				request.Title = &p.Title
			}
			if p.Body != "" {
				request.Body = &p.Body
			}
			if p.State != "" {
				if p.State != "open" && p.State != "closed" {
					return nil, tool.Validation("state must be open or closed, got %q", p.State)
				}
				request.State = &p.State
			}
			issue, err := client.UpdateIssue(ctx, p.Owner, p.Repo, p.Number, request)
			if err != nil {
				return nil, classify(err)
			}
			return issue, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_issues_list",
		Title:       "List issues",
		Description: "List issues in a repository, filtered by state, labels, or assignee. Pull requests are excluded.",
		Annotations: tool.Annotations{ReadOnly: true},
		NewParams:   func() any { return &listIssuesParams{} },
		Output:      []github.Issue{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*listIssuesParams)
			iterator := client.ListIssues(p.Owner, p.Repo, &github.ListIssuesOptions{
				State:    p.State,
				Labels:   p.Labels,
				Assignee: p.Assignee,
				Sort:     p.Sort,
				Since:    p.Since,
				PerPage:  pageSize(p.Limit),
			})
			issues, err := collectLimited(ctx, iterator, p.Limit)
			if err != nil {
				return nil, classify(err)
			}
			// The issues endpoint also returns pull requests; they
			// carry a pull_request key and are filtered out here.
			filtered := issues[:0]
			for _, issue := range issues {
				if issue.PullRequest == nil {
					filtered = append(filtered, issue)
				}
			}
			return filtered, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_issues_comment",
		Title:       "Comment on issue",
		Description: "Add a comment to an issue or pull request.",
		NewParams:   func() any { return &commentParams{} },
		Output:      &github.Comment{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*commentParams)
			comment, err := client.CreateIssueComment(ctx, p.Owner, p.Repo, p.Number, p.Body)
			if err != nil {
				return nil, classify(err)
			}
			return comment, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_issues_comments",
		Title:       "List issue comments",
		Description: "List the comments on an issue or pull request, oldest first.",
		Annotations: tool.Annotations{ReadOnly: true},
		NewParams:   func() any { return &issueParams{} },
		Output:      []github.Comment{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*issueParams)
			comments, err := client.ListIssueComments(p.Owner, p.Repo, p.Number).Collect(ctx)
			if err != nil {
				return nil, classify(err)
			}
			return comments, nil
		},
	})
}
