// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package githubtool

import (
	"context"

	"github.com/forgetools/github-mcp/lib/github"
	"github.com/forgetools/github-mcp/lib/tool"
)

type pullParams struct {
	repoParams
	Number int `json:"number" desc:"pull request number" required:"true"`
}

type createPullParams struct {
	repoParams
	Title string `json:"title" desc:"pull request title" required:"true"`
	Head  string `json:"head" desc:"branch with the changes; use owner:branch for cross-repository pulls" required:"true"`
	Base  string `json:"base" desc:"branch to merge into" required:"true"`
	Body  string `json:"body,omitempty" desc:"pull request description, markdown"`
	Draft bool   `json:"draft,omitempty" desc:"open as a draft"`
}

type updatePullParams struct {
	repoParams
	Number int    `json:"number" desc:"pull request number" required:"true"`
	Title  string `json:"title,omitempty" desc:"new title; unset fields are left unchanged"`
	Body   string `json:"body,omitempty" desc:"new description"`
	State  string `json:"state,omitempty" desc:"open or closed"`
	Base   string `json:"base,omitempty" desc:"new base branch"`
}

type listPullsParams struct {
	repoParams
	State string `json:"state,omitempty" desc:"open, closed, or all" default:"open"`
	Head  string `json:"head,omitempty" desc:"filter by head, owner:branch"`
	Base  string `json:"base,omitempty" desc:"filter by base branch"`
	Sort  string `json:"sort,omitempty" desc:"created, updated, popularity, or long-running"`
	Limit int    `json:"limit,omitempty" desc:"maximum pull requests to return" default:"100"`
}

type mergePullParams struct {
	repoParams
	Number        int    `json:"number" desc:"pull request number" required:"true"`
	Method        string `json:"method,omitempty" desc:"merge, squash, or rebase" default:"merge"`
	CommitTitle   string `json:"commit_title,omitempty" desc:"override for the merge commit title"`
	CommitMessage string `json:"commit_message,omitempty" desc:"override for the merge commit body"`
	SHA           string `json:"sha,omitempty" desc:"head must match this SHA or the merge fails"`
}

type createReviewParams struct {
	repoParams
	Number   int                    `json:"number" desc:"pull request number" required:"true"`
	Event    string                 `json:"event" desc:"APPROVE, REQUEST_CHANGES, or COMMENT" required:"true"`
	Body     string                 `json:"body,omitempty" desc:"review summary; required for REQUEST_CHANGES and COMMENT"`
	Comments []github.ReviewComment `json:"comments,omitempty" desc:"inline comments anchored to file lines"`
}

type requestReviewersParams struct {
	repoParams
	Number    int      `json:"number" desc:"pull request number" required:"true"`
	Reviewers []string `json:"reviewers" desc:"logins to request reviews from" required:"true"`
}

func registerPulls(registry *tool.Registry, client *github.Client) {
	registry.Register(&tool.Tool{
		Name:        "github_pulls_create",
		Title:       "Create pull request",
		Description: "Open a pull request from one branch into another, optionally as a draft.",
		NewParams:   func() any { return &createPullParams{} },
		Output:      &github.PullRequest{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*createPullParams)
			pull, err := client.CreatePull(ctx, p.Owner, p.Repo, github.CreatePullRequest{
				Title: p.Title,
				Head:  p.Head,
				Base:  p.Base,
				Body:  p.Body,
				Draft: p.Draft,
			})
			if err != nil {
				return nil, classify(err)
			}
			return pull, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_pulls_get",
		Title:       "Get pull request",
		Description: "Get a pull request with its branches, mergeability, and change counts.",
		Annotations: tool.Annotations{ReadOnly: true},
		NewParams:   func() any { return &pullParams{} },
		Output:      &github.PullRequest{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*pullParams)
			pull, err := client.GetPull(ctx, p.Owner, p.Repo, p.Number)
			if err != nil {
				return nil, classify(err)
			}
			return pull, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_pulls_update",
		Title:       "Update pull request",
		Description: "Update a pull request's title, body, state, or base branch. Omitted fields are left unchanged; set state to closed or open to close or reopen.",
		Annotations: tool.Annotations{Idempotent: true},
		NewParams:   func() any { return &updatePullParams{} },
		Output:      &github.PullRequest{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*updatePullParams)
			var request github.UpdatePullRequest
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
			if p.Base != "" {
				request.Base = &p.Base
			}
			pull, err := client.UpdatePull(ctx, p.Owner, p.Repo, p.Number, request)
			if err != nil {
				return nil, classify(err)
			}
			return pull, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_pulls_list",
		Title:       "List pull requests",
		Description: "List pull requests in a repository, filtered by state, head, or base.",
		Annotations: tool.Annotations{ReadOnly: true},
		NewParams:   func() any { return &listPullsParams{} },
		Output:      []github.PullRequest{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*listPullsParams)
			iterator := client.ListPullRequests(p.Owner, p.Repo, &github.ListPullRequestsOptions{
				State:   p.State,
				Head:    p.Head,
				Base:    p.Base,
				Sort:    p.Sort,
				PerPage: pageSize(p.Limit),
			})
			pulls, err := collectLimited(ctx, iterator, p.Limit)
			if err != nil {
				return nil, classify(err)
			}
			return pulls, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_pulls_files",
		Title:       "List pull request files",
		Description: "List the files changed in a pull request with per-file additions, deletions, and patches.",
		Annotations: tool.Annotations{ReadOnly: true},
		NewParams:   func() any { return &pullParams{} },
		Output:      []github.CommitFile{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*pullParams)
			files, err := client.ListPullFiles(p.Owner, p.Repo, p.Number).Collect(ctx)
			if err != nil {
				return nil, classify(err)
			}
			return files, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_pulls_merge",
		Title:       "Merge pull request",
		Description: "Merge a pull request using merge, squash, or rebase. Fails with conflict when the pull request is not mergeable or the head moved past the given SHA.",
		Annotations: tool.Annotations{Destructive: true},
		NewParams:   func() any { return &mergePullParams{} },
		Output:      &github.MergeResult{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*mergePullParams)
			switch p.Method {
			case "", "merge", "squash", "rebase":
			default:
				return nil, tool.Validation("method must be merge, squash, or rebase, got %q", p.Method)
			}
			result, err := client.MergePull(ctx, p.Owner, p.Repo, p.Number, github.MergePullRequest{
				CommitTitle:   p.CommitTitle,
				CommitMessage: p.CommitMessage,
				MergeMethod:   p.Method,
				SHA:           p.SHA,
			})
			if err != nil {
				return nil, classify(err)
			}
			return result, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_pulls_update_branch",
		Title:       "Update pull request branch",
		Description: "Merge the latest base branch into the pull request's head branch.",
		Annotations: tool.Annotations{Idempotent: true},
		NewParams:   func() any { return &pullParams{} },
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*pullParams)
			if err := client.UpdatePullBranch(ctx, p.Owner, p.Repo, p.Number); err != nil {
				return nil, classify(err)
			}
			return nil, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_pulls_review",
		Title:       "Review pull request",
		Description: "Submit a review: approve, request changes, or comment, with optional inline comments.",
		NewParams:   func() any { return &createReviewParams{} },
		Output:      &github.Review{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*createReviewParams)
			switch p.Event {
			case "APPROVE", "REQUEST_CHANGES", "COMMENT":
			default:
				return nil, tool.Validation("event must be APPROVE, REQUEST_CHANGES, or COMMENT, got %q", p.Event)
			}
			review, err := client.CreateReview(ctx, p.Owner, p.Repo, p.Number, github.CreateReviewRequest{
				Event:    p.Event,
				Body:     p.Body,
				Comments: p.Comments,
			})
			if err != nil {
				return nil, classify(err)
			}
			return review, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_pulls_reviews",
		Title:       "List pull request reviews",
		Description: "List the reviews submitted on a pull request.",
		Annotations: tool.Annotations{ReadOnly: true},
		NewParams:   func() any { return &pullParams{} },
		Output:      []github.Review{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*pullParams)
			reviews, err := client.ListReviews(p.Owner, p.Repo, p.Number).Collect(ctx)
			if err != nil {
				return nil, classify(err)
			}
			return reviews, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_pulls_review_comments",
		Title:       "List review comments",
		Description: "List the inline review comments on a pull request's changed files.",
		Annotations: tool.Annotations{ReadOnly: true},
		NewParams:   func() any { return &pullParams{} },
		Output:      []github.Comment{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*pullParams)
			comments, err := client.ListReviewComments(p.Owner, p.Repo, p.Number).Collect(ctx)
			if err != nil {
				return nil, classify(err)
			}
			return comments, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_pulls_request_reviewers",
		Title:       "Request reviewers",
		Description: "Request reviews from one or more users on a pull request.",
		NewParams:   func() any { return &requestReviewersParams{} },
		Output:      &github.PullRequest{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*requestReviewersParams)
			if len(p.Reviewers) == 0 {
				return nil, tool.Validation("reviewers must not be empty")
			}
			pull, err := client.RequestReviewers(ctx, p.Owner, p.Repo, p.Number, p.Reviewers)
			if err != nil {
				return nil, classify(err)
			}
			return pull, nil
		},
	})
}
