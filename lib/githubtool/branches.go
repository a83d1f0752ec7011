// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package githubtool

import (
	"context"

	"github.com/forgetools/github-mcp/lib/github"
	"github.com/forgetools/github-mcp/lib/tool"
)

type listBranchesParams struct {
	repoParams
	Protected bool `json:"protected,omitempty" desc:"only list protected branches"`
	Limit     int  `json:"limit,omitempty" desc:"maximum branches to return" default:"100"`
}

type getBranchParams struct {
	repoParams
	Branch string `json:"branch" desc:"branch name" required:"true"`
}

type createBranchParams struct {
	repoParams
	Branch string `json:"branch" desc:"name for the new branch" required:"true"`
	From   string `json:"from,omitempty" desc:"source branch or commit SHA; defaults to the repository default branch"`
}

type protectBranchParams struct {
	repoParams
	Branch           string   `json:"branch" desc:"branch to protect" required:"true"`
	RequiredChecks   []string `json:"required_checks,omitempty" desc:"status check contexts that must pass before merging"`
	StrictChecks     bool     `json:"strict_checks,omitempty" desc:"require branches to be up to date before merging"`
	RequiredReviews  int      `json:"required_reviews,omitempty" desc:"number of approving reviews required"`
	DismissStale     bool     `json:"dismiss_stale,omitempty" desc:"dismiss stale approvals when new commits are pushed"`
	EnforceAdmins    bool     `json:"enforce_admins,omitempty" desc:"apply the rules to repository administrators too"`
	RequireCodeOwner bool     `json:"require_code_owner,omitempty" desc:"require review from code owners"`
}

func registerBranches(registry *tool.Registry, client *github.Client) {
	registry.Register(&tool.Tool{
		Name:        "github_branches_list",
		Title:       "List branches",
		Description: "List branches in a repository.",
		Annotations: tool.Annotations{ReadOnly: true},
		NewParams:   func() any { return &listBranchesParams{} },
		Output:      []github.Branch{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*listBranchesParams)
			options := &github.ListBranchesOptions{PerPage: pageSize(p.Limit)}
			if p.Protected {
				protected := true
				options.Protected = &protected
			}
			branches, err := collectLimited(ctx, client.ListBranches(p.Owner, p.Repo, options), p.Limit)
			if err != nil {
				return nil, classify(err)
			}
			return branches, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_branches_get",
		Title:       "Get branch",
		Description: "Get a branch with its tip commit and protection status.",
		Annotations: tool.Annotations{ReadOnly: true},
		NewParams:   func() any { return &getBranchParams{} },
		Output:      &github.Branch{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*getBranchParams)
			branch, err := client.GetBranch(ctx, p.Owner, p.Repo, p.Branch)
			if err != nil {
				return nil, classify(err)
			}
			return branch, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_branches_create",
		Title:       "Create branch",
		Description: "Create a branch from another branch, a commit SHA, or the repository default branch.",
		NewParams:   func() any { return &createBranchParams{} },
		Output:      &github.Ref{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*createBranchParams)
			sha, err := resolveSourceSHA(ctx, client, p.Owner, p.Repo, p.From)
			if err != nil {
				return nil, err
			}
			ref, err := client.CreateBranch(ctx, p.Owner, p.Repo, p.Branch, sha)
			if err != nil {
				return nil, classify(err)
			}
			return ref, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_branches_delete",
		Title:       "Delete branch",
		Description: "Delete a branch. Open pull requests from the branch are closed by GitHub.",
		Annotations: tool.Annotations{Destructive: true, Idempotent: true},
		NewParams:   func() any { return &getBranchParams{} },
		Output:      &deletedResult{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*getBranchParams)
			if err := client.DeleteBranch(ctx, p.Owner, p.Repo, p.Branch); err != nil {
				return nil, classify(err)
			}
			return &deletedResult{Deleted: true}, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_branches_protect",
		Title:       "Protect branch",
		Description: "Apply protection rules to a branch. Replaces any existing protection configuration.",
		Annotations: tool.Annotations{Idempotent: true},
		NewParams:   func() any { return &protectBranchParams{} },
		Output:      &github.BranchProtection{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*protectBranchParams)
			request := github.ProtectBranchRequest{EnforceAdmins: p.EnforceAdmins}
			if len(p.RequiredChecks) > 0 || p.StrictChecks {
				request.RequiredStatusChecks = &github.RequiredStatusChecks{
					Strict:   p.StrictChecks,
					Contexts: p.RequiredChecks,
				}
			}
			if p.RequiredReviews > 0 || p.DismissStale || p.RequireCodeOwner {
				request.RequiredReviews = &github.RequiredPullRequestReviews{
					DismissStaleReviews:          p.DismissStale,
					RequireCodeOwnerReviews:      p.RequireCodeOwner,
					RequiredApprovingReviewCount: p.RequiredReviews,
				}
			}
			protection, err := client.ProtectBranch(ctx, p.Owner, p.Repo, p.Branch, request)
			if err != nil {
				return nil, classify(err)
			}
			return protection, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_branches_protection",
		Title:       "Get branch protection",
		Description: "Get the protection rules on a branch. Fails with not_found for unprotected branches.",
		Annotations: tool.Annotations{ReadOnly: true},
		NewParams:   func() any { return &getBranchParams{} },
		Output:      &github.BranchProtection{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*getBranchParams)
			protection, err := client.GetBranchProtection(ctx, p.Owner, p.Repo, p.Branch)
			if err != nil {
				return nil, classify(err)
			}
			return protection, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_branches_unprotect",
		Title:       "Remove branch protection",
		Description: "Remove all protection rules from a branch.",
		Annotations: tool.Annotations{Destructive: true, Idempotent: true},
		NewParams:   func() any { return &getBranchParams{} },
		Output:      &deletedResult{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*getBranchParams)
			if err := client.RemoveBranchProtection(ctx, p.Owner, p.Repo, p.Branch); err != nil {
				return nil, classify(err)
			}
			return &deletedResult{Deleted: true}, nil
		},
	})
}

// resolveSourceSHA turns an optional source (branch name or commit
// SHA) into a commit SHA, falling back to the head of the repository
// default branch when the source is empty.
func resolveSourceSHA(ctx context.Context, client *github.Client, owner, repo, from string) (string, error) {
	if from == "" {
		repository, err := client.GetRepository(ctx, owner, repo)
		if err != nil {
			return "", classify(err)
		}
		from = repository.DefaultBranch
	}
	if looksLikeSHA(from) {
		return from, nil
	}
	branch, err := client.GetBranch(ctx, owner, repo, from)
	if err != nil {
		return "", classify(err)
	}
	return branch.Commit.SHA, nil
}

// looksLikeSHA reports whether s is a full 40-character hex object ID.
// Abbreviated SHAs are treated as branch names so that short hex
// branch names still resolve.
func looksLikeSHA(s string) bool {
	if len(s) != 40 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
