// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package githubtool

import (
	"context"

	"github.com/forgetools/github-mcp/lib/github"
	"github.com/forgetools/github-mcp/lib/tool"
)

type pushFile struct {
	Path    string `json:"path" desc:"file path in the repository" required:"true"`
	Content string `json:"content" desc:"file content, plain text" required:"true"`
}

type pushFilesParams struct {
	repoParams
	Branch  string     `json:"branch" desc:"branch to push to" required:"true"`
	Message string     `json:"message" desc:"commit message" required:"true"`
	Files   []pushFile `json:"files" desc:"files to write in the commit" required:"true"`
}

// pushResult summarizes the commit the push produced.
type pushResult struct {
	CommitSHA string `json:"commit_sha"`
	TreeSHA   string `json:"tree_sha"`
	Ref       string `json:"ref"`
	FileCount int    `json:"file_count"`
}

// registerPush adds github_files_push, the multi-file commit built on
// the git data API: resolve the branch ref, create a tree on top of
// the head commit, create the commit, then fast-forward the ref.
func registerPush(registry *tool.Registry, client *github.Client) {
	registry.Register(&tool.Tool{
		Name:        "github_files_push",
		Title:       "Push multiple files",
		Description: "Commit several files to a branch in a single commit. Unlike github_files_write this needs no per-file blob SHAs and writes all files atomically.",
		NewParams:   func() any { return &pushFilesParams{} },
		Output:      &pushResult{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*pushFilesParams)
			return pushFiles(ctx, client, p)
		},
	})
}

func pushFiles(ctx context.Context, client *github.Client, p *pushFilesParams) (*pushResult, error) {
	if err := github.ValidateBranchName(p.Branch); err != nil {
		return nil, tool.Validation("%v", err)
	}
	if len(p.Files) == 0 {
		return nil, tool.Validation("files must not be empty")
	}
	for _, file := range p.Files {
		if err := github.ValidateFilePath(file.Path); err != nil {
			return nil, tool.Validation("%v", err)
		}
	}

	ref, err := client.GetRef(ctx, p.Owner, p.Repo, "heads/"+p.Branch)
	if err != nil {
		return nil, classify(err)
	}
	headSHA := ref.Object.SHA

	headCommit, err := client.GetCommit(ctx, p.Owner, p.Repo, headSHA)
	if err != nil {
		return nil, classify(err)
	}

	entries := make([]github.CreateTreeEntry, len(p.Files))
	for i, file := range p.Files {
		content := file.Content
		entries[i] = github.CreateTreeEntry{
			Path:    file.Path,
			Mode:    "100644",
			Type:    "blob",
			Content: &content,
		}
	}

	tree, err := client.CreateTree(ctx, p.Owner, p.Repo, github.CreateTreeRequest{
		BaseTree: headCommit.Commit.Tree.SHA,
		Entries:  entries,
	})
	if err != nil {
		return nil, classify(err)
	}

	commit, err := client.CreateCommit(ctx, p.Owner, p.Repo, github.CreateCommitRequest{
		Message: p.Message,
		Tree:    tree.SHA,
		Parents: []string{headSHA},
	})
	if err != nil {
		return nil, classify(err)
	}

	// Fast-forward only: a concurrent push to the branch surfaces as a
	// 422 from the ref update rather than silently overwriting it.
	updated, err := client.UpdateRef(ctx, p.Owner, p.Repo, "heads/"+p.Branch, commit.SHA, false)
	if err != nil {
		return nil, classify(err)
	}

	return &pushResult{
		CommitSHA: commit.SHA,
		TreeSHA:   tree.SHA,
		Ref:       updated.Ref,
		FileCount: len(p.Files),
	}, nil
}
