// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package githubtool

import (
	"context"
	"unicode/utf8"

	"github.com/forgetools/github-mcp/lib/github"
	"github.com/forgetools/github-mcp/lib/tool"
)

type getContentsParams struct {
	repoParams
	Path string `json:"path" desc:"file or directory path; empty for the repository root"`
	Ref  string `json:"ref" desc:"branch, tag, or commit SHA; empty for the default branch"`
}

// fileContentsResult is the decoded form of a single file.
type fileContentsResult struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Size     int64  `json:"size"`
	Content  string `json:"content"`
	HTMLURL  string `json:"html_url,omitempty"`
	Encoding string `json:"encoding,omitempty"`
}

// contentsResult is a file or a directory listing; exactly one field
// is set.
type contentsResult struct {
	File    *fileContentsResult `json:"file,omitempty"`
	Entries []github.Content    `json:"entries,omitempty"`
}

type writeFileParams struct {
	repoParams
	Path    string `json:"path" desc:"file path in the repository" required:"true"`
	Content string `json:"content" desc:"file content, plain text" required:"true"`
	Message string `json:"message" desc:"commit message" required:"true"`
	Branch  string `json:"branch" desc:"branch to commit to; empty for the default branch"`
	SHA     string `json:"sha" desc:"blob SHA of the file being replaced; required when updating an existing file"`
}

type deleteFileParams struct {
	repoParams
	Path    string `json:"path" desc:"file path in the repository" required:"true"`
	Message string `json:"message" desc:"commit message" required:"true"`
	SHA     string `json:"sha" desc:"blob SHA of the file being deleted" required:"true"`
	Branch  string `json:"branch" desc:"branch to commit to; empty for the default branch"`
}

type tarballParams struct {
	repoParams
	Ref string `json:"ref" desc:"branch, tag, or commit SHA" required:"true"`
}

type treeParams struct {
	repoParams
	Ref       string `json:"ref" desc:"branch, tag, or commit SHA" required:"true"`
	Recursive bool   `json:"recursive,omitempty" desc:"expand the full subtree in one call"`
}

func registerFiles(registry *tool.Registry, client *github.Client) {
	registry.Register(&tool.Tool{
		Name:        "github_files_get",
		Title:       "Get file or directory contents",
		Description: "Read a file (decoded to text) or list a directory. Binary files are returned base64-encoded with encoding set.",
		Annotations: tool.Annotations{ReadOnly: true, Idempotent: true},
		NewParams:   func() any { return &getContentsParams{} },
		Output:      &contentsResult{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*getContentsParams)
			file, entries, err := client.GetContents(ctx, p.Owner, p.Repo, p.Path, p.Ref)
			if err != nil {
				return nil, classify(err)
			}
			if entries != nil {
				return &contentsResult{Entries: entries}, nil
			}

			result := &fileContentsResult{
				Type:    file.Type,
				Name:    file.Name,
				Path:    file.Path,
				SHA:     file.SHA,
				Size:    file.Size,
				HTMLURL: file.HTMLURL,
			}
			if file.Type == "file" {
				decoded, decodeErr := github.DecodeContent(file.Content)
				if decodeErr != nil || !utf8.ValidString(decoded) {
					// Binary content would be mangled by JSON's UTF-8
					// replacement; pass the base64 through instead.
					result.Content = file.Content
					result.Encoding = "base64"
				} else {
					result.Content = decoded
				}
			}
			return &contentsResult{File: result}, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_files_write",
		Title:       "Create or update file",
		Description: "Create a new file or update an existing one in a single commit. Updating requires the current blob SHA (from github_files_get).",
		Annotations: tool.Annotations{Idempotent: true},
		NewParams:   func() any { return &writeFileParams{} },
		Output:      &github.FileCommit{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*writeFileParams)
			result, err := client.CreateOrUpdateFile(ctx, p.Owner, p.Repo, p.Path, github.CreateFileRequest{
				Message: p.Message,
				Content: github.EncodeContent(p.Content),
				Branch:  p.Branch,
				SHA:     p.SHA,
			})
			if err != nil {
				return nil, classify(err)
			}
			return result, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_files_delete",
		Title:       "Delete file",
		Description: "Delete a file in a single commit. Requires the current blob SHA.",
		Annotations: tool.Annotations{Destructive: true, Idempotent: true},
		NewParams:   func() any { return &deleteFileParams{} },
		Output:      &github.FileCommit{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*deleteFileParams)
			result, err := client.DeleteFile(ctx, p.Owner, p.Repo, p.Path, p.Message, p.SHA, p.Branch)
			if err != nil {
				return nil, classify(err)
			}
			return result, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_files_tarball",
		Title:       "List repository tarball",
		Description: "Download the repository tarball at a ref and list the files it contains (path, size, mode).",
		Annotations: tool.Annotations{ReadOnly: true, Idempotent: true},
		NewParams:   func() any { return &tarballParams{} },
		Output:      &[]github.TarballEntry{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*tarballParams)
			entries, err := client.DownloadTarball(ctx, p.Owner, p.Repo, p.Ref)
			if err != nil {
				return nil, classify(err)
			}
			if entries == nil {
				entries = []github.TarballEntry{}
			}
			return entries, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_files_tree",
		Title:       "Get git tree",
		Description: "List the git tree at a ref. Recursive expands the full subtree; GitHub truncates very large trees and sets truncated.",
		Annotations: tool.Annotations{ReadOnly: true, Idempotent: true},
		NewParams:   func() any { return &treeParams{} },
		Output:      &github.Tree{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*treeParams)
			tree, err := client.GetTree(ctx, p.Owner, p.Repo, p.Ref, p.Recursive)
			if err != nil {
				return nil, classify(err)
			}
			return tree, nil
		},
	})

	registerPush(registry, client)
}
