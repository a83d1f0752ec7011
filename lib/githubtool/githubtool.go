// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

// Package githubtool binds the GitHub REST client to the tool model:
// every exported GitHub operation becomes a registered tool named
// github_<resource>_<operation>. The MCP server serves the resulting
// catalog without knowing anything about GitHub.
package githubtool

import (
	"github.com/forgetools/github-mcp/lib/github"
	"github.com/forgetools/github-mcp/lib/tool"
)

// repoParams is the owner/repo pair nearly every tool starts with.
type repoParams struct {
	Owner string `json:"owner" desc:"repository owner (user or organization)" required:"true"`
	Repo  string `json:"repo" desc:"repository name" required:"true"`
}

// Register adds the full GitHub tool catalog to the registry, backed
// by the given client.
func Register(registry *tool.Registry, client *github.Client) {
	registerRepos(registry, client)
	registerFiles(registry, client)
	registerBranches(registry, client)
	registerTags(registry, client)
	registerCommits(registry, client)
	registerIssues(registry, client)
	registerPulls(registry, client)
	registerActions(registry, client)
	registerSearch(registry, client)
}

// NewRegistry builds a registry carrying the full catalog.
func NewRegistry(client *github.Client) *tool.Registry {
	registry := tool.NewRegistry()
	Register(registry, client)
	return registry
}
