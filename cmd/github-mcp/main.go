// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

// github-mcp is an MCP server exposing the GitHub REST API as typed
// tools, over stdio for subprocess clients or HTTP for remote ones.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/forgetools/github-mcp/lib/version"
)

var configPath string

func main() {
	// A .env alongside the binary is a development convenience; a
	// missing file is not an error.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "github-mcp",
		Short: "MCP server for the GitHub REST API",
		Long: `github-mcp exposes GitHub repositories, files, branches, commits,
issues, pull requests, Actions, and search as Model Context Protocol
tools. MCP clients launch it as a stdio subprocess or reach it over
HTTP.

Credentials come from GITHUB_TOKEN or GitHub App settings in the
config file; see the serve command for details.`,
		Version:       version.Long(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML or JSONC config file")

	root.AddCommand(newServeCommand())
	root.AddCommand(newServeHTTPCommand())
	root.AddCommand(newToolsCommand())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("github-mcp %s\n", version.Long())
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
