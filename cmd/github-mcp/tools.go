// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forgetools/github-mcp/lib/github"
	"github.com/forgetools/github-mcp/lib/githubtool"
	"github.com/forgetools/github-mcp/lib/tool"
)

// toolListing is one catalog entry in the tools command's output.
type toolListing struct {
	Name        string       `json:"name"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	ReadOnly    bool         `json:"readOnly"`
	Destructive bool         `json:"destructive,omitempty"`
	InputSchema *tool.Schema `json:"inputSchema"`
}

func newToolsCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Print the tool catalog",
		Long: `Print every tool the server exposes. The default output is one name
and summary per line; --json emits the full catalog with input
schemas, for documentation generators and client configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The catalog is static; no credentials are needed to
			// print it. The placeholder token is never sent anywhere.
			client, err := github.NewClient(github.Config{Token: "unused"})
			if err != nil {
				return err
			}
			registry := githubtool.NewRegistry(client)

			if !asJSON {
				for _, name := range registry.Names() {
					fmt.Printf("%-36s %s\n", name, registry.Get(name).Title)
				}
				return nil
			}

			listings := make([]toolListing, 0, registry.Len())
			for _, name := range registry.Names() {
				t := registry.Get(name)
				schema, err := t.InputSchema()
				if err != nil {
					return fmt.Errorf("building schema for %s: %w", name, err)
				}
				listings = append(listings, toolListing{
					Name:        t.Name,
					Title:       t.Title,
					Description: t.Description,
					ReadOnly:    t.Annotations.ReadOnly,
					Destructive: t.Annotations.Destructive,
					InputSchema: schema,
				})
			}
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(listings)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the full catalog as JSON")
	return cmd
}
