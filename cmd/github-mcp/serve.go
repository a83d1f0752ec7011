// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/forgetools/github-mcp/lib/config"
	"github.com/forgetools/github-mcp/lib/github"
	"github.com/forgetools/github-mcp/lib/githubtool"
	"github.com/forgetools/github-mcp/lib/httpapi"
	"github.com/forgetools/github-mcp/lib/mcp"
	"github.com/forgetools/github-mcp/lib/tool"
	"github.com/forgetools/github-mcp/lib/version"
)

func newServeCommand() *cobra.Command {
	var readOnly bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over stdin/stdout",
		Long: `Read newline-delimited JSON-RPC 2.0 requests from stdin and write
responses to stdout. This is the transport MCP clients use when they
launch github-mcp as a subprocess.

Logs go to stderr so they never interleave with protocol output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, registry, err := setup(readOnly)
			if err != nil {
				return err
			}
			server := mcp.NewServer(registry, mcp.Options{
				Name:     "github-mcp",
				Version:  version.Short(),
				Logger:   logger,
				ReadOnly: cfg.ReadOnly,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Run(ctx, os.Stdin, os.Stdout)
		},
	}
	cmd.Flags().BoolVar(&readOnly, "read-only", false, "only expose tools that cannot mutate repository state")
	return cmd
}

func newServeHTTPCommand() *cobra.Command {
	var listen string
	var readOnly bool
	cmd := &cobra.Command{
		Use:   "serve-http",
		Short: "Serve MCP over HTTP",
		Long: `Serve the MCP protocol over HTTP. Each POST to /mcp carries one
JSON-RPC message; GET /healthz reports liveness.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, registry, err := setup(readOnly)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}
			mcpServer := mcp.NewServer(registry, mcp.Options{
				Name:     "github-mcp",
				Version:  version.Short(),
				Logger:   logger,
				ReadOnly: cfg.ReadOnly,
			})
			httpServer := httpapi.NewServer(mcpServer, httpapi.Options{Logger: logger})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			logger.Info("listening", "address", cfg.Listen)
			return httpServer.ListenAndServe(ctx, cfg.Listen)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "bind address (overrides the config file)")
	cmd.Flags().BoolVar(&readOnly, "read-only", false, "only expose tools that cannot mutate repository state")
	return cmd
}

// setup loads configuration, builds the logger, and assembles the
// tool catalog shared by both transports.
func setup(readOnlyFlag bool) (config.Config, *slog.Logger, *tool.Registry, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	if readOnlyFlag {
		cfg.ReadOnly = true
	}

	logger := newLogger(cfg)

	clientConfig := github.Config{
		BaseURL: cfg.BaseURL,
		Token:   cfg.Token,
		Logger:  logger,
	}
	if cfg.AppID != 0 {
		key, err := cfg.PrivateKey()
		if err != nil {
			return config.Config{}, nil, nil, err
		}
		clientConfig.AppID = cfg.AppID
		clientConfig.PrivateKey = key
		clientConfig.InstallationID = cfg.InstallationID
	}

	client, err := github.NewClient(clientConfig)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	return cfg, logger, githubtool.NewRegistry(client), nil
}

// newLogger builds a stderr slog logger per the config. Stdout is
// reserved for protocol output.
func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	options := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, options)
	} else {
		handler = slog.NewTextHandler(os.Stderr, options)
	}
	return slog.New(handler)
}
