// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

// Package httpapi exposes the MCP server over HTTP for clients that
// cannot spawn a stdio subprocess. Each POST to /mcp carries one
// JSON-RPC message and returns its response, so the transport stays
// stateless apart from the initialize handshake held by the
// underlying server.
package httpapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/forgetools/github-mcp/lib/mcp"
)

// maxMessageBytes caps a single JSON-RPC message. Matches the stdio
// transport's scanner buffer.
const maxMessageBytes = 4 * 1024 * 1024

// Server serves the MCP protocol over HTTP.
type Server struct {
	echo   *echo.Echo
	mcp    *mcp.Server
	logger *slog.Logger
}

// Options configures the HTTP transport.
type Options struct {
	// Logger receives request logging. Defaults to slog.Default().
	Logger *slog.Logger

	// RequestTimeout bounds the handling of one message, tool
	// execution included. Defaults to 60 seconds.
	RequestTimeout time.Duration
}

// NewServer wraps an MCP server in an HTTP transport.
func NewServer(mcpServer *mcp.Server, options Options) *Server {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := options.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("4M"))
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout:      timeout,
		ErrorMessage: "request timeout",
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency)
			return nil
		},
	}))

	server := &Server{echo: e, mcp: mcpServer, logger: logger}
	e.POST("/mcp", server.handleMessage)
	e.GET("/healthz", server.handleHealth)
	return server
}

// handleMessage feeds one JSON-RPC message through the MCP server.
// Notifications produce 202 with no body.
func (s *Server) handleMessage(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxMessageBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "reading request body")
	}

	response := s.mcp.HandleMessage(c.Request().Context(), body)
	if response == nil {
		return c.NoContent(http.StatusAccepted)
	}
	return c.JSONBlob(http.StatusOK, response)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Handler exposes the route tree for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight
// requests for up to ten seconds.
func (s *Server) ListenAndServe(ctx context.Context, address string) error {
	errs := make(chan error, 1)
	go func() {
		errs <- s.echo.Start(address)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
