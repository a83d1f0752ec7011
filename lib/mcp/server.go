// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

// Package mcp implements a Model Context Protocol server over JSON-RPC
// 2.0. Messages arrive either newline-delimited on stdio (Run) or one
// per HTTP POST (HandleMessage, used by the HTTP transport). The tool
// catalog comes from a tool.Registry; the server itself knows nothing
// about GitHub.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/forgetools/github-mcp/lib/tool"
)

// Server dispatches MCP requests to registered tools.
type Server struct {
	registry *tool.Registry
	name     string
	version  string
	logger   *slog.Logger
	readOnly bool

	// initialized is atomic because the HTTP transport dispatches
	// concurrent messages against one server.
	initialized atomic.Bool
}

// Options configures a Server.
type Options struct {
	// Name and Version populate the serverInfo sent on initialize.
	Name    string
	Version string

	// Logger receives structured request logging. Defaults to
	// slog.Default().
	Logger *slog.Logger

	// ReadOnly hides tools that mutate repository state and rejects
	// calls to them. Intended for agents that should observe but not
	// modify.
	ReadOnly bool
}

// NewServer creates a server over the given tool catalog.
func NewServer(registry *tool.Registry, options Options) *Server {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		registry: registry,
		name:     options.Name,
		version:  options.Version,
		logger:   logger,
		readOnly: options.ReadOnly,
	}
}

// Run processes JSON-RPC 2.0 requests from input and writes responses
// to output until input reaches EOF. Each request occupies a single
// line (newline-delimited JSON-RPC, not Content-Length framed).
func (s *Server) Run(ctx context.Context, input io.Reader, output io.Writer) error {
	scanner := bufio.NewScanner(input)
	// Tool results carrying file contents can be large.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		responseBytes := s.HandleMessage(ctx, line)
		if responseBytes == nil {
			continue
		}
		if _, err := output.Write(append(responseBytes, '\n')); err != nil {
			return fmt.Errorf("mcp: writing response: %w", err)
		}
	}

	return scanner.Err()
}

// HandleMessage processes a single JSON-RPC message and returns the
// marshaled response, or nil when the message is a notification and no
// response is due. Shared by the stdio loop and the HTTP transport.
func (s *Server) HandleMessage(ctx context.Context, message []byte) []byte {
	var req request
	if err := json.Unmarshal(message, &req); err != nil {
		return marshalError(json.RawMessage("null"), codeParseError, "parse error: "+err.Error())
	}

	if req.JSONRPC != "2.0" {
		if req.isNotification() {
			return nil
		}
		return marshalError(req.ID, codeInvalidRequest, "unsupported JSON-RPC version")
	}

	// Notifications receive no response.
	if req.isNotification() {
		return nil
	}

	s.logger.Debug("handling request", "method", req.Method)
	return s.dispatch(ctx, &req)
}

// dispatch routes a JSON-RPC request to the appropriate handler.
func (s *Server) dispatch(ctx context.Context, req *request) []byte {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "ping":
		return marshalResult(req.ID, map[string]any{})
	case "tools/list":
		if !s.initialized.Load() {
			return marshalError(req.ID, codeInvalidRequest, "server not initialized (call initialize first)")
		}
		return s.handleToolsList(req)
	case "tools/call":
		if !s.initialized.Load() {
			return marshalError(req.ID, codeInvalidRequest, "server not initialized (call initialize first)")
		}
		return s.handleToolsCall(ctx, req)
	default:
		return marshalError(req.ID, codeMethodNotFound, "unknown method: "+req.Method)
	}
}

func (s *Server) handleInitialize(req *request) []byte {
	if len(req.Params) == 0 {
		return marshalError(req.ID, codeInvalidParams, "params required for initialize")
	}

	var params initializeParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return marshalError(req.ID, codeInvalidParams, "invalid initialize params: "+err.Error())
	}

	// The server responds with its own protocol version and the client
	// decides whether it can proceed. Clients requesting a different
	// version are not rejected; MCP versions are additive.
	s.initialized.Store(true)
	s.logger.Info("client initialized",
		"client", params.ClientInfo.Name,
		"clientVersion", params.ClientInfo.Version,
		"requestedProtocol", params.ProtocolVersion)

	return marshalResult(req.ID, initializeResult{
		ProtocolVersion: protocolVersion,
		Capabilities: serverCapabilities{
			Tools: &toolCapability{},
		},
		ServerInfo: serverInfo{
			Name:    s.name,
			Version: s.version,
		},
	})
}

func (s *Server) handleToolsList(req *request) []byte {
	descriptions := []toolDescription{}
	for _, t := range s.registry.Tools() {
		if s.readOnly && !t.Annotations.ReadOnly {
			continue
		}

		inputSchema, err := t.InputSchema()
		if err != nil {
			return marshalError(req.ID, codeInternalError, fmt.Sprintf("schema for %s: %v", t.Name, err))
		}
		outputSchema, err := t.OutputSchemaJSON()
		if err != nil {
			return marshalError(req.ID, codeInternalError, fmt.Sprintf("output schema for %s: %v", t.Name, err))
		}

		description := toolDescription{
			Name:        t.Name,
			Title:       t.Title,
			Description: t.Description,
			InputSchema: inputSchema,
			Annotations: describeAnnotations(t.Annotations),
		}
		if outputSchema != nil {
			description.OutputSchema = outputSchema
		}
		descriptions = append(descriptions, description)
	}
	return marshalResult(req.ID, toolsListResult{Tools: descriptions})
}

func (s *Server) handleToolsCall(ctx context.Context, req *request) []byte {
	if len(req.Params) == 0 {
		return marshalError(req.ID, codeInvalidParams, "params required for tools/call")
	}

	var params toolsCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return marshalError(req.ID, codeInvalidParams, "invalid tools/call params: "+err.Error())
	}

	t := s.registry.Get(params.Name)
	if t == nil {
		return marshalError(req.ID, codeInvalidParams, "unknown tool: "+params.Name)
	}
	if s.readOnly && !t.Annotations.ReadOnly {
		return marshalError(req.ID, codeInvalidParams, "tool not available in read-only mode: "+params.Name)
	}

	result := s.executeTool(ctx, t, params.Arguments)
	return marshalResult(req.ID, result)
}

// executeTool decodes arguments, runs the tool, and assembles the
// tools/call result. Tool failures become isError results with
// categorized errorInfo rather than JSON-RPC errors: the call itself
// succeeded, the tool did not.
func (s *Server) executeTool(ctx context.Context, t *tool.Tool, arguments json.RawMessage) toolsCallResult {
	params, err := t.DecodeParams(arguments)
	if err != nil {
		s.logger.Warn("tool arguments rejected", "tool", t.Name, "error", err)
		return errorResult(err)
	}

	output, err := t.Run(ctx, params)
	if err != nil {
		s.logger.Warn("tool failed", "tool", t.Name, "category", tool.CategoryOf(err), "error", err)
		return errorResult(err)
	}

	s.logger.Info("tool succeeded", "tool", t.Name)
	return successResult(output)
}

// successResult assembles a result carrying the tool's output both as
// structuredContent and as a serialized text block, per the MCP
// specification for tools with an output schema.
func successResult(output any) toolsCallResult {
	result := toolsCallResult{}
	if output == nil {
		result.Content = []contentBlock{{Type: "text", Text: "ok"}}
		return result
	}

	serialized, err := json.Marshal(output)
	if err != nil {
		return errorResult(tool.Internal("serializing tool output: %v", err))
	}
	result.StructuredContent = output
	result.Content = []contentBlock{{Type: "text", Text: string(serialized)}}
	return result
}

// errorResult assembles an isError result with categorized errorInfo.
func errorResult(err error) toolsCallResult {
	category := tool.CategoryOf(err)
	return toolsCallResult{
		IsError: true,
		Content: []contentBlock{{Type: "text", Text: err.Error()}},
		ErrorInfo: &errorInfo{
			Category:  string(category),
			Retryable: category.Retryable(),
		},
	}
}

// describeAnnotations converts registry annotations to the wire form.
// Only hints that differ from the MCP defaults are emitted.
func describeAnnotations(annotations tool.Annotations) *toolAnnotations {
	wire := &toolAnnotations{}
	populated := false
	if annotations.ReadOnly {
		wire.ReadOnlyHint = boolPointer(true)
		// Read-only tools are by definition not destructive.
		wire.DestructiveHint = boolPointer(false)
		populated = true
	} else if !annotations.Destructive {
		// Mutating but not destructive (e.g. creating an issue):
		// override the destructive=true default.
		wire.DestructiveHint = boolPointer(false)
		populated = true
	}
	if annotations.Idempotent {
		wire.IdempotentHint = boolPointer(true)
		populated = true
	}
	if !populated {
		return nil
	}
	return wire
}

func boolPointer(value bool) *bool { return &value }

// marshalResult builds a successful JSON-RPC response.
func marshalResult(id json.RawMessage, result any) []byte {
	return mustMarshal(response{JSONRPC: "2.0", ID: id, Result: result})
}

// marshalError builds a JSON-RPC error response.
func marshalError(id json.RawMessage, code int, message string) []byte {
	return mustMarshal(response{JSONRPC: "2.0", ID: id, Error: &rpcError{Code: code, Message: message}})
}

// mustMarshal serializes a response. The response types contain only
// marshalable values, so failure indicates a programming error.
func mustMarshal(value any) []byte {
	encoded, err := json.Marshal(value)
	if err != nil {
		panic(fmt.Sprintf("mcp: marshaling response: %v", err))
	}
	return encoded
}
