// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/forgetools/github-mcp/lib/tool"
)

type greetParams struct {
	Name string `json:"name" desc:"who to greet" required:"true"`
}

type greetResult struct {
	Greeting string `json:"greeting"`
}

func testRegistry() *tool.Registry {
	registry := tool.NewRegistry()
	registry.Register(&tool.Tool{
		Name:        "greet",
		Title:       "Greet",
		Description: "greets by name",
		Annotations: tool.Annotations{ReadOnly: true, Idempotent: true},
		NewParams:   func() any { return &greetParams{} },
		Output:      &greetResult{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*greetParams)
			if p.Name == "nobody" {
				return nil, tool.NotFound("no such person %q", p.Name)
			}
			return &greetResult{Greeting: "hello " + p.Name}, nil
		},
	})
	registry.Register(&tool.Tool{
		Name:        "destroy",
		Title:       "Destroy",
		Description: "mutates state",
		Annotations: tool.Annotations{Destructive: true},
		NewParams:   func() any { return &struct{}{} },
		Run: func(ctx context.Context, params any) (any, error) {
			return map[string]bool{"destroyed": true}, nil
		},
	})
	return registry
}

func newTestServer(readOnly bool) *Server {
	return NewServer(testRegistry(), Options{
		Name:     "github-mcp-test",
		Version:  "0.0.0-test",
		ReadOnly: readOnly,
	})
}

// call sends one message and decodes the response envelope.
func call(t *testing.T, server *Server, message string) *response {
	t.Helper()
	responseBytes := server.HandleMessage(context.Background(), []byte(message))
	if responseBytes == nil {
		return nil
	}
	var decoded response
	if err := json.Unmarshal(responseBytes, &decoded); err != nil {
		t.Fatalf("decoding response %s: %v", responseBytes, err)
	}
	return &decoded
}

// initialize performs the handshake so subsequent calls are accepted.
func initialize(t *testing.T, server *Server) {
	t.Helper()
	resp := call(t, server, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-06-18","clientInfo":{"name":"test"}}}`)
	if resp.Error != nil {
		t.Fatalf("initialize failed: %+v", resp.Error)
	}
}

func TestInitialize(t *testing.T) {
	server := newTestServer(false)
	resp := call(t, server, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","clientInfo":{"name":"test","version":"1.0"}}}`)

	resultJSON, _ := json.Marshal(resp.Result)
	var result initializeResult
	if err := json.Unmarshal(resultJSON, &result); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if result.ProtocolVersion != protocolVersion {
		t.Errorf("protocolVersion = %q, want %q", result.ProtocolVersion, protocolVersion)
	}
	if result.ServerInfo.Name != "github-mcp-test" {
		t.Errorf("serverInfo.name = %q", result.ServerInfo.Name)
	}
	if result.Capabilities.Tools == nil {
		t.Error("tools capability missing")
	}
}

func TestRequiresInitialize(t *testing.T) {
	server := newTestServer(false)
	resp := call(t, server, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	if resp.Error == nil || resp.Error.Code != codeInvalidRequest {
		t.Errorf("expected invalid request before initialize, got %+v", resp)
	}
}

func TestPing(t *testing.T) {
	server := newTestServer(false)
	resp := call(t, server, `{"jsonrpc":"2.0","id":7,"method":"ping"}`)
	if resp.Error != nil {
		t.Errorf("ping error: %+v", resp.Error)
	}
}

func TestToolsList(t *testing.T) {
	server := newTestServer(false)
	initialize(t, server)

	resp := call(t, server, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)
	resultJSON, _ := json.Marshal(resp.Result)
	var result toolsListResult
	if err := json.Unmarshal(resultJSON, &result); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if len(result.Tools) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(result.Tools))
	}
	// Sorted by name: destroy, greet.
	if result.Tools[0].Name != "destroy" || result.Tools[1].Name != "greet" {
		t.Errorf("unexpected tool order: %s, %s", result.Tools[0].Name, result.Tools[1].Name)
	}

	greet := result.Tools[1]
	if greet.Annotations == nil || greet.Annotations.ReadOnlyHint == nil || !*greet.Annotations.ReadOnlyHint {
		t.Error("greet missing readOnlyHint")
	}
	if greet.OutputSchema == nil {
		t.Error("greet missing outputSchema")
	}

	schemaJSON, _ := json.Marshal(greet.InputSchema)
	if !strings.Contains(string(schemaJSON), `"required":["name"]`) {
		t.Errorf("inputSchema missing required list: %s", schemaJSON)
	}
}

func TestToolsList_ReadOnlyFilter(t *testing.T) {
	server := newTestServer(true)
	initialize(t, server)

	resp := call(t, server, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)
	resultJSON, _ := json.Marshal(resp.Result)
	var result toolsListResult
	json.Unmarshal(resultJSON, &result)

	if len(result.Tools) != 1 || result.Tools[0].Name != "greet" {
		t.Errorf("read-only catalog = %+v, want only greet", result.Tools)
	}
}

func TestToolsCall_Success(t *testing.T) {
	server := newTestServer(false)
	initialize(t, server)

	resp := call(t, server, `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"greet","arguments":{"name":"alice"}}}`)
	resultJSON, _ := json.Marshal(resp.Result)
	var result toolsCallResult
	if err := json.Unmarshal(resultJSON, &result); err != nil {
		t.Fatalf("decoding result: %v", err)
	}

	if result.IsError {
		t.Fatalf("unexpected error result: %+v", result)
	}
	if len(result.Content) != 1 || !strings.Contains(result.Content[0].Text, "hello alice") {
		t.Errorf("unexpected content: %+v", result.Content)
	}
	structured, _ := json.Marshal(result.StructuredContent)
	if string(structured) != `{"greeting":"hello alice"}` {
		t.Errorf("structuredContent = %s", structured)
	}
}

func TestToolsCall_ToolError(t *testing.T) {
	server := newTestServer(false)
	initialize(t, server)

	resp := call(t, server, `{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"greet","arguments":{"name":"nobody"}}}`)
	if resp.Error != nil {
		t.Fatalf("tool failure must be an isError result, not a JSON-RPC error: %+v", resp.Error)
	}

	resultJSON, _ := json.Marshal(resp.Result)
	var result toolsCallResult
	json.Unmarshal(resultJSON, &result)

	if !result.IsError {
		t.Fatal("IsError = false")
	}
	if result.ErrorInfo == nil || result.ErrorInfo.Category != "not_found" {
		t.Errorf("errorInfo = %+v, want not_found", result.ErrorInfo)
	}
	if result.ErrorInfo.Retryable {
		t.Error("not_found marked retryable")
	}
}

func TestToolsCall_ValidationError(t *testing.T) {
	server := newTestServer(false)
	initialize(t, server)

	resp := call(t, server, `{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"greet","arguments":{}}}`)
	resultJSON, _ := json.Marshal(resp.Result)
	var result toolsCallResult
	json.Unmarshal(resultJSON, &result)

	if !result.IsError || result.ErrorInfo == nil || result.ErrorInfo.Category != "validation" {
		t.Errorf("expected validation errorInfo, got %+v", result)
	}
}

func TestToolsCall_UnknownTool(t *testing.T) {
	server := newTestServer(false)
	initialize(t, server)

	resp := call(t, server, `{"jsonrpc":"2.0","id":6,"method":"tools/call","params":{"name":"bogus"}}`)
	if resp.Error == nil || resp.Error.Code != codeInvalidParams {
		t.Errorf("expected invalid params for unknown tool, got %+v", resp)
	}
}

func TestToolsCall_ReadOnlyRejection(t *testing.T) {
	server := newTestServer(true)
	initialize(t, server)

	resp := call(t, server, `{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"destroy","arguments":{}}}`)
	if resp.Error == nil {
		t.Fatal("expected rejection of mutating tool in read-only mode")
	}
}

func TestHandleMessage_ParseError(t *testing.T) {
	server := newTestServer(false)
	resp := call(t, server, `{not json`)
	if resp.Error == nil || resp.Error.Code != codeParseError {
		t.Errorf("expected parse error, got %+v", resp)
	}
}

func TestHandleMessage_UnknownMethod(t *testing.T) {
	server := newTestServer(false)
	resp := call(t, server, `{"jsonrpc":"2.0","id":1,"method":"resources/list"}`)
	if resp.Error == nil || resp.Error.Code != codeMethodNotFound {
		t.Errorf("expected method not found, got %+v", resp)
	}
}

func TestHandleMessage_Notification(t *testing.T) {
	server := newTestServer(false)
	if got := server.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`)); got != nil {
		t.Errorf("notification produced a response: %s", got)
	}
}

func TestHandleMessage_ConcurrentClients(t *testing.T) {
	server := newTestServer(false)
	initialize(t, server)

	// The HTTP transport dispatches messages from separate requests
	// against one server, so the handshake flag must tolerate
	// concurrent readers and a late re-initialize.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			var message string
			if id == 0 {
				message = `{"jsonrpc":"2.0","id":100,"method":"initialize","params":{"protocolVersion":"2025-06-18","clientInfo":{"name":"late"}}}`
			} else {
				message = `{"jsonrpc":"2.0","id":101,"method":"tools/list"}`
			}
			responseBytes := server.HandleMessage(context.Background(), []byte(message))
			var decoded response
			if err := json.Unmarshal(responseBytes, &decoded); err != nil {
				t.Errorf("decoding response %s: %v", responseBytes, err)
				return
			}
			if decoded.Error != nil {
				t.Errorf("request %d failed: %+v", id, decoded.Error)
			}
		}(i)
	}
	wg.Wait()
}

func TestRun_StdioLoop(t *testing.T) {
	server := newTestServer(false)

	input := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-06-18","clientInfo":{"name":"test"}}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"greet","arguments":{"name":"bob"}}}`,
	}, "\n") + "\n"

	var output bytes.Buffer
	if err := server.Run(context.Background(), strings.NewReader(input), &output); err != nil {
		t.Fatalf("Run: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 response lines (notification skipped), got %d: %q", len(lines), output.String())
	}
	if !strings.Contains(lines[1], "hello bob") {
		t.Errorf("second response missing greeting: %s", lines[1])
	}
}
