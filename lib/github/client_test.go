// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/forgetools/github-mcp/lib/clock"
)

// newTestClient creates a Client backed by the given httptest.Server.
// Uses token auth for simplicity.
func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient(Config{
		BaseURL:    server.URL,
		Token:      "test-token",
		HTTPClient: server.Client(),
		Clock:      clock.Real(),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestNewClient_HTTPSEnforcement(t *testing.T) {
	_, err := NewClient(Config{
		BaseURL: "http://api.github.com",
		Token:   "test",
	})
	if err == nil {
		t.Fatal("expected error for HTTP URL")
	}
	if got := err.Error(); got != `github: API client requires HTTPS (got "http://api.github.com")` {
		t.Errorf("unexpected error: %s", got)
	}
}

func TestNewClient_MutuallyExclusiveAuth(t *testing.T) {
	_, err := NewClient(Config{
		BaseURL:        "https://api.github.com",
		Token:          "test",
		AppID:          1,
		PrivateKey:     testRSAPrivateKeyPEM,
		InstallationID: 1,
	})
	if err == nil {
		t.Fatal("expected error for both auth modes")
	}
}

func TestNewClient_NoAuth(t *testing.T) {
	_, err := NewClient(Config{
		BaseURL: "https://api.github.com",
	})
	if err == nil {
		t.Fatal("expected error for no auth")
	}
}

func TestNewClient_PartialAppAuth(t *testing.T) {
	_, err := NewClient(Config{
		BaseURL: "https://api.github.com",
		AppID:   1,
		// Missing PrivateKey and InstallationID.
	})
	if err == nil {
		t.Fatal("expected error for partial App auth")
	}
}

func TestClient_AuthHeaderInjection(t *testing.T) {
	var receivedAuth string
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		receivedAuth = request.Header.Get("Authorization")
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"number":1,"title":"Test"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.GetIssue(context.Background(), "owner", "repo", 1)
	if err != nil {
		t.Fatalf("GetIssue: %v", err)
	}

	if receivedAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want %q", receivedAuth, "Bearer test-token")
	}
}

func TestClient_GitHubHeaders(t *testing.T) {
	var receivedAccept, receivedVersion, receivedAgent string
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		receivedAccept = request.Header.Get("Accept")
		receivedVersion = request.Header.Get("X-GitHub-Api-Version")
		receivedAgent = request.Header.Get("User-Agent")
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"number":1}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.GetIssue(context.Background(), "owner", "repo", 1)
	if err != nil {
		t.Fatalf("GetIssue: %v", err)
	}

	if receivedAccept != "application/vnd.github+json" {
		t.Errorf("Accept = %q, want %q", receivedAccept, "application/vnd.github+json")
	}
	if receivedVersion != "2022-11-28" {
		t.Errorf("X-GitHub-Api-Version = %q, want %q", receivedVersion, "2022-11-28")
	}
	if receivedAgent != "github-mcp" {
		t.Errorf("User-Agent = %q, want %q", receivedAgent, "github-mcp")
	}
}

func TestClient_RateLimitBackoff(t *testing.T) {
	fakeClock := clock.Fake(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	requestCount := 0
	resetTime := fakeClock.Now().Add(30 * time.Second)

	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requestCount++
		if requestCount == 1 {
			writer.Header().Set("X-RateLimit-Remaining", "0")
			writer.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))
			writer.Header().Set("Retry-After", "30")
			writer.WriteHeader(http.StatusForbidden)
			json.NewEncoder(writer).Encode(map[string]string{
				"message": "API rate limit exceeded",
			})
			return
		}
		writer.Header().Set("X-RateLimit-Remaining", "4999")
		writer.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Add(1*time.Hour).Unix(), 10))
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"number":42,"title":"Test Issue"}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{
		BaseURL:    server.URL,
		Token:      "test-token",
		HTTPClient: server.Client(),
		Clock:      fakeClock,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	// The request blocks in the rate-limit backoff, so it runs in a
	// goroutine while the test advances the fake clock.
	done := make(chan error, 1)
	var issue *Issue
	go func() {
		var requestErr error
		issue, requestErr = client.GetIssue(context.Background(), "owner", "repo", 42)
		done <- requestErr
	}()

	fakeClock.WaitForWaiters(1)
	fakeClock.Advance(31 * time.Second)

	if err := <-done; err != nil {
		t.Fatalf("GetIssue: %v", err)
	}

	if requestCount != 2 {
		t.Errorf("expected 2 requests (rate limited + retry), got %d", requestCount)
	}
	if issue == nil || issue.Number != 42 {
		t.Errorf("expected issue #42, got %+v", issue)
	}
}

func TestClient_ETagCaching(t *testing.T) {
	requestCount := 0
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requestCount++
		if request.Header.Get("If-None-Match") == `"etag-123"` {
			writer.WriteHeader(http.StatusNotModified)
			return
		}
		writer.Header().Set("ETag", `"etag-123"`)
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"number":1,"title":"Cached Issue"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	ctx := context.Background()

	issue1, err := client.GetIssue(ctx, "owner", "repo", 1)
	if err != nil {
		t.Fatalf("first GetIssue: %v", err)
	}
	if issue1.Title != "Cached Issue" {
		t.Errorf("first issue title = %q, want %q", issue1.Title, "Cached Issue")
	}

	// Second request sends If-None-Match, gets a 304, and is served
	// from the cache.
	issue2, err := client.GetIssue(ctx, "owner", "repo", 1)
	if err != nil {
		t.Fatalf("second GetIssue: %v", err)
	}
	if issue2.Title != "Cached Issue" {
		t.Errorf("second issue title = %q, want %q", issue2.Title, "Cached Issue")
	}

	if requestCount != 2 {
		t.Errorf("expected 2 HTTP requests, got %d", requestCount)
	}
}

func TestClient_NotModifiedWithoutCachedBody(t *testing.T) {
	// A 304 the client never asked for (no If-None-Match sent) has no
	// cached body to serve; the client must refetch unconditionally
	// instead of surfacing the empty 304.
	requestCount := 0
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requestCount++
		if requestCount == 1 {
			writer.WriteHeader(http.StatusNotModified)
			return
		}
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"number":7,"title":"Fresh Issue"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	issue, err := client.GetIssue(context.Background(), "owner", "repo", 7)
	if err != nil {
		t.Fatalf("GetIssue: %v", err)
	}
	if issue.Title != "Fresh Issue" {
		t.Errorf("issue title = %q, want %q", issue.Title, "Fresh Issue")
	}
	if requestCount != 2 {
		t.Errorf("expected 2 HTTP requests (304 + refetch), got %d", requestCount)
	}
}

func TestClient_ErrorParsing(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
		json.NewEncoder(writer).Encode(map[string]string{
			"message":           "Not Found",
			"documentation_url": "https://docs.github.com/rest",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.GetIssue(context.Background(), "owner", "repo", 999)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound = false, want true for: %v", err)
	}
	if IsForbidden(err) {
		t.Errorf("IsForbidden = true, want false for: %v", err)
	}
}

func TestClient_ValidationError(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnprocessableEntity)
		writer.Write([]byte(`{
			"message": "Validation Failed",
			"errors": [{"resource": "Issue", "field": "title", "code": "missing_field"}]
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.CreateIssue(context.Background(), "owner", "repo", CreateIssueRequest{})
	if err == nil {
		t.Fatal("expected error for 422 response")
	}
	if !IsValidationFailed(err) {
		t.Errorf("IsValidationFailed = false, want true for: %v", err)
	}
}

func TestClient_DefaultBaseURL(t *testing.T) {
	client, err := NewClient(Config{Token: "test"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if client.baseURL != "https://api.github.com" {
		t.Errorf("baseURL = %q, want default", client.baseURL)
	}
}

func TestListPath(t *testing.T) {
	got := listPath("/repos/o/r/issues", &ListIssuesOptions{State: "closed", PerPage: 50})
	want := "/repos/o/r/issues?per_page=50&state=closed"
	if got != want {
		t.Errorf("listPath = %q, want %q", got, want)
	}

	if got := listPath("/repos/o/r/issues", nil); got != "/repos/o/r/issues" {
		t.Errorf("listPath with nil options = %q", got)
	}

	if got := listPath("/repos/o/r/issues", &ListIssuesOptions{}); got != "/repos/o/r/issues" {
		t.Errorf("listPath with empty options = %q", got)
	}
}
