// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package githubtool

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"

	"github.com/forgetools/github-mcp/lib/clock"
	"github.com/forgetools/github-mcp/lib/github"
	"github.com/forgetools/github-mcp/lib/tool"
)

func newTestRegistry(t *testing.T, handler http.Handler) *tool.Registry {
	t.Helper()
	server := httptest.NewTLSServer(handler)
	t.Cleanup(server.Close)
	client, err := github.NewClient(github.Config{
		BaseURL:    server.URL,
		Token:      "test-token",
		HTTPClient: server.Client(),
		Clock:      clock.Real(),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return NewRegistry(client)
}

func runTool(t *testing.T, registry *tool.Registry, name string, args any) (any, error) {
	t.Helper()
	tl := registry.Get(name)
	if tl == nil {
		t.Fatalf("tool %s not registered", name)
	}
	raw, err := json.Marshal(args)
	if err != nil {
		t.Fatalf("marshaling args: %v", err)
	}
	params, err := tl.DecodeParams(raw)
	if err != nil {
		t.Fatalf("DecodeParams: %v", err)
	}
	return tl.Run(context.Background(), params)
}

func TestRegistry_Catalog(t *testing.T) {
	registry := newTestRegistry(t, http.NotFoundHandler())
	if got, want := registry.Len(), 55; got != want {
		t.Errorf("catalog has %d tools, want %d", got, want)
	}
	for _, name := range registry.Names() {
		if !strings.HasPrefix(name, "github_") {
			t.Errorf("tool %q does not follow the github_ prefix convention", name)
		}
		tl := registry.Get(name)
		if tl.Title == "" || tl.Description == "" {
			t.Errorf("tool %q is missing a title or description", name)
		}
		if _, err := tl.InputSchema(); err != nil {
			t.Errorf("tool %q input schema: %v", name, err)
		}
		if _, err := tl.OutputSchemaJSON(); err != nil {
			t.Errorf("tool %q output schema: %v", name, err)
		}
	}
}

func TestRegistry_ReadOnlyMix(t *testing.T) {
	registry := newTestRegistry(t, http.NotFoundHandler())
	readOnly := 0
	for _, tl := range registry.Tools() {
		if tl.Annotations.ReadOnly {
			readOnly++
		}
	}
	if readOnly == 0 || readOnly == registry.Len() {
		t.Errorf("catalog has %d read-only of %d tools; expected a mix", readOnly, registry.Len())
	}
}

func TestReposGet(t *testing.T) {
	registry := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/octocat/hello" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"name": "hello", "full_name": "octocat/hello", "default_branch": "main"}`)
	}))
	result, err := runTool(t, registry, "github_repos_get", map[string]any{
		"owner": "octocat",
		"repo":  "hello",
	})
	if err != nil {
		t.Fatalf("github_repos_get: %v", err)
	}
	repository := result.(*github.Repository)
	if repository.FullName != "octocat/hello" {
		t.Errorf("full_name = %q, want octocat/hello", repository.FullName)
	}
}

func TestIssuesCreate(t *testing.T) {
	registry := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/repos/octocat/hello/issues" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if body["title"] != "flaky test" {
			t.Errorf("title = %v, want flaky test", body["title"])
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"number": 7, "title": "flaky test", "state": "open"}`)
	}))
	result, err := runTool(t, registry, "github_issues_create", map[string]any{
		"owner":  "octocat",
		"repo":   "hello",
		"title":  "flaky test",
		"labels": []string{"bug"},
	})
	if err != nil {
		t.Fatalf("github_issues_create: %v", err)
	}
	issue := result.(*github.Issue)
	if issue.Number != 7 {
		t.Errorf("number = %d, want 7", issue.Number)
	}
}

func TestIssuesList_FiltersPullRequests(t *testing.T) {
	registry := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"number": 1, "title": "real issue"},
			{"number": 2, "title": "actually a pull", "pull_request": {"url": "https://example.test/pulls/2"}}
		]`)
	}))
	result, err := runTool(t, registry, "github_issues_list", map[string]any{
		"owner": "octocat",
		"repo":  "hello",
	})
	if err != nil {
		t.Fatalf("github_issues_list: %v", err)
	}
	issues := result.([]github.Issue)
	if len(issues) != 1 || issues[0].Number != 1 {
		t.Errorf("issues = %+v, want only issue #1", issues)
	}
}

func TestIssuesList_DefaultLimitBoundsPagination(t *testing.T) {
	var requests int
	registry := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Link", fmt.Sprintf(`<https://%s%s?page=%d>; rel="next"`, r.Host, r.URL.Path, requests+1))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, "[")
		for i := 0; i < 60; i++ {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"number": %d, "title": "issue"}`, (requests-1)*60+i+1)
		}
		fmt.Fprint(w, "]")
	}))

	result, err := runTool(t, registry, "github_issues_list", map[string]any{
		"owner": "octocat",
		"repo":  "hello",
	})
	if err != nil {
		t.Fatalf("github_issues_list: %v", err)
	}
	issues := result.([]github.Issue)
	if len(issues) != 100 {
		t.Errorf("collected %d issues, want the default limit of 100", len(issues))
	}
	if requests != 2 {
		t.Errorf("made %d requests, want 2; an omitted limit must not walk every page", requests)
	}
}

func TestFilesGet_TextDecoded(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("package main\n"))
	registry := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"type": "file", "name": "main.go", "path": "main.go", "encoding": "base64", "content": %q}`, encoded)
	}))
	result, err := runTool(t, registry, "github_files_get", map[string]any{
		"owner": "octocat",
		"repo":  "hello",
		"path":  "main.go",
	})
	if err != nil {
		t.Fatalf("github_files_get: %v", err)
	}
	contents := result.(*contentsResult)
	if contents.File == nil {
		t.Fatal("expected a file result")
	}
	if contents.File.Content != "package main\n" || contents.File.Encoding != "" {
		t.Errorf("content = %q encoding = %q, want decoded text", contents.File.Content, contents.File.Encoding)
	}
}

func TestFilesGet_BinaryKeptBase64(t *testing.T) {
	// A PNG header with bytes that are not valid UTF-8. Decoding and
	// re-serializing through JSON would replace them with U+FFFD, so
	// the tool must hand back the base64 untouched.
	binary := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff, 0xfe}
	encoded := base64.StdEncoding.EncodeToString(binary)
	registry := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"type": "file", "name": "logo.png", "path": "logo.png", "encoding": "base64", "content": %q}`, encoded)
	}))
	result, err := runTool(t, registry, "github_files_get", map[string]any{
		"owner": "octocat",
		"repo":  "hello",
		"path":  "logo.png",
	})
	if err != nil {
		t.Fatalf("github_files_get: %v", err)
	}
	contents := result.(*contentsResult)
	if contents.File == nil {
		t.Fatal("expected a file result")
	}
	if contents.File.Encoding != "base64" {
		t.Errorf("encoding = %q, want base64", contents.File.Encoding)
	}
	if contents.File.Content != encoded {
		t.Errorf("content = %q, want the original base64 %q", contents.File.Content, encoded)
	}
}

func TestFilesPush_CommitSequence(t *testing.T) {
	var calls []string
	registry := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch {
		case r.URL.Path == "/repos/octocat/hello/git/ref/heads/main":
			fmt.Fprint(w, `{"ref": "refs/heads/main", "object": {"type": "commit", "sha": "oldhead"}}`)
		case r.URL.Path == "/repos/octocat/hello/commits/oldhead":
			fmt.Fprint(w, `{"sha": "oldhead", "commit": {"tree": {"sha": "basetree"}}}`)
		case r.URL.Path == "/repos/octocat/hello/git/trees":
			var body struct {
				BaseTree string `json:"base_tree"`
				Tree     []struct {
					Path    string  `json:"path"`
					Mode    string  `json:"mode"`
					Content *string `json:"content"`
				} `json:"tree"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("decoding tree request: %v", err)
			}
			if body.BaseTree != "basetree" {
				t.Errorf("base_tree = %q, want basetree", body.BaseTree)
			}
			if len(body.Tree) != 2 || body.Tree[0].Path != "README.md" || body.Tree[0].Mode != "100644" {
				t.Errorf("unexpected tree entries: %+v", body.Tree)
			}
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"sha": "newtree"}`)
		case r.URL.Path == "/repos/octocat/hello/git/commits":
			var body struct {
				Message string   `json:"message"`
				Tree    string   `json:"tree"`
				Parents []string `json:"parents"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("decoding commit request: %v", err)
			}
			if body.Tree != "newtree" || len(body.Parents) != 1 || body.Parents[0] != "oldhead" {
				t.Errorf("unexpected commit request: %+v", body)
			}
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"sha": "newcommit"}`)
		case r.URL.Path == "/repos/octocat/hello/git/refs/heads/main":
			var body struct {
				SHA   string `json:"sha"`
				Force bool   `json:"force"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("decoding ref update: %v", err)
			}
			if body.SHA != "newcommit" || body.Force {
				t.Errorf("unexpected ref update: %+v", body)
			}
			fmt.Fprint(w, `{"ref": "refs/heads/main", "object": {"type": "commit", "sha": "newcommit"}}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	result, err := runTool(t, registry, "github_files_push", map[string]any{
		"owner":   "octocat",
		"repo":    "hello",
		"branch":  "main",
		"message": "update docs",
		"files": []map[string]string{
			{"path": "README.md", "content": "# hello"},
			{"path": "docs/usage.md", "content": "usage"},
		},
	})
	if err != nil {
		t.Fatalf("github_files_push: %v", err)
	}
	push := result.(*pushResult)
	if push.CommitSHA != "newcommit" || push.FileCount != 2 {
		t.Errorf("push result = %+v", push)
	}
	if len(calls) != 5 {
		t.Errorf("made %d API calls, want 5: %v", len(calls), calls)
	}
}

func TestFilesPush_RejectsBadPath(t *testing.T) {
	registry := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no API call expected for invalid params")
	}))
	_, err := runTool(t, registry, "github_files_push", map[string]any{
		"owner":   "octocat",
		"repo":    "hello",
		"branch":  "main",
		"message": "sneaky",
		"files": []map[string]string{
			{"path": "../escape.txt", "content": "x"},
		},
	})
	if got := tool.CategoryOf(err); got != tool.CategoryValidation {
		t.Errorf("category = %v, want validation", got)
	}
}

func TestBranchesCreate_DefaultBranchResolution(t *testing.T) {
	registry := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/octocat/hello":
			fmt.Fprint(w, `{"name": "hello", "default_branch": "main"}`)
		case "/repos/octocat/hello/branches/main":
			fmt.Fprint(w, `{"name": "main", "commit": {"sha": "tipsha"}}`)
		case "/repos/octocat/hello/git/refs":
			var body struct {
				Ref string `json:"ref"`
				SHA string `json:"sha"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("decoding ref request: %v", err)
			}
			if body.Ref != "refs/heads/feature" || body.SHA != "tipsha" {
				t.Errorf("unexpected ref create: %+v", body)
			}
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"ref": "refs/heads/feature", "object": {"type": "commit", "sha": "tipsha"}}`)
		default:
			t.Errorf("unexpected request %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	result, err := runTool(t, registry, "github_branches_create", map[string]any{
		"owner":  "octocat",
		"repo":   "hello",
		"branch": "feature",
	})
	if err != nil {
		t.Fatalf("github_branches_create: %v", err)
	}
	ref := result.(*github.Ref)
	if ref.Ref != "refs/heads/feature" {
		t.Errorf("ref = %q, want refs/heads/feature", ref.Ref)
	}
}

func TestBranchesCreate_SHASource(t *testing.T) {
	sha := "0123456789abcdef0123456789abcdef01234567"
	registry := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/octocat/hello/git/refs" {
			t.Errorf("unexpected request %s; SHA sources should skip branch resolution", r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"ref": "refs/heads/feature", "object": {"type": "commit", "sha": %q}}`, sha)
	}))
	if _, err := runTool(t, registry, "github_branches_create", map[string]any{
		"owner":  "octocat",
		"repo":   "hello",
		"branch": "feature",
		"from":   sha,
	}); err != nil {
		t.Fatalf("github_branches_create: %v", err)
	}
}

func TestToolError_NotFound(t *testing.T) {
	registry := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	}))
	_, err := runTool(t, registry, "github_repos_get", map[string]any{
		"owner": "octocat",
		"repo":  "missing",
	})
	if got := tool.CategoryOf(err); got != tool.CategoryNotFound {
		t.Errorf("category = %v, want not_found", got)
	}
}

func TestPullsMerge_MethodValidation(t *testing.T) {
	registry := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no API call expected for invalid params")
	}))
	_, err := runTool(t, registry, "github_pulls_merge", map[string]any{
		"owner":  "octocat",
		"repo":   "hello",
		"number": 3,
		"method": "fast-forward",
	})
	if got := tool.CategoryOf(err); got != tool.CategoryValidation {
		t.Errorf("category = %v, want validation", got)
	}
}

func TestSearchRepositories_PassesQuery(t *testing.T) {
	registry := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/repositories" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "language:go mcp" {
			t.Errorf("q = %q, want language:go mcp", got)
		}
		fmt.Fprint(w, `{"total_count": 1, "items": [{"name": "github-mcp"}]}`)
	}))
	result, err := runTool(t, registry, "github_search_repositories", map[string]any{
		"query": "language:go mcp",
	})
	if err != nil {
		t.Fatalf("github_search_repositories: %v", err)
	}
	search := result.(*github.RepositorySearchResult)
	if search.TotalCount != 1 || len(search.Items) != 1 {
		t.Errorf("search result = %+v", search)
	}
}

func TestFilesTree_Recursive(t *testing.T) {
	registry := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/octocat/hello/git/trees/main" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.RawQuery; got != "recursive=1" {
			t.Errorf("query = %q, want recursive=1", got)
		}
		fmt.Fprint(w, `{"sha": "abc123", "truncated": false, "tree": [
			{"path": "README.md", "type": "blob", "sha": "b1", "size": 12},
			{"path": "lib/tool", "type": "tree", "sha": "t1"}
		]}`)
	}))
	result, err := runTool(t, registry, "github_files_tree", map[string]any{
		"owner":     "octocat",
		"repo":      "hello",
		"ref":       "main",
		"recursive": true,
	})
	if err != nil {
		t.Fatalf("github_files_tree: %v", err)
	}
	tree := result.(*github.Tree)
	if tree.SHA != "abc123" || len(tree.Entries) != 2 {
		t.Errorf("tree = %+v", tree)
	}
	if tree.Entries[0].Path != "README.md" {
		t.Errorf("first entry = %+v", tree.Entries[0])
	}
}

func TestActionsLogs_ReadsArchiveEntry(t *testing.T) {
	var archive bytes.Buffer
	writer := zip.NewWriter(&archive)
	for name, text := range map[string]string{
		"build/1_checkout.txt": "checked out\n",
		"build/2_test.txt":     "ok  \tlib/tool\t0.1s\n",
	} {
		entry, err := writer.Create(name)
		if err != nil {
			t.Fatalf("creating archive entry: %v", err)
		}
		if _, err := entry.Write([]byte(text)); err != nil {
			t.Fatalf("writing archive entry: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing archive: %v", err)
	}

	registry := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/octocat/hello/actions/runs/7/logs" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write(archive.Bytes())
	}))
	result, err := runTool(t, registry, "github_actions_logs", map[string]any{
		"owner":  "octocat",
		"repo":   "hello",
		"run_id": 7,
		"path":   "build/2_test.txt",
	})
	if err != nil {
		t.Fatalf("github_actions_logs: %v", err)
	}
	logs := result.(*runLogsResult)
	if len(logs.Files) != 2 {
		t.Errorf("files = %+v, want 2 entries", logs.Files)
	}
	if !strings.Contains(logs.Content, "lib/tool") {
		t.Errorf("content = %q, want the test log text", logs.Content)
	}
}

func TestTagsCreate_SHASource(t *testing.T) {
	sha := strings.Repeat("ab", 20)
	registry := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/repos/octocat/hello/git/refs" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if body["ref"] != "refs/tags/v1.2.0" || body["sha"] != sha {
			t.Errorf("body = %v", body)
		}
		fmt.Fprintf(w, `{"ref": "refs/tags/v1.2.0", "object": {"sha": %q}}`, sha)
	}))
	result, err := runTool(t, registry, "github_tags_create", map[string]any{
		"owner": "octocat",
		"repo":  "hello",
		"tag":   "v1.2.0",
		"from":  sha,
	})
	if err != nil {
		t.Fatalf("github_tags_create: %v", err)
	}
	ref := result.(*github.Ref)
	if ref.Ref != "refs/tags/v1.2.0" {
		t.Errorf("ref = %+v", ref)
	}
}

func TestTagsCreate_RejectsBadName(t *testing.T) {
	registry := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			t.Errorf("request %s %s reached the server for an invalid tag name", r.Method, r.URL.Path)
		}
		http.NotFound(w, r)
	}))
	_, err := runTool(t, registry, "github_tags_create", map[string]any{
		"owner": "octocat",
		"repo":  "hello",
		"tag":   "v1..0",
		"from":  strings.Repeat("ab", 20),
	})
	if err == nil {
		t.Fatal("expected an error for tag name with '..'")
	}
}

func TestTagsList(t *testing.T) {
	registry := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/octocat/hello/tags" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `[{"name": "v1.1.0", "commit": {"sha": "def"}}, {"name": "v1.0.0", "commit": {"sha": "abc"}}]`)
	}))
	result, err := runTool(t, registry, "github_tags_list", map[string]any{
		"owner": "octocat",
		"repo":  "hello",
	})
	if err != nil {
		t.Fatalf("github_tags_list: %v", err)
	}
	tags := result.([]github.Tag)
	if len(tags) != 2 || tags[0].Name != "v1.1.0" {
		t.Errorf("tags = %+v", tags)
	}
}
