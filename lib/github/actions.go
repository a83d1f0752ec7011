// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/klauspost/compress/zip"
)

// ListWorkflows retrieves the workflows configured in a repository.
// The Actions list endpoints wrap their results in a count envelope
// rather than using Link pagination alone, so they return the envelope
// directly instead of a PageIterator.
func (client *Client) ListWorkflows(ctx context.Context, owner, repo string) (*WorkflowList, error) {
	var workflows WorkflowList
	path := fmt.Sprintf("/repos/%s/%s/actions/workflows", owner, repo)
	if err := client.get(ctx, path, &workflows); err != nil {
		return nil, fmt.Errorf("listing workflows in %s/%s: %w", owner, repo, err)
	}
	return &workflows, nil
}

// GetWorkflow retrieves a single workflow. workflowID is the workflow
// file name ("ci.yml") or its numeric ID as a string.
func (client *Client) GetWorkflow(ctx context.Context, owner, repo, workflowID string) (*Workflow, error) {
	var workflow Workflow
	path := fmt.Sprintf("/repos/%s/%s/actions/workflows/%s", owner, repo, url.PathEscape(workflowID))
	if err := client.get(ctx, path, &workflow); err != nil {
		return nil, fmt.Errorf("getting workflow %s in %s/%s: %w", workflowID, owner, repo, err)
	}
	return &workflow, nil
}

// ListWorkflowRunsOptions controls filtering for ListWorkflowRuns.
type ListWorkflowRunsOptions struct {
	Branch  string `url:"branch,omitempty"`  // filter by head branch
	Event   string `url:"event,omitempty"`   // filter by triggering event
	Status  string `url:"status,omitempty"`  // "queued", "in_progress", "completed", or a conclusion
	Actor   string `url:"actor,omitempty"`   // filter by the user that triggered the run
	PerPage int    `url:"per_page,omitempty"`
}

// ListWorkflowRuns retrieves runs for a repository, newest first. A
// non-empty workflowID restricts to one workflow.
func (client *Client) ListWorkflowRuns(ctx context.Context, owner, repo, workflowID string, options *ListWorkflowRunsOptions) (*WorkflowRunList, error) {
	basePath := fmt.Sprintf("/repos/%s/%s/actions/runs", owner, repo)
	if workflowID != "" {
		basePath = fmt.Sprintf("/repos/%s/%s/actions/workflows/%s/runs", owner, repo, url.PathEscape(workflowID))
	}
	var runs WorkflowRunList
	if err := client.get(ctx, listPath(basePath, options), &runs); err != nil {
		return nil, fmt.Errorf("listing workflow runs in %s/%s: %w", owner, repo, err)
	}
	return &runs, nil
}

// GetWorkflowRun retrieves a single workflow run by ID.
func (client *Client) GetWorkflowRun(ctx context.Context, owner, repo string, runID int64) (*WorkflowRun, error) {
	var run WorkflowRun
	path := fmt.Sprintf("/repos/%s/%s/actions/runs/%d", owner, repo, runID)
	if err := client.get(ctx, path, &run); err != nil {
		return nil, fmt.Errorf("getting workflow run %d in %s/%s: %w", runID, owner, repo, err)
	}
	return &run, nil
}

// DispatchWorkflowRequest contains the fields for triggering a
// workflow through the workflow_dispatch event.
type DispatchWorkflowRequest struct {
	// Ref is the git reference to run the workflow on.
	Ref string `json:"ref"`

	// Inputs must match the workflow's workflow_dispatch input
	// definitions.
	Inputs map[string]string `json:"inputs,omitempty"`
}

// DispatchWorkflow triggers a workflow run. GitHub returns 204 with no
// body; the resulting run must be discovered by polling
// ListWorkflowRuns.
func (client *Client) DispatchWorkflow(ctx context.Context, owner, repo, workflowID string, request DispatchWorkflowRequest) error {
	path := fmt.Sprintf("/repos/%s/%s/actions/workflows/%s/dispatches", owner, repo, url.PathEscape(workflowID))
	if err := client.post(ctx, path, request, nil); err != nil {
		return fmt.Errorf("dispatching workflow %s in %s/%s: %w", workflowID, owner, repo, err)
	}
	return nil
}

// CancelWorkflowRun cancels an in-progress workflow run. GitHub
// returns 202; cancellation is asynchronous.
func (client *Client) CancelWorkflowRun(ctx context.Context, owner, repo string, runID int64) error {
	path := fmt.Sprintf("/repos/%s/%s/actions/runs/%d/cancel", owner, repo, runID)
	if err := client.post(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("cancelling workflow run %d in %s/%s: %w", runID, owner, repo, err)
	}
	return nil
}

// RerunWorkflow re-runs all jobs of a completed workflow run.
func (client *Client) RerunWorkflow(ctx context.Context, owner, repo string, runID int64) error {
	path := fmt.Sprintf("/repos/%s/%s/actions/runs/%d/rerun", owner, repo, runID)
	if err := client.post(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("re-running workflow run %d in %s/%s: %w", runID, owner, repo, err)
	}
	return nil
}

// GetWorkflowRunLogsURL resolves the short-lived download URL for a
// run's log archive without downloading it. GitHub answers the logs
// endpoint with a 302; this issues the request on a non-following
// client and returns the Location header.
func (client *Client) GetWorkflowRunLogsURL(ctx context.Context, owner, repo string, runID int64) (string, error) {
	requestURL := client.baseURL + fmt.Sprintf("/repos/%s/%s/actions/runs/%d/logs", owner, repo, runID)

	noRedirect := *client.httpClient
	noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", fmt.Errorf("github: creating logs request: %w", err)
	}
	authHeader, err := client.auth.AuthorizationHeader(ctx)
	if err != nil {
		return "", fmt.Errorf("github: authentication: %w", err)
	}
	request.Header.Set("Authorization", authHeader)
	request.Header.Set("Accept", "application/vnd.github+json")
	request.Header.Set("X-GitHub-Api-Version", apiVersion)
	request.Header.Set("User-Agent", userAgent)

	response, err := noRedirect.Do(request)
	if err != nil {
		return "", fmt.Errorf("github: resolving logs URL for run %d: %w", runID, err)
	}
	defer response.Body.Close()
	client.rateLimit.update(response.Header)

	if response.StatusCode != http.StatusFound {
		return "", parseAPIError(response)
	}
	location := response.Header.Get("Location")
	if location == "" {
		return "", fmt.Errorf("github: logs redirect for run %d carries no Location", runID)
	}
	return location, nil
}

// DownloadWorkflowLogs downloads the logs for a workflow run as a zip
// archive. GitHub answers with a 302 to a short-lived URL that the
// HTTP client follows. The caller closes the returned ReadCloser.
func (client *Client) DownloadWorkflowLogs(ctx context.Context, owner, repo string, runID int64) (io.ReadCloser, error) {
	requestURL := client.baseURL + fmt.Sprintf("/repos/%s/%s/actions/runs/%d/logs", owner, repo, runID)

	response, err := client.doRaw(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("downloading logs for run %d in %s/%s: %w", runID, owner, repo, err)
	}
	if response.StatusCode != http.StatusOK {
		defer response.Body.Close()
		return nil, parseAPIError(response)
	}
	return response.Body, nil
}

// WorkflowLogFile describes one file inside a run's log archive.
type WorkflowLogFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// GetWorkflowRunLogs downloads a run's log archive and returns its
// file listing. When path is non-empty, the text of the matching file
// is returned alongside.
func (client *Client) GetWorkflowRunLogs(ctx context.Context, owner, repo string, runID int64, path string) ([]WorkflowLogFile, string, error) {
	body, err := client.DownloadWorkflowLogs(ctx, owner, repo, runID)
	if err != nil {
		return nil, "", err
	}
	defer body.Close()

	archive, err := io.ReadAll(body)
	if err != nil {
		return nil, "", fmt.Errorf("reading logs for run %d in %s/%s: %w", runID, owner, repo, err)
	}
	zipReader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, "", fmt.Errorf("opening log archive for run %d in %s/%s: %w", runID, owner, repo, err)
	}

	var files []WorkflowLogFile
	var content string
	found := false
	for _, file := range zipReader.File {
		if file.FileInfo().IsDir() {
			continue
		}
		files = append(files, WorkflowLogFile{
			Name: file.Name,
			Size: int64(file.UncompressedSize64),
		})
		if path == "" || file.Name != path {
			continue
		}
		entry, err := file.Open()
		if err != nil {
			return nil, "", fmt.Errorf("opening log %s for run %d: %w", path, runID, err)
		}
		text, err := io.ReadAll(entry)
		entry.Close()
		if err != nil {
			return nil, "", fmt.Errorf("reading log %s for run %d: %w", path, runID, err)
		}
		content = string(text)
		found = true
	}
	if path != "" && !found {
		return nil, "", fmt.Errorf("no log file %q in run %d of %s/%s", path, runID, owner, repo)
	}
	return files, content, nil
}
