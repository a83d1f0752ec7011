// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package githubtool

import (
	"context"

	"github.com/forgetools/github-mcp/lib/github"
	"github.com/forgetools/github-mcp/lib/tool"
)

type getWorkflowParams struct {
	repoParams
	Workflow string `json:"workflow" desc:"workflow ID or file name, e.g. ci.yml" required:"true"`
}

type listRunsParams struct {
	repoParams
	Workflow string `json:"workflow,omitempty" desc:"workflow ID or file name; empty lists runs across all workflows"`
	Branch   string `json:"branch,omitempty" desc:"filter by branch"`
	Event    string `json:"event,omitempty" desc:"filter by triggering event, e.g. push"`
	Status   string `json:"status,omitempty" desc:"filter by status or conclusion, e.g. in_progress, success"`
	Actor    string `json:"actor,omitempty" desc:"filter by the login that triggered the run"`
	Limit    int    `json:"limit,omitempty" desc:"maximum runs to return" default:"30"`
}

type runParams struct {
	repoParams
	RunID int64 `json:"run_id" desc:"workflow run ID" required:"true"`
}

type dispatchParams struct {
	repoParams
	Workflow string            `json:"workflow" desc:"workflow ID or file name, e.g. ci.yml" required:"true"`
	Ref      string            `json:"ref" desc:"branch or tag to run on" required:"true"`
	Inputs   map[string]string `json:"inputs,omitempty" desc:"workflow_dispatch inputs"`
}

// dispatchedResult acknowledges a dispatch; the API returns no body
// and the run appears asynchronously.
type dispatchedResult struct {
	Dispatched bool `json:"dispatched"`
}

type runLogsParams struct {
	repoParams
	RunID int64  `json:"run_id" desc:"workflow run ID" required:"true"`
	Path  string `json:"path,omitempty" desc:"log file inside the archive to read; empty only lists the files"`
}

// runLogsResult lists a run's log files; content is the text of the
// file named by path, when one was requested.
type runLogsResult struct {
	Files   []github.WorkflowLogFile `json:"files"`
	Content string                   `json:"content,omitempty"`
}

func registerActions(registry *tool.Registry, client *github.Client) {
	registry.Register(&tool.Tool{
		Name:        "github_actions_workflows",
		Title:       "List workflows",
		Description: "List the workflows configured in a repository.",
		Annotations: tool.Annotations{ReadOnly: true},
		NewParams:   func() any { return &getRepositoryParams{} },
		Output:      &github.WorkflowList{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*getRepositoryParams)
			workflows, err := client.ListWorkflows(ctx, p.Owner, p.Repo)
			if err != nil {
				return nil, classify(err)
			}
			return workflows, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_actions_workflow",
		Title:       "Get workflow",
		Description: "Get a workflow by ID or file name.",
		Annotations: tool.Annotations{ReadOnly: true},
		NewParams:   func() any { return &getWorkflowParams{} },
		Output:      &github.Workflow{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*getWorkflowParams)
			workflow, err := client.GetWorkflow(ctx, p.Owner, p.Repo, p.Workflow)
			if err != nil {
				return nil, classify(err)
			}
			return workflow, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_actions_runs",
		Title:       "List workflow runs",
		Description: "List workflow runs, newest first, for one workflow or the whole repository.",
		Annotations: tool.Annotations{ReadOnly: true},
		NewParams:   func() any { return &listRunsParams{} },
		Output:      &github.WorkflowRunList{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*listRunsParams)
			runs, err := client.ListWorkflowRuns(ctx, p.Owner, p.Repo, p.Workflow, &github.ListWorkflowRunsOptions{
				Branch:  p.Branch,
				Event:   p.Event,
				Status:  p.Status,
				Actor:   p.Actor,
				PerPage: pageSize(p.Limit),
			})
			if err != nil {
				return nil, classify(err)
			}
			if p.Limit > 0 && len(runs.WorkflowRuns) > p.Limit {
				runs.WorkflowRuns = runs.WorkflowRuns[:p.Limit]
			}
			return runs, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_actions_run",
		Title:       "Get workflow run",
		Description: "Get a workflow run with its status, conclusion, and head commit.",
		Annotations: tool.Annotations{ReadOnly: true},
		NewParams:   func() any { return &runParams{} },
		Output:      &github.WorkflowRun{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*runParams)
			run, err := client.GetWorkflowRun(ctx, p.Owner, p.Repo, p.RunID)
			if err != nil {
				return nil, classify(err)
			}
			return run, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_actions_dispatch",
		Title:       "Dispatch workflow",
		Description: "Trigger a workflow_dispatch event for a workflow on a branch or tag, with optional inputs.",
		NewParams:   func() any { return &dispatchParams{} },
		Output:      &dispatchedResult{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*dispatchParams)
			err := client.DispatchWorkflow(ctx, p.Owner, p.Repo, p.Workflow, github.DispatchWorkflowRequest{
				Ref:    p.Ref,
				Inputs: p.Inputs,
			})
			if err != nil {
				return nil, classify(err)
			}
			return &dispatchedResult{Dispatched: true}, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_actions_cancel",
		Title:       "Cancel workflow run",
		Description: "Cancel an in-progress workflow run.",
		Annotations: tool.Annotations{Idempotent: true},
		NewParams:   func() any { return &runParams{} },
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*runParams)
			if err := client.CancelWorkflowRun(ctx, p.Owner, p.Repo, p.RunID); err != nil {
				return nil, classify(err)
			}
			return nil, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_actions_rerun",
		Title:       "Re-run workflow",
		Description: "Re-run a completed workflow run.",
		NewParams:   func() any { return &runParams{} },
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*runParams)
			if err := client.RerunWorkflow(ctx, p.Owner, p.Repo, p.RunID); err != nil {
				return nil, classify(err)
			}
			return nil, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_actions_logs_url",
		Title:       "Get run logs URL",
		Description: "Get a short-lived download URL for a workflow run's log archive.",
		Annotations: tool.Annotations{ReadOnly: true},
		NewParams:   func() any { return &runParams{} },
		Output:      &logsURLResult{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*runParams)
			url, err := client.GetWorkflowRunLogsURL(ctx, p.Owner, p.Repo, p.RunID)
			if err != nil {
				return nil, classify(err)
			}
			return &logsURLResult{URL: url}, nil
		},
	})

	registry.Register(&tool.Tool{
		Name:        "github_actions_logs",
		Title:       "Read run logs",
		Description: "List the log files of a workflow run, and read one of them by path.",
		Annotations: tool.Annotations{ReadOnly: true},
		NewParams:   func() any { return &runLogsParams{} },
		Output:      &runLogsResult{},
		Run: func(ctx context.Context, params any) (any, error) {
			p := params.(*runLogsParams)
			files, content, err := client.GetWorkflowRunLogs(ctx, p.Owner, p.Repo, p.RunID, p.Path)
			if err != nil {
				return nil, classify(err)
			}
			return &runLogsResult{Files: files, Content: content}, nil
		},
	})
}

// logsURLResult carries the redirect target for a log archive. The
// URL expires after about one minute.
type logsURLResult struct {
	URL string `json:"url"`
}
