// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package github

import "time"

// User is a GitHub account reference. Appears as repository owners,
// issue and PR authors, assignees, and search results.
type User struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	Type      string `json:"type"` // "User", "Organization", "Bot"
	AvatarURL string `json:"avatar_url,omitempty"`
	HTMLURL   string `json:"html_url"`
	SiteAdmin bool   `json:"site_admin,omitempty"`
}

// Repository is a GitHub repository.
type Repository struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	FullName      string     `json:"full_name"`
	Owner         User       `json:"owner"`
	Private       bool       `json:"private"`
	Fork          bool       `json:"fork"`
	Archived      bool       `json:"archived"`
	Description   string     `json:"description"`
	DefaultBranch string     `json:"default_branch"`
	Language      string     `json:"language,omitempty"`
	Stargazers    int        `json:"stargazers_count"`
	Forks         int        `json:"forks_count"`
	OpenIssues    int        `json:"open_issues_count"`
	HTMLURL       string     `json:"html_url"`
	CloneURL      string     `json:"clone_url"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	PushedAt      *time.Time `json:"pushed_at"`
}

// Label is an issue or pull request label.
type Label struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description,omitempty"`
}

// Issue is a GitHub issue.
type Issue struct {
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	State     string     `json:"state"` // "open" or "closed"
	HTMLURL   string     `json:"html_url"`
	User      User       `json:"user"`
	Labels    []Label    `json:"labels"`
	Assignees []User     `json:"assignees"`
	Comments  int        `json:"comments"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ClosedAt  *time.Time `json:"closed_at"`

	// PullRequest is set when this "issue" is actually a pull request
	// surfaced through the issues endpoints.
	PullRequest *IssuePullRequest `json:"pull_request,omitempty"`
}

// IssuePullRequest marks an issue as a pull request.
type IssuePullRequest struct {
	URL string `json:"url"`
}

// Comment is an issue comment or a pull request review comment.
type Comment struct {
	ID        int64     `json:"id"`
	Body      string    `json:"body"`
	Path      string    `json:"path,omitempty"` // set on review comments
	HTMLURL   string    `json:"html_url"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PullRequestBranch is the head or base of a pull request.
type PullRequestBranch struct {
	Ref  string      `json:"ref"` // branch name
	SHA  string      `json:"sha"` // head commit SHA
	Repo *Repository `json:"repo,omitempty"`
}

// PullRequest is a GitHub pull request.
type PullRequest struct {
	Number         int               `json:"number"`
	Title          string            `json:"title"`
	Body           string            `json:"body"`
	State          string            `json:"state"` // "open" or "closed"
	HTMLURL        string            `json:"html_url"`
	User           User              `json:"user"`
	Head           PullRequestBranch `json:"head"`
	Base           PullRequestBranch `json:"base"`
	Draft          bool              `json:"draft"`
	Merged         bool              `json:"merged"`
	Mergeable      *bool             `json:"mergeable"`
	Labels         []Label           `json:"labels"`
	Assignees      []User            `json:"assignees"`
	ChangedFiles   int               `json:"changed_files,omitempty"`
	Additions      int               `json:"additions,omitempty"`
	Deletions      int               `json:"deletions,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	ClosedAt       *time.Time        `json:"closed_at"`
	MergedAt       *time.Time        `json:"merged_at"`
	MergeCommitSHA string            `json:"merge_commit_sha,omitempty"`
}

// MergeResult is the response to merging a pull request.
type MergeResult struct {
	SHA     string `json:"sha"`
	Merged  bool   `json:"merged"`
	Message string `json:"message"`
}

// Review is a pull request review.
type Review struct {
	ID          int64     `json:"id"`
	State       string    `json:"state"` // "APPROVED", "CHANGES_REQUESTED", "COMMENTED"
	Body        string    `json:"body"`
	HTMLURL     string    `json:"html_url"`
	User        User      `json:"user"`
	CommitID    string    `json:"commit_id,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// CommitFile is one changed file in a commit comparison or pull request.
type CommitFile struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"` // "added", "removed", "modified", "renamed"
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Changes   int    `json:"changes"`
	SHA       string `json:"sha"`
	Patch     string `json:"patch,omitempty"`
	BlobURL   string `json:"blob_url,omitempty"`
	RawURL    string `json:"raw_url,omitempty"`
}

// CommitStatus is one commit status (CI check result) on a SHA.
type CommitStatus struct {
	ID          int64     `json:"id"`
	State       string    `json:"state"` // "error", "failure", "pending", "success"
	TargetURL   string    `json:"target_url"`
	Description string    `json:"description"`
	Context     string    `json:"context"`
	CreatedAt   time.Time `json:"created_at"`
}

// CombinedStatus aggregates all statuses on a commit.
type CombinedStatus struct {
	State      string         `json:"state"` // "failure", "pending", "success"
	SHA        string         `json:"sha"`
	TotalCount int            `json:"total_count"`
	Statuses   []CommitStatus `json:"statuses"`
}

// Branch is a repository branch as returned by the branches endpoints.
type Branch struct {
	Name          string       `json:"name"`
	Commit        BranchCommit `json:"commit"`
	Protected     bool         `json:"protected"`
	ProtectionURL string       `json:"protection_url,omitempty"`
}

// BranchCommit is the tip commit reference on a branch.
type BranchCommit struct {
	SHA string `json:"sha"`
	URL string `json:"url,omitempty"`
}

// BranchProtection is the protection configuration on a branch.
type BranchProtection struct {
	URL                  string                      `json:"url,omitempty"`
	RequiredStatusChecks *RequiredStatusChecks       `json:"required_status_checks"`
	RequiredReviews      *RequiredPullRequestReviews `json:"required_pull_request_reviews"`
	EnforceAdmins        *EnforceAdmins              `json:"enforce_admins"`
}

// RequiredStatusChecks lists the CI contexts that must pass before merging.
type RequiredStatusChecks struct {
	Strict   bool     `json:"strict"`
	Contexts []string `json:"contexts"`
}

// RequiredPullRequestReviews configures review requirements on a
// protected branch.
type RequiredPullRequestReviews struct {
	DismissStaleReviews          bool `json:"dismiss_stale_reviews"`
	RequireCodeOwnerReviews      bool `json:"require_code_owner_reviews"`
	RequiredApprovingReviewCount int  `json:"required_approving_review_count"`
}

// EnforceAdmins indicates whether protection applies to administrators.
type EnforceAdmins struct {
	Enabled bool `json:"enabled"`
}

// Ref is a git reference (branch or tag).
type Ref struct {
	Ref    string    `json:"ref"` // "refs/heads/main"
	Object RefObject `json:"object"`
}

// RefObject is the object a ref points to.
type RefObject struct {
	SHA  string `json:"sha"`
	Type string `json:"type"` // "commit"
}

// Tree is a git tree object.
type Tree struct {
	SHA       string      `json:"sha"`
	Truncated bool        `json:"truncated"`
	Entries   []TreeEntry `json:"tree"`
}

// TreeEntry is a single entry in a git tree.
type TreeEntry struct {
	Path string `json:"path"`
	Mode string `json:"mode"` // "100644", "100755", "120000", "160000", "040000"
	Type string `json:"type"` // "blob", "tree", "commit"
	SHA  string `json:"sha"`
	Size int64  `json:"size,omitempty"`
}

// Commit is a git commit object from the git data API.
type Commit struct {
	SHA     string       `json:"sha"`
	Message string       `json:"message"`
	Tree    CommitTree   `json:"tree"`
	Parents []CommitRef  `json:"parents"`
	HTMLURL string       `json:"html_url"`
	Author  CommitAuthor `json:"author"`
}

// CommitTree references the tree in a commit.
type CommitTree struct {
	SHA string `json:"sha"`
}

// CommitRef references a parent commit.
type CommitRef struct {
	SHA string `json:"sha"`
}

// CommitAuthor is author or committer metadata on a commit.
type CommitAuthor struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Date  time.Time `json:"date"`
}

// RepoCommit is a commit as returned by the repository commits
// endpoints, which wrap the git commit with GitHub user associations.
type RepoCommit struct {
	SHA     string      `json:"sha"`
	Commit  CommitData  `json:"commit"`
	Author  *User       `json:"author"`
	HTMLURL string      `json:"html_url"`
	Parents []CommitRef `json:"parents"`
}

// CommitData is the embedded git commit inside a RepoCommit.
type CommitData struct {
	Message   string       `json:"message"`
	Author    CommitAuthor `json:"author"`
	Committer CommitAuthor `json:"committer"`
	Tree      CommitTree   `json:"tree"`
}

// CommitComparison is the result of comparing two commits.
type CommitComparison struct {
	Status       string       `json:"status"` // "ahead", "behind", "diverged", "identical"
	AheadBy      int          `json:"ahead_by"`
	BehindBy     int          `json:"behind_by"`
	TotalCommits int          `json:"total_commits"`
	Commits      []RepoCommit `json:"commits"`
	Files        []CommitFile `json:"files"`
	HTMLURL      string       `json:"html_url,omitempty"`
}

// Content is a file or directory entry from the repository contents API.
// For files fetched directly, Content holds base64-encoded data; for
// directory listings each entry has empty Content.
type Content struct {
	Type        string `json:"type"` // "file", "dir", "symlink", "submodule"
	Name        string `json:"name"`
	Path        string `json:"path"`
	SHA         string `json:"sha"`
	Size        int64  `json:"size"`
	Encoding    string `json:"encoding,omitempty"` // "base64" for files
	Content     string `json:"content,omitempty"`
	HTMLURL     string `json:"html_url,omitempty"`
	DownloadURL string `json:"download_url,omitempty"`
}

// FileCommit is the response to creating, updating, or deleting a file
// through the contents API: the affected content plus the commit made.
type FileCommit struct {
	Content *Content `json:"content"` // nil on delete
	Commit  Commit   `json:"commit"`
}

// Workflow is a GitHub Actions workflow definition.
type Workflow struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`  // ".github/workflows/ci.yml"
	State     string    `json:"state"` // "active", "disabled_manually", ...
	HTMLURL   string    `json:"html_url"`
	BadgeURL  string    `json:"badge_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkflowList is the envelope for the workflow listing endpoint.
type WorkflowList struct {
	TotalCount int        `json:"total_count"`
	Workflows  []Workflow `json:"workflows"`
}

// WorkflowRun is a single GitHub Actions workflow run.
type WorkflowRun struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	RunNumber  int       `json:"run_number"`
	Event      string    `json:"event"`
	Status     string    `json:"status"`     // "queued", "in_progress", "completed"
	Conclusion string    `json:"conclusion"` // "success", "failure", "cancelled", ""
	WorkflowID int64     `json:"workflow_id"`
	HeadSHA    string    `json:"head_sha"`
	HeadBranch string    `json:"head_branch"`
	HTMLURL    string    `json:"html_url"`
	LogsURL    string    `json:"logs_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// WorkflowRunList is the envelope for workflow run listing endpoints.
type WorkflowRunList struct {
	TotalCount   int           `json:"total_count"`
	WorkflowRuns []WorkflowRun `json:"workflow_runs"`
}

// RepositorySearchResult is the envelope for repository search.
type RepositorySearchResult struct {
	TotalCount        int          `json:"total_count"`
	IncompleteResults bool         `json:"incomplete_results"`
	Items             []Repository `json:"items"`
}

// IssueSearchResult is the envelope for issue and pull request search.
type IssueSearchResult struct {
	TotalCount        int     `json:"total_count"`
	IncompleteResults bool    `json:"incomplete_results"`
	Items             []Issue `json:"items"`
}

// CodeResult is a single code search hit.
type CodeResult struct {
	Name       string     `json:"name"`
	Path       string     `json:"path"`
	SHA        string     `json:"sha"`
	HTMLURL    string     `json:"html_url"`
	Repository Repository `json:"repository"`
}

// CodeSearchResult is the envelope for code search.
type CodeSearchResult struct {
	TotalCount        int          `json:"total_count"`
	IncompleteResults bool         `json:"incomplete_results"`
	Items             []CodeResult `json:"items"`
}

// UserSearchResult is the envelope for user search.
type UserSearchResult struct {
	TotalCount        int    `json:"total_count"`
	IncompleteResults bool   `json:"incomplete_results"`
	Items             []User `json:"items"`
}
