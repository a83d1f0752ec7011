// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"fmt"
)

// ReviewComment is an inline comment attached to a review submission.
type ReviewComment struct {
	Path string `json:"path"`

	// Line is the line in the diff the comment applies to.
	Line int `json:"line,omitempty"`

	// Side is "LEFT" (deletion) or "RIGHT" (addition, default).
	Side string `json:"side,omitempty"`

	Body string `json:"body"`
}

// CreateReviewRequest contains the fields for submitting a pull
// request review.
type CreateReviewRequest struct {
	// Event is "APPROVE", "REQUEST_CHANGES", or "COMMENT". Empty
	// leaves the review pending.
	Event string `json:"event,omitempty"`

	Body     string          `json:"body,omitempty"`
	CommitID string          `json:"commit_id,omitempty"`
	Comments []ReviewComment `json:"comments,omitempty"`
}

// CreateReview submits a review on a pull request.
func (client *Client) CreateReview(ctx context.Context, owner, repo string, number int, request CreateReviewRequest) (*Review, error) {
	var review Review
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d/reviews", owner, repo, number)
	if err := client.post(ctx, path, request, &review); err != nil {
		return nil, fmt.Errorf("creating review on %s/%s#%d: %w", owner, repo, number, err)
	}
	return &review, nil
}

// ListReviews returns a paginated iterator over the reviews on a pull
// request, in submission order.
func (client *Client) ListReviews(owner, repo string, number int) *PageIterator[Review] {
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d/reviews", owner, repo, number)
	return list[Review](client, path)
}

// ListReviewComments returns a paginated iterator over the inline
// review comments on a pull request.
func (client *Client) ListReviewComments(owner, repo string, number int) *PageIterator[Comment] {
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d/comments", owner, repo, number)
	return list[Comment](client, path)
}

// RequestReviewers asks the named users to review a pull request.
func (client *Client) RequestReviewers(ctx context.Context, owner, repo string, number int, reviewers []string) (*PullRequest, error) {
	request := struct {
		Reviewers []string `json:"reviewers"`
	}{Reviewers: reviewers}

	var pull PullRequest
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d/requested_reviewers", owner, repo, number)
	if err := client.post(ctx, path, request, &pull); err != nil {
		return nil, fmt.Errorf("requesting reviewers on %s/%s#%d: %w", owner, repo, number, err)
	}
	return &pull, nil
}
