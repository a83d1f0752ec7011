// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"archive/tar"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// GetContents retrieves a file or directory listing from a repository.
// Exactly one of the return values is non-nil: a *Content for a file,
// symlink, or submodule, or a []Content for a directory. ref is a
// branch, tag, or commit SHA; empty means the default branch.
//
// The contents endpoint returns a JSON object for a file and a JSON
// array for a directory, so the body is decoded after sniffing the
// first byte.
func (client *Client) GetContents(ctx context.Context, owner, repo, path, ref string) (*Content, []Content, error) {
	requestPath := fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, escapePath(path))
	if ref != "" {
		requestPath += "?ref=" + url.QueryEscape(ref)
	}

	body, _, err := client.do(ctx, http.MethodGet, requestPath, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("getting contents %s in %s/%s: %w", path, owner, repo, err)
	}

	trimmed := strings.TrimLeft(string(body), " \t\r\n")
	if strings.HasPrefix(trimmed, "[") {
		var directory []Content
		if err := json.Unmarshal(body, &directory); err != nil {
			return nil, nil, fmt.Errorf("decoding directory listing %s in %s/%s: %w", path, owner, repo, err)
		}
		return nil, directory, nil
	}

	var file Content
	if err := json.Unmarshal(body, &file); err != nil {
		return nil, nil, fmt.Errorf("decoding contents %s in %s/%s: %w", path, owner, repo, err)
	}
	return &file, nil, nil
}

// CreateFileRequest contains the fields for creating or updating a
// file through the contents API.
type CreateFileRequest struct {
	// Message is the commit message.
	Message string `json:"message"`

	// Content is the base64-encoded file content. Use EncodeContent.
	Content string `json:"content"`

	// Branch is the branch to commit to; empty means the default branch.
	Branch string `json:"branch,omitempty"`

	// SHA is the blob SHA of the file being replaced. Required when
	// updating an existing file, omitted when creating a new one.
	SHA string `json:"sha,omitempty"`

	// Committer overrides the commit author; nil uses the
	// authenticated identity.
	Committer *CommitAuthor `json:"committer,omitempty"`
}

// CreateOrUpdateFile creates a new file or updates an existing one,
// producing a single commit on the target branch.
func (client *Client) CreateOrUpdateFile(ctx context.Context, owner, repo, path string, request CreateFileRequest) (*FileCommit, error) {
	if err := ValidateFilePath(path); err != nil {
		return nil, err
	}
	if err := ValidateCommitMessage(request.Message); err != nil {
		return nil, err
	}

	var result FileCommit
	requestPath := fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, escapePath(path))
	if err := client.put(ctx, requestPath, request, &result); err != nil {
		return nil, fmt.Errorf("writing %s in %s/%s: %w", path, owner, repo, err)
	}
	return &result, nil
}

// DeleteFile deletes a file, producing a single commit on the target
// branch. sha is the blob SHA of the file being deleted; branch may be
// empty for the default branch.
func (client *Client) DeleteFile(ctx context.Context, owner, repo, path, message, sha, branch string) (*FileCommit, error) {
	if err := ValidateFilePath(path); err != nil {
		return nil, err
	}
	if err := ValidateCommitMessage(message); err != nil {
		return nil, err
	}

	request := struct {
		Message string `json:"message"`
		SHA     string `json:"sha"`
		Branch  string `json:"branch,omitempty"`
	}{Message: message, SHA: sha, Branch: branch}

	requestPath := fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, escapePath(path))
	body, _, err := client.do(ctx, http.MethodDelete, requestPath, request)
	if err != nil {
		return nil, fmt.Errorf("deleting %s in %s/%s: %w", path, owner, repo, err)
	}

	var result FileCommit
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding delete commit for %s in %s/%s: %w", path, owner, repo, err)
	}
	return &result, nil
}

// TarballEntry describes one file inside a repository tarball.
type TarballEntry struct {
	// Path is the entry path with the tarball's top-level directory
	// (repo-SHA prefix) stripped.
	Path string `json:"path"`
	Size int64  `json:"size"`
	Mode int64  `json:"mode"`
}

// DownloadTarball downloads a repository tarball at ref and returns
// the list of regular files it contains. GitHub serves the archive
// through a 302 redirect that the HTTP client follows.
func (client *Client) DownloadTarball(ctx context.Context, owner, repo, ref string) ([]TarballEntry, error) {
	requestURL := client.baseURL + fmt.Sprintf("/repos/%s/%s/tarball/%s", owner, repo, url.PathEscape(ref))

	response, err := client.doRaw(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("downloading tarball of %s/%s at %s: %w", owner, repo, ref, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, parseAPIError(response)
	}

	return listTarball(response.Body)
}

// listTarball reads a gzipped tar stream and collects its regular
// file entries, stripping the archive's top-level directory.
func listTarball(reader io.Reader) ([]TarballEntry, error) {
	gzipReader, err := gzip.NewReader(reader)
	if err != nil {
		return nil, fmt.Errorf("decompressing tarball: %w", err)
	}
	defer gzipReader.Close()

	var entries []TarballEntry
	tarReader := tar.NewReader(gzipReader)
	for {
		header, err := tarReader.Next()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading tarball: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		path := header.Name
		if _, rest, ok := strings.Cut(path, "/"); ok {
			path = rest
		}
		entries = append(entries, TarballEntry{
			Path: path,
			Size: header.Size,
			Mode: header.Mode,
		})
	}
}

// escapePath escapes each segment of a repository file path for use in
// a URL while keeping the slashes literal.
func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
