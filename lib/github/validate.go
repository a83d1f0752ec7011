// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// ValidateBranchName checks a branch name against git's ref naming
// rules before it is interpolated into an API path. Returns an error
// describing the first violated rule.
func ValidateBranchName(name string) error {
	if name == "" {
		return fmt.Errorf("branch name is empty")
	}
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "/") {
		return fmt.Errorf("branch name %q must not start with '.' or '/'", name)
	}
	if strings.HasSuffix(name, "/") || strings.HasSuffix(name, ".") {
		return fmt.Errorf("branch name %q must not end with '/' or '.'", name)
	}
	if strings.HasSuffix(name, ".lock") {
		return fmt.Errorf("branch name %q must not end with '.lock'", name)
	}
	return validateRefChars("branch name", name)
}

// ValidateTagName checks a tag name against git's ref naming rules.
func ValidateTagName(name string) error {
	if name == "" {
		return fmt.Errorf("tag name is empty")
	}
	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("tag name %q must not start with '.'", name)
	}
	if strings.HasSuffix(name, ".lock") {
		return fmt.Errorf("tag name %q must not end with '.lock'", name)
	}
	return validateRefChars("tag name", name)
}

// validateRefChars rejects the characters git forbids in ref names:
// control characters, space, and the metacharacters ~ ^ : ? * [ \,
// plus the ".." and "@{" sequences.
func validateRefChars(kind, name string) error {
	if strings.Contains(name, "..") {
		return fmt.Errorf("%s %q must not contain '..'", kind, name)
	}
	if strings.Contains(name, "@{") {
		return fmt.Errorf("%s %q must not contain '@{'", kind, name)
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("%s %q must not contain control characters", kind, name)
		}
		switch r {
		case ' ', '~', '^', ':', '?', '*', '[', '\\':
			return fmt.Errorf("%s %q must not contain %q", kind, name, r)
		}
	}
	return nil
}

// ValidateFilePath checks a repository-relative file path: it must not
// be empty, absolute, traverse upward, or contain control characters.
func ValidateFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("file path is empty")
	}
	if strings.HasPrefix(path, "/") {
		return fmt.Errorf("file path %q must be repository-relative, not absolute", path)
	}
	if path == ".." || strings.HasPrefix(path, "../") ||
		strings.HasSuffix(path, "/..") || strings.Contains(path, "/../") {
		return fmt.Errorf("file path %q must not traverse upward", path)
	}
	for _, r := range path {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("file path %q must not contain control characters", path)
		}
	}
	return nil
}

// ValidateCommitMessage rejects empty or whitespace-only commit messages.
func ValidateCommitMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("commit message is empty")
	}
	return nil
}

// EncodeContent base64-encodes file content for the contents API.
func EncodeContent(content string) string {
	return base64.StdEncoding.EncodeToString([]byte(content))
}

// DecodeContent decodes base64 content from the contents API. GitHub
// wraps encoded content with newlines, which the standard decoder
// rejects, so whitespace is stripped first.
func DecodeContent(encoded string) (string, error) {
	stripped := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, encoded)

	decoded, err := base64.StdEncoding.DecodeString(stripped)
	if err != nil {
		return "", fmt.Errorf("decoding base64 content: %w", err)
	}
	return string(decoded), nil
}
