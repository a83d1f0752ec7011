// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

// Package version exposes build metadata injected at link time.
package version

import "fmt"

// Set via -ldflags at build time. The defaults identify development
// builds made with a plain "go build".
var (
	// Version is the semantic version of the release (e.g. "1.4.0").
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "unknown"

	// Date is the build timestamp in RFC 3339 form.
	Date = "unknown"
)

// Short returns the version alone, for serverInfo and User-Agent strings.
func Short() string { return Version }

// Long returns the full "version (commit, built date)" form used by the
// version subcommand.
func Long() string {
	return fmt.Sprintf("%s (%s, built %s)", Version, Commit, Date)
}
