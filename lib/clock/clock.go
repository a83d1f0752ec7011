// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source so that code which
// sleeps or schedules (rate-limit backoff, token rotation) can be tested
// deterministically. Production code takes a Clock and is handed Real();
// tests hand in Fake() and drive time with Advance.
package clock

import "time"

// Clock is the subset of the time package used by this project.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives once d has elapsed.
	// If d <= 0 the channel receives immediately.
	After(d time.Duration) <-chan time.Time

	// Sleep blocks the calling goroutine for at least d.
	Sleep(d time.Duration)
}

// Real returns a Clock backed by the standard time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

func (realClock) Sleep(d time.Duration) { time.Sleep(d) }
