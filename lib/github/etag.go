// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package github

import "sync"

// etagCache stores ETag and body pairs per URL for conditional GET
// requests. A 304 Not Modified answer is served from the cache and
// does not consume rate-limit quota.
//
// There is no eviction: the cache lives as long as the Client and is
// bounded by the number of distinct URLs fetched.
type etagCache struct {
	mu      sync.Mutex
	entries map[string]etagEntry
}

type etagEntry struct {
	etag string
	body []byte
}

func newETagCache() *etagCache {
	return &etagCache{entries: make(map[string]etagEntry)}
}

// get returns the cached ETag for a URL, or "" when absent.
func (cache *etagCache) get(url string) string {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	return cache.entries[url].etag
}

// body returns the cached response body for a URL, or nil when absent.
func (cache *etagCache) body(url string) []byte {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	return cache.entries[url].body
}

// drop removes the entry for a URL.
func (cache *etagCache) drop(url string) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	delete(cache.entries, url)
}

// put stores the ETag and body for a URL. Empty ETags are ignored.
func (cache *etagCache) put(url, etag string, body []byte) {
	if etag == "" {
		return
	}
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.entries[url] = etagEntry{etag: etag, body: body}
}
