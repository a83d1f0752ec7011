// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/go-querystring/query"

	"github.com/forgetools/github-mcp/lib/clock"
)

// apiVersion is the GitHub REST API version header. Pinning it keeps
// response shapes stable as GitHub evolves the API.
const apiVersion = "2022-11-28"

// defaultBaseURL is the base URL for the public GitHub API.
const defaultBaseURL = "https://api.github.com"

// userAgent identifies this client in requests. GitHub requires a
// User-Agent header and throttles requests without one.
const userAgent = "github-mcp"

// maxResponseSize bounds response body reads: 128 MB. GitHub API
// responses are orders of magnitude smaller; the bound exists only to
// keep a pathological response from exhausting memory.
const maxResponseSize int64 = 128 << 20

// Config holds configuration for creating a Client.
//
// Exactly one authentication mode must be set:
//   - token auth: Token
//   - App auth: AppID, PrivateKey, and InstallationID
type Config struct {
	// BaseURL is the root URL for API requests. Defaults to
	// "https://api.github.com". Must use HTTPS.
	BaseURL string

	// Token is a personal access token or fine-grained token.
	Token string

	// AppID is the GitHub App's numeric ID.
	AppID int64

	// PrivateKey is the App's PEM-encoded RSA private key.
	PrivateKey []byte

	// InstallationID is the App installation's numeric ID.
	InstallationID int64

	// HTTPClient is used for all requests. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Clock provides time operations; rate-limit waits and token
	// rotation go through it. Defaults to clock.Real().
	Clock clock.Clock

	// Logger receives structured request logging. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Client is a typed GitHub REST client with authentication, rate-limit
// backoff, conditional requests, pagination, and structured errors.
type Client struct {
	baseURL    string
	httpClient *http.Client
	auth       authenticator
	rateLimit  *rateLimitTracker
	etagCache  *etagCache
	clock      clock.Clock
	logger     *slog.Logger
}

// NewClient creates a Client from the configuration. Returns an error
// for invalid auth configuration, a non-HTTPS base URL, or an
// unparseable private key.
func NewClient(config Config) (*Client, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	if !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("github: API client requires HTTPS (got %q)", baseURL)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	hasApp := config.AppID != 0 || len(config.PrivateKey) > 0 || config.InstallationID != 0
	hasToken := config.Token != ""

	if hasApp && hasToken {
		return nil, fmt.Errorf("github: cannot configure both token auth and App auth")
	}
	if !hasApp && !hasToken {
		return nil, fmt.Errorf("github: no authentication configured (set Token, or AppID+PrivateKey+InstallationID)")
	}

	var auth authenticator
	if hasApp {
		if config.AppID == 0 {
			return nil, fmt.Errorf("github: AppID is required for App auth")
		}
		if len(config.PrivateKey) == 0 {
			return nil, fmt.Errorf("github: PrivateKey is required for App auth")
		}
		if config.InstallationID == 0 {
			return nil, fmt.Errorf("github: InstallationID is required for App auth")
		}

		appAuth, err := newAppAuth(config.AppID, config.InstallationID, config.PrivateKey, clk)
		if err != nil {
			return nil, err
		}
		// Token exchange shares the client's HTTP transport and base URL.
		appAuth.httpClient = httpClient
		appAuth.baseURL = baseURL
		auth = appAuth
	} else {
		auth = newTokenAuth(config.Token)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		auth:       auth,
		rateLimit:  newRateLimitTracker(clk),
		etagCache:  newETagCache(),
		clock:      clk,
		logger:     logger,
	}, nil
}

// do executes an authenticated API request and returns the response
// body. The path is relative to the base URL. GET requests use ETag
// caching; other methods JSON-encode requestBody when non-nil. Non-2xx
// responses return an *APIError. Rate-limited responses are retried
// once after backing off.
func (client *Client) do(ctx context.Context, method, path string, requestBody any) ([]byte, http.Header, error) {
	return client.doWithRetry(ctx, method, path, requestBody, false)
}

func (client *Client) doWithRetry(ctx context.Context, method, path string, requestBody any, isRetry bool) ([]byte, http.Header, error) {
	url := client.baseURL + path
	response, err := client.doRaw(ctx, method, url, requestBody)
	if err != nil {
		return nil, nil, err
	}
	defer response.Body.Close()

	// 304 Not Modified: serve the cached body.
	if response.StatusCode == http.StatusNotModified {
		if cached := client.etagCache.body(url); cached != nil {
			return cached, response.Header, nil
		}
		// A 304 with nothing cached means the server and the cache
		// disagree. Drop the entry and refetch unconditionally.
		if !isRetry {
			client.etagCache.drop(url)
			return client.doWithRetry(ctx, method, path, requestBody, true)
		}
		return nil, nil, fmt.Errorf("github: 304 Not Modified for %s with no cached body", path)
	}

	body, err := readBody(response.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("github: reading response body: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		// Retry once on rate limiting; a second hit propagates the error.
		if !isRetry && (response.StatusCode == 429 || (response.StatusCode == 403 && isRateLimitMessage(string(body)))) {
			backoff := client.rateLimit.retryAfter(response.Header)
			if backoff > 0 {
				client.logger.Info("rate limited, backing off",
					"duration", backoff,
					"method", method,
					"path", path,
				)
				select {
				case <-client.clock.After(backoff):
				case <-ctx.Done():
					return nil, nil, ctx.Err()
				}
				return client.doWithRetry(ctx, method, path, requestBody, true)
			}
		}
		return nil, nil, parseAPIErrorBody(response.StatusCode, body)
	}

	if method == http.MethodGet {
		if etag := response.Header.Get("ETag"); etag != "" {
			client.etagCache.put(url, etag, body)
		}
	}

	return body, response.Header, nil
}

// doRaw executes an HTTP request with authentication and preemptive
// rate-limit waiting, without reading the response body. The caller
// closes the body. Used by do and by PageIterator, which needs the
// Link header before decoding.
func (client *Client) doRaw(ctx context.Context, method, url string, requestBody any) (*http.Response, error) {
	if err := client.rateLimit.wait(ctx); err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("github: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("github: creating request: %w", err)
	}

	authHeader, err := client.auth.AuthorizationHeader(ctx)
	if err != nil {
		return nil, fmt.Errorf("github: authentication: %w", err)
	}
	request.Header.Set("Authorization", authHeader)
	request.Header.Set("Accept", "application/vnd.github+json")
	request.Header.Set("X-GitHub-Api-Version", apiVersion)
	request.Header.Set("User-Agent", userAgent)
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	if method == http.MethodGet {
		if etag := client.etagCache.get(url); etag != "" {
			request.Header.Set("If-None-Match", etag)
		}
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("github: %s %s: %w", method, url, err)
	}

	client.rateLimit.update(response.Header)

	return response, nil
}

// get executes a GET request and decodes the JSON response into result.
func (client *Client) get(ctx context.Context, path string, result any) error {
	body, _, err := client.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, result)
}

// post executes a POST request; result may be nil for endpoints that
// return no body (202/204 responses).
func (client *Client) post(ctx context.Context, path string, requestBody any, result any) error {
	body, _, err := client.do(ctx, http.MethodPost, path, requestBody)
	if err != nil {
		return err
	}
	if result != nil {
		return json.Unmarshal(body, result)
	}
	return nil
}

// put executes a PUT request; result may be nil.
func (client *Client) put(ctx context.Context, path string, requestBody any, result any) error {
	body, _, err := client.do(ctx, http.MethodPut, path, requestBody)
	if err != nil {
		return err
	}
	if result != nil {
		return json.Unmarshal(body, result)
	}
	return nil
}

// patch executes a PATCH request; result may be nil.
func (client *Client) patch(ctx context.Context, path string, requestBody any, result any) error {
	body, _, err := client.do(ctx, http.MethodPatch, path, requestBody)
	if err != nil {
		return err
	}
	if result != nil {
		return json.Unmarshal(body, result)
	}
	return nil
}

// delete executes a DELETE request. requestBody is usually nil; the
// contents API requires a body on file deletion.
func (client *Client) delete(ctx context.Context, path string, requestBody any) error {
	_, _, err := client.do(ctx, http.MethodDelete, path, requestBody)
	return err
}

// list creates a PageIterator for a paginated GET endpoint.
func list[T any](client *Client, path string) *PageIterator[T] {
	return &PageIterator[T]{
		client:  client,
		nextURL: client.baseURL + path,
	}
}

// listPath appends the query string encoded from an options struct
// (url struct tags, go-querystring) to a base path. A nil options
// value or an empty encoding returns the base path unchanged.
func listPath(basePath string, options any) string {
	if options == nil {
		return basePath
	}
	values, err := query.Values(options)
	if err != nil || len(values) == 0 {
		return basePath
	}
	return basePath + "?" + values.Encode()
}

// readBody reads a response body bounded at maxResponseSize.
func readBody(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, maxResponseSize))
}

// parseAPIError reads a GitHub error from an HTTP response.
func parseAPIError(response *http.Response) *APIError {
	body, _ := readBody(response.Body)
	return parseAPIErrorBody(response.StatusCode, body)
}

// parseAPIErrorBody parses GitHub's JSON error body. Bodies that are
// not the documented error shape are carried verbatim in Message.
func parseAPIErrorBody(statusCode int, body []byte) *APIError {
	apiError := &APIError{StatusCode: statusCode}

	var wire struct {
		Message          string            `json:"message"`
		DocumentationURL string            `json:"documentation_url"`
		Errors           []ValidationError `json:"errors"`
	}
	if json.Unmarshal(body, &wire) == nil && wire.Message != "" {
		apiError.Message = wire.Message
		apiError.DocumentationURL = wire.DocumentationURL
		apiError.Errors = wire.Errors
	} else {
		apiError.Message = string(body)
	}

	return apiError
}
