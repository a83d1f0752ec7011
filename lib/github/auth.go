// Copyright 2026 The github-mcp Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/forgetools/github-mcp/lib/clock"
)

// authenticator produces Authorization header values. The token
// implementation is static; the App implementation rotates short-lived
// installation tokens.
type authenticator interface {
	// AuthorizationHeader returns a valid Authorization header value
	// such as "Bearer ghp_xxx". For App auth this may perform a token
	// exchange if the cached token is near expiry.
	AuthorizationHeader(ctx context.Context) (string, error)
}

// rotationMargin is how far before expiry an installation token is
// replaced. GitHub issues 1-hour tokens; rotating 5 minutes early
// avoids a token expiring mid-request.
const rotationMargin = 5 * time.Minute

// tokenAuth is a static Bearer token authenticator for personal access
// tokens and fine-grained tokens.
type tokenAuth struct {
	header string
}

func newTokenAuth(token string) *tokenAuth {
	return &tokenAuth{header: "Bearer " + token}
}

func (auth *tokenAuth) AuthorizationHeader(_ context.Context) (string, error) {
	return auth.header, nil
}

// appAuth authenticates as a GitHub App installation: it signs RS256
// JWTs with the App's private key, exchanges them for installation
// access tokens, and rotates the token before expiry.
type appAuth struct {
	appID          int64
	installationID int64
	privateKey     *rsa.PrivateKey
	clock          clock.Clock

	// Set by NewClient after construction: the auth needs the client's
	// transport for the token exchange request, while the client needs
	// the auth for headers.
	httpClient *http.Client
	baseURL    string

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func newAppAuth(appID, installationID int64, privateKeyPEM []byte, clk clock.Clock) (*appAuth, error) {
	block, _ := pem.Decode(privateKeyPEM)
	if block == nil {
		return nil, fmt.Errorf("github: no PEM block in private key")
	}

	privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		// GitHub documents PKCS1, but some key tooling emits PKCS8.
		keyAny, pkcs8Err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if pkcs8Err != nil {
			return nil, fmt.Errorf("github: parsing private key: %w (also tried PKCS8: %v)", err, pkcs8Err)
		}
		rsaKey, ok := keyAny.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("github: private key is not RSA")
		}
		privateKey = rsaKey
	}

	return &appAuth{
		appID:          appID,
		installationID: installationID,
		privateKey:     privateKey,
		clock:          clk,
	}, nil
}

func (auth *appAuth) AuthorizationHeader(ctx context.Context) (string, error) {
	auth.mu.Lock()
	defer auth.mu.Unlock()

	if auth.token != "" && auth.clock.Now().Before(auth.expiresAt.Add(-rotationMargin)) {
		return "Bearer " + auth.token, nil
	}

	token, expiresAt, err := auth.exchange(ctx)
	if err != nil {
		return "", err
	}

	auth.token = token
	auth.expiresAt = expiresAt
	return "Bearer " + token, nil
}

// exchange signs a fresh JWT and trades it for an installation token.
// Called with auth.mu held.
func (auth *appAuth) exchange(ctx context.Context) (string, time.Time, error) {
	jwt, err := auth.signJWT()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("github: signing App JWT: %w", err)
	}

	url := auth.baseURL + "/app/installations/" + strconv.FormatInt(auth.installationID, 10) + "/access_tokens"
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("github: creating token exchange request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+jwt)
	request.Header.Set("Accept", "application/vnd.github+json")
	request.Header.Set("User-Agent", userAgent)

	response, err := auth.httpClient.Do(request)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("github: token exchange request: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusCreated {
		body, _ := readBody(response.Body)
		return "", time.Time{}, fmt.Errorf("github: token exchange returned HTTP %d: %s", response.StatusCode, body)
	}

	var result struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	if err := json.NewDecoder(response.Body).Decode(&result); err != nil {
		return "", time.Time{}, fmt.Errorf("github: decoding token exchange response: %w", err)
	}
	if result.Token == "" {
		return "", time.Time{}, fmt.Errorf("github: token exchange returned empty token")
	}

	return result.Token, result.ExpiresAt, nil
}

// signJWT builds the RS256 JWT GitHub requires for App authentication:
// issuer is the App ID, issued-at is backdated 60 seconds for clock
// skew, expiry is 10 minutes out. Stdlib crypto covers this; a JWT
// library would add a dependency for three fixed claims.
func (auth *appAuth) signJWT() (string, error) {
	now := auth.clock.Now()

	header := base64url([]byte(`{"alg":"RS256","typ":"JWT"}`))

	claims := struct {
		IssuedAt  int64  `json:"iat"`
		ExpiresAt int64  `json:"exp"`
		Issuer    string `json:"iss"`
	}{
		IssuedAt:  now.Add(-60 * time.Second).Unix(),
		ExpiresAt: now.Add(10 * time.Minute).Unix(),
		Issuer:    strconv.FormatInt(auth.appID, 10),
	}
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("marshaling claims: %w", err)
	}

	signingInput := header + "." + base64url(claimsJSON)
	digest := sha256.Sum256([]byte(signingInput))
	signature, err := rsa.SignPKCS1v15(rand.Reader, auth.privateKey, crypto.SHA256, digest[:])
	if err != nil {
		return "", fmt.Errorf("signing: %w", err)
	}

	return signingInput + "." + base64url(signature), nil
}

// base64url encodes without padding, per RFC 7515.
func base64url(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}
