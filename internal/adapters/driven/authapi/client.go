// Package authapi implements the AuthProvider port against a GoTrue-style
// HTTP authentication service (password grant, signup, token refresh,
// logout).
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
	"github.com/keystone-labs/kbs-cli/internal/core/ports/driven"
	"github.com/keystone-labs/kbs-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.AuthProvider = (*Client)(nil)

const (
	// DefaultTimeout bounds each auth round trip.
	DefaultTimeout = 15 * time.Second

	authPath = "/auth/v1"

	grantPassword = "password"
	grantRefresh  = "refresh_token"
)

// Config holds the connection settings for the auth service.
type Config struct {
	// BaseURL is the project root, shared with the data API.
	BaseURL string

	// APIKey is the project key sent on every request.
	APIKey string

	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration
}

// Client talks to the authentication endpoints.
type Client struct {
	base    *url.URL
	apiKey  string
	http    *http.Client
	timeout time.Duration
}

// NewClient creates an auth service client.
func NewClient(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		base:    base,
		apiKey:  cfg.APIKey,
		http:    http.DefaultClient,
		timeout: timeout,
	}, nil
}

// tokenResponse is the wire shape of a successful grant or signup.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// errorResponse is the wire shape of a failed auth call. The service has
// used several field names over time; any of them may carry the message.
type errorResponse struct {
	Message          string `json:"message"`
	Msg              string `json:"msg"`
	ErrorDescription string `json:"error_description"`
}

func (e errorResponse) text() string {
	for _, s := range []string{e.Message, e.Msg, e.ErrorDescription} {
		if s != "" {
			return s
		}
	}
	return ""
}

// SignIn exchanges credentials for a session via the password grant.
func (c *Client) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	body := map[string]string{"email": email, "password": password}
	return c.grant(ctx, grantPassword, body)
}

// SignUp registers a new account. The service issues a session directly
// when email confirmation is disabled.
func (c *Client) SignUp(ctx context.Context, email, password string) (*domain.Session, error) {
	body := map[string]string{"email": email, "password": password}

	var token tokenResponse
	if err := c.post(ctx, authPath+"/signup", "", body, &token); err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, domain.NewAuthError("account created, confirm your email before signing in", nil)
	}
	return toSession(token), nil
}

// SignOut revokes the session's refresh token. The access token
// authorises the revocation call itself.
func (c *Client) SignOut(ctx context.Context, session *domain.Session) error {
	return c.post(ctx, authPath+"/logout", session.AccessToken, nil, nil)
}

// Refresh exchanges a refresh token for a fresh session.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	body := map[string]string{"refresh_token": refreshToken}
	return c.grant(ctx, grantRefresh, body)
}

func (c *Client) grant(ctx context.Context, grantType string, body map[string]string) (*domain.Session, error) {
	var token tokenResponse
	path := authPath + "/token?grant_type=" + grantType
	if err := c.post(ctx, path, "", body, &token); err != nil {
		return nil, err
	}
	return toSession(token), nil
}

// post issues one auth request and maps failures to AuthError. Non-nil
// out receives the decoded response body.
func (c *Client) post(ctx context.Context, path, bearer string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return domain.NewAuthError("encoding request", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base.String()+path, reader)
	if err != nil {
		return domain.NewAuthError("building request", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	logger.Debug("auth POST %s", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.NewAuthError("authentication service unreachable", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.NewAuthError("reading response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure errorResponse
		if json.Unmarshal(data, &failure) == nil && failure.text() != "" {
			return domain.NewAuthError(failure.text(), nil)
		}
		return domain.NewAuthError(fmt.Sprintf("unexpected status %s", resp.Status), nil)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return domain.NewAuthError("decoding response", err)
		}
	}
	return nil
}

func toSession(token tokenResponse) *domain.Session {
	session := &domain.Session{
		UserID:       token.User.ID,
		Email:        token.User.Email,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if token.ExpiresIn > 0 {
		session.ExpiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}
	return session
}
