package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
	"github.com/keystone-labs/kbs-cli/internal/logger"
)

const (
	// DefaultTimeout bounds each round trip; expiry is a StoreError.
	DefaultTimeout = 15 * time.Second

	// defaultRequestRate throttles calls to the shared backend.
	defaultRequestRate = 10 // requests per second

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 8 << 20

	restPath = "/rest/v1"
)

// Config holds the connection settings for the data API.
type Config struct {
	// BaseURL is the project root, e.g. https://kb.internal.example.com.
	BaseURL string

	// APIKey is the project key sent on every request.
	APIKey string

	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration
}

// Client is the shared HTTP plumbing for the store adapters.
type Client struct {
	base    *url.URL
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	timeout time.Duration
}

// NewClient creates a data API client. Requests carry the project key and
// a bearer token drawn from tokens; tokens may be nil for key-only access.
func NewClient(cfg Config, tokens oauth2.TokenSource) (*Client, error) {
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

	httpClient := http.DefaultClient
	if tokens != nil {
		httpClient = oauth2.NewClient(context.Background(), tokens)
	}

	return &Client{
		base:    base,
		apiKey:  cfg.APIKey,
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(defaultRequestRate), defaultRequestRate),
		timeout: timeout,
	}, nil
}

// DocumentStore returns the documents adapter backed by this client.
func (c *Client) DocumentStore() *DocumentStore {
	return &DocumentStore{client: c}
}

// TelemetryStore returns the telemetry adapter backed by this client.
func (c *Client) TelemetryStore() *TelemetryStore {
	return &TelemetryStore{client: c}
}

// StatsStore returns the aggregate-query adapter backed by this client.
func (c *Client) StatsStore() *StatsStore {
	return &StatsStore{client: c}
}

// getJSON performs a GET against a rest path and decodes the row list.
func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, out any) error {
	data, _, err := c.do(ctx, op, http.MethodGet, path, query, nil, "")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return domain.NewStoreError(op, fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

// postJSON performs a POST with a JSON body, discarding the response.
func (c *Client) postJSON(ctx context.Context, op, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return domain.NewStoreError(op, fmt.Errorf("encoding request: %w", err))
	}

	_, _, err = c.do(ctx, op, http.MethodPost, path, nil, payload, "return=minimal")
	return err
}

// rpc calls a remote procedure and decodes its result rows.
func (c *Client) rpc(ctx context.Context, op, name string, query url.Values, out any) error {
	data, _, err := c.do(ctx, op, http.MethodPost, restPath+"/rpc/"+name, query, []byte("{}"), "")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return domain.NewStoreError(op, fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

// count performs a HEAD request with an exact count preference and parses
// the total from the Content-Range header.
func (c *Client) count(ctx context.Context, op, path string, query url.Values) (int, error) {
	_, header, err := c.do(ctx, op, http.MethodHead, path, query, nil, "count=exact")
	if err != nil {
		return 0, err
	}

	// Content-Range: 0-24/3573, the total follows the slash.
	contentRange := header.Get("Content-Range")
	_, total, found := strings.Cut(contentRange, "/")
	if !found {
		return 0, domain.NewStoreError(op, fmt.Errorf("missing count in Content-Range %q", contentRange))
	}
	n, err := strconv.Atoi(total)
	if err != nil {
		return 0, domain.NewStoreError(op, fmt.Errorf("parsing count %q: %w", total, err))
	}
	return n, nil
}

// do issues one rate-limited, deadline-bounded request, reads the whole
// response and maps failures to StoreError.
func (c *Client) do(
	ctx context.Context, op, method, path string, query url.Values, body []byte, prefer string,
) ([]byte, http.Header, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, nil, domain.NewStoreError(op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := *c.base
	u.Path += path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, nil, domain.NewStoreError(op, err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	logger.Debug("%s %s %s", op, method, u.Path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, domain.NewStoreError(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, nil, domain.NewStoreError(op, fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, domain.NewStoreError(op, apiError(resp.Status, data))
	}
	return data, resp.Header, nil
}

// apiError extracts the backend's error message from a failed response.
func apiError(status string, data []byte) error {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Message != "" {
		return fmt.Errorf("%s: %s", status, payload.Message)
	}
	return fmt.Errorf("unexpected status %s", status)
}

// filterValue quotes a user-supplied value for use inside a filter
// expression, neutralising the grammar characters of the query syntax.
func filterValue(v string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
	)
	return `"` + replacer.Replace(v) + `"`
}
