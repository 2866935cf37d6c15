package confluence

import (
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

	"github.com/custodia-labs/confluence-go/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second
)

// API endpoint paths, relative to the site base URL.
const (
	pathPages  = "/wiki/api/v2/pages"
	pathSpaces = "/wiki/api/v2/spaces"
)

// Client performs authenticated GET requests against a Confluence Cloud v2
// API. The client holds no mutable request state and is safe to share across
// concurrent fetches.
type Client struct {
	baseURL    string
	email      string
	apiToken   string
	httpClient *http.Client
	limiter    *RateLimiter
}

// NewClient creates a client authenticating with an email and API token
// (basic auth, the Cloud API's standard token scheme).
func NewClient(baseURL, email, apiToken string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		email:      email,
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    NewRateLimiter(),
	}
}

// NewClientWithTokenSource creates a client backed by an OAuth token source.
// The returned http.Client handles token refresh.
func NewClientWithTokenSource(ctx context.Context, baseURL string, ts oauth2.TokenSource) *Client {
	httpClient := oauth2.NewClient(ctx, ts)
	httpClient.Timeout = DefaultTimeout
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		limiter:    NewRateLimiter(),
	}
}

// NewClientWithHTTPClient creates a client with a custom http.Client. Useful
// for tests and callers that manage authentication themselves.
func NewClientWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		limiter:    NewRateLimiter(),
	}
}

// RateLimiter returns the client's rate limiter for external tuning.
func (c *Client) RateLimiter() *RateLimiter {
	return c.limiter
}

// Get issues an authenticated GET against path with the given query values
// and decodes the JSON response into out. Connection-level failures are
// returned as *TransportError, non-2xx responses as *APIError.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.email != "" || c.apiToken != "" {
		req.SetBasicAuth(c.email, c.apiToken)
	}

	logger.Debug("GET %s", requestURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{URL: requestURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
			c.limiter.RecordRateLimitError(retryAfter)
			logger.Warn("rate limited by API, backing off")
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
			URL:        requestURL,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode body: %v", ErrInvalidResponse, err)
	}
	return nil
}

// GetPage fetches a single page by id with its body in the requested
// format. The endpoint returns the page object directly, unwrapped.
func (c *Client) GetPage(ctx context.Context, id, bodyFormat string) (*Page, error) {
	query := url.Values{}
	if bodyFormat != "" {
		query.Set("body-format", bodyFormat)
	}
	var page Page
	if err := c.Get(ctx, pathPages+"/"+id, query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Validate checks that the configured credentials can reach the API by
// issuing a minimal spaces lookup.
func (c *Client) Validate(ctx context.Context) error {
	query := url.Values{}
	query.Set("limit", "1")
	var out spaceList
	if err := c.Get(ctx, pathSpaces, query, &out); err != nil {
		return fmt.Errorf("validate credentials: %w", err)
	}
	return nil
}
