package integrations

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/matzehuels/commitpin/pkg/errors"
	"github.com/matzehuels/commitpin/pkg/httputil"
	"github.com/matzehuels/commitpin/pkg/observability"
)

// Options configures a [Client].
type Options struct {
	Headers     map[string]string // Default headers for every request
	Credentials Credentials       // Optional authentication
	Retries     int               // Extra attempts after a transient failure (default 0)
	Timeout     time.Duration     // Per-request timeout (default DefaultTimeout)
}

// Client provides shared HTTP functionality for remote API clients.
// It handles authentication, status mapping, optional retries and
// observability hooks. Responses are never cached.
type Client struct {
	http     *http.Client
	headers  map[string]string
	creds    Credentials
	attempts int
	backoff  time.Duration
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	return &Client{
		http:     NewHTTPClient(opts.Timeout),
		headers:  opts.Headers,
		creds:    opts.Credentials,
		attempts: 1 + max(opts.Retries, 0),
		backoff:  httputil.DefaultBackoff,
	}
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
// Transient failures are retried only when the client was built with
// Options.Retries > 0.
func (c *Client) Get(ctx context.Context, rawURL string, v any) error {
	return httputil.Retry(ctx, c.attempts, c.backoff, func() error {
		return c.get(ctx, rawURL, v)
	})
}

func (c *Client) get(ctx context.Context, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "build request for %s", rawURL)
	}
	for k, val := range c.headers {
		req.Header.Set(k, val)
	}
	c.creds.apply(req)

	host, path := req.URL.Host, req.URL.Path
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", path))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp, path); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidResponse, err, "decode response from %s", path)
	}
	return nil
}

func checkStatus(resp *http.Response, path string) error {
	code := resp.StatusCode
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "%s: not found", path)
	case code == http.StatusUnauthorized:
		return errors.New(errors.ErrCodeUnauthorized, "%s: bad credentials", path)
	case code == http.StatusTooManyRequests,
		code == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0":
		return &errors.RateLimitedError{
			RetryAfter: retryAfter(resp.Header, time.Now()),
			Message:    path,
		}
	case code == http.StatusForbidden:
		return errors.New(errors.ErrCodeForbidden, "%s: forbidden", path)
	case code >= 500:
		return httputil.Retryable(errors.New(errors.ErrCodeNetwork, "%s: status %d", path, code))
	default:
		return errors.New(errors.ErrCodeNetwork, "%s: status %d", path, code)
	}
}

// retryAfter reads Retry-After (seconds) or X-RateLimit-Reset (unix time).
func retryAfter(h http.Header, now time.Time) int {
	if s, err := strconv.Atoi(h.Get("Retry-After")); err == nil && s > 0 {
		return s
	}
	if reset, err := strconv.ParseInt(h.Get("X-RateLimit-Reset"), 10, 64); err == nil {
		if d := reset - now.Unix(); d > 0 {
			return int(d)
		}
	}
	return 0
}
