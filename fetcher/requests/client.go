package requests

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// Matches the upstream session policy: 5 retries, backoff factor
	// of 0.5s doubling per attempt, only on 429 and transport errors.
	defaultMaxRetries = 5
	defaultBackoff    = 500 * time.Millisecond
)

// Client is the single authenticated entry point to the Riot API.
// Connection reuse comes from the shared http.Client transport.
type Client struct {
	httpClient *http.Client
	limiter    *RateLimiter
	apiKey     string
	maxRetries int
	backoff    time.Duration
}

// ClientOption mutates the client at construction.
type ClientOption func(*Client)

// WithRetryPolicy overrides the retry ceiling and base backoff.
// Used by tests to keep the backoff out of the test runtime.
func WithRetryPolicy(maxRetries int, backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.backoff = backoff
	}
}

// NewClient creates the shared client.
func NewClient(apiKey string, limiter *RateLimiter, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter:    limiter,
		apiKey:     apiKey,
		maxRetries: defaultMaxRetries,
		backoff:    defaultBackoff,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get performs an authenticated GET and returns the body and status.
// 429 and transport failures are retried with doubling backoff up to
// the ceiling; every other status is returned as-is for the caller to
// treat as "no data".
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values) ([]byte, int, error) {
	requestURL := rawURL
	if len(params) > 0 {
		requestURL = rawURL + "?" + params.Encode()
	}

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.backoff << (attempt - 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			}
		}

		body, status, err := c.do(ctx, requestURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, 0, ctx.Err()
			}
			lastErr = err
			continue
		}

		if status == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limited on URL %s", requestURL)
			continue
		}

		return body, status, nil
	}

	return nil, 0, fmt.Errorf("request to %s failed after %d retries: %w", requestURL, c.maxRetries, lastErr)
}

// do runs a single attempt.
func (c *Client) do(ctx context.Context, requestURL string) ([]byte, int, error) {
	if c.limiter != nil {
		c.limiter.Wait()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("X-Riot-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	return body, resp.StatusCode, nil
}
