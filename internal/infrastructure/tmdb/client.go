// Package tmdb implements the HTTP client for the upstream content
// catalog API, with a process-wide request throttle and retry-with-backoff
// on transient failures.
package tmdb

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/reelworks/reelgate/internal/infrastructure/metrics"
)

// ClientConfig holds configuration for the catalog API client.
type ClientConfig struct {
	BaseURL string
	Token   string // bearer credential

	Timeout time.Duration // per-request HTTP timeout

	// MinInterval is the minimum spacing between any two requests from
	// this process. One global throttle, not per-endpoint.
	MinInterval time.Duration

	// MaxRetries is the number of additional attempts after the first on
	// 429/5xx/408/network failures.
	MaxRetries     int
	RetryBaseDelay time.Duration
}

// DefaultClientConfig returns a ClientConfig with sensible defaults:
// 10s timeout, 250ms between requests (<=4 req/s), 3 retries with
// exponential backoff starting at 1s.
func DefaultClientConfig(baseURL, token string) ClientConfig {
	return ClientConfig{
		BaseURL:        baseURL,
		Token:          token,
		Timeout:        10 * time.Second,
		MinInterval:    250 * time.Millisecond,
		MaxRetries:     3,
		RetryBaseDelay: time.Second,
	}
}

// Client is the catalog API client. One instance per process; the throttle
// state is shared across all callers.
type Client struct {
	http *http.Client
	cfg  ClientConfig

	mu          sync.Mutex
	nextAllowed time.Time
}

// NewClient creates a catalog API client.
func NewClient(cfg ClientConfig) *Client {
	return &Client{
		http: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
	}
}

// statusBody is the upstream error envelope.
type statusBody struct {
	StatusMessage string `json:"status_message"`
}

// Get issues a GET to path (e.g. "/trending/movie/day") with the given
// query parameters and returns the raw JSON body. Transient failures
// (429, 5xx, 408, transport errors) are retried with backoff up to
// MaxRetries additional attempts; other 4xx fail immediately.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	u, err := url.Parse(c.cfg.BaseURL + path)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxRetries+1; attempt++ {
		if err := c.throttle(ctx); err != nil {
			return nil, &RequestError{Err: err}
		}

		body, retryIn, err := c.do(ctx, u.String())
		if err == nil {
			metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamOutcomeSuccess).Inc()
			return body, nil
		}
		lastErr = err

		delay, reason, retryable := c.retryPolicy(err, retryIn, attempt)
		if !retryable || attempt == c.cfg.MaxRetries+1 {
			break
		}

		metrics.UpstreamRetriesTotal.WithLabelValues(reason).Inc()
		slog.Warn("retrying upstream request",
			slog.String("path", path),
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()),
		)

		if err := sleep(ctx, delay); err != nil {
			return nil, &RequestError{Err: err}
		}
	}

	return nil, lastErr
}

// do performs a single attempt. retryIn is the server-provided Retry-After
// hint, zero when absent.
func (c *Client) do(ctx context.Context, rawURL string) (json.RawMessage, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, &RequestError{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)

	res, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamOutcomeNetworkError).Inc()
		return nil, 0, &NetworkError{Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamOutcomeNetworkError).Inc()
		return nil, 0, &NetworkError{Err: err}
	}

	if res.StatusCode == http.StatusOK {
		return body, 0, nil
	}

	outcome := metrics.UpstreamOutcomeHTTPError
	if res.StatusCode == http.StatusTooManyRequests {
		outcome = metrics.UpstreamOutcomeRateLimited
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(outcome).Inc()

	var sb statusBody
	_ = json.Unmarshal(body, &sb)

	return nil, parseRetryAfter(res.Header.Get("Retry-After")), &HTTPError{
		Status:  res.StatusCode,
		Message: sb.StatusMessage,
	}
}

// retryPolicy decides whether and when to retry after err.
//   - 429: wait out the Retry-After hint (default 1s)
//   - 5xx/408 and network errors: exponential backoff base*2^(attempt-1)
//   - other 4xx: fail immediately
func (c *Client) retryPolicy(err error, retryIn time.Duration, attempt int) (time.Duration, string, bool) {
	backoff := c.cfg.RetryBaseDelay * (1 << (attempt - 1))

	switch e := err.(type) {
	case *HTTPError:
		if e.Status == http.StatusTooManyRequests {
			if retryIn <= 0 {
				retryIn = time.Second
			}
			return retryIn, metrics.RetryReasonRateLimited, true
		}
		if e.Status >= 500 || e.Status == http.StatusRequestTimeout {
			return backoff, metrics.RetryReasonServerError, true
		}
		return 0, "", false
	case *NetworkError:
		return backoff, metrics.RetryReasonNetworkError, true
	default:
		return 0, "", false
	}
}

// throttle reserves the next request slot and sleeps until it arrives.
// Reserving under the lock keeps concurrent callers spaced out even while
// one of them is still sleeping.
func (c *Client) throttle(ctx context.Context) error {
	c.mu.Lock()
	now := time.Now()
	if c.nextAllowed.Before(now) {
		c.nextAllowed = now
	}
	wait := c.nextAllowed.Sub(now)
	c.nextAllowed = c.nextAllowed.Add(c.cfg.MinInterval)
	c.mu.Unlock()

	if wait <= 0 {
		return nil
	}
	return sleep(ctx, wait)
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	secs, err := strconv.Atoi(header)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
