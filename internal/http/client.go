package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/AD7six/giphy-fetch/internal/config"
	"github.com/AD7six/giphy-fetch/internal/logging"
)

// Client wraps an HTTP client with a User-Agent and optional retries for
// transport errors, 5xx and 429 responses.
type Client struct {
	UserAgent      string
	UnderlyingHTTP *http.Client

	// retries after the first attempt; 0 means a single attempt
	retries int
}

// maxBackoff caps both exponential backoff and Retry-After waits.
const maxBackoff = 5 * time.Second

// NewClient returns a client configured from settings.
func NewClient(settings *config.Settings, userAgent string) *Client {
	return newClient(userAgent, settings.HTTPRetries, settings.HTTPTimeout)
}

func newClient(userAgent string, retries int, timeout time.Duration) *Client {
	if retries < 0 {
		retries = 0
	}
	if timeout < 0 {
		timeout = 0
	}
	return &Client{
		UserAgent:      userAgent,
		UnderlyingHTTP: &http.Client{Timeout: timeout},
		retries:        retries,
	}
}

// GetWithContext performs a GET request with the provided context for cancellation.
// When retries are exhausted the last response is returned to the caller for
// status handling.
func (c *Client) GetWithContext(ctx context.Context, url string) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		if c.UserAgent != "" {
			req.Header.Set("User-Agent", c.UserAgent)
		}

		resp, err := c.UnderlyingHTTP.Do(req)
		if err != nil {
			lastErr = err
			if attempt < c.retries && ctx.Err() == nil {
				logging.Logger.Debug("request failed, retrying", "attempt", attempt+1, "error", err)
				sleep(ctx, backoffDuration(attempt))
				continue
			}
			return nil, lastErr
		}

		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		if !retryable || attempt >= c.retries {
			return resp, nil
		}

		wait := backoffDuration(attempt)
		if resp.StatusCode == http.StatusTooManyRequests {
			wait = parseRetryAfter(resp)
		}
		if err := resp.Body.Close(); err != nil {
			logging.Logger.Warn("failed to close response body", "error", err)
		}
		logging.Logger.Debug("retrying request", "status", resp.StatusCode, "attempt", attempt+1, "wait", wait)
		sleep(ctx, wait)
	}

	return nil, lastErr
}

// Backoff: 500ms, 1s, 2s, capped
func backoffDuration(attempt int) time.Duration {
	d := 500 * time.Millisecond
	for i := 0; i < attempt; i++ {
		d *= 2
		if d > maxBackoff {
			return maxBackoff
		}
	}
	return d
}

func parseRetryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return time.Second
	}
	if ra := resp.Header.Get("Retry-After"); ra != "" {
		if secs, err := strconv.Atoi(ra); err == nil && secs >= 0 {
			d := time.Duration(secs) * time.Second
			if d > maxBackoff {
				d = maxBackoff
			}
			return d
		}
		// Could be a HTTP date; ignore for simplicity
	}
	return time.Second
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
