package httpclient

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"time"
)

// Config controls retry behaviour for the client.
type Config struct {
	Timeout       time.Duration
	MaxRetries    int
	RetryWaitMin  time.Duration
	RetryWaitMax  time.Duration
	RetryOnStatus []int
}

// DefaultConfig returns a config with sensible retry defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:       10 * time.Second,
		MaxRetries:    3,
		RetryWaitMin:  100 * time.Millisecond,
		RetryWaitMax:  2 * time.Second,
		RetryOnStatus: []int{http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout},
	}
}

// Client is an http.Client wrapper with exponential backoff retries.
type Client struct {
	httpClient *http.Client
	config     Config
}

// New creates a retrying client from the given config.
func New(cfg Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		config:     cfg,
	}
}

// Do executes the request, retrying on transport errors and retryable
// statuses. The request must have been built with a context; retries stop
// when the context is done.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := c.wait(req.Context(), attempt); err != nil {
				return nil, err
			}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if !c.shouldRetry(resp.StatusCode) {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("retryable status %d", resp.StatusCode)
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", c.config.MaxRetries+1, lastErr)
}

func (c *Client) shouldRetry(status int) bool {
	for _, s := range c.config.RetryOnStatus {
		if status == s {
			return true
		}
	}
	return false
}

func (c *Client) wait(ctx context.Context, attempt int) error {
	backoff := float64(c.config.RetryWaitMin) * math.Pow(2, float64(attempt-1))
	// full jitter
	sleep := time.Duration(rand.Int63n(int64(backoff) + 1))
	if sleep > c.config.RetryWaitMax {
		sleep = c.config.RetryWaitMax
	}

	timer := time.NewTimer(sleep)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
