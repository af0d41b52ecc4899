// Package device talks to the managed router over its REST API.
//
// The client is the slow, failable half of undo/redo: when a device is
// configured, an action's execute/undo callback pushes the resulting chain
// to the router before the local commit is considered durable.
package device

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/example/hopstack/internal/model"
)

// ErrNotConfigured is returned when no device address is set.
var ErrNotConfigured = errors.New("no device configured")

// Config configures the device client.
type Config struct {
	// BaseURL is the device REST endpoint, e.g. "https://192.168.88.1/rest".
	BaseURL string
	// Token is sent as a bearer token when non-empty.
	Token string
	// Timeout bounds each request attempt.
	Timeout time.Duration
	// RetryDelays are waited before each attempt after the first. The
	// number of delays bounds the number of retries.
	RetryDelays []time.Duration
}

// Client is a minimal RouterOS-style REST client with retry.
type Client struct {
	cfg  Config
	http *http.Client
}

// New creates a device client. A nil return means offline mode: the caller
// should skip device synchronization entirely.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		return nil
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// PutChain replaces the device's routing chain with the given state.
func (c *Client) PutChain(ctx context.Context, chain *model.Chain) error {
	if c == nil {
		return ErrNotConfigured
	}
	body, err := json.Marshal(chain)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, "routing/chain", body)
}

// Ping checks that the device is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return ErrNotConfigured
	}
	return c.do(ctx, http.MethodGet, "system/health", nil)
}

// do sends one request with the configured retry schedule. Server errors
// and rate limiting retry; client errors do not.
func (c *Client) do(ctx context.Context, method, path string, body []byte) error {
	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + path

	var lastErr error
	for attempt := 0; attempt <= len(c.cfg.RetryDelays); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.cfg.RetryDelays[attempt-1]):
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", "Hopstack/1.0")
		if c.cfg.Token != "" {
			req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}

		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return nil
		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("rate limited (HTTP 429)")
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("device error (HTTP %d): %s", resp.StatusCode, string(respBody))
		default:
			// Client error - don't retry
			return fmt.Errorf("rejected by device (HTTP %d): %s", resp.StatusCode, string(respBody))
		}
	}
	return lastErr
}
