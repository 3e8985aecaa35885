// Package collector delivers finalized intelligence reports to the
// downstream collector endpoint.
package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hiveguard/honeytrap/internal/domain"
)

// Client defines the interface for callback delivery.
type Client interface {
	// Deliver POSTs one callback payload. It is called at most once per
	// session; failures are not retried by the caller.
	Deliver(ctx context.Context, payload *domain.CallbackPayload) error
}

// HTTPClient delivers callbacks over HTTP POST.
type HTTPClient struct {
	url        string
	httpClient *http.Client
}

// Ensure HTTPClient implements Client interface.
var _ Client = (*HTTPClient)(nil)

// NewClient creates a new callback client for the given collector URL.
func NewClient(url string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// URL returns the configured collector URL.
func (c *HTTPClient) URL() string {
	return c.url
}

// Deliver POSTs the payload to the collector.
func (c *HTTPClient) Deliver(ctx context.Context, payload *domain.CallbackPayload) error {
	if c.url == "" {
		return fmt.Errorf("collector URL is not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send callback: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("collector returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
