// Package genai generates draft project plans from a prompt using an
// OpenAI-compatible chat completion endpoint, then schedules the plan
// in working days.
package genai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/manav03panchal/workplan/internal/errors"
	"github.com/manav03panchal/workplan/internal/logging"
)

// HTTPClient handles HTTP requests with retry logic.
type HTTPClient struct {
	client     *http.Client
	maxRetries int
	retryDelay []time.Duration
}

// NewHTTPClient creates a new HTTP client with default settings.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		maxRetries: 2,
		retryDelay: []time.Duration{
			0,               // Immediate first attempt
			2 * time.Second, // Retry after 2s
			10 * time.Second,
		},
	}
}

// PostJSON sends a JSON POST request and returns the response body.
// Rate limiting and server errors are retried with backoff; client
// errors fail immediately.
func (c *HTTPClient) PostJSON(ctx context.Context, url, apiKey string, body []byte) ([]byte, error) {
	retryable := errors.NewRecoverableError("AI request failed", nil, c.maxRetries)

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 && attempt < len(c.retryDelay) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay[attempt]):
			}
			logging.DebugLog("retrying AI request", "attempt", attempt+1)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", "Workplan/1.0")
		if apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+apiKey)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			retryable.Cause = err
			retryable.IncrementRetry()
			continue
		}

		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return respBody, nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			retryable.Cause = fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
			retryable.IncrementRetry()
		default:
			return nil, fmt.Errorf("AI endpoint rejected request (HTTP %d): %s",
				resp.StatusCode, string(respBody))
		}
	}

	return nil, retryable
}
