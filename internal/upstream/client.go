// Package upstream wraps the single outbound collaborator: the RLM
// capacity-management API.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds every forwarded call.
const DefaultTimeout = 30 * time.Second

// subscriptionKeyHeader carries the APIM credential upstream.
const subscriptionKeyHeader = "Ocp-Apim-Subscription-Key"

// Result is the raw upstream outcome: status plus unparsed body.
type Result struct {
	StatusCode int
	Body       []byte
}

// Client posts JSON payloads to the scheduling endpoint.
type Client struct {
	httpClient      *http.Client
	url             string
	subscriptionKey string
	log             *slog.Logger
}

// NewClient creates a forwarding client. A zero timeout falls back to
// DefaultTimeout.
func NewClient(url, subscriptionKey string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		url:             url,
		subscriptionKey: subscriptionKey,
		log:             log,
	}
}

// Post marshals body and forwards it to the scheduling endpoint. Transport
// failures return an error; any HTTP status is a normal Result.
func (c *Client) Post(ctx context.Context, body any) (*Result, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode upstream payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to create upstream request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(subscriptionKeyHeader, c.subscriptionKey)
	req.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}

	c.log.Info("forwarded upstream request",
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &Result{
		StatusCode: resp.StatusCode,
		Body:       respBody,
	}, nil
}

// FetchJSON performs a GET against url and decodes the JSON body into out.
// Used by the question-template lookup source.
func (c *Client) FetchJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create lookup request: %w", err)
	}
	req.Header.Set(subscriptionKeyHeader, c.subscriptionKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("lookup returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode lookup response: %w", err)
	}

	return nil
}
