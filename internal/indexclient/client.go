// Package indexclient pushes segment batches to the downstream indexing
// service. The indexer owns embedding and vector storage; this client
// only delivers the segmentation engine's output.
package indexclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/medregintel/segmenter/internal/segment"
)

// Client communicates with the indexer HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Enabled reports whether a downstream indexer is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// pushRequest is the body for POST /segments.
type pushRequest struct {
	SourceDocument string            `json:"source_document"`
	Segments       []segment.Segment `json:"segments"`
}

// retryableStatus reports whether an HTTP status is worth retrying.
func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// backoff returns a duration for attempt n (0-indexed) with jitter.
func backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int63n(int64(base) / 2))
	return base + jitter
}

const maxRetries = 3

// PushSegments delivers one document's segments, retrying transient
// failures with exponential backoff.
func (c *Client) PushSegments(ctx context.Context, sourceDocument string, segs []segment.Segment) error {
	if !c.Enabled() {
		return nil
	}

	body, err := json.Marshal(pushRequest{SourceDocument: sourceDocument, Segments: segs})
	if err != nil {
		return fmt.Errorf("marshal segments: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff(attempt - 1)):
			}
		}

		retry, err := c.push(ctx, body)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry {
			return err
		}
	}
	return fmt.Errorf("push segments for %s: %w", sourceDocument, lastErr)
}

func (c *Client) push(ctx context.Context, body []byte) (retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/segments", bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return true, fmt.Errorf("push segments: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return retryableStatus(resp.StatusCode),
			fmt.Errorf("push segments: status %d: %s", resp.StatusCode, string(respBody))
	}
	return false, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	if c != nil {
		c.httpClient.CloseIdleConnections()
	}
}
