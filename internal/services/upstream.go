package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-chat-backend/internal/models"
)

// UpstreamClient posts a question to the AI answering service and exposes its
// reply as a raw line-oriented event stream.
type UpstreamClient struct {
	url    string
	client *http.Client
}

// NewUpstreamClient builds a client for the configured answering service.
// The timeout bounds the whole exchange including the body read: the
// aggregator only runs once the stream closes, so an upstream that never
// closes would otherwise block persistence indefinitely.
func NewUpstreamClient(url string, timeout time.Duration) *UpstreamClient {
	return &UpstreamClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Stream opens the upstream request and returns the response body. The
// caller owns the body and must close it. A connection failure or non-2xx
// status is reported as *UpstreamError before any byte is produced.
func (c *UpstreamClient) Stream(ctx context.Context, req models.UpstreamRequest) (io.ReadCloser, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode upstream request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("answering service unreachable: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &UpstreamError{Message: fmt.Sprintf("answering service returned status %d", resp.StatusCode)}
	}

	return resp.Body, nil
}
