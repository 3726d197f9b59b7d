package limelink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"limelink-mcp/internal/metrics"
)

const (
	maxRequestSize  = 64 * 1024       // create-link payloads are small
	maxResponseSize = 4 * 1024 * 1024 // 4MB
)

func (c *client) CreateLink(ctx context.Context, req *CreateLinkRequest) (json.RawMessage, error) {
	if req == nil {
		return nil, fmt.Errorf("limelink: request is nil")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("limelink: invalid request: %w", err)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("limelink: marshal request: %w", err)
	}
	if len(body) > maxRequestSize {
		return nil, fmt.Errorf("limelink: request too large (%d bytes, max %d)", len(body), maxRequestSize)
	}

	return c.do(ctx, "create_link", http.MethodPost, "/core/link", body)
}

func (c *client) GetLinkBySuffix(ctx context.Context, projectID, suffix string) (json.RawMessage, error) {
	if projectID == "" {
		return nil, fmt.Errorf("limelink: project id is required")
	}
	if suffix == "" {
		return nil, fmt.Errorf("limelink: suffix is required")
	}

	path := "/dynamic-link/" + url.PathEscape(projectID) +
		"?dynamic_link_suffix=" + url.QueryEscape(suffix) + "&call_type=API"
	return c.do(ctx, "get_link_by_suffix", http.MethodGet, path, nil)
}

// do sends one API request. Only GET goes through retries; a repeated POST
// could create the link twice.
func (c *client) do(parentCtx context.Context, operation, method, path string, body []byte) (json.RawMessage, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(parentCtx, c.cfg.UpstreamTimeout)
	defer cancel()

	endpoint := c.cfg.BaseURL + path

	// doOnce builds a fresh *http.Request for each attempt
	doOnce := func(ctx context.Context, body []byte) (*http.Response, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return nil, fmt.Errorf("limelink: build HTTP request: %w", err)
		}
		httpReq.Header.Set("X-API-KEY", c.cfg.APIKey)
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Accept", "application/json")
		return c.httpClient.Do(httpReq)
	}

	maxRetries := c.cfg.MaxRetries
	if method != http.MethodGet {
		maxRetries = 0
	}

	resp, err := c.doWithRetry(ctx, maxRetries, body, doOnce)
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(operation, metrics.StatusClass(0)).Inc()
		c.logger.Error("limelink request failed",
			zap.String("operation", operation),
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}
	defer resp.Body.Close()

	metrics.APIRequestsTotal.WithLabelValues(operation, metrics.StatusClass(resp.StatusCode)).Inc()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("limelink: read response: %w", err)
	}

	// Handle non-2xx responses
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(resp.StatusCode, respBody)
		c.logger.Warn("limelink api error",
			zap.String("operation", operation),
			zap.Int("status", resp.StatusCode),
			zap.String("message", truncate(apiErr.Message, 200)),
		)
		return nil, apiErr
	}

	if !json.Valid(respBody) {
		return nil, fmt.Errorf("limelink: decode response: invalid JSON (%s)", truncate(string(respBody), 200))
	}

	c.logger.Info("limelink request completed",
		zap.String("operation", operation),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	return json.RawMessage(respBody), nil
}

// truncate limits string length for logging
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
