package scrape

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// maxResponseSize bounds a station response body. Teletext pages are a
// few kilobytes; a megabyte of headroom protects against a misbehaving
// endpoint without risking memory exhaustion.
const maxResponseSize = 1 << 20

// Client is the HTTP client stations are fetched through. It sets the
// archive's User-Agent on every request and enforces the configured
// timeout.
type Client struct {
	http      *http.Client
	userAgent string
	logger    *slog.Logger
}

// NewClient creates a Client with the given per-request timeout.
func NewClient(timeout time.Duration, userAgent string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
		logger:    logger,
	}
}

// Get fetches a URL and returns the body and status code. A transport
// failure returns an error; a non-200 status does not, because sources
// routinely probe pages that do not exist.
func (c *Client) Get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("requesting", "url", url)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read %s: %w", url, err)
	}
	return body, resp.StatusCode, nil
}
