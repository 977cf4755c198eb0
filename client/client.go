// Package client provides a typed Go SDK for the chesskeep REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is the top-level chesskeep API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the HTTP client timeout. Imports of large PGN files can
// run for minutes; raise this above the default for bulk loads.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a chesskeep client for the given base URL (e.g. "http://localhost:3040").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Health returns the liveness check response.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.get(ctx, "/api/v1/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stats returns catalog row counts.
func (c *Client) Stats(ctx context.Context) (*CatalogCounts, error) {
	var resp CatalogCounts
	if err := c.get(ctx, "/api/v1/stats", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ImportPositions streams a JSONL analysis file to the server and returns
// the load report. source names the file for provenance tagging.
func (c *Client) ImportPositions(ctx context.Context, r io.Reader, source string) (*LoadResult, error) {
	params := url.Values{}
	if source != "" {
		params.Set("source", source)
	}
	var resp LoadResult
	if err := c.postRaw(ctx, "/api/v1/import/positions", params, r, &resp); err != nil {
		// A rejected batch comes back as 422 with the full load report;
		// surface the report so callers see why nothing was stored.
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnprocessableEntity && resp.Error != "" {
			return &resp, nil
		}
		return nil, err
	}
	return &resp, nil
}

// ImportGames streams a PGN file to the server and returns the load report.
// maxGames caps how many games are stored; 0 means no cap.
func (c *Client) ImportGames(ctx context.Context, r io.Reader, source string, maxGames int) (*GameLoadResult, error) {
	params := url.Values{}
	if source != "" {
		params.Set("source", source)
	}
	if maxGames > 0 {
		params.Set("max_games", fmt.Sprintf("%d", maxGames))
	}
	var resp GameLoadResult
	if err := c.postRaw(ctx, "/api/v1/import/games", params, r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PreviewGames validates a PGN file and returns file statistics without
// storing anything.
func (c *Client) PreviewGames(ctx context.Context, r io.Reader) (*GamePreview, error) {
	var resp GamePreview
	if err := c.postRaw(ctx, "/api/v1/games/preview", nil, r, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PositionByFEN looks up a stored position by its exact FEN string.
func (c *Client) PositionByFEN(ctx context.Context, fen string) (*Position, error) {
	params := url.Values{}
	params.Set("fen", fen)
	var resp Position
	if err := c.get(ctx, "/api/v1/positions", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do executes an HTTP request and decodes the JSON response.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, result any) error {
	u := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := parseAPIError(resp.StatusCode, respBody)

		// Import endpoints return the load report alongside the 422.
		if result != nil && len(respBody) > 0 {
			_ = json.Unmarshal(respBody, result)
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// get is a convenience wrapper for GET requests with query parameters.
func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil, result)
}

// postRaw streams a raw request body (JSONL or PGN text) to the server.
func (c *Client) postRaw(ctx context.Context, path string, params url.Values, body io.Reader, result any) error {
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	if body == nil {
		body = bytes.NewReader(nil)
	}
	return c.do(ctx, http.MethodPost, path, body, result)
}
