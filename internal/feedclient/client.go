// Package feedclient is the HTTP client for the UH NSI delta feed.
package feedclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/marcus/nsisync/internal/models"
)

// Sentinel errors for common HTTP error classes.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("upstream unavailable")
)

// Client is an HTTP client for the UH NSI feed endpoints.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

// New creates a new feed client with a defensive request timeout.
func New(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// warehouseDelta is the warehouse-only feed response. It carries no version;
// the warehouse feed has independent cursor semantics.
type warehouseDelta struct {
	Items []models.DeltaItem `json:"items"`
}

// HealthResponse is the response from GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// GetDelta fetches all reference items changed since the given version.
func (c *Client) GetDelta(ctx context.Context, since int64) (*models.Delta, error) {
	params := url.Values{}
	params.Set("since", strconv.FormatInt(since, 10))

	var resp models.Delta
	if err := c.do(ctx, "GET", "/v1/nsi/delta?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetWarehouseDelta fetches the warehouse-only feed.
func (c *Client) GetWarehouseDelta(ctx context.Context, since int64) ([]models.DeltaItem, error) {
	params := url.Values{}
	params.Set("since", strconv.FormatInt(since, 10))

	var resp warehouseDelta
	if err := c.do(ctx, "GET", "/v1/nsi/warehouses/delta?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Health hits the /healthz endpoint to verify upstream reachability.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.do(ctx, "GET", "/healthz", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// apiError is the standard error body from the upstream server.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Code
}

// do executes an authenticated request and decodes the JSON response.
func (c *Client) do(ctx context.Context, method, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Code != "" {
			switch resp.StatusCode {
			case http.StatusUnauthorized:
				return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Message)
			case http.StatusForbidden:
				return fmt.Errorf("%w: %s", ErrForbidden, apiErr.Message)
			case http.StatusNotFound:
				return fmt.Errorf("%w: %s", ErrNotFound, apiErr.Message)
			default:
				return &apiErr
			}
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}
