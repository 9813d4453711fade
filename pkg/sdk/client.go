package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ethanbaker/api/pkg/api_types"
)

// Client wraps calls the browser shell makes to its own server
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchToken requests an ephemeral realtime token and returns it untouched
func (c *Client) FetchToken(ctx context.Context) (json.RawMessage, error) {
	body, err := c.get(ctx, "/token")
	if err != nil {
		return nil, err
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("[SDK]: token response is not JSON")
	}

	return json.RawMessage(body), nil
}

// Health reads the server's health status
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	body, err := c.get(ctx, "/api/health")
	if err != nil {
		return nil, err
	}

	var out ApiResponse[HealthStatus]
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("[SDK]: could not decode health response: %w", err)
	}

	if out.Status != api_types.StatusSuccess {
		return nil, fmt.Errorf("[SDK]: health check failed: %s", out.Message)
	}

	return &out.Data, nil
}

// get performs a GET request and returns the body of a 2xx response
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Prefer the server's error message when it sent one
		var errResp ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			return nil, fmt.Errorf("[SDK]: 'GET %s' failed: %d: %s", path, resp.StatusCode, errResp.Error)
		}
		return nil, fmt.Errorf("[SDK]: 'GET %s' failed: %d: %s", path, resp.StatusCode, string(body))
	}

	return body, nil
}
