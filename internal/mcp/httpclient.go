package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Aur71/Workout-Tracker-sub000/internal/api"
	"github.com/Aur71/Workout-Tracker-sub000/internal/planner"
	"github.com/Aur71/Workout-Tracker-sub000/internal/storage"
)

// HTTPClient implements DataSource by calling the mesoplan REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// the database lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. The API
// key is only sent with generate requests.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("httpclient: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost && c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return statusError(path, resp.StatusCode, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

// statusError turns an error response back into the sentinel the server
// mapped it from, so callers can tell bad input from server failures.
func statusError(path string, status int, body []byte) error {
	var payload struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		msg = payload.Error
	}

	switch status {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", api.ErrInvalidRequest, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", storage.ErrProgramNotFound, msg)
	default:
		return fmt.Errorf("httpclient: %s returned %d: %s", path, status, msg)
	}
}

func programPath(programID int64, op string) string {
	return fmt.Sprintf("/api/v1/programs/%d/%s", programID, op)
}

func (c *HTTPClient) Plan(ctx context.Context, programID int64) (*api.PlanResponse, error) {
	var resp api.PlanResponse
	if err := c.do(ctx, http.MethodGet, programPath(programID, "plan"), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Preview(ctx context.Context, programID int64, req api.ProgressionRequest) (*api.PreviewResponse, error) {
	var resp api.PreviewResponse
	if err := c.do(ctx, http.MethodPost, programPath(programID, "preview"), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Generate(ctx context.Context, programID int64, req api.ProgressionRequest) (*planner.CommitResult, error) {
	var result planner.CommitResult
	if err := c.do(ctx, http.MethodPost, programPath(programID, "generate"), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
