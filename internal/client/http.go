package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/alfredjeanlab/taskhelm/internal/model"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// HTTPClient implements ControlClient against the server's HTTP/JSON API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a client targeting the given base URL (e.g.
// "http://localhost:8080"). When token is non-empty, an Authorization header
// is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

func (c *HTTPClient) SendHITLResponse(ctx context.Context, resp *model.HITLResponse) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/hitl/response", resp, nil)
}

func (c *HTTPClient) SwitchProject(ctx context.Context, projectID string) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/projects/"+url.PathEscape(projectID)+"/switch", nil, nil)
}

func (c *HTTPClient) RerunProject(ctx context.Context, projectID string) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/projects/"+url.PathEscape(projectID)+"/rerun", nil, nil)
}

func (c *HTTPClient) ForceSave(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/state/save", nil, nil)
}

func (c *HTTPClient) ForceRestore(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/state/restore", nil, nil)
}

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	// 204 No Content — success with no body.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
