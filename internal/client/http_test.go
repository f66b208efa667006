package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alfredjeanlab/taskhelm/internal/model"
)

// testHandler captures the incoming request details and returns a canned
// response.
type testHandler struct {
	method      string
	path        string
	body        string
	contentType string
	authz       string

	statusCode   int
	responseBody string
}

func (h *testHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.method = r.Method
	h.path = r.URL.Path
	h.contentType = r.Header.Get("Content-Type")
	h.authz = r.Header.Get("Authorization")
	if r.Body != nil {
		data, _ := io.ReadAll(r.Body)
		h.body = string(data)
	}

	w.Header().Set("Content-Type", "application/json")
	if h.statusCode != 0 {
		w.WriteHeader(h.statusCode)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	if h.responseBody != "" {
		io.WriteString(w, h.responseBody)
	}
}

func newTestClient(t *testing.T, h *testHandler, token string) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, token)
}

func TestSendHITLResponse(t *testing.T) {
	h := &testHandler{responseBody: `{}`}
	c := newTestClient(t, h, "secret")

	err := c.SendHITLResponse(context.Background(), &model.HITLResponse{
		RequestID:                "r1",
		Action:                   model.ActionModify,
		ModificationInstructions: "split step 2",
	})
	if err != nil {
		t.Fatalf("SendHITLResponse: %v", err)
	}
	if h.method != http.MethodPost || h.path != "/v1/hitl/response" {
		t.Errorf("request = %s %s, want POST /v1/hitl/response", h.method, h.path)
	}
	if h.contentType != "application/json" {
		t.Errorf("content type = %q", h.contentType)
	}
	if h.authz != "Bearer secret" {
		t.Errorf("authorization = %q, want bearer token", h.authz)
	}
	if !strings.Contains(h.body, `"action":"modify"`) || !strings.Contains(h.body, `"split step 2"`) {
		t.Errorf("body = %s, want action and instructions", h.body)
	}
}

func TestSendHITLResponse_ServerError(t *testing.T) {
	h := &testHandler{statusCode: http.StatusConflict, responseBody: `{"error":"request superseded"}`}
	c := newTestClient(t, h, "")

	err := c.SendHITLResponse(context.Background(), &model.HITLResponse{RequestID: "r1", Action: model.ActionApprove})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusConflict || apiErr.Message != "request superseded" {
		t.Errorf("APIError = %+v", apiErr)
	}
}

func TestProjectCalls(t *testing.T) {
	for _, tc := range []struct {
		name     string
		call     func(c *HTTPClient) error
		wantPath string
	}{
		{"switch", func(c *HTTPClient) error { return c.SwitchProject(context.Background(), "proj 1") }, "/v1/projects/proj%201/switch"},
		{"rerun", func(c *HTTPClient) error { return c.RerunProject(context.Background(), "p2") }, "/v1/projects/p2/rerun"},
		{"save", func(c *HTTPClient) error { return c.ForceSave(context.Background()) }, "/v1/state/save"},
		{"restore", func(c *HTTPClient) error { return c.ForceRestore(context.Background()) }, "/v1/state/restore"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := &testHandler{statusCode: http.StatusNoContent}
			c := newTestClient(t, h, "")
			if err := tc.call(c); err != nil {
				t.Fatalf("%s: %v", tc.name, err)
			}
			got := h.path
			if h.method != http.MethodPost {
				t.Errorf("method = %s, want POST", h.method)
			}
			// Escaped path segments arrive decoded in URL.Path.
			if want := strings.ReplaceAll(tc.wantPath, "%20", " "); got != want {
				t.Errorf("path = %q, want %q", got, want)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	h := &testHandler{responseBody: `{"status":"ok"}`}
	c := newTestClient(t, h, "")
	status, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if status != "ok" {
		t.Errorf("status = %q, want ok", status)
	}
	if h.method != http.MethodGet || h.path != "/v1/health" {
		t.Errorf("request = %s %s, want GET /v1/health", h.method, h.path)
	}
}
