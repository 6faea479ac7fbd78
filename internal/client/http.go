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
	"time"

	"github.com/giubellucas/calendario-inteligente/internal/assistant"
	"github.com/giubellucas/calendario-inteligente/internal/model"
)

// HTTPClient implements CalendarClient using the HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// --- Conversational ---

func (c *HTTPClient) SendMessage(ctx context.Context, message string) (*assistant.Outcome, error) {
	body := map[string]string{"message": message}
	var out assistant.Outcome
	if err := c.doJSON(ctx, http.MethodPost, "/v1/messages", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Event CRUD ---

func (c *HTTPClient) CreateEvent(ctx context.Context, req *CreateEventRequest) (*model.Event, error) {
	var event model.Event
	if err := c.doJSON(ctx, http.MethodPost, "/v1/events", req, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *HTTPClient) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	if err := c.doJSON(ctx, http.MethodGet, "/v1/events/"+url.PathEscape(id), nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *HTTPClient) ListEvents(ctx context.Context, req *ListEventsRequest) (*ListEventsResponse, error) {
	q := url.Values{}
	if req.Category != "" {
		q.Set("category", req.Category)
	}
	if req.Search != "" {
		q.Set("search", req.Search)
	}
	if req.From != nil {
		q.Set("from", req.From.Format(time.RFC3339))
	}
	if req.Until != nil {
		q.Set("until", req.Until.Format(time.RFC3339))
	}
	if req.Completed != nil {
		q.Set("completed", fmt.Sprintf("%t", *req.Completed))
	}
	if req.Limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", req.Limit))
	}
	if req.Offset > 0 {
		q.Set("offset", fmt.Sprintf("%d", req.Offset))
	}

	path := "/v1/events"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ListEventsResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) UpdateEvent(ctx context.Context, id string, req *UpdateEventRequest) (*model.Event, error) {
	var event model.Event
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/events/"+url.PathEscape(id), req, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *HTTPClient) DeleteEvent(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/events/"+url.PathEscape(id), nil, nil)
}

// --- Queries ---

func (c *HTTPClient) History(ctx context.Context, term string) ([]*model.Event, error) {
	var resp struct {
		Matches []*model.Event `json:"matches"`
	}
	path := "/v1/history?q=" + url.QueryEscape(term)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Matches, nil
}

func (c *HTTPClient) Stats(ctx context.Context) (*assistant.Patterns, error) {
	var patterns assistant.Patterns
	if err := c.doJSON(ctx, http.MethodGet, "/v1/stats", nil, &patterns); err != nil {
		return nil, err
	}
	return &patterns, nil
}

func (c *HTTPClient) Suggestions(ctx context.Context) ([]string, error) {
	var resp struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/suggestions", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

// --- Health ---

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// --- internal helpers ---

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, the response body is discarded (for DELETE/204 responses).
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

	// 204 No Content: success with no body.
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
