package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/tasks/internal/source"
)

// maxMessageLen caps plain-text error bodies surfaced to the user.
const maxMessageLen = 200

// Client is a thin HTTP client for the task service. It handles optional
// Bearer token authentication, JSON marshaling and the conversion of every
// failure into a *source.Failure. It never retries.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new task service HTTP client. The baseURL should be
// the root URL of the service (e.g., http://localhost:3000). An empty token
// sends no Authorization header. A zero timeout keeps the transport default.
func NewClient(baseURL, token string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Get performs an HTTP GET request and unmarshals the JSON response.
func (c *Client) Get(
	ctx context.Context,
	op string,
	path string,
	query url.Values,
	result interface{},
) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.do(ctx, op, http.MethodGet, path, nil, result)
}

// Post performs an HTTP POST request with a JSON body. The response body
// is ignored.
func (c *Client) Post(ctx context.Context, op, path string, body interface{}) error {
	return c.do(ctx, op, http.MethodPost, path, body, nil)
}

// Put performs an HTTP PUT request without a body.
func (c *Client) Put(ctx context.Context, op, path string) error {
	return c.do(ctx, op, http.MethodPut, path, nil, nil)
}

// Delete performs an HTTP DELETE request.
func (c *Client) Delete(ctx context.Context, op, path string) error {
	return c.do(ctx, op, http.MethodDelete, path, nil, nil)
}

// do is the core HTTP method that builds the request, handles auth,
// status checking and JSON (de)serialization.
func (c *Client) do(
	ctx context.Context,
	op string,
	method string,
	path string,
	body interface{},
	result interface{},
) error {
	transportErr := func(err error) error {
		return &source.Failure{Kind: source.FailureTransport, Op: op, Err: err}
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return transportErr(fmt.Errorf("marshaling request body: %w", err))
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return transportErr(fmt.Errorf("creating request: %w", err))
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.logger.With("request_id", requestID, "method", method, "path", path)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", "error", err)
		return transportErr(fmt.Errorf("executing request %s %s: %w", method, path, err))
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return transportErr(fmt.Errorf("reading response body: %w", readErr))
	}

	log.Debug("request done", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &source.Failure{
			Kind:    source.FailureServer,
			Op:      op,
			Status:  resp.StatusCode,
			Message: serverMessage(respBody),
		}
	}

	// Bodies of mutating calls are ignored.
	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return transportErr(fmt.Errorf(
			"unmarshaling response from %s %s: %w", method, path, err,
		))
	}

	return nil
}

// serverMessage extracts a user-facing message from an error body. It
// understands {"data": "..."}, a bare JSON string, or plain text; any other
// JSON document yields an empty message.
func serverMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	switch trimmed[0] {
	case '{':
		var errResp ErrorResponse
		if json.Unmarshal(trimmed, &errResp) == nil {
			if msg, ok := errResp.Data.(string); ok {
				return strings.TrimSpace(msg)
			}
		}
		return ""
	case '"':
		var msg string
		if json.Unmarshal(trimmed, &msg) == nil {
			return strings.TrimSpace(msg)
		}
		return ""
	case '[':
		return ""
	}

	msg := string(trimmed)
	if len(msg) > maxMessageLen {
		msg = msg[:maxMessageLen] + "…"
	}
	return msg
}
