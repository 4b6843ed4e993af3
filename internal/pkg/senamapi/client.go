package senamapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/senam-dashboard/internal/config"
)

// ErrTransport marks failures where the backend could not be reached or
// answered with something unreadable.
var ErrTransport = errors.New("senam backend unreachable")

// Client talks to the backend that parses uploads, stores attendance data and
// renders export documents.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend client from configuration
func NewClient(cfg config.BackendConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// APIError represents a failure reported by the backend
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("senam backend error [%d]: %s", e.StatusCode, e.Message)
}

// messageBody is the shape of every JSON status reply of the backend.
type messageBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

// do sends req and maps network failures to ErrTransport.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return resp, nil
}

// decodeJSON reads a JSON body into v.
func decodeJSON(resp *http.Response, v interface{}) error {
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrTransport, err)
	}
	return nil
}

// apiError builds an APIError from a non-OK reply. The message is empty when
// the body carries none; callers substitute their own fallback.
func apiError(resp *http.Response) error {
	defer resp.Body.Close()

	var body messageBody
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if len(data) > 0 {
		_ = json.Unmarshal(data, &body)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: body.Message}
}

// Health reports whether the backend answers its health probe.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/health"), nil)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(resp, &body); err != nil {
		return err
	}
	if body.Status != "ok" {
		return &APIError{StatusCode: resp.StatusCode, Message: "backend status " + body.Status}
	}
	return nil
}

// ClearData removes every stored attendance record on the backend.
func (c *Client) ClearData(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/api/clear-data"), nil)
	if err != nil {
		return fmt.Errorf("failed to build clear request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	var body messageBody
	if err := decodeJSON(resp, &body); err != nil {
		return err
	}
	if !body.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: body.Message}
	}
	return nil
}
