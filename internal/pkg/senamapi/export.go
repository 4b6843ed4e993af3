package senamapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Document is a generated spreadsheet or PDF.
type Document struct {
	Body        []byte
	ContentType string
}

// Export posts payload as JSON to an export endpoint. Success is decided on
// the status code alone; any non-OK reply is read as a {message} error body.
func (c *Client) Export(ctx context.Context, endpoint string, payload interface{}) (*Document, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(endpoint), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to build export request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read export document: %v", ErrTransport, err)
	}

	return &Document{Body: body, ContentType: resp.Header.Get("Content-Type")}, nil
}
