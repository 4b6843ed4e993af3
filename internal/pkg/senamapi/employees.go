package senamapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
)

// FetchEmployees returns the complete employee dataset.
func (c *Client) FetchEmployees(ctx context.Context) ([]senam.EmployeeRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/api/data"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build data request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP error! status: %d", resp.StatusCode),
		}
	}

	var records []senam.EmployeeRecord
	if err := decodeJSON(resp, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []senam.EmployeeRecord{}
	}
	return records, nil
}
