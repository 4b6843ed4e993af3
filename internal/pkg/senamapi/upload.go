package senamapi

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/gabriel-vasile/mimetype"
)

// ValidationResult is the backend verdict on a workbook's structure.
type ValidationResult struct {
	Success        bool     `json:"success"`
	Valid          bool     `json:"valid"`
	Message        string   `json:"message"`
	DataRows       int      `json:"data_rows,omitempty"`
	TotalColumns   int      `json:"total_columns,omitempty"`
	MissingColumns []string `json:"missing_columns,omitempty"`
	ColumnsFound   []string `json:"columns_found,omitempty"`
}

// UploadResult is the backend reply to a successful import.
type UploadResult struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Count   int      `json:"count"`
	Years   []string `json:"years"`
}

// ValidateTemplate asks the backend whether the workbook has the expected
// layout. An invalid workbook is not an error: inspect Valid.
func (c *Client) ValidateTemplate(ctx context.Context, filename string, data []byte) (*ValidationResult, error) {
	resp, err := c.postFile(ctx, "/api/validate-template", filename, data)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var result ValidationResult
	if err := decodeJSON(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Upload replaces the backend dataset with the workbook's content.
func (c *Client) Upload(ctx context.Context, filename string, data []byte) (*UploadResult, error) {
	resp, err := c.postFile(ctx, "/api/upload", filename, data)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var result UploadResult
	if err := decodeJSON(resp, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: result.Message}
	}
	return &result, nil
}

// postFile sends data as the multipart field "file".
func (c *Client) postFile(ctx context.Context, path, filename string, data []byte) (*http.Response, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", mimetype.Detect(data).String())

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write multipart part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req)
}
