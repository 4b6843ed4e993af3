package export

import (
	"time"

	"github.com/cmlabs-hris/senam-dashboard/internal/pkg/validator"
)

// ============= Request DTOs =============

type ExportRequest struct {
	Intent string `json:"intent" validate:"required,oneof=excel group-excel group-pdf attended-excel attended-pdf not-attended-excel not-attended-pdf selection-excel selection-pdf employee-pdf"`
}

func (r *ExportRequest) Validate() error {
	return validator.Struct(r)
}

type ListLogsRequest struct {
	Page     int `json:"page" validate:"min=0"`
	PageSize int `json:"page_size" validate:"min=0,max=100"`
}

// Validate checks bounds and fills paging defaults.
func (r *ListLogsRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	if r.Page == 0 {
		r.Page = 1
	}
	if r.PageSize == 0 {
		r.PageSize = 20
	}
	return nil
}

// ============= Response DTOs =============

// ExportResponse describes a saved document
type ExportResponse struct {
	ID            string `json:"id"`
	Intent        Intent `json:"intent"`
	Filename      string `json:"filename"`
	URL           string `json:"url"`
	ContentType   string `json:"content_type"`
	SizeBytes     int64  `json:"size_bytes"`
	EmployeeCount int    `json:"employee_count"`
	Message       string `json:"message"`
}

type LogResponse struct {
	ID            string    `json:"id"`
	Intent        Intent    `json:"intent"`
	Filename      string    `json:"filename"`
	URL           string    `json:"url,omitempty"`
	EmployeeCount int       `json:"employee_count"`
	Status        Status    `json:"status"`
	Message       string    `json:"message"`
	SizeBytes     int64     `json:"size_bytes"`
	CreatedAt     time.Time `json:"created_at"`
}

type LogListResponse struct {
	Logs       []LogResponse `json:"logs"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}
