package export

import (
	"time"
)

// Intent names one export flow.
type Intent string

const (
	IntentExcel            Intent = "excel"
	IntentGroupExcel       Intent = "group-excel"
	IntentGroupPDF         Intent = "group-pdf"
	IntentAttendedExcel    Intent = "attended-excel"
	IntentAttendedPDF      Intent = "attended-pdf"
	IntentNotAttendedExcel Intent = "not-attended-excel"
	IntentNotAttendedPDF   Intent = "not-attended-pdf"
	IntentSelectionExcel   Intent = "selection-excel"
	IntentSelectionPDF     Intent = "selection-pdf"
	IntentEmployeePDF      Intent = "employee-pdf"
)

// AllIntents returns every export flow
func AllIntents() []Intent {
	return []Intent{
		IntentExcel,
		IntentGroupExcel,
		IntentGroupPDF,
		IntentAttendedExcel,
		IntentAttendedPDF,
		IntentNotAttendedExcel,
		IntentNotAttendedPDF,
		IntentSelectionExcel,
		IntentSelectionPDF,
		IntentEmployeePDF,
	}
}

var endpoints = map[Intent]string{
	IntentExcel:            "/api/export-excel",
	IntentGroupExcel:       "/api/export-group-excel",
	IntentGroupPDF:         "/api/export-group-pdf",
	IntentAttendedExcel:    "/api/export-attendance-excel",
	IntentAttendedPDF:      "/api/export-attendance-pdf",
	IntentNotAttendedExcel: "/api/export-no-attendance-excel",
	IntentNotAttendedPDF:   "/api/export-no-attendance-pdf",
	IntentSelectionExcel:   "/api/export-group-excel",
	IntentSelectionPDF:     "/api/export-group-pdf",
	IntentEmployeePDF:      "/api/export-pdf",
}

// Endpoint is the backend path rendering the intent's document.
func (i Intent) Endpoint() string {
	return endpoints[i]
}

func (i Intent) Valid() bool {
	_, ok := endpoints[i]
	return ok
}

// IsPDF reports whether the intent produces a PDF rather than a workbook.
func (i Intent) IsPDF() bool {
	switch i {
	case IntentGroupPDF, IntentAttendedPDF, IntentNotAttendedPDF, IntentSelectionPDF, IntentEmployeePDF:
		return true
	}
	return false
}

// Extension returns the file extension including the dot
func (i Intent) Extension() string {
	if i.IsPDF() {
		return ".pdf"
	}
	return ".xlsx"
}

// ContentType is used when the backend reply carries none.
func (i Intent) ContentType() string {
	if i.IsPDF() {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Status is the outcome of an export attempt
type Status string

const (
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
	StatusRejected Status = "rejected"
)

// Log records one export attempt
type Log struct {
	ID            string
	Intent        Intent
	Filename      string
	ObjectName    *string
	ContentType   *string
	EmployeeCount int
	Status        Status
	Message       string
	SizeBytes     int64
	CreatedAt     time.Time
}
