package senam

import "errors"

// Kind classifies a user-facing failure.
type Kind int

const (
	KindGuard Kind = iota + 1
	KindInfo
	KindNotFound
	KindConflict
	KindBackend
)

// Error is a failure whose Message is shown to the user verbatim.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches errors of the same Code, so a reworded message still satisfies errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// NewBackendError wraps a message reported by, or generated for, a failed backend call.
func NewBackendError(message string) *Error {
	return &Error{Kind: KindBackend, Code: "BACKEND_ERROR", Message: message}
}

// Dashboard errors
var (
	ErrEmployeeNotFound    = &Error{Kind: KindNotFound, Code: "EMPLOYEE_NOT_FOUND", Message: "Data tidak ditemukan"}
	ErrDateRangeRequired   = &Error{Kind: KindGuard, Code: "DATE_RANGE_REQUIRED", Message: "Pilih rentang tanggal terlebih dahulu"}
	ErrDateRangeInverted   = &Error{Kind: KindGuard, Code: "DATE_RANGE_INVERTED", Message: "Tanggal awal tidak boleh lebih besar dari tanggal akhir"}
	ErrLoadInFlight        = &Error{Kind: KindConflict, Code: "LOAD_IN_FLIGHT", Message: "Data sedang dimuat"}
	ErrLoadFailed          = &Error{Kind: KindBackend, Code: "LOAD_FAILED", Message: "Gagal memuat data. Periksa koneksi server."}
	ErrDashboardNotRunning = errors.New("dashboard event loop is not running")
)
