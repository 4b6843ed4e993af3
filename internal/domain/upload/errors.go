package upload

import "github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"

var (
	ErrNoFile               = &senam.Error{Kind: senam.KindGuard, Code: "UPLOAD_NO_FILE", Message: "Pilih file terlebih dahulu"}
	ErrUnsupportedExtension = &senam.Error{Kind: senam.KindGuard, Code: "UPLOAD_UNSUPPORTED_EXTENSION", Message: "Format file tidak didukung. Gunakan .xlsx, .xls, atau .csv"}
	ErrFileTooLarge         = &senam.Error{Kind: senam.KindGuard, Code: "UPLOAD_FILE_TOO_LARGE", Message: "Ukuran file terlalu besar. Maksimal 10MB"}
	ErrNotValidated         = &senam.Error{Kind: senam.KindGuard, Code: "UPLOAD_NOT_VALIDATED", Message: "File belum lolos validasi"}
	ErrUploadInFlight       = &senam.Error{Kind: senam.KindConflict, Code: "UPLOAD_IN_FLIGHT", Message: "Upload sedang berlangsung"}
	ErrValidationFailed     = &senam.Error{Kind: senam.KindBackend, Code: "UPLOAD_VALIDATION_FAILED", Message: "Gagal memvalidasi file"}
	ErrUploadFailed         = &senam.Error{Kind: senam.KindBackend, Code: "UPLOAD_FAILED", Message: "Upload gagal"}
)
