package export

import (
	"errors"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
)

// Guard errors are shown to the user before any document is requested.
var (
	ErrNoData             = &senam.Error{Kind: senam.KindGuard, Code: "EXPORT_NO_DATA", Message: "Tidak ada data untuk diexport"}
	ErrNoAttended         = &senam.Error{Kind: senam.KindInfo, Code: "EXPORT_NO_ATTENDED", Message: "Tidak ada pegawai yang ikut senam"}
	ErrNoNotAttended      = &senam.Error{Kind: senam.KindInfo, Code: "EXPORT_NO_NOT_ATTENDED", Message: "Tidak ada pegawai yang tidak ikut senam"}
	ErrEmptySelection     = &senam.Error{Kind: senam.KindGuard, Code: "EXPORT_EMPTY_SELECTION", Message: "Pilih minimal 1 pegawai terlebih dahulu"}
	ErrDateRangeRequired  = &senam.Error{Kind: senam.KindGuard, Code: "EXPORT_DATE_RANGE_REQUIRED", Message: "Silakan pilih rentang waktu terlebih dahulu"}
	ErrNoDetail           = &senam.Error{Kind: senam.KindGuard, Code: "EXPORT_NO_DETAIL", Message: "Tidak ada data pegawai yang dipilih"}
	ErrExportFileNotFound = &senam.Error{Kind: senam.KindNotFound, Code: "EXPORT_FILE_NOT_FOUND", Message: "File export tidak ditemukan"}
	ErrExportLogNotFound  = errors.New("export log not found")
	ErrInvalidObjectName  = errors.New("invalid export object name")
)
