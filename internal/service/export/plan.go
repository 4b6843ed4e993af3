package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/export"
	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
)

const employeeMonthWindow = 24

// job is a guarded export ready to be sent.
type job struct {
	intent         export.Intent
	payload        interface{}
	filename       string
	count          int
	loading        string
	success        string
	fallback       string // backend failure without a message
	crash          string // transport failure
	clearSelection bool
}

// Whole-set workbook payload
type excelPayload struct {
	Data    []senam.EmployeeRecord `json:"data"`
	Filters excelFilters           `json:"filters"`
}

type excelFilters struct {
	Year        string          `json:"year"`
	DateRange   senam.DateRange `json:"dateRange"`
	ShiftStatus senam.ShiftMode `json:"shiftStatus"`
}

// groupPayload carries either shift_status (workbooks) or shift_filter (PDFs).
type groupPayload struct {
	Employees    []senam.EmployeeRecord `json:"employees"`
	DateRange    senam.DateRange        `json:"date_range"`
	ShiftStatus  senam.ShiftMode        `json:"shift_status,omitempty"`
	ShiftFilter  senam.ShiftFilter      `json:"shift_filter,omitempty"`
	StrukturLini string                 `json:"struktur_lini"`
}

type employeePayload struct {
	EmployeeData senam.EmployeeRecord         `json:"employee_data"`
	DateRange    senam.DateRange              `json:"date_range"`
	ShiftStatus  senam.ShiftMode              `json:"shift_status"`
	BulananData  map[string]senam.MonthRecord `json:"bulanan_data"`
	SelectedYear string                       `json:"selected_year"`
}

// plan runs the intent's guards against snap and builds its request. No
// request is built when a guard fails.
func plan(intent export.Intent, snap *senam.Snapshot, now time.Time) (*job, error) {
	dr := snap.Filters.DateRange
	struktur := snap.Filters.StrukturLabel()
	date := fileDate(now)

	switch intent {
	case export.IntentExcel:
		if len(snap.Table) == 0 {
			return nil, export.ErrNoData
		}
		return &job{
			intent:  intent,
			payload: excelPayload{
				Data: snap.Table,
				Filters: excelFilters{
					Year:        yearOrAll(snap.Filters.Year),
					DateRange:   dr,
					ShiftStatus: snap.ShiftMode,
				},
			},
			filename: fmt.Sprintf("rekap_senam_%s.xlsx", date),
			count:    len(snap.Table),
			loading:  "Mengexport data ke Excel...",
			success:  "Data berhasil diexport ke Excel!",
			fallback: "Export Excel gagal",
			crash:    "Terjadi kesalahan saat export Excel",
		}, nil

	case export.IntentGroupExcel, export.IntentGroupPDF:
		if len(snap.Table) == 0 {
			return nil, export.ErrNoData
		}
		if !dr.IsSet() {
			return nil, export.ErrDateRangeRequired
		}
		if intent == export.IntentGroupExcel {
			return &job{
				intent:   intent,
				payload:  groupPayload{Employees: snap.Table, DateRange: dr, ShiftStatus: snap.ShiftMode, StrukturLini: struktur},
				filename: fmt.Sprintf("rekap_senam_kelompok_%s_%s.xlsx", fileLabel(struktur), date),
				count:    len(snap.Table),
				loading:  "Mengexport Excel kelompok...",
				success:  "Excel kelompok berhasil diekspor!",
				fallback: "Gagal mengekspor Excel kelompok",
				crash:    "Terjadi kesalahan saat mengekspor Excel kelompok",
			}, nil
		}
		filter := shiftFilterOrAll(snap.ShiftFilter)
		return &job{
			intent:   intent,
			payload:  groupPayload{Employees: snap.Table, DateRange: dr, ShiftFilter: filter, StrukturLini: struktur},
			filename: fmt.Sprintf("rekap_senam_kelompok_%s_%s_%s.pdf", fileLabel(struktur), filter.FileLabel(), date),
			count:    len(snap.Table),
			loading:  "Membuat PDF kelompok...",
			success:  "PDF kelompok berhasil diekspor!",
			fallback: "Gagal mengekspor PDF kelompok",
			crash:    "Terjadi kesalahan saat mengekspor PDF kelompok",
		}, nil

	case export.IntentAttendedExcel, export.IntentAttendedPDF:
		if len(snap.Attended) == 0 {
			return nil, export.ErrNoAttended
		}
		if !dr.IsSet() {
			return nil, export.ErrDateRangeRequired
		}
		return cohortJob(intent, snap, snap.Attended, "pegawai_ikut_senam", "yang ikut senam", date), nil

	case export.IntentNotAttendedExcel, export.IntentNotAttendedPDF:
		if len(snap.NotAttended) == 0 {
			return nil, export.ErrNoNotAttended
		}
		if !dr.IsSet() {
			return nil, export.ErrDateRangeRequired
		}
		return cohortJob(intent, snap, snap.NotAttended, "pegawai_tidak_ikut_senam", "yang tidak ikut senam", date), nil

	case export.IntentSelectionExcel:
		n := len(snap.Selection)
		if n == 0 {
			return nil, export.ErrEmptySelection
		}
		if !dr.IsSet() {
			dr = senam.DefaultDateRange()
		}
		return &job{
			intent:         intent,
			payload:        groupPayload{Employees: snap.Selection, DateRange: dr, ShiftStatus: snap.ShiftMode, StrukturLini: selectionLabel(n)},
			filename:       fmt.Sprintf("rekap_senam_terpilih_%dpegawai_%s.xlsx", n, date),
			count:          n,
			loading:        fmt.Sprintf("Mengexport Excel untuk %d pegawai...", n),
			success:        fmt.Sprintf("✓ Excel berhasil diekspor untuk %d pegawai!", n),
			fallback:       "Gagal mengekspor Excel",
			crash:          "Terjadi kesalahan saat mengekspor Excel",
			clearSelection: true,
		}, nil

	case export.IntentSelectionPDF:
		n := len(snap.Selection)
		if n == 0 {
			return nil, export.ErrEmptySelection
		}
		if !dr.IsSet() {
			return nil, export.ErrDateRangeRequired
		}
		// Selected PDFs always cover every shift, unlike the workbook path.
		return &job{
			intent:         intent,
			payload:        groupPayload{Employees: snap.Selection, DateRange: dr, ShiftFilter: senam.ShiftFilterAll, StrukturLini: selectionLabel(n)},
			filename:       fmt.Sprintf("rekap_senam_terpilih_%dpegawai_%s.pdf", n, date),
			count:          n,
			loading:        fmt.Sprintf("Membuat PDF untuk %d pegawai...", n),
			success:        fmt.Sprintf("✓ PDF berhasil diekspor untuk %d pegawai!", n),
			fallback:       "Gagal mengekspor PDF",
			crash:          "Terjadi kesalahan saat mengekspor PDF",
			clearSelection: true,
		}, nil

	case export.IntentEmployeePDF:
		if snap.Detail == nil {
			return nil, export.ErrNoDetail
		}
		e := *snap.Detail
		year := snap.DetailYear
		if year == "" {
			year = now.Format("2006")
		}
		if !dr.IsSet() {
			dr = senam.DefaultDateRange()
		}
		return &job{
			intent:  intent,
			payload: employeePayload{
				EmployeeData: e,
				DateRange:    dr,
				ShiftStatus:  snap.ShiftMode,
				BulananData:  exportMonths(e, snap.Filters.DateRange),
				SelectedYear: year,
			},
			filename: fmt.Sprintf("rekap_senam_%s_%s.pdf", fileLabel(e.NIK), date),
			count:    1,
			loading:  "Membuat PDF...",
			success:  "PDF berhasil diekspor!",
			fallback: "Gagal mengekspor PDF",
			crash:    "Terjadi kesalahan saat mengekspor PDF",
		}, nil
	}

	return nil, fmt.Errorf("unknown export intent %q", intent)
}

// cohortJob builds an attended or not-attended export. Workbooks follow the
// shift mode, PDFs the group shift filter.
func cohortJob(intent export.Intent, snap *senam.Snapshot, employees []senam.EmployeeRecord, prefix, who string, date string) *job {
	n := len(employees)
	struktur := snap.Filters.StrukturLabel()
	j := &job{
		intent:   intent,
		filename: fmt.Sprintf("%s_%s_%s%s", prefix, fileLabel(struktur), date, intent.Extension()),
		count:    n,
	}

	payload := groupPayload{Employees: employees, DateRange: snap.Filters.DateRange, StrukturLini: struktur}
	if intent.IsPDF() {
		payload.ShiftFilter = shiftFilterOrAll(snap.ShiftFilter)
		j.loading = fmt.Sprintf("Membuat PDF untuk %d pegawai %s...", n, who)
		j.success = fmt.Sprintf("✓ PDF berhasil diekspor untuk %d pegawai %s!", n, who)
		j.fallback = "Gagal mengekspor PDF"
		j.crash = "Terjadi kesalahan saat mengekspor PDF"
	} else {
		payload.ShiftStatus = snap.ShiftMode
		j.loading = fmt.Sprintf("Mengexport Excel untuk %d pegawai %s...", n, who)
		j.success = fmt.Sprintf("✓ Excel berhasil diekspor untuk %d pegawai %s!", n, who)
		j.fallback = "Gagal mengekspor Excel"
		j.crash = "Terjadi kesalahan saat mengekspor Excel"
	}
	j.payload = payload

	return j
}

// exportMonths flattens an employee's months in key order, keeping those
// inside dr or, without a range, the last 24.
func exportMonths(e senam.EmployeeRecord, dr senam.DateRange) map[string]senam.MonthRecord {
	all := map[string]senam.MonthRecord{}
	keys := []string{}
	for _, months := range e.Bulanan {
		for key, m := range months {
			if dr.IsSet() && !dr.Contains(key) {
				continue
			}
			if _, seen := all[key]; seen {
				continue
			}
			all[key] = m
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	if !dr.IsSet() && len(keys) > employeeMonthWindow {
		keys = keys[len(keys)-employeeMonthWindow:]
	}

	out := make(map[string]senam.MonthRecord, len(keys))
	for _, key := range keys {
		out[key] = all[key]
	}
	return out
}

func selectionLabel(n int) string {
	return fmt.Sprintf("%d Pegawai Terpilih", n)
}

// fileDate is the UTC calendar date used in filenames.
func fileDate(now time.Time) string {
	return now.UTC().Format("2006-01-02")
}

func fileLabel(s string) string {
	return strings.ReplaceAll(s, " ", "_")
}

func yearOrAll(year string) string {
	if year == "" {
		return senam.AllValue
	}
	return year
}

func shiftFilterOrAll(f senam.ShiftFilter) senam.ShiftFilter {
	if f == "" {
		return senam.ShiftFilterAll
	}
	return f
}
