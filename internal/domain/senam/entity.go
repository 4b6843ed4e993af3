package senam

import (
	"sort"
	"strconv"
)

const (
	// AllValue marks a categorical or year filter as unconstrained.
	AllValue = "all"

	StatusNoData  = "Tidak Ada Data"
	StatusAbsent  = "Tidak Hadir"
	StrukturAll   = "Semua"
	DefaultStart  = "2022-01"
	DefaultEnd    = "2032-12"
	FirstYear     = 2022
	LastYear      = 2032
	MonthKeyShape = "2006-01"
)

// MonthNames are the month labels used in captions and as a fallback for unnamed months.
var MonthNames = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

type MonthRecord struct {
	Nama   string `json:"nama"`
	Value  int    `json:"value"`
	Status string `json:"status"`
}

// EmployeeRecord is one employee row as served by the backend. Records are never
// mutated after load; the store is replaced wholesale.
type EmployeeRecord struct {
	ID            string                            `json:"id"`
	OriginalIndex int                               `json:"original_index"`
	Nama          string                            `json:"nama"`
	NIK           string                            `json:"nik"`
	JK            string                            `json:"jk"`
	Status        string                            `json:"status"`
	Kelompok      string                            `json:"kelompok"`
	Jabatan       string                            `json:"jabatan"`
	Struktur      string                            `json:"struktur"`
	Tempat        string                            `json:"tempat"`
	Keterangan    string                            `json:"keterangan,omitempty"`
	ShiftStatus   string                            `json:"shift_status,omitempty"`
	Tahunan       map[string]int                    `json:"tahunan"`
	Bulanan       map[string]map[string]MonthRecord `json:"bulanan"`
	TotalAll      int                               `json:"total_all"`
}

// YearValue returns the yearly count, 0 when the year is absent.
func (e EmployeeRecord) YearValue(year string) int {
	return e.Tahunan[year]
}

// Years returns the keys of Tahunan in ascending order.
func (e EmployeeRecord) Years() []string {
	years := make([]string, 0, len(e.Tahunan))
	for y := range e.Tahunan {
		years = append(years, y)
	}
	sort.Strings(years)
	return years
}

type ShiftMode string

const (
	ShiftModeNonShift ShiftMode = "non_shift"
	ShiftModeShift    ShiftMode = "shift"
)

func (m ShiftMode) Label() string {
	if m == ShiftModeShift {
		return "Shift"
	}
	return "Non-Shift"
}

// ShiftFilter narrows group PDF exports to one shift population.
type ShiftFilter string

const (
	ShiftFilterAll      ShiftFilter = "all"
	ShiftFilterShift    ShiftFilter = "shift"
	ShiftFilterNonShift ShiftFilter = "non_shift"
)

// FileLabel is the shift fragment used in export filenames.
func (f ShiftFilter) FileLabel() string {
	switch f {
	case ShiftFilterShift:
		return "Shift"
	case ShiftFilterNonShift:
		return "NonShift"
	default:
		return "Semua"
	}
}

type DateRange struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Active bool   `json:"active"`
}

// DefaultDateRange is the inactive full span offered when no range was chosen.
func DefaultDateRange() DateRange {
	return DateRange{Start: DefaultStart, End: DefaultEnd}
}

// IsSet reports whether the range constrains anything.
func (d DateRange) IsSet() bool {
	return d.Active && d.Start != "" && d.End != ""
}

// Contains compares zero-padded month keys as plain strings.
func (d DateRange) Contains(monthKey string) bool {
	return monthKey >= d.Start && monthKey <= d.End
}

type FilterState struct {
	Search    string    `json:"search"`
	Tempat    string    `json:"tempat"`
	Kelompok  string    `json:"kelompok"`
	Status    string    `json:"status"`
	Struktur  string    `json:"struktur"`
	Year      string    `json:"year"`
	DateRange DateRange `json:"date_range"`
}

// DefaultFilterState returns an unconstrained filter with the default date span.
func DefaultFilterState() FilterState {
	return FilterState{
		Struktur:  AllValue,
		Year:      AllValue,
		DateRange: DefaultDateRange(),
	}
}

// ActiveYear returns the selected year, or "" when every year is in scope.
func (f FilterState) ActiveYear() string {
	if f.Year == "" || f.Year == AllValue {
		return ""
	}
	return f.Year
}

// StrukturLabel is the org line label sent with exports.
func (f FilterState) StrukturLabel() string {
	if f.Struktur == "" || f.Struktur == AllValue {
		return StrukturAll
	}
	return f.Struktur
}

type SortColumn string

const (
	SortByNama     SortColumn = "nama"
	SortByNIK      SortColumn = "nik"
	SortByJK       SortColumn = "jk"
	SortByJabatan  SortColumn = "jabatan"
	SortByStruktur SortColumn = "struktur"
	SortByTempat   SortColumn = "tempat"
	SortByTotal    SortColumn = "total_all"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortState with an empty column keeps store order.
type SortState struct {
	Column    SortColumn    `json:"column,omitempty"`
	Direction SortDirection `json:"direction,omitempty"`
}

type ChartKind string

const (
	ChartBar  ChartKind = "bar"
	ChartLine ChartKind = "line"
	ChartPie  ChartKind = "pie"
)

// Thresholds drive pass/fail classification only; they never filter data.
type Thresholds struct {
	TargetNonShift      int
	TargetShift         int
	YearlyCeiling       int
	YearlyGoodThreshold int
}

// DefaultThresholds mirror the 70% / 50% of an 80 session year.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TargetNonShift:      56,
		TargetShift:         40,
		YearlyCeiling:       80,
		YearlyGoodThreshold: 20,
	}
}

// Target returns the monthly-window target for the given shift mode.
func (t Thresholds) Target(mode ShiftMode) int {
	if mode == ShiftModeShift {
		return t.TargetShift
	}
	return t.TargetNonShift
}

// TargetLabel returns the target share as shown next to the target.
func (t Thresholds) TargetLabel(mode ShiftMode) string {
	if t.YearlyCeiling <= 0 {
		return ""
	}
	return strconv.Itoa(t.Target(mode)*100/t.YearlyCeiling) + "%"
}

// MonthLabel renders "YYYY-MM" as "Januari 2024".
func MonthLabel(monthKey string) string {
	if len(monthKey) != 7 {
		return monthKey
	}
	m, err := strconv.Atoi(monthKey[5:])
	if err != nil || m < 1 || m > 12 {
		return monthKey
	}
	return MonthNames[m-1] + " " + monthKey[:4]
}
