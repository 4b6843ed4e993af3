package senam

import (
	"sort"
	"strings"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
)

// NextSort toggles direction on the same column and starts ascending on a new one.
func NextSort(current senam.SortState, column senam.SortColumn) senam.SortState {
	if current.Column == column {
		if current.Direction == senam.SortAsc {
			return senam.SortState{Column: column, Direction: senam.SortDesc}
		}
		return senam.SortState{Column: column, Direction: senam.SortAsc}
	}
	return senam.SortState{Column: column, Direction: senam.SortAsc}
}

// SortRecords stably sorts records in place. The total column sorts by scope
// value; string columns compare case-insensitively. A zero SortState is a no-op.
func SortRecords(records []senam.EmployeeRecord, s senam.SortState, year string, dr senam.DateRange) {
	if s.Column == "" {
		return
	}
	desc := s.Direction == senam.SortDesc

	if s.Column == senam.SortByTotal {
		scored := make([]scoredRecord, len(records))
		for i, r := range records {
			scored[i] = scoredRecord{record: r, value: ScopeValue(r, year, dr)}
		}
		sort.SliceStable(scored, func(i, j int) bool {
			if desc {
				return scored[i].value > scored[j].value
			}
			return scored[i].value < scored[j].value
		})
		for i := range scored {
			records[i] = scored[i].record
		}
		return
	}

	field := stringField(s.Column)
	sort.SliceStable(records, func(i, j int) bool {
		a := strings.ToLower(field(records[i]))
		b := strings.ToLower(field(records[j]))
		if desc {
			return a > b
		}
		return a < b
	})
}

type scoredRecord struct {
	record senam.EmployeeRecord
	value  int
}

func stringField(c senam.SortColumn) func(senam.EmployeeRecord) string {
	switch c {
	case senam.SortByNIK:
		return func(r senam.EmployeeRecord) string { return r.NIK }
	case senam.SortByJK:
		return func(r senam.EmployeeRecord) string { return r.JK }
	case senam.SortByJabatan:
		return func(r senam.EmployeeRecord) string { return r.Jabatan }
	case senam.SortByStruktur:
		return func(r senam.EmployeeRecord) string { return r.Struktur }
	case senam.SortByTempat:
		return func(r senam.EmployeeRecord) string { return r.Tempat }
	default:
		return func(r senam.EmployeeRecord) string { return r.Nama }
	}
}
