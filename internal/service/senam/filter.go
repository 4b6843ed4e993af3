package senam

import (
	"sort"
	"strings"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
)

// ApplyFilters derives the table view and the chart view from the full record
// set. Both use the same predicates and are computed independently so chart
// totals never depend on table pagination or sorting.
func ApplyFilters(records []senam.EmployeeRecord, f senam.FilterState) (table, chart []senam.EmployeeRecord) {
	term := strings.ToLower(strings.TrimSpace(f.Search))

	table = make([]senam.EmployeeRecord, 0, len(records))
	for _, r := range records {
		if matches(r, f, term) {
			table = append(table, r)
		}
	}

	chart = make([]senam.EmployeeRecord, 0, len(records))
	for _, r := range records {
		if matches(r, f, term) {
			chart = append(chart, r)
		}
	}

	return table, chart
}

func matches(r senam.EmployeeRecord, f senam.FilterState, term string) bool {
	if term != "" && !matchesSearch(r, term) {
		return false
	}
	if isConstrained(f.Tempat) && r.Tempat != f.Tempat {
		return false
	}
	if isConstrained(f.Kelompok) && r.Kelompok != f.Kelompok {
		return false
	}
	if isConstrained(f.Status) && r.Status != f.Status {
		return false
	}
	if isConstrained(f.Struktur) && r.Struktur != f.Struktur {
		return false
	}
	return true
}

func matchesSearch(r senam.EmployeeRecord, term string) bool {
	for _, field := range []string{r.Nama, r.NIK, r.Jabatan, r.Tempat} {
		if field != "" && strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func isConstrained(v string) bool {
	return v != "" && v != senam.AllValue
}

// SummarizeFilters lists every non-default constraint in a fixed order.
func SummarizeFilters(f senam.FilterState) senam.FilterSummary {
	var parts []string

	if term := strings.TrimSpace(f.Search); term != "" {
		parts = append(parts, `Pencarian: "`+term+`"`)
	}
	if isConstrained(f.Tempat) {
		parts = append(parts, "Tempat: "+f.Tempat)
	}
	if isConstrained(f.Kelompok) {
		parts = append(parts, "Kelompok: "+f.Kelompok)
	}
	if isConstrained(f.Status) {
		parts = append(parts, "Status: "+f.Status)
	}
	if isConstrained(f.Struktur) {
		parts = append(parts, "Struktur: "+f.Struktur)
	}
	if year := f.ActiveYear(); year != "" {
		parts = append(parts, "Tahun: "+year)
	}

	if len(parts) == 0 {
		return senam.FilterSummary{Text: "Tidak ada filter aktif"}
	}
	return senam.FilterSummary{
		Active: true,
		Text:   "Filter aktif: " + strings.Join(parts, ", "),
	}
}

// BuildFilterOptions collects the sorted distinct values offered by the filter selects.
func BuildFilterOptions(records []senam.EmployeeRecord) senam.FilterOptions {
	tempat := map[string]struct{}{}
	kelompok := map[string]struct{}{}
	status := map[string]struct{}{}
	struktur := map[string]struct{}{}
	years := map[string]struct{}{}

	for _, r := range records {
		addNonEmpty(tempat, r.Tempat)
		addNonEmpty(kelompok, r.Kelompok)
		addNonEmpty(status, r.Status)
		addNonEmpty(struktur, r.Struktur)
		for y := range r.Tahunan {
			addNonEmpty(years, y)
		}
	}

	return senam.FilterOptions{
		Tempat:   sortedKeys(tempat),
		Kelompok: sortedKeys(kelompok),
		Status:   sortedKeys(status),
		Struktur: sortedKeys(struktur),
		Years:    sortedKeys(years),
	}
}

func addNonEmpty(set map[string]struct{}, v string) {
	if v != "" {
		set[v] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DateRangeText is the caption of the range picker.
func DateRangeText(dr senam.DateRange) string {
	if !dr.IsSet() {
		return "Rentang Waktu"
	}
	return senam.MonthLabel(dr.Start) + " - " + senam.MonthLabel(dr.End)
}
