package senam

import (
	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
)

// BuildDetail renders the detail panel of one employee under the active year,
// date range and shift mode.
func BuildDetail(e senam.EmployeeRecord, year string, dr senam.DateRange, mode senam.ShiftMode, th senam.Thresholds) *senam.DetailView {
	years := e.Years()

	summary := make([]senam.YearSummaryItem, 0, len(years))
	for _, y := range years {
		summary = append(summary, senam.YearSummaryItem{
			Year:   y,
			Value:  e.Tahunan[y],
			Active: y == year,
		})
	}

	window := MonthlyWindow(e, dr)
	if window == nil {
		window = []senam.MonthEntry{}
	}

	return &senam.DetailView{
		Employee:    employeeInfo(e),
		ShiftLabel:  mode.Label(),
		Years:       years,
		YearSummary: summary,
		YearlyChart: YearlyChart(e),
		YearlyTable: YearlyRows(e, th),
		Monthly: senam.MonthlyView{
			Caption: monthlyCaption(dr),
			Entries: window,
			Summary: SummarizeMonths(window, mode, th),
			Chart:   MonthlyChart(window),
		},
	}
}

func employeeInfo(e senam.EmployeeRecord) senam.EmployeeInfo {
	return senam.EmployeeInfo{
		ID:       e.ID,
		Nama:     orDash(e.Nama),
		NIK:      orDash(e.NIK),
		JK:       orDash(e.JK),
		Status:   orDash(e.Status),
		Kelompok: orDash(e.Kelompok),
		Jabatan:  orDash(e.Jabatan),
		Struktur: orDash(e.Struktur),
		Tempat:   orDash(e.Tempat),
	}
}

func monthlyCaption(dr senam.DateRange) string {
	if dr.IsSet() {
		return DateRangeText(dr)
	}
	return "Semua bulan (24 bulan terakhir)"
}
