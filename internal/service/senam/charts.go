package senam

import (
	"strconv"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
	"github.com/google/uuid"
)

var yearPalette = []string{
	"rgba(52, 152, 219, 0.8)",
	"rgba(46, 204, 113, 0.8)",
	"rgba(155, 89, 182, 0.8)",
	"rgba(241, 196, 15, 0.8)",
	"rgba(230, 126, 34, 0.8)",
	"rgba(231, 76, 60, 0.8)",
	"rgba(26, 188, 156, 0.8)",
	"rgba(52, 73, 94, 0.8)",
	"rgba(149, 165, 166, 0.8)",
	"rgba(243, 156, 18, 0.8)",
	"rgba(192, 57, 43, 0.8)",
}

const (
	colorPrimaryBorder = "rgba(41, 128, 185, 1)"
	colorYearlyFill    = "rgba(52, 152, 219, 0.7)"
	colorPresentFill   = "rgba(46, 204, 113, 0.7)"
	colorPresentBorder = "rgba(39, 174, 96, 1)"
	colorAbsentFill    = "rgba(231, 76, 60, 0.7)"
	colorAbsentBorder  = "rgba(192, 57, 43, 1)"
)

// CandidateYears lists the years the main chart may show.
func CandidateYears() []string {
	years := make([]string, 0, senam.LastYear-senam.FirstYear+1)
	for y := senam.FirstYear; y <= senam.LastYear; y++ {
		years = append(years, strconv.Itoa(y))
	}
	return years
}

// MainChart sums yearly values of the chart view. Years with no positive
// value anywhere in the store are left off the axis.
func MainChart(store, chartView []senam.EmployeeRecord, kind senam.ChartKind) senam.ChartSpec {
	if kind == "" {
		kind = senam.ChartBar
	}
	spec := senam.ChartSpec{ID: uuid.NewString(), Kind: kind, Labels: []string{}, Datasets: []senam.Dataset{}}

	for _, y := range CandidateYears() {
		for _, r := range store {
			if r.Tahunan[y] > 0 {
				spec.Labels = append(spec.Labels, y)
				break
			}
		}
	}
	if len(spec.Labels) == 0 {
		spec.EmptyMessage = "Tidak ada data untuk ditampilkan"
		return spec
	}

	data := make([]int, len(spec.Labels))
	for i, y := range spec.Labels {
		for _, r := range chartView {
			data[i] += r.Tahunan[y]
		}
	}

	background := senam.Paint{Single: yearPalette[0]}
	if kind == senam.ChartPie {
		background = senam.Paint{PerPoint: yearPalette[:min(len(spec.Labels), len(yearPalette))]}
	}

	spec.Datasets = []senam.Dataset{{
		Label:           "Total Senam",
		Data:            data,
		BackgroundColor: background,
		BorderColor:     senam.Paint{Single: colorPrimaryBorder},
		BorderWidth:     2,
		Fill:            kind == senam.ChartLine,
		Tension:         0.4,
	}}
	spec.Options = senam.ChartOptions{
		LegendDisplay:  kind == senam.ChartPie,
		LegendPosition: "right",
		TooltipFormat:  "Total: {value}",
		BeginAtZero:    true,
		ShowScales:     kind != senam.ChartPie,
	}
	if spec.Options.ShowScales {
		spec.Options.XTitle = "Tahun"
		spec.Options.YTitle = "Jumlah Senam"
	}
	return spec
}

// YearlyChart plots one bar per year of a single employee.
func YearlyChart(e senam.EmployeeRecord) senam.ChartSpec {
	spec := senam.ChartSpec{ID: uuid.NewString(), Kind: senam.ChartBar, Labels: e.Years(), Datasets: []senam.Dataset{}}
	if len(spec.Labels) == 0 {
		spec.EmptyMessage = "Tidak ada data tahunan"
		return spec
	}

	data := make([]int, len(spec.Labels))
	for i, y := range spec.Labels {
		data[i] = e.Tahunan[y]
	}
	spec.Datasets = []senam.Dataset{{
		Label:           "Jumlah Senam",
		Data:            data,
		BackgroundColor: senam.Paint{Single: colorYearlyFill},
		BorderColor:     senam.Paint{Single: colorPrimaryBorder},
		BorderWidth:     2,
		BorderRadius:    4,
	}}
	spec.Options = senam.ChartOptions{
		TooltipFormat: "Senam: {value} kali",
		XTitle:        "Tahun",
		YTitle:        "Jumlah Senam",
		BeginAtZero:   true,
		StepSize:      1,
		ShowScales:    true,
	}
	return spec
}

// MonthlyChart plots the windowed months, green when attended and red otherwise.
func MonthlyChart(entries []senam.MonthEntry) senam.ChartSpec {
	spec := senam.ChartSpec{ID: uuid.NewString(), Kind: senam.ChartBar, Labels: []string{}, Datasets: []senam.Dataset{}}
	if len(entries) == 0 {
		spec.EmptyMessage = "Tidak ada data bulanan untuk periode ini"
		return spec
	}

	data := make([]int, len(entries))
	fill := make([]string, len(entries))
	border := make([]string, len(entries))
	for i, m := range entries {
		spec.Labels = append(spec.Labels, monthChartLabel(m))
		data[i] = m.Value
		if m.Value > 0 {
			fill[i], border[i] = colorPresentFill, colorPresentBorder
		} else {
			fill[i], border[i] = colorAbsentFill, colorAbsentBorder
		}
	}
	spec.Datasets = []senam.Dataset{{
		Label:           "Jumlah Senam",
		Data:            data,
		BackgroundColor: senam.Paint{PerPoint: fill},
		BorderColor:     senam.Paint{PerPoint: border},
		BorderWidth:     1,
		BorderRadius:    3,
	}}
	spec.Options = senam.ChartOptions{
		TooltipFormat: "Senam: {value} kali",
		YTitle:        "Jumlah Senam",
		BeginAtZero:   true,
		StepSize:      1,
		XTickRotation: 45,
		XTickFontSize: 10,
		ShowScales:    true,
	}
	return spec
}

// monthChartLabel renders "Jan 24" from the month name and year.
func monthChartLabel(m senam.MonthEntry) string {
	name := []rune(m.Name)
	if len(name) > 3 {
		name = name[:3]
	}
	year := m.Year
	if len(year) > 2 {
		year = year[2:]
	}
	return string(name) + " " + year
}
