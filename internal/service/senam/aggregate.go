package senam

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
)

// monthlyWindowSize is the trailing window shown when no date range is active.
const monthlyWindowSize = 24

// ScopeValue is the attendance count of e under the active time scope. A
// selected year wins over a date range; with neither, the all-time total is used.
func ScopeValue(e senam.EmployeeRecord, year string, dr senam.DateRange) int {
	switch {
	case year != "" && year != senam.AllValue:
		return e.YearValue(year)
	case dr.IsSet():
		return AttendanceInRange(e, dr.Start, dr.End)
	default:
		return e.TotalAll
	}
}

// AttendanceInRange sums monthly values whose key lies in [start, end] across every year.
func AttendanceInRange(e senam.EmployeeRecord, start, end string) int {
	total := 0
	for _, months := range e.Bulanan {
		for key, m := range months {
			if key >= start && key <= end {
				total += m.Value
			}
		}
	}
	return total
}

// SplitCohorts partitions records into attended (scope value > 0) and not
// attended, preserving relative order.
func SplitCohorts(records []senam.EmployeeRecord, year string, dr senam.DateRange) (attended, notAttended []senam.EmployeeRecord) {
	attended = make([]senam.EmployeeRecord, 0, len(records))
	notAttended = make([]senam.EmployeeRecord, 0)
	for _, r := range records {
		if ScopeValue(r, year, dr) > 0 {
			attended = append(attended, r)
		} else {
			notAttended = append(notAttended, r)
		}
	}
	return attended, notAttended
}

// ComputeKPI summarizes the table view under the active scope.
func ComputeKPI(records []senam.EmployeeRecord, year string, dr senam.DateRange) senam.KPI {
	var kpi senam.KPI

	for _, r := range records {
		v := ScopeValue(r, year, dr)
		kpi.TotalAttendance += v
		if v > 0 {
			kpi.Participants++
		} else {
			kpi.NotAttended++
		}
	}

	if len(records) > 0 {
		kpi.Average = round1(float64(kpi.TotalAttendance) / float64(len(records)))
	}
	kpi.Period = periodLabel(records)

	return kpi
}

func periodLabel(records []senam.EmployeeRecord) string {
	minYear, maxYear := math.MaxInt, math.MinInt
	for _, r := range records {
		for y := range r.Tahunan {
			n, err := strconv.Atoi(y)
			if err != nil {
				continue
			}
			minYear = min(minYear, n)
			maxYear = max(maxYear, n)
		}
	}
	if minYear > maxYear {
		return ""
	}
	return strconv.Itoa(minYear) + "-" + strconv.Itoa(maxYear)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// FlattenMonths returns every month of e across all years, sorted by key,
// with missing names and statuses defaulted.
func FlattenMonths(e senam.EmployeeRecord) []senam.MonthEntry {
	var entries []senam.MonthEntry
	for _, months := range e.Bulanan {
		for key, m := range months {
			entries = append(entries, toEntry(key, m))
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

func toEntry(key string, m senam.MonthRecord) senam.MonthEntry {
	entry := senam.MonthEntry{Key: key, Value: m.Value, Name: m.Nama, Status: m.Status}
	if len(key) == 7 {
		entry.Year, entry.Month = key[:4], key[5:]
	}
	if entry.Name == "" {
		entry.Name = "Bulan " + entry.Month
	}
	if entry.Status == "" {
		entry.Status = senam.StatusAbsent
	}
	return entry
}

// MonthlyWindow selects the months shown for one employee. With an active
// range it keeps the months inside it; otherwise it keeps the 24 months ending
// at the last month holding a value or a real status, falling back to the
// last 24 entries when no month qualifies.
func MonthlyWindow(e senam.EmployeeRecord, dr senam.DateRange) []senam.MonthEntry {
	all := FlattenMonths(e)

	if dr.IsSet() {
		window := make([]senam.MonthEntry, 0, len(all))
		for _, m := range all {
			if dr.Contains(m.Key) {
				window = append(window, m)
			}
		}
		return window
	}

	last := ""
	for _, m := range all {
		if m.Value > 0 || m.Status != senam.StatusNoData {
			last = m.Key
		}
	}
	if last == "" {
		if len(all) > monthlyWindowSize {
			return all[len(all)-monthlyWindowSize:]
		}
		return all
	}

	first := windowStart(last)
	window := make([]senam.MonthEntry, 0, monthlyWindowSize)
	for _, m := range all {
		if m.Key >= first && m.Key <= last {
			window = append(window, m)
		}
	}
	return window
}

// windowStart returns the month key 23 months before last.
func windowStart(last string) string {
	t, err := time.Parse(senam.MonthKeyShape, last)
	if err != nil {
		return last
	}
	return t.AddDate(0, -(monthlyWindowSize - 1), 0).Format(senam.MonthKeyShape)
}

// SummarizeMonths totals a monthly window and compares it with the shift target.
func SummarizeMonths(entries []senam.MonthEntry, mode senam.ShiftMode, th senam.Thresholds) senam.MonthlySummary {
	summary := senam.MonthlySummary{
		Months:      len(entries),
		Target:      th.Target(mode),
		TargetLabel: th.TargetLabel(mode),
	}
	for _, m := range entries {
		summary.Total += m.Value
	}
	if summary.Months > 0 {
		summary.Percentage = round1(float64(summary.Total) / float64(summary.Months) * 100)
		summary.Average = round1(float64(summary.Total) / float64(summary.Months))
	}
	summary.MeetsTarget = summary.Total >= summary.Target
	return summary
}

// YearlyRows rates each year of e against the nominal yearly ceiling.
func YearlyRows(e senam.EmployeeRecord, th senam.Thresholds) []senam.YearlyRow {
	years := e.Years()
	rows := make([]senam.YearlyRow, 0, len(years))
	for _, y := range years {
		v := e.YearValue(y)
		row := senam.YearlyRow{Year: y, Value: v, Good: v >= th.YearlyGoodThreshold}
		if th.YearlyCeiling > 0 {
			row.Percentage = round1(float64(v) / float64(th.YearlyCeiling) * 100)
		}
		rows = append(rows, row)
	}
	return rows
}
