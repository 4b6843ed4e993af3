package senam

import (
	"testing"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeValue(t *testing.T) {
	employee := withMonths(
		newRecord("a", "Andi", map[string]int{"2023": 5, "2024": 0}),
		map[string]int{"2023-05": 3, "2023-06": 2, "2023-07": 0, "2023-09": 4},
	)
	employee.TotalAll = 5
	summer := senam.DateRange{Start: "2023-06", End: "2023-08", Active: true}

	tests := []struct {
		name string
		year string
		dr   senam.DateRange
		want int
	}{
		{name: "year with zero value", year: "2024", want: 0},
		{name: "year wins over range", year: "2023", dr: summer, want: 5},
		{name: "missing year", year: "2030", want: 0},
		{name: "all years without range", year: senam.AllValue, want: 5},
		{name: "inactive range falls back to total", year: senam.AllValue, dr: senam.DefaultDateRange(), want: 5},
		{name: "active range sums months in range", year: senam.AllValue, dr: summer, want: 2},
		{name: "empty year behaves like all", year: "", dr: summer, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			got := ScopeValue(employee, tt.year, tt.dr)

			// Assert
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAttendanceInRange_SpansYears(t *testing.T) {
	// Arrange
	e := withMonths(newRecord("a", "Andi", nil), map[string]int{
		"2022-11": 1, "2022-12": 2, "2023-01": 3, "2023-02": 4,
	})

	// Act
	got := AttendanceInRange(e, "2022-12", "2023-01")

	// Assert
	assert.Equal(t, 5, got)
}

func TestSplitCohorts_DisjointAndExhaustive(t *testing.T) {
	// Arrange
	records := []senam.EmployeeRecord{
		newRecord("a", "A", map[string]int{"2023": 5}),
		newRecord("b", "B", map[string]int{"2024": 2}),
		newRecord("c", "C", map[string]int{}),
		newRecord("d", "D", map[string]int{"2023": 1, "2024": 1}),
	}

	// Act
	attended, notAttended := SplitCohorts(records, "2024", senam.DateRange{})

	// Assert
	assert.Equal(t, len(records), len(attended)+len(notAttended))
	assert.Equal(t, []string{"b", "d"}, ids(attended))
	assert.Equal(t, []string{"a", "c"}, ids(notAttended))
}

func TestComputeKPI(t *testing.T) {
	t.Run("mixed set", func(t *testing.T) {
		// Arrange
		records := []senam.EmployeeRecord{
			newRecord("a", "A", map[string]int{"2022": 3, "2023": 4}),
			newRecord("b", "B", map[string]int{"2024": 3}),
			newRecord("c", "C", map[string]int{}),
		}

		// Act
		kpi := ComputeKPI(records, senam.AllValue, senam.DateRange{})

		// Assert
		assert.Equal(t, 2, kpi.Participants)
		assert.Equal(t, 10, kpi.TotalAttendance)
		assert.Equal(t, 3.3, kpi.Average)
		assert.Equal(t, 1, kpi.NotAttended)
		assert.Equal(t, "2022-2024", kpi.Period)
	})

	t.Run("empty set", func(t *testing.T) {
		// Act
		kpi := ComputeKPI(nil, senam.AllValue, senam.DateRange{})

		// Assert
		assert.Equal(t, senam.KPI{}, kpi)
	})
}

func TestMonthlyWindow_TrailingWindow(t *testing.T) {
	// Arrange
	e := monthSpan(newRecord("a", "Andi", nil), 2021, 2024)
	e = withMonths(e, map[string]int{"2024-03": 2})

	// Act
	window := MonthlyWindow(e, senam.DateRange{})

	// Assert
	require.Len(t, window, 24)
	assert.Equal(t, "2022-04", window[0].Key)
	assert.Equal(t, "2024-03", window[23].Key)
}

func TestMonthlyWindow_StatusCountsAsPopulated(t *testing.T) {
	// Arrange
	e := monthSpan(newRecord("a", "Andi", nil), 2023, 2024)
	e.Bulanan["2024"]["2024-06"] = senam.MonthRecord{Nama: "Juni", Status: senam.StatusAbsent}

	// Act
	window := MonthlyWindow(e, senam.DateRange{})

	// Assert
	require.NotEmpty(t, window)
	assert.Equal(t, "2024-06", window[len(window)-1].Key)
	assert.Equal(t, "2023-01", window[0].Key)
}

func TestMonthlyWindow_FallsBackToLastEntries(t *testing.T) {
	// Arrange
	e := monthSpan(newRecord("a", "Andi", nil), 2022, 2024)

	// Act
	window := MonthlyWindow(e, senam.DateRange{})

	// Assert
	require.Len(t, window, 24)
	assert.Equal(t, "2023-01", window[0].Key)
	assert.Equal(t, "2024-12", window[23].Key)
}

func TestMonthlyWindow_ActiveRange(t *testing.T) {
	// Arrange
	e := monthSpan(newRecord("a", "Andi", nil), 2023, 2023)
	dr := senam.DateRange{Start: "2023-03", End: "2023-05", Active: true}

	// Act
	window := MonthlyWindow(e, dr)

	// Assert
	keys := make([]string, len(window))
	for i, m := range window {
		keys[i] = m.Key
	}
	assert.Equal(t, []string{"2023-03", "2023-04", "2023-05"}, keys)
}

func TestFlattenMonths_DefaultsNameAndStatus(t *testing.T) {
	// Arrange
	e := newRecord("a", "Andi", nil)
	e.Bulanan["2024"] = map[string]senam.MonthRecord{"2024-02": {Value: 1}}

	// Act
	entries := FlattenMonths(e)

	// Assert
	require.Len(t, entries, 1)
	assert.Equal(t, "Bulan 02", entries[0].Name)
	assert.Equal(t, senam.StatusAbsent, entries[0].Status)
	assert.Equal(t, "2024", entries[0].Year)
}

func TestSummarizeMonths(t *testing.T) {
	th := senam.DefaultThresholds()
	entries := make([]senam.MonthEntry, 24)
	for i := range entries {
		entries[i] = senam.MonthEntry{Value: 2}
	}

	tests := []struct {
		name       string
		mode       senam.ShiftMode
		wantTarget int
		wantMeets  bool
	}{
		{name: "non shift misses 56", mode: senam.ShiftModeNonShift, wantTarget: 56, wantMeets: false},
		{name: "shift meets 40", mode: senam.ShiftModeShift, wantTarget: 40, wantMeets: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			summary := SummarizeMonths(entries, tt.mode, th)

			// Assert
			assert.Equal(t, 48, summary.Total)
			assert.Equal(t, 24, summary.Months)
			assert.Equal(t, 200.0, summary.Percentage)
			assert.Equal(t, tt.wantTarget, summary.Target)
			assert.Equal(t, tt.wantMeets, summary.MeetsTarget)
		})
	}

	t.Run("empty window", func(t *testing.T) {
		// Act
		summary := SummarizeMonths(nil, senam.ShiftModeShift, th)

		// Assert
		assert.Zero(t, summary.Percentage)
		assert.Equal(t, "50%", summary.TargetLabel)
	})
}

func TestYearlyRows(t *testing.T) {
	// Arrange
	e := newRecord("a", "Andi", map[string]int{"2024": 20, "2023": 8})

	// Act
	rows := YearlyRows(e, senam.DefaultThresholds())

	// Assert
	require.Len(t, rows, 2)
	assert.Equal(t, senam.YearlyRow{Year: "2023", Value: 8, Percentage: 10, Good: false}, rows[0])
	assert.Equal(t, senam.YearlyRow{Year: "2024", Value: 20, Percentage: 25, Good: true}, rows[1])
}
