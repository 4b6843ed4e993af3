package export

import (
	"fmt"
	"testing"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
	"github.com/stretchr/testify/assert"
)

func TestExportMonths_LastTwentyFour(t *testing.T) {
	// Arrange
	e := senam.EmployeeRecord{Bulanan: map[string]map[string]senam.MonthRecord{}}
	for year := 2022; year <= 2024; year++ {
		y := fmt.Sprint(year)
		e.Bulanan[y] = map[string]senam.MonthRecord{}
		for m := 1; m <= 12; m++ {
			e.Bulanan[y][fmt.Sprintf("%d-%02d", year, m)] = senam.MonthRecord{Value: m}
		}
	}

	// Act
	months := exportMonths(e, senam.DefaultDateRange())

	// Assert
	assert.Len(t, months, 24)
	assert.Contains(t, months, "2023-01")
	assert.Contains(t, months, "2024-12")
	assert.NotContains(t, months, "2022-12")
}

func TestExportMonths_Range(t *testing.T) {
	e := senam.EmployeeRecord{Bulanan: map[string]map[string]senam.MonthRecord{
		"2023": {"2023-05": {Value: 3}, "2023-06": {Value: 2}, "2023-07": {Value: 0}, "2023-09": {Value: 4}},
	}}

	months := exportMonths(e, senam.DateRange{Start: "2023-06", End: "2023-08", Active: true})

	assert.Equal(t, map[string]senam.MonthRecord{"2023-06": {Value: 2}, "2023-07": {Value: 0}}, months)
}

func TestFileLabel(t *testing.T) {
	assert.Equal(t, "Lini_Produksi_A", fileLabel("Lini Produksi A"))
	assert.Equal(t, "Semua", fileLabel(senam.StrukturAll))
}
