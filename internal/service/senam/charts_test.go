package senam

import (
	"encoding/json"
	"testing"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMainChart_OmitsYearsWithoutData(t *testing.T) {
	// Arrange
	store := []senam.EmployeeRecord{
		newRecord("1", "A", map[string]int{"2022": 2, "2024": 3, "2021": 9}),
		newRecord("2", "B", map[string]int{"2024": 4, "2023": 0}),
	}
	chartView := store[1:]

	// Act
	spec := MainChart(store, chartView, senam.ChartBar)

	// Assert
	assert.Equal(t, []string{"2022", "2024"}, spec.Labels)
	require.Len(t, spec.Datasets, 1)
	assert.Equal(t, []int{0, 4}, spec.Datasets[0].Data)
	assert.False(t, spec.Datasets[0].Fill)
	assert.Equal(t, "Tahun", spec.Options.XTitle)
	assert.NotEmpty(t, spec.ID)
}

func TestMainChart_Kinds(t *testing.T) {
	store := []senam.EmployeeRecord{newRecord("1", "A", map[string]int{"2022": 2, "2023": 1})}

	t.Run("pie colours every slice", func(t *testing.T) {
		// Act
		spec := MainChart(store, store, senam.ChartPie)

		// Assert
		assert.Len(t, spec.Datasets[0].BackgroundColor.PerPoint, 2)
		assert.True(t, spec.Options.LegendDisplay)
		assert.False(t, spec.Options.ShowScales)
	})

	t.Run("line fills the area", func(t *testing.T) {
		// Act
		spec := MainChart(store, store, senam.ChartLine)

		// Assert
		assert.True(t, spec.Datasets[0].Fill)
		assert.Equal(t, yearPalette[0], spec.Datasets[0].BackgroundColor.Single)
	})
}

func TestMainChart_FreshIdentity(t *testing.T) {
	// Arrange
	store := []senam.EmployeeRecord{newRecord("1", "A", map[string]int{"2022": 2})}

	// Act
	first := MainChart(store, store, senam.ChartBar)
	second := MainChart(store, store, senam.ChartBar)

	// Assert
	assert.NotEqual(t, first.ID, second.ID)
}

func TestMainChart_Empty(t *testing.T) {
	// Act
	spec := MainChart(nil, nil, "")

	// Assert
	assert.Equal(t, senam.ChartBar, spec.Kind)
	assert.Empty(t, spec.Datasets)
	assert.Equal(t, "Tidak ada data untuk ditampilkan", spec.EmptyMessage)
}

func TestMonthlyChart_ColoursAndLabels(t *testing.T) {
	// Arrange
	entries := []senam.MonthEntry{
		{Key: "2024-01", Year: "2024", Name: "Januari", Value: 2},
		{Key: "2024-02", Year: "2024", Name: "Februari", Value: 0},
	}

	// Act
	spec := MonthlyChart(entries)

	// Assert
	assert.Equal(t, []string{"Jan 24", "Feb 24"}, spec.Labels)
	assert.Equal(t, []string{colorPresentFill, colorAbsentFill}, spec.Datasets[0].BackgroundColor.PerPoint)
	assert.Equal(t, 45, spec.Options.XTickRotation)
}

func TestYearlyChart_SortedYears(t *testing.T) {
	// Arrange
	e := newRecord("1", "A", map[string]int{"2024": 5, "2022": 1, "2023": 0})

	// Act
	spec := YearlyChart(e)

	// Assert
	assert.Equal(t, []string{"2022", "2023", "2024"}, spec.Labels)
	assert.Equal(t, []int{1, 0, 5}, spec.Datasets[0].Data)
}

func TestPaint_MarshalJSON(t *testing.T) {
	single, err := json.Marshal(senam.Paint{Single: "red"})
	require.NoError(t, err)
	perPoint, err := json.Marshal(senam.Paint{PerPoint: []string{"red", "blue"}})
	require.NoError(t, err)

	assert.JSONEq(t, `"red"`, string(single))
	assert.JSONEq(t, `["red","blue"]`, string(perPoint))
}
