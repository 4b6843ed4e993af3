package senam

import (
	"strconv"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
)

// render computes the complete view of st. It never mutates st.
func render(st *dashboardState, th senam.Thresholds) *senam.DashboardView {
	year := st.filters.Year
	dr := st.filters.DateRange

	view := &senam.DashboardView{
		Revision:      st.revision,
		DataStatus:    dataStatus(st),
		Loading:       st.loading,
		LoadError:     st.loadError,
		Filters:       st.filters,
		FilterSummary: SummarizeFilters(st.filters),
		DateRangeText: DateRangeText(dr),
		ShiftMode:     st.shiftMode,
		ShiftLabel:    st.shiftMode.Label(),
		ShiftFilter:   st.shiftFilter,
		ChartKind:     st.chartKind,
		Options:       BuildFilterOptions(st.store),
		KPI:           ComputeKPI(st.table, year, dr),
		Table:         renderTable(st),
		Pagination:    BuildPagination(st.page, st.totalPages()),
		Ranking:       BuildRanking(st.table, year, dr),
		MainChart:     MainChart(st.store, st.chart, st.chartKind),
		Selection: senam.SelectionView{
			Count: st.selection.Len(),
			IDs:   st.selection.IDs(),
		},
	}

	if st.detail != nil {
		view.Detail = BuildDetail(*st.detail, st.filters.ActiveYear(), dr, st.shiftMode, th)
	}

	return view
}

func dataStatus(st *dashboardState) senam.DataStatus {
	if len(st.store) == 0 {
		return senam.DataStatus{Loaded: st.loaded, Label: "Belum ada data"}
	}
	return senam.DataStatus{
		Loaded: st.loaded,
		Count:  len(st.store),
		Label:  strconv.Itoa(len(st.store)) + " pegawai",
	}
}

func renderTable(st *dashboardState) senam.TablePage {
	rows := st.pageRows()
	start, _ := PageBounds(st.page, st.pageSize, len(st.table))

	page := senam.TablePage{
		Rows:       make([]senam.TableRow, 0, len(rows)),
		Page:       st.page,
		PageSize:   st.pageSize,
		TotalRows:  len(st.table),
		TotalPages: st.totalPages(),
		Info:       TableInfo(st.page, st.pageSize, len(st.table), st.filters.Year),
		Sort:       st.sort,
		SelectAll:  st.selection.SelectAllState(rows),
	}

	if len(rows) == 0 {
		if len(st.table) == 0 && len(st.store) == 0 {
			page.EmptyMessage = "Belum ada data. Silakan upload file."
			page.CanUpload = true
		} else {
			page.EmptyMessage = "Data tidak ditemukan"
		}
		return page
	}

	for i, r := range rows {
		page.Rows = append(page.Rows, senam.TableRow{
			Number:   start + i + 1,
			ID:       r.ID,
			Nama:     r.Nama,
			NIK:      orDash(r.NIK),
			JK:       orDash(r.JK),
			Jabatan:  orDash(r.Jabatan),
			Struktur: orDash(r.Struktur),
			Tempat:   orDash(r.Tempat),
			Total:    ScopeValue(r, st.filters.Year, st.filters.DateRange),
			Selected: st.selection.Has(r.ID),
		})
	}
	return page
}
