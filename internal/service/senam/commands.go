package senam

import (
	"strconv"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
)

// command is one state transition applied on the event loop. A command that
// returns an error must leave the state untouched.
type command interface {
	apply(st *dashboardState) error
}

// readOnly marks commands that neither bump the revision nor re-render.
type readOnly interface {
	readOnly()
}

type query struct{}

func (query) readOnly() {}

// ============= Queries =============

type viewQuery struct{}

func (viewQuery) apply(*dashboardState) error { return nil }

type snapshotQuery struct {
	query
	out **senam.Snapshot
}

func (c snapshotQuery) apply(st *dashboardState) error {
	*c.out = st.snapshot()
	return nil
}

type selectionQuery struct {
	query
	out *[]senam.EmployeeRecord
}

func (c selectionQuery) apply(st *dashboardState) error {
	*c.out = st.selection.Records()
	return nil
}

// ============= Loading =============

const loadingMessage = "Memuat data..."

// beginLoadCmd starts a load. With queue set, a load already in flight is
// asked to fetch once more and queued reports it.
type beginLoadCmd struct {
	message string
	token   *uint64
	queue   bool
	queued  *bool
}

func (c beginLoadCmd) apply(st *dashboardState) error {
	if st.loadInFlight {
		if c.queue {
			st.reloadQueued = true
			*c.queued = true
			return nil
		}
		return senam.ErrLoadInFlight
	}
	st.loadInFlight = true
	*c.token = st.showLoading(c.message)
	return nil
}

// finishLoadCmd swaps in a fetched dataset. When a reload was queued meanwhile
// the load stays in flight: next receives the new loading token and again is set.
type finishLoadCmd struct {
	token   uint64
	records []senam.EmployeeRecord
	err     error
	next    *uint64
	again   *bool
}

func (c finishLoadCmd) apply(st *dashboardState) error {
	st.loadInFlight = false
	st.hideLoading(c.token)

	if c.err != nil {
		st.loadError = senam.ErrLoadFailed.Message
		st.notify(senam.NoticeError, "Gagal memuat data: "+c.err.Error())
	} else {
		st.replaceStore(c.records)
		if len(st.store) == 0 {
			st.notify(senam.NoticeInfo, "Belum ada data. Silakan upload file Excel.")
		} else {
			st.notify(senam.NoticeSuccess, "Data berhasil dimuat: "+strconv.Itoa(len(st.store))+" pegawai")
		}
	}

	if st.reloadQueued && c.next != nil && c.again != nil {
		st.reloadQueued = false
		st.loadInFlight = true
		*c.next = st.showLoading(loadingMessage)
		*c.again = true
	}
	return nil
}

type showLoadingCmd struct {
	message string
	token   *uint64
}

func (c showLoadingCmd) apply(st *dashboardState) error {
	*c.token = st.showLoading(c.message)
	return nil
}

type hideLoadingCmd struct {
	token uint64
}

func (c hideLoadingCmd) apply(st *dashboardState) error {
	st.hideLoading(c.token)
	return nil
}

// ============= Filters =============

type applyFiltersCmd struct {
	req senam.FilterRequest
}

func (c applyFiltersCmd) apply(st *dashboardState) error {
	st.filters.Search = c.req.Search
	st.filters.Tempat = c.req.Tempat
	st.filters.Kelompok = c.req.Kelompok
	st.filters.Status = c.req.Status
	st.filters.Struktur = orAll(c.req.Struktur)
	st.filters.Year = orAll(c.req.Year)
	st.refilter()
	return nil
}

type resetFiltersCmd struct{}

func (resetFiltersCmd) apply(st *dashboardState) error {
	st.filters = senam.DefaultFilterState()
	st.refilter()
	st.notify(senam.NoticeInfo, "Semua filter telah direset")
	return nil
}

type searchCmd struct {
	term string
}

func (c searchCmd) apply(st *dashboardState) error {
	st.filters.Search = c.term
	st.refilter()
	return nil
}

type setDateRangeCmd struct {
	start, end string
}

func (c setDateRangeCmd) apply(st *dashboardState) error {
	st.filters.DateRange = senam.DateRange{Start: c.start, End: c.end, Active: true}
	st.resortByScope()
	st.notify(senam.NoticeSuccess, "Filter rentang waktu diterapkan: "+DateRangeText(st.filters.DateRange))
	return nil
}

type clearDateRangeCmd struct{}

func (clearDateRangeCmd) apply(st *dashboardState) error {
	st.filters.DateRange = senam.DefaultDateRange()
	st.resortByScope()
	st.notify(senam.NoticeInfo, "Filter rentang waktu direset")
	return nil
}

// ============= Table and charts =============

type changePageCmd struct {
	page int
}

func (c changePageCmd) apply(st *dashboardState) error {
	if c.page < 1 || c.page > st.totalPages() {
		return nil
	}
	st.page = c.page
	return nil
}

type changePageSizeCmd struct {
	size int
}

func (c changePageSizeCmd) apply(st *dashboardState) error {
	st.pageSize = c.size
	st.page = 1
	return nil
}

type sortCmd struct {
	column senam.SortColumn
}

func (c sortCmd) apply(st *dashboardState) error {
	st.sort = NextSort(st.sort, c.column)
	st.resort()
	st.page = 1
	return nil
}

type chartKindCmd struct {
	kind senam.ChartKind
}

func (c chartKindCmd) apply(st *dashboardState) error {
	st.chartKind = c.kind
	return nil
}

type shiftModeCmd struct {
	mode senam.ShiftMode
}

func (c shiftModeCmd) apply(st *dashboardState) error {
	st.shiftMode = c.mode
	st.notify(senam.NoticeInfo, "Status shift diubah ke: "+c.mode.Label())
	return nil
}

type shiftFilterCmd struct {
	filter senam.ShiftFilter
}

func (c shiftFilterCmd) apply(st *dashboardState) error {
	st.shiftFilter = c.filter
	return nil
}

// ============= Selection =============

type toggleSelectionCmd struct {
	id      string
	checked *bool
}

func (c toggleSelectionCmd) apply(st *dashboardState) error {
	r, ok := st.find(c.id)
	if !ok {
		return senam.ErrEmployeeNotFound
	}
	if c.checked != nil {
		st.selection.Set(r, *c.checked)
		return nil
	}
	st.selection.Toggle(r)
	return nil
}

type selectPageCmd struct {
	checked bool
}

func (c selectPageCmd) apply(st *dashboardState) error {
	st.selection.SetAll(st.pageRows(), c.checked)
	return nil
}

type clearSelectionCmd struct{}

func (clearSelectionCmd) apply(st *dashboardState) error {
	st.selection.Clear()
	return nil
}

// ============= Detail =============

type openDetailCmd struct {
	id string
}

func (c openDetailCmd) apply(st *dashboardState) error {
	r, ok := st.find(c.id)
	if !ok {
		return senam.ErrEmployeeNotFound
	}
	st.detail = &r
	return nil
}

type closeDetailCmd struct{}

func (closeDetailCmd) apply(st *dashboardState) error {
	st.detail = nil
	return nil
}

func orAll(v string) string {
	if v == "" {
		return senam.AllValue
	}
	return v
}
