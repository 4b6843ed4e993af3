package senam

import (
	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
)

// dashboardState is the single live application state. It is only touched by
// the event loop goroutine.
type dashboardState struct {
	store  []senam.EmployeeRecord
	loaded bool

	filters senam.FilterState
	table   []senam.EmployeeRecord
	chart   []senam.EmployeeRecord

	sort     senam.SortState
	page     int
	pageSize int

	chartKind   senam.ChartKind
	shiftMode   senam.ShiftMode
	shiftFilter senam.ShiftFilter

	selection *SelectionSet
	detail    *senam.EmployeeRecord

	loading      *senam.Loading
	loadingSeq   uint64
	loadInFlight bool
	reloadQueued bool
	loadError    string

	revision uint64
	notices  []senam.Notice
}

func newDashboardState(pageSize int) *dashboardState {
	return &dashboardState{
		store:       []senam.EmployeeRecord{},
		filters:     senam.DefaultFilterState(),
		table:       []senam.EmployeeRecord{},
		chart:       []senam.EmployeeRecord{},
		page:        1,
		pageSize:    pageSize,
		chartKind:   senam.ChartBar,
		shiftMode:   senam.ShiftModeNonShift,
		shiftFilter: senam.ShiftFilterAll,
		selection:   NewSelectionSet(),
	}
}

// refilter recomputes both filtered views from the store and goes back to page 1.
func (s *dashboardState) refilter() {
	s.table, s.chart = ApplyFilters(s.store, s.filters)
	s.resort()
	s.page = 1
}

// resort re-applies the current sort to the table view.
func (s *dashboardState) resort() {
	SortRecords(s.table, s.sort, s.filters.Year, s.filters.DateRange)
}

// resortByScope re-sorts after the year or date range changed. Only the total
// column depends on them, and a reordered table goes back to page 1.
func (s *dashboardState) resortByScope() {
	if s.sort.Column != senam.SortByTotal {
		return
	}
	s.resort()
	s.page = 1
}

func (s *dashboardState) totalPages() int {
	return TotalPages(len(s.table), s.pageSize)
}

// pageRows returns the visible slice of the table view.
func (s *dashboardState) pageRows() []senam.EmployeeRecord {
	start, end := PageBounds(s.page, s.pageSize, len(s.table))
	return s.table[start:end]
}

// replaceStore swaps in a freshly loaded dataset. Filters are re-applied and
// an open detail follows its record by id.
func (s *dashboardState) replaceStore(records []senam.EmployeeRecord) {
	if records == nil {
		records = []senam.EmployeeRecord{}
	}
	s.store = records
	s.loaded = true
	s.loadError = ""
	s.refilter()

	if s.detail != nil {
		if r, ok := s.find(s.detail.ID); ok {
			s.detail = &r
		} else {
			s.detail = nil
		}
	}
}

// find looks a record up in the table view first and then in the store.
func (s *dashboardState) find(id string) (senam.EmployeeRecord, bool) {
	for _, r := range s.table {
		if r.ID == id {
			return r, true
		}
	}
	for _, r := range s.store {
		if r.ID == id {
			return r, true
		}
	}
	return senam.EmployeeRecord{}, false
}

func (s *dashboardState) showLoading(message string) uint64 {
	s.loadingSeq++
	s.loading = &senam.Loading{Token: s.loadingSeq, Message: message}
	return s.loadingSeq
}

// hideLoading clears the indicator only when token still owns it.
func (s *dashboardState) hideLoading(token uint64) {
	if s.loading != nil && s.loading.Token == token {
		s.loading = nil
	}
}

func (s *dashboardState) notify(level senam.NoticeLevel, message string) {
	s.notices = append(s.notices, senam.Notice{Level: level, Message: message})
}

func (s *dashboardState) drainNotices() []senam.Notice {
	notices := s.notices
	s.notices = nil
	return notices
}

// snapshot copies everything an export needs so it can run outside the loop.
func (s *dashboardState) snapshot() *senam.Snapshot {
	attended, notAttended := SplitCohorts(s.table, s.filters.Year, s.filters.DateRange)
	snap := &senam.Snapshot{
		Filters:     s.filters,
		ShiftMode:   s.shiftMode,
		ShiftFilter: s.shiftFilter,
		Table:       append([]senam.EmployeeRecord(nil), s.table...),
		Attended:    attended,
		NotAttended: notAttended,
		Selection:   s.selection.Records(),
	}
	if s.detail != nil {
		d := *s.detail
		snap.Detail = &d
		snap.DetailYear = s.filters.ActiveYear()
	}
	return snap
}
