package senam

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
	"github.com/cmlabs-hris/senam-dashboard/internal/pkg/sse"
)

// Config holds dashboard service configuration
type Config struct {
	PageSize       int           // default: 10
	SearchDebounce time.Duration // default: 300ms
	Thresholds     senam.Thresholds
}

type envelope struct {
	cmd   command
	reply chan result
}

type result struct {
	view *senam.DashboardView
	err  error
}

type service struct {
	source     senam.Source
	hub        *sse.Hub
	thresholds senam.Thresholds

	state    *dashboardState
	commands chan envelope
	done     chan struct{}
	runOnce  sync.Once
	search   *debouncer
}

// NewDashboardService creates the dashboard service. Run must be started
// before any other method is called.
func NewDashboardService(source senam.Source, hub *sse.Hub, cfg Config) senam.Service {
	if cfg.PageSize == 0 {
		cfg.PageSize = 10
	}
	if cfg.SearchDebounce == 0 {
		cfg.SearchDebounce = 300 * time.Millisecond
	}
	if cfg.Thresholds == (senam.Thresholds{}) {
		cfg.Thresholds = senam.DefaultThresholds()
	}

	return &service{
		source:     source,
		hub:        hub,
		thresholds: cfg.Thresholds,
		state:      newDashboardState(cfg.PageSize),
		commands:   make(chan envelope),
		done:       make(chan struct{}),
		search:     newDebouncer(cfg.SearchDebounce),
	}
}

// Run is the event loop. It owns the dashboard state until ctx is cancelled.
func (s *service) Run(ctx context.Context) error {
	started := false
	s.runOnce.Do(func() { started = true })
	if !started {
		return nil
	}
	defer close(s.done)
	defer s.search.Stop()

	slog.Info("dashboard event loop started")
	for {
		select {
		case env := <-s.commands:
			view, err := s.handle(env.cmd)
			env.reply <- result{view: view, err: err}
		case <-ctx.Done():
			slog.Info("dashboard event loop stopped")
			return nil
		}
	}
}

func (s *service) handle(cmd command) (*senam.DashboardView, error) {
	if err := cmd.apply(s.state); err != nil {
		return nil, err
	}
	if _, ok := cmd.(readOnly); ok {
		return nil, nil
	}
	if _, ok := cmd.(viewQuery); ok {
		return render(s.state, s.thresholds), nil
	}

	s.state.revision++
	view := render(s.state, s.thresholds)
	s.hub.Publish(senam.Topic, sse.Event{Event: senam.EventRender, Data: view})
	for _, n := range s.state.drainNotices() {
		s.Notify(n.Level, n.Message)
	}
	return view, nil
}

// dispatch hands cmd to the event loop and waits for its result.
func (s *service) dispatch(ctx context.Context, cmd command) (*senam.DashboardView, error) {
	env := envelope{cmd: cmd, reply: make(chan result, 1)}

	select {
	case s.commands <- env:
	case <-s.done:
		return nil, senam.ErrDashboardNotRunning
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	// A handed-over command is applied regardless of ctx, so wait for its reply.
	select {
	case r := <-env.reply:
		return r.view, r.err
	case <-s.done:
		select {
		case r := <-env.reply:
			return r.view, r.err
		default:
			return nil, senam.ErrDashboardNotRunning
		}
	}
}

func (s *service) View(ctx context.Context) (*senam.DashboardView, error) {
	return s.dispatch(ctx, viewQuery{})
}

// Reload fetches the dataset outside the loop and swaps it in. Only one load
// may be in flight.
func (s *service) Reload(ctx context.Context) (*senam.DashboardView, error) {
	return s.load(ctx, false)
}

// ReloadOrQueue reloads like Reload, but when a load is already running it
// asks that load to fetch once more after it finishes and returns a nil view.
func (s *service) ReloadOrQueue(ctx context.Context) (*senam.DashboardView, error) {
	return s.load(ctx, true)
}

func (s *service) load(ctx context.Context, queue bool) (*senam.DashboardView, error) {
	var token uint64
	queued := false
	_, err := s.dispatch(ctx, beginLoadCmd{message: loadingMessage, token: &token, queue: queue, queued: &queued})
	if err != nil {
		return nil, err
	}
	if queued {
		slog.Info("reload queued behind the running load")
		return nil, nil
	}

	for {
		records, fetchErr := s.source.FetchEmployees(ctx)
		if fetchErr != nil {
			slog.Error("failed to load employee data", "error", fetchErr)
		}

		again := false
		view, err := s.dispatch(context.WithoutCancel(ctx), finishLoadCmd{
			token:   token,
			records: records,
			err:     fetchErr,
			next:    &token,
			again:   &again,
		})
		if err != nil {
			return nil, err
		}
		if again {
			slog.Info("running queued reload")
			ctx = context.WithoutCancel(ctx)
			continue
		}
		if fetchErr != nil {
			return nil, senam.ErrLoadFailed
		}

		slog.Info("employee data loaded", "count", len(records))
		return view, nil
	}
}

func (s *service) ApplyFilters(ctx context.Context, req senam.FilterRequest) (*senam.DashboardView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	s.search.Stop()
	return s.dispatch(ctx, applyFiltersCmd{req: req})
}

func (s *service) ResetFilters(ctx context.Context) (*senam.DashboardView, error) {
	s.search.Stop()
	return s.dispatch(ctx, resetFiltersCmd{})
}

// Search schedules the filter recomputation after the debounce period. The
// resulting view is only published on the stream.
func (s *service) Search(ctx context.Context, req senam.SearchRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	term := req.Term
	s.search.Trigger(func() {
		if _, err := s.dispatch(context.Background(), searchCmd{term: term}); err != nil {
			slog.Warn("debounced search dropped", "error", err)
		}
	})
	return nil
}

func (s *service) SetDateRange(ctx context.Context, req senam.DateRangeRequest) (*senam.DashboardView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.dispatch(ctx, setDateRangeCmd{start: req.Start, end: req.End})
}

func (s *service) ClearDateRange(ctx context.Context) (*senam.DashboardView, error) {
	return s.dispatch(ctx, clearDateRangeCmd{})
}

func (s *service) ChangePage(ctx context.Context, req senam.ChangePageRequest) (*senam.DashboardView, error) {
	return s.dispatch(ctx, changePageCmd{page: req.Page})
}

func (s *service) ChangePageSize(ctx context.Context, req senam.PageSizeRequest) (*senam.DashboardView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.dispatch(ctx, changePageSizeCmd{size: req.PageSize})
}

func (s *service) Sort(ctx context.Context, req senam.SortRequest) (*senam.DashboardView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.dispatch(ctx, sortCmd{column: senam.SortColumn(req.Column)})
}

func (s *service) SetChartKind(ctx context.Context, req senam.ChartKindRequest) (*senam.DashboardView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.dispatch(ctx, chartKindCmd{kind: senam.ChartKind(req.Kind)})
}

func (s *service) SetShiftMode(ctx context.Context, req senam.ShiftModeRequest) (*senam.DashboardView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.dispatch(ctx, shiftModeCmd{mode: senam.ShiftMode(req.Mode)})
}

func (s *service) SetShiftFilter(ctx context.Context, req senam.ShiftFilterRequest) (*senam.DashboardView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.dispatch(ctx, shiftFilterCmd{filter: senam.ShiftFilter(req.Filter)})
}

func (s *service) ToggleSelection(ctx context.Context, req senam.ToggleSelectionRequest) (*senam.DashboardView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.dispatch(ctx, toggleSelectionCmd{id: req.ID, checked: req.Checked})
}

func (s *service) SelectPage(ctx context.Context, req senam.SelectPageRequest) (*senam.DashboardView, error) {
	return s.dispatch(ctx, selectPageCmd{checked: req.Checked})
}

func (s *service) ClearSelection(ctx context.Context) (*senam.DashboardView, error) {
	return s.dispatch(ctx, clearSelectionCmd{})
}

func (s *service) Selection(ctx context.Context) ([]senam.EmployeeRecord, error) {
	var records []senam.EmployeeRecord
	if _, err := s.dispatch(ctx, selectionQuery{out: &records}); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *service) OpenDetail(ctx context.Context, req senam.OpenDetailRequest) (*senam.DashboardView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.dispatch(ctx, openDetailCmd{id: req.ID})
}

func (s *service) CloseDetail(ctx context.Context) (*senam.DashboardView, error) {
	return s.dispatch(ctx, closeDetailCmd{})
}

func (s *service) Snapshot(ctx context.Context) (*senam.Snapshot, error) {
	var snap *senam.Snapshot
	if _, err := s.dispatch(ctx, snapshotQuery{out: &snap}); err != nil {
		return nil, err
	}
	return snap, nil
}

// ShowLoading raises the loading indicator and returns the function that
// clears it. hide only clears the indicator it raised and is safe to call
// more than once.
func (s *service) ShowLoading(ctx context.Context, message string) func() {
	var token uint64
	if _, err := s.dispatch(context.WithoutCancel(ctx), showLoadingCmd{message: message, token: &token}); err != nil {
		slog.Warn("failed to show loading indicator", "error", err)
		return func() {}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			if _, err := s.dispatch(context.Background(), hideLoadingCmd{token: token}); err != nil {
				slog.Warn("failed to hide loading indicator", "error", err)
			}
		})
	}
}

func (s *service) Notify(level senam.NoticeLevel, message string) {
	s.hub.Publish(senam.Topic, sse.Event{
		Event: senam.EventNotice,
		Data:  senam.Notice{Level: level, Message: message},
	})
}

func (s *service) Publish(event string, data interface{}) {
	s.hub.Publish(senam.Topic, sse.Event{Event: event, Data: data})
}

func (s *service) Subscribe(clientID string) (<-chan sse.Event, func()) {
	ch, cleanup := s.hub.Subscribe(senam.Topic, clientID)
	slog.Debug("dashboard stream subscribed", "client_id", clientID, "subscribers", s.hub.SubscriberCount(senam.Topic))
	return ch, cleanup
}
