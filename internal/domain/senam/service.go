package senam

import (
	"context"

	"github.com/cmlabs-hris/senam-dashboard/internal/pkg/sse"
)

// Topic is the SSE topic every dashboard event is published on.
const Topic = "dashboard"

// Stream event names
const (
	EventRender         = "render"
	EventNotice         = "notice"
	EventUploadProgress = "upload_progress"
	EventUploadState    = "upload_state"
)

// Source fetches the complete employee dataset.
type Source interface {
	FetchEmployees(ctx context.Context) ([]EmployeeRecord, error)
}

// Snapshot is an immutable copy of the state an export needs.
type Snapshot struct {
	Filters     FilterState
	ShiftMode   ShiftMode
	ShiftFilter ShiftFilter
	Table       []EmployeeRecord
	Attended    []EmployeeRecord
	NotAttended []EmployeeRecord
	Selection   []EmployeeRecord
	Detail      *EmployeeRecord
	DetailYear  string
}

// Service owns the live dashboard state. Every mutating call returns the
// re-rendered view and publishes it to stream subscribers.
type Service interface {
	// Lifecycle
	Run(ctx context.Context) error

	// Data
	View(ctx context.Context) (*DashboardView, error)
	Reload(ctx context.Context) (*DashboardView, error)
	// ReloadOrQueue returns a nil view when it queued a reload behind the
	// load already running.
	ReloadOrQueue(ctx context.Context) (*DashboardView, error)

	// Filters
	ApplyFilters(ctx context.Context, req FilterRequest) (*DashboardView, error)
	ResetFilters(ctx context.Context) (*DashboardView, error)
	Search(ctx context.Context, req SearchRequest) error
	SetDateRange(ctx context.Context, req DateRangeRequest) (*DashboardView, error)
	ClearDateRange(ctx context.Context) (*DashboardView, error)

	// Table and charts
	ChangePage(ctx context.Context, req ChangePageRequest) (*DashboardView, error)
	ChangePageSize(ctx context.Context, req PageSizeRequest) (*DashboardView, error)
	Sort(ctx context.Context, req SortRequest) (*DashboardView, error)
	SetChartKind(ctx context.Context, req ChartKindRequest) (*DashboardView, error)
	SetShiftMode(ctx context.Context, req ShiftModeRequest) (*DashboardView, error)
	SetShiftFilter(ctx context.Context, req ShiftFilterRequest) (*DashboardView, error)

	// Selection
	ToggleSelection(ctx context.Context, req ToggleSelectionRequest) (*DashboardView, error)
	SelectPage(ctx context.Context, req SelectPageRequest) (*DashboardView, error)
	ClearSelection(ctx context.Context) (*DashboardView, error)
	Selection(ctx context.Context) ([]EmployeeRecord, error)

	// Detail
	OpenDetail(ctx context.Context, req OpenDetailRequest) (*DashboardView, error)
	CloseDetail(ctx context.Context) (*DashboardView, error)

	// Side channels used by export and upload flows
	Snapshot(ctx context.Context) (*Snapshot, error)
	ShowLoading(ctx context.Context, message string) (hide func())
	Notify(level NoticeLevel, message string)
	Publish(event string, data interface{})

	// SSE subscription
	Subscribe(clientID string) (<-chan sse.Event, func())
}
