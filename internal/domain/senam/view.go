package senam

import "encoding/json"

// ============= View models =============

// DashboardView is the full render of the dashboard state. Every mutation
// produces a new one; nothing is patched in place.
type DashboardView struct {
	Revision      uint64         `json:"revision"`
	DataStatus    DataStatus     `json:"data_status"`
	Loading       *Loading       `json:"loading,omitempty"`
	LoadError     string         `json:"load_error,omitempty"`
	Filters       FilterState    `json:"filters"`
	FilterSummary FilterSummary  `json:"filter_summary"`
	DateRangeText string         `json:"date_range_text"`
	ShiftMode     ShiftMode      `json:"shift_mode"`
	ShiftLabel    string         `json:"shift_label"`
	ShiftFilter   ShiftFilter    `json:"group_shift_filter"`
	ChartKind     ChartKind      `json:"chart_kind"`
	Options       FilterOptions  `json:"options"`
	KPI           KPI            `json:"kpi"`
	Table         TablePage      `json:"table"`
	Pagination    Pagination     `json:"pagination"`
	Ranking       Ranking        `json:"ranking"`
	MainChart     ChartSpec      `json:"main_chart"`
	Selection     SelectionView  `json:"selection"`
	Detail        *DetailView    `json:"detail,omitempty"`
}

type DataStatus struct {
	Loaded bool   `json:"loaded"`
	Count  int    `json:"count"`
	Label  string `json:"label"`
}

type Loading struct {
	Token   uint64 `json:"token"`
	Message string `json:"message"`
}

type FilterSummary struct {
	Active bool   `json:"active"`
	Text   string `json:"text"`
}

type FilterOptions struct {
	Tempat   []string `json:"tempat"`
	Kelompok []string `json:"kelompok"`
	Status   []string `json:"status"`
	Struktur []string `json:"struktur"`
	Years    []string `json:"years"`
}

type KPI struct {
	Participants    int     `json:"participants"`
	TotalAttendance int     `json:"total_attendance"`
	Average         float64 `json:"average"`
	NotAttended     int     `json:"not_attended"`
	Period          string  `json:"period,omitempty"`
}

type TablePage struct {
	Rows         []TableRow     `json:"rows"`
	Page         int            `json:"page"`
	PageSize     int            `json:"page_size"`
	TotalRows    int            `json:"total_rows"`
	TotalPages   int            `json:"total_pages"`
	Info         string         `json:"info"`
	EmptyMessage string         `json:"empty_message,omitempty"`
	CanUpload    bool           `json:"can_upload"`
	Sort         SortState      `json:"sort"`
	SelectAll    SelectAllState `json:"select_all"`
}

type TableRow struct {
	Number   int    `json:"number"`
	ID       string `json:"id"`
	Nama     string `json:"nama"`
	NIK      string `json:"nik"`
	JK       string `json:"jk"`
	Jabatan  string `json:"jabatan"`
	Struktur string `json:"struktur"`
	Tempat   string `json:"tempat"`
	Total    int    `json:"total"`
	Selected bool   `json:"selected"`
}

type PageItemKind string

const (
	PageItemPage     PageItemKind = "page"
	PageItemEllipsis PageItemKind = "ellipsis"
)

type PageItem struct {
	Kind   PageItemKind `json:"kind"`
	Page   int          `json:"page,omitempty"`
	Active bool         `json:"active,omitempty"`
}

// Pagination is empty when everything fits on one page.
type Pagination struct {
	Items   []PageItem `json:"items"`
	HasPrev bool       `json:"has_prev"`
	HasNext bool       `json:"has_next"`
	Prev    int        `json:"prev"`
	Next    int        `json:"next"`
}

type RankingItem struct {
	Rank    int    `json:"rank"`
	Badge   string `json:"badge"`
	ID      string `json:"id"`
	Nama    string `json:"nama"`
	Jabatan string `json:"jabatan"`
	Value   int    `json:"value"`
}

type Ranking struct {
	Subtitle     string        `json:"subtitle"`
	Items        []RankingItem `json:"items"`
	EmptyMessage string        `json:"empty_message,omitempty"`
}

type SelectAllState string

const (
	SelectAllUnchecked     SelectAllState = "unchecked"
	SelectAllChecked       SelectAllState = "checked"
	SelectAllIndeterminate SelectAllState = "indeterminate"
)

type SelectionView struct {
	Count int      `json:"count"`
	IDs   []string `json:"ids"`
}

// Paint is a single colour for the whole dataset or one colour per point.
type Paint struct {
	Single   string
	PerPoint []string
}

func (p Paint) MarshalJSON() ([]byte, error) {
	if p.PerPoint != nil {
		return json.Marshal(p.PerPoint)
	}
	return json.Marshal(p.Single)
}

type Dataset struct {
	Label           string  `json:"label"`
	Data            []int   `json:"data"`
	BackgroundColor Paint   `json:"backgroundColor"`
	BorderColor     Paint   `json:"borderColor"`
	BorderWidth     int     `json:"borderWidth"`
	BorderRadius    int     `json:"borderRadius,omitempty"`
	Fill            bool    `json:"fill"`
	Tension         float64 `json:"tension,omitempty"`
}

type ChartOptions struct {
	LegendDisplay  bool   `json:"legend_display"`
	LegendPosition string `json:"legend_position,omitempty"`
	TooltipFormat  string `json:"tooltip_format"`
	XTitle         string `json:"x_title,omitempty"`
	YTitle         string `json:"y_title,omitempty"`
	BeginAtZero    bool   `json:"begin_at_zero"`
	StepSize       int    `json:"step_size,omitempty"`
	XTickRotation  int    `json:"x_tick_rotation,omitempty"`
	XTickFontSize  int    `json:"x_tick_font_size,omitempty"`
	ShowScales     bool   `json:"show_scales"`
}

// ChartSpec describes a chart completely. ID changes on every render so the
// client discards the previous instance instead of updating it.
type ChartSpec struct {
	ID           string       `json:"id"`
	Kind         ChartKind    `json:"kind"`
	Labels       []string     `json:"labels"`
	Datasets     []Dataset    `json:"datasets"`
	Options      ChartOptions `json:"options"`
	EmptyMessage string       `json:"empty_message,omitempty"`
}

type EmployeeInfo struct {
	ID       string `json:"id"`
	Nama     string `json:"nama"`
	NIK      string `json:"nik"`
	JK       string `json:"jk"`
	Status   string `json:"status"`
	Kelompok string `json:"kelompok"`
	Jabatan  string `json:"jabatan"`
	Struktur string `json:"struktur"`
	Tempat   string `json:"tempat"`
}

type YearSummaryItem struct {
	Year   string `json:"year"`
	Value  int    `json:"value"`
	Active bool   `json:"active"`
}

type YearlyRow struct {
	Year       string  `json:"year"`
	Value      int     `json:"value"`
	Percentage float64 `json:"percentage"`
	Good       bool    `json:"good"`
}

// MonthEntry is one month of the flattened per-employee sequence.
type MonthEntry struct {
	Key    string `json:"key"`
	Year   string `json:"year"`
	Month  string `json:"month"`
	Name   string `json:"name"`
	Value  int    `json:"value"`
	Status string `json:"status"`
}

type MonthlySummary struct {
	Months      int     `json:"months"`
	Total       int     `json:"total"`
	Percentage  float64 `json:"percentage"`
	Average     float64 `json:"average"`
	Target      int     `json:"target"`
	TargetLabel string  `json:"target_label"`
	MeetsTarget bool    `json:"meets_target"`
}

type MonthlyView struct {
	Caption string         `json:"caption"`
	Entries []MonthEntry   `json:"entries"`
	Summary MonthlySummary `json:"summary"`
	Chart   ChartSpec      `json:"chart"`
}

type DetailView struct {
	Employee    EmployeeInfo      `json:"employee"`
	ShiftLabel  string            `json:"shift_label"`
	Years       []string          `json:"years"`
	YearSummary []YearSummaryItem `json:"year_summary"`
	YearlyChart ChartSpec         `json:"yearly_chart"`
	YearlyTable []YearlyRow       `json:"yearly_table"`
	Monthly     MonthlyView       `json:"monthly"`
}

type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}
