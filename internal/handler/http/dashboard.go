package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
	"github.com/cmlabs-hris/senam-dashboard/internal/handler/http/response"
	"github.com/cmlabs-hris/senam-dashboard/internal/pkg/sse"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const streamKeepalive = 30 * time.Second

// DataClearer wipes the backend dataset.
type DataClearer interface {
	ClearData(ctx context.Context) error
}

type DashboardHandler interface {
	// GetDashboard returns the current view
	GetDashboard(w http.ResponseWriter, r *http.Request)
	Reload(w http.ResponseWriter, r *http.Request)
	ClearData(w http.ResponseWriter, r *http.Request)
	// Stream pushes render, notice and upload events over SSE
	Stream(w http.ResponseWriter, r *http.Request)

	ApplyFilters(w http.ResponseWriter, r *http.Request)
	ResetFilters(w http.ResponseWriter, r *http.Request)
	Search(w http.ResponseWriter, r *http.Request)
	SetDateRange(w http.ResponseWriter, r *http.Request)
	ClearDateRange(w http.ResponseWriter, r *http.Request)

	ChangePage(w http.ResponseWriter, r *http.Request)
	ChangePageSize(w http.ResponseWriter, r *http.Request)
	Sort(w http.ResponseWriter, r *http.Request)
	SetChartKind(w http.ResponseWriter, r *http.Request)
	SetShiftMode(w http.ResponseWriter, r *http.Request)
	SetShiftFilter(w http.ResponseWriter, r *http.Request)

	ToggleSelection(w http.ResponseWriter, r *http.Request)
	SelectPage(w http.ResponseWriter, r *http.Request)
	GetSelection(w http.ResponseWriter, r *http.Request)
	ClearSelection(w http.ResponseWriter, r *http.Request)

	OpenDetail(w http.ResponseWriter, r *http.Request)
	CloseDetail(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService senam.Service
	backend          DataClearer
}

func NewDashboardHandler(dashboardService senam.Service, backend DataClearer) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService, backend: backend}
}

// decodeBody decodes a JSON request body into dst. An empty body leaves dst
// untouched when optional is set.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, optional bool) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || (optional && errors.Is(err, io.EOF)) {
		return true
	}
	slog.Error("request decode error", "path", r.URL.Path, "error", err)
	response.BadRequest(w, "Invalid request format", nil)
	return false
}

// render writes the view returned by a dashboard operation.
func render(w http.ResponseWriter, view *senam.DashboardView, err error) {
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, view)
}

// GetDashboard handles GET /dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	view, err := h.dashboardService.View(r.Context())
	render(w, view, err)
}

// Reload handles POST /dashboard/reload
func (h *dashboardHandlerImpl) Reload(w http.ResponseWriter, r *http.Request) {
	view, err := h.dashboardService.Reload(r.Context())
	render(w, view, err)
}

// ClearData handles POST /data/clear
func (h *dashboardHandlerImpl) ClearData(w http.ResponseWriter, r *http.Request) {
	if err := h.backend.ClearData(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}

	view, err := h.dashboardService.Reload(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Data berhasil dihapus", view)
}

// Stream handles GET /dashboard/stream
func (h *dashboardHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Check if streaming is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	clientID := uuid.NewString()
	events, cleanup := h.dashboardService.Subscribe(clientID)
	defer cleanup()

	// Send initial connection event
	if err := sse.Write(w, sse.Event{Event: "connected", Data: map[string]string{"client_id": clientID}}); err != nil {
		return
	}
	flusher.Flush()

	keepalive := time.NewTicker(streamKeepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := sse.Write(w, event); err != nil {
				slog.Warn("SSE write failed", "client_id", clientID, "error", err)
				return
			}
			flusher.Flush()

		case <-keepalive.C:
			if err := sse.Write(w, sse.Event{Event: "ping", Data: map[string]int64{"timestamp": time.Now().Unix()}}); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// ApplyFilters handles PUT /dashboard/filters
func (h *dashboardHandlerImpl) ApplyFilters(w http.ResponseWriter, r *http.Request) {
	var req senam.FilterRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	view, err := h.dashboardService.ApplyFilters(r.Context(), req)
	render(w, view, err)
}

// ResetFilters handles DELETE /dashboard/filters
func (h *dashboardHandlerImpl) ResetFilters(w http.ResponseWriter, r *http.Request) {
	view, err := h.dashboardService.ResetFilters(r.Context())
	render(w, view, err)
}

// Search handles POST /dashboard/search. The filter applies after the
// debounce delay and the result arrives on the stream.
func (h *dashboardHandlerImpl) Search(w http.ResponseWriter, r *http.Request) {
	var req senam.SearchRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.dashboardService.Search(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Accepted(w, "Pencarian dijadwalkan")
}

// SetDateRange handles PUT /dashboard/date-range
func (h *dashboardHandlerImpl) SetDateRange(w http.ResponseWriter, r *http.Request) {
	var req senam.DateRangeRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	view, err := h.dashboardService.SetDateRange(r.Context(), req)
	render(w, view, err)
}

// ClearDateRange handles DELETE /dashboard/date-range
func (h *dashboardHandlerImpl) ClearDateRange(w http.ResponseWriter, r *http.Request) {
	view, err := h.dashboardService.ClearDateRange(r.Context())
	render(w, view, err)
}

// ChangePage handles PUT /dashboard/page. Out of range pages are ignored.
func (h *dashboardHandlerImpl) ChangePage(w http.ResponseWriter, r *http.Request) {
	var req senam.ChangePageRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	view, err := h.dashboardService.ChangePage(r.Context(), req)
	render(w, view, err)
}

// ChangePageSize handles PUT /dashboard/page-size
func (h *dashboardHandlerImpl) ChangePageSize(w http.ResponseWriter, r *http.Request) {
	var req senam.PageSizeRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	view, err := h.dashboardService.ChangePageSize(r.Context(), req)
	render(w, view, err)
}

// Sort handles POST /dashboard/sort
func (h *dashboardHandlerImpl) Sort(w http.ResponseWriter, r *http.Request) {
	var req senam.SortRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	view, err := h.dashboardService.Sort(r.Context(), req)
	render(w, view, err)
}

// SetChartKind handles PUT /dashboard/chart-kind
func (h *dashboardHandlerImpl) SetChartKind(w http.ResponseWriter, r *http.Request) {
	var req senam.ChartKindRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	view, err := h.dashboardService.SetChartKind(r.Context(), req)
	render(w, view, err)
}

// SetShiftMode handles PUT /dashboard/shift
func (h *dashboardHandlerImpl) SetShiftMode(w http.ResponseWriter, r *http.Request) {
	var req senam.ShiftModeRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	view, err := h.dashboardService.SetShiftMode(r.Context(), req)
	render(w, view, err)
}

// SetShiftFilter handles PUT /dashboard/group-shift
func (h *dashboardHandlerImpl) SetShiftFilter(w http.ResponseWriter, r *http.Request) {
	var req senam.ShiftFilterRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	view, err := h.dashboardService.SetShiftFilter(r.Context(), req)
	render(w, view, err)
}

// ToggleSelection handles POST /dashboard/selection/{id}
func (h *dashboardHandlerImpl) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	var req senam.ToggleSelectionRequest
	if !decodeBody(w, r, &req, true) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	view, err := h.dashboardService.ToggleSelection(r.Context(), req)
	render(w, view, err)
}

// SelectPage handles PUT /dashboard/selection/page
func (h *dashboardHandlerImpl) SelectPage(w http.ResponseWriter, r *http.Request) {
	var req senam.SelectPageRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	view, err := h.dashboardService.SelectPage(r.Context(), req)
	render(w, view, err)
}

// GetSelection handles GET /dashboard/selection
func (h *dashboardHandlerImpl) GetSelection(w http.ResponseWriter, r *http.Request) {
	records, err := h.dashboardService.Selection(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// ClearSelection handles DELETE /dashboard/selection
func (h *dashboardHandlerImpl) ClearSelection(w http.ResponseWriter, r *http.Request) {
	view, err := h.dashboardService.ClearSelection(r.Context())
	render(w, view, err)
}

// OpenDetail handles PUT /dashboard/detail/{id}
func (h *dashboardHandlerImpl) OpenDetail(w http.ResponseWriter, r *http.Request) {
	req := senam.OpenDetailRequest{ID: chi.URLParam(r, "id")}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	view, err := h.dashboardService.OpenDetail(r.Context(), req)
	render(w, view, err)
}

// CloseDetail handles DELETE /dashboard/detail
func (h *dashboardHandlerImpl) CloseDetail(w http.ResponseWriter, r *http.Request) {
	view, err := h.dashboardService.CloseDetail(r.Context())
	render(w, view, err)
}
