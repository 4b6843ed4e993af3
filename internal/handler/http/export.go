package http

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/export"
	"github.com/cmlabs-hris/senam-dashboard/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ExportHandler interface {
	Export(w http.ResponseWriter, r *http.Request)
	ListLogs(w http.ResponseWriter, r *http.Request)
	Download(w http.ResponseWriter, r *http.Request)
}

type exportHandlerImpl struct {
	exportService export.Service
}

func NewExportHandler(exportService export.Service) ExportHandler {
	return &exportHandlerImpl{exportService: exportService}
}

// Export handles POST /exports/{intent}
func (h *exportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	req := export.ExportRequest{Intent: chi.URLParam(r, "intent")}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.exportService.Export(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "File berhasil diexport", result)
}

// ListLogs handles GET /exports?page=&page_size=
func (h *exportHandlerImpl) ListLogs(w http.ResponseWriter, r *http.Request) {
	var req export.ListLogsRequest
	var err error

	query := r.URL.Query()
	if page := query.Get("page"); page != "" {
		if req.Page, err = strconv.Atoi(page); err != nil {
			response.BadRequest(w, "page must be a number", nil)
			return
		}
	}
	if pageSize := query.Get("page_size"); pageSize != "" {
		if req.PageSize, err = strconv.Atoi(pageSize); err != nil {
			response.BadRequest(w, "page_size must be a number", nil)
			return
		}
	}

	result, err := h.exportService.List(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Logs, &response.Meta{
		Page:       result.Page,
		PageSize:   result.PageSize,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	})
}

// Download handles GET /exports/files/{name}
func (h *exportHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	body, log, err := h.exportService.Open(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer body.Close()

	contentType := "application/octet-stream"
	if log.ContentType != nil && *log.ContentType != "" {
		contentType = *log.ContentType
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": log.Filename}))
	if log.SizeBytes > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(log.SizeBytes, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, body); err != nil {
		slog.Warn("export download interrupted", "filename", log.Filename, "error", err)
	}
}
