package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/upload"
	"github.com/cmlabs-hris/senam-dashboard/internal/handler/http/response"
)

type UploadHandler interface {
	GetStatus(w http.ResponseWriter, r *http.Request)
	SelectFile(w http.ResponseWriter, r *http.Request)
	ClearFile(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
}

type uploadHandlerImpl struct {
	uploadService   upload.Service
	maxRequestBytes int64
}

func NewUploadHandler(uploadService upload.Service, maxRequestBytes int64) UploadHandler {
	return &uploadHandlerImpl{uploadService: uploadService, maxRequestBytes: maxRequestBytes}
}

// GetStatus handles GET /upload
func (h *uploadHandlerImpl) GetStatus(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.uploadService.Status(r.Context()))
}

// SelectFile handles POST /upload/file with the workbook in the multipart field "file".
func (h *uploadHandlerImpl) SelectFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestBytes)

	if err := r.ParseMultipartForm(h.maxRequestBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.HandleError(w, upload.ErrFileTooLarge)
			return
		}
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			response.HandleError(w, upload.ErrNoFile)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Failed to read uploaded file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("Failed to read uploaded file", "filename", fileHeader.Filename, "error", err)
		response.BadRequest(w, "Failed to read uploaded file", nil)
		return
	}

	req := upload.SelectFileRequest{Filename: fileHeader.Filename, Data: data}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	status, err := h.uploadService.SelectFile(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// ClearFile handles DELETE /upload/file
func (h *uploadHandlerImpl) ClearFile(w http.ResponseWriter, r *http.Request) {
	status, err := h.uploadService.ClearFile(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// Submit handles POST /upload/submit
func (h *uploadHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	result, err := h.uploadService.Submit(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result)
}
