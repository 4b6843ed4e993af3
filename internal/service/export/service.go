package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/export"
	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
	"github.com/cmlabs-hris/senam-dashboard/internal/pkg/senamapi"
	"github.com/cmlabs-hris/senam-dashboard/internal/pkg/storage"
	"github.com/google/uuid"
)

// Backend renders export documents.
type Backend interface {
	Export(ctx context.Context, endpoint string, payload interface{}) (*senamapi.Document, error)
}

// Config holds export service configuration
type Config struct {
	Now func() time.Time // default: time.Now
}

type service struct {
	backend   Backend
	dashboard export.Dashboard
	files     storage.FileStorage
	repo      export.Repository
	now       func() time.Time
}

// NewExportService creates the export gateway
func NewExportService(backend Backend, dashboard export.Dashboard, files storage.FileStorage, repo export.Repository, cfg Config) export.Service {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &service{
		backend:   backend,
		dashboard: dashboard,
		files:     files,
		repo:      repo,
		now:       cfg.Now,
	}
}

// Export guards the intent against the current dashboard state, asks the
// backend for the document and saves it. The loading indicator raised for
// the request is cleared on every return path.
func (s *service) Export(ctx context.Context, req export.ExportRequest) (*export.ExportResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	intent := export.Intent(req.Intent)

	snap, err := s.dashboard.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read dashboard state: %w", err)
	}

	now := s.now()
	j, err := plan(intent, snap, now)
	if err != nil {
		s.reject(ctx, intent, err, now)
		return nil, err
	}

	hide := s.dashboard.ShowLoading(ctx, j.loading)
	defer hide()

	doc, err := s.backend.Export(ctx, intent.Endpoint(), j.payload)
	if err != nil {
		failure := j.failure(err)
		slog.Error("export failed", "intent", intent, "endpoint", intent.Endpoint(), "error", err)
		s.fail(ctx, j, failure.Message, now)
		return nil, failure
	}

	contentType := doc.ContentType
	if contentType == "" || strings.HasPrefix(contentType, "application/json") {
		contentType = intent.ContentType()
	}

	objectName, err := s.files.Upload(ctx, bytes.NewReader(doc.Body), uuid.NewString()+"_"+j.filename, contentType)
	if err != nil {
		slog.Error("failed to save export", "intent", intent, "filename", j.filename, "error", err)
		s.fail(ctx, j, j.crash, now)
		return nil, fmt.Errorf("failed to save export: %w", err)
	}

	url, err := s.files.GetURL(ctx, objectName, 0)
	if err != nil {
		slog.Warn("failed to build export url", "object", objectName, "error", err)
	}

	log := &export.Log{
		ID:            uuid.NewString(),
		Intent:        intent,
		Filename:      j.filename,
		ObjectName:    &objectName,
		ContentType:   &contentType,
		EmployeeCount: j.count,
		Status:        export.StatusSuccess,
		Message:       j.success,
		SizeBytes:     int64(len(doc.Body)),
		CreatedAt:     now,
	}
	s.record(ctx, log)

	if j.clearSelection {
		if _, err := s.dashboard.ClearSelection(ctx); err != nil {
			slog.Warn("failed to clear selection after export", "intent", intent, "error", err)
		}
	}
	s.dashboard.Notify(senam.NoticeSuccess, j.success)

	slog.Info("export saved",
		"intent", intent,
		"filename", j.filename,
		"employees", j.count,
		"size", log.SizeBytes,
	)

	return &export.ExportResponse{
		ID:            log.ID,
		Intent:        intent,
		Filename:      j.filename,
		URL:           url,
		ContentType:   contentType,
		SizeBytes:     log.SizeBytes,
		EmployeeCount: j.count,
		Message:       j.success,
	}, nil
}

// failure turns a backend error into the message shown to the user.
func (j *job) failure(err error) *senam.Error {
	var apiErr *senamapi.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return senam.NewBackendError(apiErr.Message)
		}
		return senam.NewBackendError(j.fallback)
	}
	return &senam.Error{Kind: senam.KindBackend, Code: "EXPORT_TRANSPORT", Message: j.crash}
}

func (s *service) reject(ctx context.Context, intent export.Intent, err error, now time.Time) {
	level := senam.NoticeError
	message := err.Error()
	var guard *senam.Error
	if errors.As(err, &guard) && guard.Kind == senam.KindInfo {
		level = senam.NoticeInfo
	}

	s.dashboard.Notify(level, message)
	s.record(ctx, &export.Log{
		ID:        uuid.NewString(),
		Intent:    intent,
		Status:    export.StatusRejected,
		Message:   message,
		CreatedAt: now,
	})
}

func (s *service) fail(ctx context.Context, j *job, message string, now time.Time) {
	s.dashboard.Notify(senam.NoticeError, message)
	s.record(ctx, &export.Log{
		ID:            uuid.NewString(),
		Intent:        j.intent,
		Filename:      j.filename,
		EmployeeCount: j.count,
		Status:        export.StatusFailed,
		Message:       message,
		CreatedAt:     now,
	})
}

// record stores a history entry. History is best effort and never fails an export.
func (s *service) record(ctx context.Context, log *export.Log) {
	if err := s.repo.Create(context.WithoutCancel(ctx), log); err != nil {
		slog.Warn("failed to record export", "intent", log.Intent, "status", log.Status, "error", err)
	}
}

func (s *service) List(ctx context.Context, req export.ListLogsRequest) (*export.LogListResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	logs, total, err := s.repo.List(ctx, req.PageSize, (req.Page-1)*req.PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}

	items := make([]export.LogResponse, 0, len(logs))
	for _, l := range logs {
		item := export.LogResponse{
			ID:            l.ID,
			Intent:        l.Intent,
			Filename:      l.Filename,
			EmployeeCount: l.EmployeeCount,
			Status:        l.Status,
			Message:       l.Message,
			SizeBytes:     l.SizeBytes,
			CreatedAt:     l.CreatedAt,
		}
		if l.ObjectName != nil {
			if url, err := s.files.GetURL(ctx, *l.ObjectName, 0); err == nil {
				item.URL = url
			}
		}
		items = append(items, item)
	}

	totalPages := (total + req.PageSize - 1) / req.PageSize

	return &export.LogListResponse{
		Logs:       items,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *service) Open(ctx context.Context, objectName string) (io.ReadCloser, *export.Log, error) {
	if objectName == "" || strings.ContainsAny(objectName, `/\`) || strings.Contains(objectName, "..") {
		return nil, nil, export.ErrExportFileNotFound
	}

	log, err := s.repo.GetByObjectName(ctx, objectName)
	if err != nil {
		if errors.Is(err, export.ErrExportLogNotFound) {
			return nil, nil, export.ErrExportFileNotFound
		}
		return nil, nil, fmt.Errorf("failed to find export: %w", err)
	}

	rc, err := s.files.Download(ctx, objectName)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, export.ErrExportFileNotFound
		}
		return nil, nil, fmt.Errorf("failed to open export: %w", err)
	}

	return rc, log, nil
}
