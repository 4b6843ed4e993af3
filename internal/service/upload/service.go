package upload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
	"github.com/cmlabs-hris/senam-dashboard/internal/domain/upload"
	"github.com/cmlabs-hris/senam-dashboard/internal/pkg/senamapi"
	"github.com/cmlabs-hris/senam-dashboard/internal/pkg/spreadsheet"
	"golang.org/x/sync/errgroup"
)

// Backend validates and imports workbooks.
type Backend interface {
	ValidateTemplate(ctx context.Context, filename string, data []byte) (*senamapi.ValidationResult, error)
	Upload(ctx context.Context, filename string, data []byte) (*senamapi.UploadResult, error)
}

// Config holds upload service configuration
type Config struct {
	MaxSize     int64         // default: 10 MiB
	AllowedExts []string      // default: .xlsx .xls .csv
	SettleDelay time.Duration // default: 1500ms
	Progress    ProgressConfig

	// NewProgress overrides the simulated reporter.
	NewProgress func(report func(upload.Progress)) upload.ProgressReporter
}

type selectedFile struct {
	name string
	data []byte
}

type service struct {
	backend   Backend
	dashboard upload.Dashboard
	cfg       Config

	mu         sync.Mutex
	state      upload.State
	generation uint64
	file       *selectedFile
	validation *upload.Validation
	inspection *spreadsheet.Report
	progress   *upload.Progress
	inFlight   bool
	message    string
}

// NewUploadService creates the upload flow
func NewUploadService(backend Backend, dashboard upload.Dashboard, cfg Config) upload.Service {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 10 << 20
	}
	if len(cfg.AllowedExts) == 0 {
		cfg.AllowedExts = []string{".xlsx", ".xls", ".csv"}
	}
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = 1500 * time.Millisecond
	}
	if cfg.NewProgress == nil {
		progress := cfg.Progress
		cfg.NewProgress = func(report func(upload.Progress)) upload.ProgressReporter {
			return NewSimulatedProgress(progress, report)
		}
	}

	return &service{
		backend:   backend,
		dashboard: dashboard,
		cfg:       cfg,
		state:     upload.StateIdle,
	}
}

func (s *service) Status(ctx context.Context) *upload.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *service) statusLocked() *upload.Status {
	st := &upload.Status{
		State:      s.state,
		Generation: s.generation,
		Validation: s.validation,
		Inspection: s.inspection,
		CanSubmit:  s.canSubmitLocked(),
		InFlight:   s.inFlight,
		Message:    s.message,
	}
	if s.file != nil {
		size := int64(len(s.file.data))
		st.File = &upload.FileInfo{Name: s.file.name, Size: size, SizeText: upload.FormatFileSize(size)}
	}
	if s.progress != nil {
		p := *s.progress
		st.Progress = &p
	}
	return st
}

func (s *service) canSubmitLocked() bool {
	return !s.inFlight && s.file != nil && s.state == upload.StateValidated && s.validation != nil && s.validation.Valid
}

// publish sends the current status to stream subscribers.
func (s *service) publish() {
	s.dashboard.Publish(senam.EventUploadState, s.Status(context.Background()))
}

// SelectFile guards the file, then validates it right away. Validation runs
// the backend check and a local inspection side by side. A result that
// arrives after a newer selection is discarded.
func (s *service) SelectFile(ctx context.Context, req upload.SelectFileRequest) (*upload.Status, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.guard(req); err != nil {
		s.dashboard.Notify(senam.NoticeError, err.Error())
		return nil, err
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, upload.ErrUploadInFlight
	}
	s.generation++
	gen := s.generation
	s.file = &selectedFile{name: filepath.Base(req.Filename), data: req.Data}
	s.state = upload.StateValidating
	s.validation = nil
	s.inspection = nil
	s.progress = nil
	s.message = ""
	file := *s.file
	s.mu.Unlock()
	s.publish()

	result, report, err := s.validate(ctx, file)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		slog.Debug("discarding stale validation", "filename", file.name, "generation", gen)
		return s.Status(ctx), nil
	}
	s.inspection = report
	if err != nil {
		s.state = upload.StateFileSelected
		s.message = err.Error()
	} else {
		s.state = upload.StateValidated
		s.validation = toValidation(result)
	}
	s.mu.Unlock()
	s.publish()

	if err != nil {
		s.dashboard.Notify(senam.NoticeError, err.Error())
		return nil, err
	}
	return s.Status(ctx), nil
}

func (s *service) guard(req upload.SelectFileRequest) error {
	ext := strings.ToLower(filepath.Ext(req.Filename))
	allowed := false
	for _, e := range s.cfg.AllowedExts {
		if strings.EqualFold(e, ext) {
			allowed = true
			break
		}
	}
	if !allowed {
		return upload.ErrUnsupportedExtension
	}

	if int64(len(req.Data)) > s.cfg.MaxSize {
		return &senam.Error{
			Kind:    upload.ErrFileTooLarge.Kind,
			Code:    upload.ErrFileTooLarge.Code,
			Message: "Ukuran file terlalu besar. Maksimal " + upload.FormatFileSize(s.cfg.MaxSize),
		}
	}
	return nil
}

// validate asks the backend for a verdict while inspecting the workbook
// locally. Only the backend verdict decides validity.
func (s *service) validate(ctx context.Context, file selectedFile) (*senamapi.ValidationResult, *spreadsheet.Report, error) {
	hide := s.dashboard.ShowLoading(ctx, "Memvalidasi file...")
	defer hide()

	var (
		result *senamapi.ValidationResult
		report *spreadsheet.Report
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := spreadsheet.Inspect(file.name, file.data)
		if err != nil {
			slog.Warn("local workbook inspection failed", "filename", file.name, "error", err)
			return nil
		}
		report = r
		return nil
	})
	g.Go(func() error {
		r, err := s.backend.ValidateTemplate(gctx, file.name, file.data)
		if err != nil {
			return err
		}
		result = r
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("template validation failed", "filename", file.name, "error", err)
		var apiErr *senamapi.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return nil, report, senam.NewBackendError(apiErr.Message)
		}
		return nil, report, upload.ErrValidationFailed
	}
	if !result.Success {
		if result.Message != "" {
			return nil, report, senam.NewBackendError(result.Message)
		}
		return nil, report, upload.ErrValidationFailed
	}

	return result, report, nil
}

func toValidation(r *senamapi.ValidationResult) *upload.Validation {
	v := &upload.Validation{
		Valid:          r.Valid,
		Message:        r.Message,
		DataRows:       r.DataRows,
		TotalColumns:   r.TotalColumns,
		MissingColumns: r.MissingColumns,
		ColumnsFound:   r.ColumnsFound,
		Details:        []string{r.Message},
	}
	if v.MissingColumns == nil {
		v.MissingColumns = []string{}
	}
	if v.ColumnsFound == nil {
		v.ColumnsFound = []string{}
	}

	if r.Valid {
		v.Details = append(v.Details,
			fmt.Sprintf("%d baris data ditemukan", r.DataRows),
			fmt.Sprintf("%d kolom terdeteksi", r.TotalColumns),
		)
	} else {
		for _, col := range r.MissingColumns {
			v.Details = append(v.Details, fmt.Sprintf("Kolom \"%s\" tidak ditemukan", col))
		}
	}
	return v
}

// ClearFile returns the surface to idle. Pending validation results are discarded.
func (s *service) ClearFile(ctx context.Context) (*upload.Status, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, upload.ErrUploadInFlight
	}
	s.resetLocked()
	s.mu.Unlock()
	s.publish()

	return s.Status(ctx), nil
}

func (s *service) resetLocked() {
	s.generation++
	s.state = upload.StateIdle
	s.file = nil
	s.validation = nil
	s.inspection = nil
	s.progress = nil
	s.message = ""
}

// Submit imports the validated file. Only one upload runs at a time. After a
// successful import the dashboard reloads its data and the surface resets.
func (s *service) Submit(ctx context.Context) (*upload.SubmitResponse, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, upload.ErrUploadInFlight
	}
	if s.file == nil {
		s.mu.Unlock()
		return nil, upload.ErrNoFile
	}
	if !s.canSubmitLocked() {
		s.mu.Unlock()
		return nil, upload.ErrNotValidated
	}
	s.inFlight = true
	s.generation++
	s.state = upload.StateUploading
	s.message = ""
	file := *s.file
	s.mu.Unlock()
	s.publish()

	progress := s.cfg.NewProgress(func(p upload.Progress) {
		s.mu.Lock()
		s.progress = &p
		s.mu.Unlock()
		s.dashboard.Publish(senam.EventUploadProgress, p)
	})
	progress.Start()

	result, err := s.backend.Upload(ctx, file.name, file.data)
	if err != nil {
		progress.Stop()
		failure := uploadFailure(err)
		slog.Error("upload failed", "filename", file.name, "error", err)

		s.mu.Lock()
		s.inFlight = false
		s.state = upload.StateValidated
		s.message = failure.Message
		s.mu.Unlock()
		s.publish()

		s.dashboard.Notify(senam.NoticeError, failure.Message)
		return nil, failure
	}

	progress.Settle()
	message := result.Message
	if message == "" {
		message = "Data berhasil diupload!"
	}
	s.dashboard.Notify(senam.NoticeSuccess, message)
	slog.Info("upload completed", "filename", file.name, "count", result.Count, "years", result.Years)

	// The reload belongs to the finished upload, not to the caller's request.
	settleCtx := context.WithoutCancel(ctx)
	time.Sleep(s.cfg.SettleDelay)
	if _, err := s.dashboard.ReloadOrQueue(settleCtx); err != nil {
		slog.Warn("reload after upload failed", "error", err)
	}

	s.mu.Lock()
	s.inFlight = false
	s.resetLocked()
	s.mu.Unlock()
	s.publish()

	return &upload.SubmitResponse{
		Message: message,
		Count:   result.Count,
		Years:   result.Years,
		Status:  s.Status(ctx),
	}, nil
}

func uploadFailure(err error) *senam.Error {
	var apiErr *senamapi.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return senam.NewBackendError(apiErr.Message)
		}
		return upload.ErrUploadFailed
	}
	return &senam.Error{Kind: senam.KindBackend, Code: "UPLOAD_TRANSPORT", Message: "Terjadi kesalahan saat mengupload file"}
}
