package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/cmlabs-hris/senam-dashboard/internal/config"
	"github.com/cmlabs-hris/senam-dashboard/internal/domain/export"
	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
	"github.com/cmlabs-hris/senam-dashboard/internal/domain/upload"
	"github.com/cmlabs-hris/senam-dashboard/internal/handler/http/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDashboardService overrides the calls exercised here; the embedded
// interface panics on anything else.
type fakeDashboardService struct {
	senam.Service

	mu         sync.Mutex
	revision   uint64
	err        error
	reloads    int
	filters    senam.FilterRequest
	searchTerm string
	toggle     senam.ToggleSelectionRequest
	detailID   string
}

func (f *fakeDashboardService) view() (*senam.DashboardView, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.revision++
	return &senam.DashboardView{Revision: f.revision}, nil
}

func (f *fakeDashboardService) View(ctx context.Context) (*senam.DashboardView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view()
}

func (f *fakeDashboardService) Reload(ctx context.Context) (*senam.DashboardView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reloads++
	return f.view()
}

func (f *fakeDashboardService) ApplyFilters(ctx context.Context, req senam.FilterRequest) (*senam.DashboardView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = req
	return f.view()
}

func (f *fakeDashboardService) Search(ctx context.Context, req senam.SearchRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchTerm = req.Term
	return nil
}

func (f *fakeDashboardService) ToggleSelection(ctx context.Context, req senam.ToggleSelectionRequest) (*senam.DashboardView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toggle = req
	return f.view()
}

func (f *fakeDashboardService) OpenDetail(ctx context.Context, req senam.OpenDetailRequest) (*senam.DashboardView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailID = req.ID
	return f.view()
}

type fakeExportService struct {
	exported export.ExportRequest
	listReq  export.ListLogsRequest
	err      error
}

func (f *fakeExportService) Export(ctx context.Context, req export.ExportRequest) (*export.ExportResponse, error) {
	f.exported = req
	if f.err != nil {
		return nil, f.err
	}
	return &export.ExportResponse{Intent: export.Intent(req.Intent), Filename: "Data_Senam_2024-05-01.xlsx"}, nil
}

func (f *fakeExportService) List(ctx context.Context, req export.ListLogsRequest) (*export.LogListResponse, error) {
	f.listReq = req
	return &export.LogListResponse{Logs: []export.LogResponse{}, Total: 3, Page: 2, PageSize: 1, TotalPages: 3}, nil
}

func (f *fakeExportService) Open(ctx context.Context, objectName string) (io.ReadCloser, *export.Log, error) {
	if objectName != "abc_Data_Senam.pdf" {
		return nil, nil, export.ErrExportFileNotFound
	}
	contentType := "application/pdf"
	return io.NopCloser(strings.NewReader("%PDF-1.4")), &export.Log{
		Filename:    "Data Senam.pdf",
		ContentType: &contentType,
		SizeBytes:   8,
	}, nil
}

type fakeUploadService struct {
	selected upload.SelectFileRequest
}

func (f *fakeUploadService) Status(ctx context.Context) *upload.Status {
	return &upload.Status{State: upload.StateIdle}
}

func (f *fakeUploadService) SelectFile(ctx context.Context, req upload.SelectFileRequest) (*upload.Status, error) {
	f.selected = req
	return &upload.Status{State: upload.StateValidated, CanSubmit: true}, nil
}

func (f *fakeUploadService) ClearFile(ctx context.Context) (*upload.Status, error) {
	return &upload.Status{State: upload.StateIdle}, nil
}

func (f *fakeUploadService) Submit(ctx context.Context) (*upload.SubmitResponse, error) {
	return nil, upload.ErrNotValidated
}

type fakeBackend struct {
	healthErr error
	cleared   bool
}

func (f *fakeBackend) Health(ctx context.Context) error {
	return f.healthErr
}

func (f *fakeBackend) ClearData(ctx context.Context) error {
	f.cleared = true
	return nil
}

type testServer struct {
	router    http.Handler
	dashboard *fakeDashboardService
	exports   *fakeExportService
	uploads   *fakeUploadService
	backend   *fakeBackend
}

func newTestServer() *testServer {
	ts := &testServer{
		dashboard: &fakeDashboardService{},
		exports:   &fakeExportService{},
		uploads:   &fakeUploadService{},
		backend:   &fakeBackend{},
	}
	ts.router = NewRouter(config.AppConfig{Env: "test", CORSAllowedOrigins: []string{"*"}}, Handlers{
		Dashboard: NewDashboardHandler(ts.dashboard, ts.backend),
		Export:    NewExportHandler(ts.exports),
		Upload:    NewUploadHandler(ts.uploads, 1<<20),
		Health:    NewHealthHandler(ts.backend),
	})
	return ts
}

func (ts *testServer) do(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestDashboardHandler_GetDashboard(t *testing.T) {
	// Arrange
	ts := newTestServer()

	// Act
	rec := ts.do(http.MethodGet, "/api/v1/dashboard", nil, "")

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, float64(1), body.Data.(map[string]interface{})["revision"])
}

func TestDashboardHandler_ApplyFilters(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "valid", body: `{"status":"Organik","year":"2024"}`, wantStatus: http.StatusOK},
		{name: "bad year", body: `{"year":"24"}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "malformed json", body: `{"year":`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			ts := newTestServer()

			// Act
			rec := ts.do(http.MethodPut, "/api/v1/dashboard/filters", strings.NewReader(tt.body), "application/json")

			// Assert
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "Organik", ts.dashboard.filters.Status)
				assert.Equal(t, "2024", ts.dashboard.filters.Year)
			}
		})
	}
}

func TestDashboardHandler_Search(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodPost, "/api/v1/dashboard/search", strings.NewReader(`{"term":"andi"}`), "application/json")

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "andi", ts.dashboard.searchTerm)
}

func TestDashboardHandler_ToggleSelection(t *testing.T) {
	t.Run("empty body flips membership", func(t *testing.T) {
		ts := newTestServer()

		rec := ts.do(http.MethodPost, "/api/v1/dashboard/selection/123_0", nil, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "123_0", ts.dashboard.toggle.ID)
		assert.Nil(t, ts.dashboard.toggle.Checked)
	})

	t.Run("explicit checked", func(t *testing.T) {
		ts := newTestServer()

		rec := ts.do(http.MethodPost, "/api/v1/dashboard/selection/123_0", strings.NewReader(`{"checked":false}`), "application/json")

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, ts.dashboard.toggle.Checked)
		assert.False(t, *ts.dashboard.toggle.Checked)
	})
}

func TestDashboardHandler_OpenDetail_NotFound(t *testing.T) {
	// Arrange
	ts := newTestServer()
	ts.dashboard.err = senam.ErrEmployeeNotFound

	// Act
	rec := ts.do(http.MethodPut, "/api/v1/dashboard/detail/missing", nil, "")

	// Assert
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "missing", ts.dashboard.detailID)
	assert.Equal(t, "EMPLOYEE_NOT_FOUND", decodeResponse(t, rec).Error.Code)
}

func TestDashboardHandler_ClearData(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodPost, "/api/v1/data/clear", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ts.backend.cleared)
	assert.Equal(t, 1, ts.dashboard.reloads)
}

func TestExportHandler_Export(t *testing.T) {
	tests := []struct {
		name       string
		intent     string
		err        error
		wantStatus int
	}{
		{name: "created", intent: "group-excel", wantStatus: http.StatusCreated},
		{name: "unknown intent", intent: "word", wantStatus: http.StatusUnprocessableEntity},
		{name: "guard", intent: "selection-pdf", err: export.ErrEmptySelection, wantStatus: http.StatusBadRequest},
		{name: "info", intent: "attended-pdf", err: export.ErrNoAttended, wantStatus: http.StatusBadRequest},
		{name: "backend", intent: "excel", err: senam.NewBackendError("Gagal export data"), wantStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			ts := newTestServer()
			ts.exports.err = tt.err

			// Act
			rec := ts.do(http.MethodPost, "/api/v1/exports/"+tt.intent, nil, "")

			// Assert
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestExportHandler_ListLogs(t *testing.T) {
	t.Run("paging from query", func(t *testing.T) {
		ts := newTestServer()

		rec := ts.do(http.MethodGet, "/api/v1/exports?page=2&page_size=1", nil, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 2, ts.exports.listReq.Page)
		assert.Equal(t, 1, ts.exports.listReq.PageSize)
		body := decodeResponse(t, rec)
		require.NotNil(t, body.Meta)
		assert.Equal(t, 3, body.Meta.Total)
		assert.Equal(t, 3, body.Meta.TotalPages)
	})

	t.Run("non numeric page", func(t *testing.T) {
		ts := newTestServer()

		rec := ts.do(http.MethodGet, "/api/v1/exports?page=two", nil, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestExportHandler_Download(t *testing.T) {
	t.Run("attachment", func(t *testing.T) {
		ts := newTestServer()

		rec := ts.do(http.MethodGet, "/api/v1/exports/files/abc_Data_Senam.pdf", nil, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="Data Senam.pdf"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "%PDF-1.4", rec.Body.String())
	})

	t.Run("missing file", func(t *testing.T) {
		ts := newTestServer()

		rec := ts.do(http.MethodGet, "/api/v1/exports/files/nope.pdf", nil, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func multipartBody(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func TestUploadHandler_SelectFile(t *testing.T) {
	t.Run("file is forwarded", func(t *testing.T) {
		// Arrange
		ts := newTestServer()
		body, contentType := multipartBody(t, "file", "absen.csv", []byte("NAMA,NIK\nAndi,1\n"))

		// Act
		rec := ts.do(http.MethodPost, "/api/v1/upload/file", body, contentType)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "absen.csv", ts.uploads.selected.Filename)
		assert.Equal(t, "NAMA,NIK\nAndi,1\n", string(ts.uploads.selected.Data))
	})

	t.Run("missing file field", func(t *testing.T) {
		ts := newTestServer()
		body, contentType := multipartBody(t, "other", "absen.csv", []byte("x"))

		rec := ts.do(http.MethodPost, "/api/v1/upload/file", body, contentType)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "UPLOAD_NO_FILE", decodeResponse(t, rec).Error.Code)
	})

	t.Run("request too large", func(t *testing.T) {
		ts := newTestServer()
		body, contentType := multipartBody(t, "file", "absen.csv", bytes.Repeat([]byte("a"), 2<<20))

		rec := ts.do(http.MethodPost, "/api/v1/upload/file", body, contentType)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "UPLOAD_FILE_TOO_LARGE", decodeResponse(t, rec).Error.Code)
	})
}

func TestUploadHandler_Submit_NotValidated(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodPost, "/api/v1/upload/submit", nil, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "UPLOAD_NOT_VALIDATED", decodeResponse(t, rec).Error.Code)
}

func TestHealthHandler_Check(t *testing.T) {
	tests := []struct {
		name        string
		healthErr   error
		wantBackend string
	}{
		{name: "reachable", wantBackend: "ok"},
		{name: "unreachable", healthErr: errors.New("dial tcp: refused"), wantBackend: "unreachable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer()
			ts.backend.healthErr = tt.healthErr

			rec := ts.do(http.MethodGet, "/health", nil, "")

			assert.Equal(t, http.StatusOK, rec.Code)
			body := decodeResponse(t, rec)
			assert.Equal(t, tt.wantBackend, body.Data.(map[string]interface{})["backend"])
		})
	}
}
