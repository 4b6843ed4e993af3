package senamapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/senam-dashboard/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.BackendConfig{BaseURL: server.URL + "/", Timeout: 5 * time.Second})
}

func TestClient_FetchEmployees(t *testing.T) {
	t.Run("decodes records", func(t *testing.T) {
		// Arrange
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/data", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `[{"id":"123_0","nama":"Andi","nik":"123","tahunan":{"2024":3},
				"bulanan":{"2024":{"2024-01":{"nama":"Januari","value":3,"status":"Hadir"}}},"total_all":3}]`)
		})

		// Act
		records, err := client.FetchEmployees(context.Background())

		// Assert
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "123_0", records[0].ID)
		assert.Equal(t, 3, records[0].Tahunan["2024"])
		assert.Equal(t, "Januari", records[0].Bulanan["2024"]["2024-01"].Nama)
	})

	t.Run("null body is an empty store", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `null`)
		})

		records, err := client.FetchEmployees(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("non OK status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := client.FetchEmployees(context.Background())

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		assert.Equal(t, "HTTP error! status: 500", apiErr.Message)
	})
}

func TestClient_FetchEmployees_Transport(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.NotFoundHandler())
	client := NewClient(config.BackendConfig{BaseURL: server.URL, Timeout: time.Second})
	server.Close()

	// Act
	_, err := client.FetchEmployees(context.Background())

	// Assert
	assert.ErrorIs(t, err, ErrTransport)
}

func TestClient_Export(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantBody    string
	}{
		{name: "binary on OK", status: http.StatusOK, body: "PK\x03\x04", wantBody: "PK\x03\x04"},
		{name: "message on failure", status: http.StatusBadRequest, body: `{"success":false,"message":"Tidak ada data pegawai"}`, wantMessage: "Tidak ada data pegawai"},
		{name: "failure without message", status: http.StatusInternalServerError, body: `oops`, wantMessage: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			payloads := make(chan map[string]interface{}, 1)
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/export-group-excel", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				var received map[string]interface{}
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
				payloads <- received
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			// Act
			doc, err := client.Export(context.Background(), "/api/export-group-excel", map[string]string{"struktur_lini": "Semua"})

			// Assert
			assert.Equal(t, "Semua", (<-payloads)["struktur_lini"])
			if tt.status == http.StatusOK {
				require.NoError(t, err)
				assert.Equal(t, tt.wantBody, string(doc.Body))
				return
			}
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
		})
	}
}

func TestClient_ValidateTemplate(t *testing.T) {
	// Arrange
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)

		assert.Equal(t, "/api/validate-template", r.URL.Path)
		assert.Equal(t, "absen.csv", header.Filename)
		assert.Equal(t, "NAMA,NIK\n", string(data))

		_, _ = io.WriteString(w, `{"success":true,"valid":false,"message":"Kolom wajib tidak ditemukan: NIK","missing_columns":["NIK"],"data_rows":4}`)
	})

	// Act
	result, err := client.ValidateTemplate(context.Background(), "absen.csv", []byte("NAMA,NIK\n"))

	// Assert
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"NIK"}, result.MissingColumns)
	assert.Equal(t, 4, result.DataRows)
}

func TestClient_Upload(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"success":true,"message":"Data berhasil diupload! 2 pegawai diproses.","count":2,"years":["2024"]}`)
		})

		result, err := client.Upload(context.Background(), "absen.xlsx", []byte("data"))

		require.NoError(t, err)
		assert.Equal(t, 2, result.Count)
	})

	t.Run("success false is a backend error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"success":false,"message":"Gagal memproses file"}`)
		})

		_, err := client.Upload(context.Background(), "absen.xlsx", []byte("data"))

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Gagal memproses file", apiErr.Message)
	})
}

func TestClient_HealthAndClear(t *testing.T) {
	// Arrange
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			_, _ = io.WriteString(w, `{"status":"ok","message":"Server is running"}`)
		case "/api/clear-data":
			assert.Equal(t, http.MethodPost, r.Method)
			_, _ = io.WriteString(w, `{"success":true,"message":"Data berhasil dihapus"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	// Act
	healthErr := client.Health(context.Background())
	clearErr := client.ClearData(context.Background())

	// Assert
	assert.NoError(t, healthErr)
	assert.NoError(t, clearErr)
}
