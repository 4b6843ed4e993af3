package export

import (
	"context"
	"io"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
)

// Dashboard is the part of the dashboard service an export reads from and
// reports to.
type Dashboard interface {
	Snapshot(ctx context.Context) (*senam.Snapshot, error)
	ShowLoading(ctx context.Context, message string) (hide func())
	Notify(level senam.NoticeLevel, message string)
	ClearSelection(ctx context.Context) (*senam.DashboardView, error)
}

type Service interface {
	Export(ctx context.Context, req ExportRequest) (*ExportResponse, error)
	List(ctx context.Context, req ListLogsRequest) (*LogListResponse, error)

	// Open returns a saved document and its log entry. The caller closes the reader.
	Open(ctx context.Context, objectName string) (io.ReadCloser, *Log, error)
}
