package upload

import (
	"context"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
)

// Dashboard is the part of the dashboard service the upload flow reports to.
type Dashboard interface {
	ReloadOrQueue(ctx context.Context) (*senam.DashboardView, error)
	ShowLoading(ctx context.Context, message string) (hide func())
	Notify(level senam.NoticeLevel, message string)
	Publish(event string, data interface{})
}

// ProgressReporter reports upload progress below completion until Settle
// jumps it to 100. Stop ends reporting without completing.
type ProgressReporter interface {
	Start()
	Settle()
	Stop()
}

type Service interface {
	Status(ctx context.Context) *Status
	SelectFile(ctx context.Context, req SelectFileRequest) (*Status, error)
	ClearFile(ctx context.Context) (*Status, error)
	Submit(ctx context.Context) (*SubmitResponse, error)
}
