package cron

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
)

// Reloader refreshes the dashboard dataset.
type Reloader interface {
	Reload(ctx context.Context) (*senam.DashboardView, error)
}

type DashboardJobs struct {
	dashboard Reloader
}

func NewDashboardJobs(dashboard Reloader) *DashboardJobs {
	return &DashboardJobs{dashboard: dashboard}
}

// RegisterJobs adds the refresh job when interval is positive and reports
// whether it did. A registered job also performs the first load.
func (j *DashboardJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) bool {
	if interval <= 0 {
		slog.Info("Cron: dashboard refresh disabled")
		return false
	}
	scheduler.Add(Job{
		Name:     "refresh_dashboard",
		Interval: interval,
		Timeout:  interval,
		Fn:       j.RefreshDashboard,
	})
	return true
}

// RefreshDashboard reloads the dataset. A load already in flight is not an error.
func (j *DashboardJobs) RefreshDashboard(ctx context.Context) error {
	_, err := j.dashboard.Reload(ctx)
	if errors.Is(err, senam.ErrLoadInFlight) {
		slog.Debug("Cron: dashboard load already in flight, skipping refresh")
		return nil
	}
	return err
}
