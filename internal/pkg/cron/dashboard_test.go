package cron

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/senam"
	"github.com/stretchr/testify/assert"
)

type fakeReloader struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (r *fakeReloader) Reload(ctx context.Context) (*senam.DashboardView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return &senam.DashboardView{}, r.err
}

func (r *fakeReloader) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func TestDashboardJobs_RegisterJobs(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		want     bool
	}{
		{name: "disabled", interval: 0, want: false},
		{name: "enabled", interval: time.Minute, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			scheduler := NewScheduler()
			reloader := &fakeReloader{}
			jobs := NewDashboardJobs(reloader)

			// Act
			registered := jobs.RegisterJobs(scheduler, tt.interval)
			scheduler.RunOnce(context.Background())

			// Assert
			assert.Equal(t, tt.want, registered)
			if tt.want {
				assert.Equal(t, 1, reloader.count())
			} else {
				assert.Equal(t, 0, reloader.count())
			}
		})
	}
}

func TestDashboardJobs_RefreshDashboard(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "success", err: nil, wantErr: nil},
		{name: "in flight is skipped", err: senam.ErrLoadInFlight, wantErr: nil},
		{name: "failure is reported", err: senam.ErrLoadFailed, wantErr: senam.ErrLoadFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs := NewDashboardJobs(&fakeReloader{err: tt.err})

			err := jobs.RefreshDashboard(context.Background())

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestScheduler_Run(t *testing.T) {
	// Arrange
	scheduler := NewScheduler()
	reloader := &fakeReloader{}
	NewDashboardJobs(reloader).RegisterJobs(scheduler, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- scheduler.Run(ctx) }()

	// Act
	assert.Eventually(t, func() bool { return reloader.count() >= 2 }, time.Second, time.Millisecond)
	cancel()

	// Assert
	assert.NoError(t, <-done)
}

func TestScheduler_RunOnce_Timeout(t *testing.T) {
	// Arrange
	scheduler := NewScheduler()
	deadlines := make(chan bool, 1)
	scheduler.Add(Job{
		Name:     "slow",
		Interval: time.Hour,
		Timeout:  10 * time.Millisecond,
		Fn: func(ctx context.Context) error {
			_, ok := ctx.Deadline()
			deadlines <- ok
			<-ctx.Done()
			return ctx.Err()
		},
	})

	// Act
	scheduler.RunOnce(context.Background())

	// Assert
	assert.True(t, <-deadlines)
}

func TestScheduler_Run_NoJobs(t *testing.T) {
	scheduler := NewScheduler()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, scheduler.Run(ctx))
}
