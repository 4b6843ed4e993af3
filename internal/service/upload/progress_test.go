package upload

import (
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/upload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type progressRecorder struct {
	mu      sync.Mutex
	reports []upload.Progress
}

func (r *progressRecorder) report(p upload.Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, p)
}

func (r *progressRecorder) snapshot() []upload.Progress {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]upload.Progress(nil), r.reports...)
}

func (r *progressRecorder) last() upload.Progress {
	reports := r.snapshot()
	if len(reports) == 0 {
		return upload.Progress{}
	}
	return reports[len(reports)-1]
}

func TestSimulatedProgress_CapAndSettle(t *testing.T) {
	// Arrange
	rec := &progressRecorder{}
	p := NewSimulatedProgress(ProgressConfig{Tick: time.Millisecond, Step: 35, Cap: 90}, rec.report)

	// Act
	p.Start()
	require.Eventually(t, func() bool { return rec.last().Percent == 90 }, time.Second, time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	p.Settle()
	p.Settle()

	// Assert
	reports := rec.snapshot()
	assert.Equal(t, upload.Progress{Percent: 0, Text: "Menyiapkan upload..."}, reports[0])
	assert.Equal(t, upload.Progress{Percent: 35, Text: "Mengupload file..."}, reports[1])
	assert.Equal(t, upload.Progress{Percent: 70, Text: "Memproses data..."}, reports[2])
	assert.Equal(t, upload.Progress{Percent: 90, Text: "Menyimpan data..."}, reports[3])
	assert.Equal(t, upload.Progress{Percent: 100, Text: "Menyelesaikan..."}, reports[4])
	assert.Len(t, reports, 5)
}

func TestSimulatedProgress_StopDoesNotComplete(t *testing.T) {
	rec := &progressRecorder{}
	p := NewSimulatedProgress(ProgressConfig{Tick: time.Hour}, rec.report)

	p.Start()
	p.Stop()
	p.Settle()

	assert.Equal(t, []upload.Progress{{Percent: 0, Text: "Menyiapkan upload..."}}, rec.snapshot())
}

func TestSimulatedProgress_StopWithoutStart(t *testing.T) {
	p := NewSimulatedProgress(ProgressConfig{}, func(upload.Progress) {})

	assert.NotPanics(t, p.Stop)
}
