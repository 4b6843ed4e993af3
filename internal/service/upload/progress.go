package upload

import (
	"sync"
	"time"

	"github.com/cmlabs-hris/senam-dashboard/internal/domain/upload"
)

// ProgressConfig shapes the simulated progress curve
type ProgressConfig struct {
	Tick time.Duration // default: 200ms
	Step int           // default: 5
	Cap  int           // default: 90
}

func (c ProgressConfig) withDefaults() ProgressConfig {
	if c.Tick <= 0 {
		c.Tick = 200 * time.Millisecond
	}
	if c.Step <= 0 {
		c.Step = 5
	}
	if c.Cap <= 0 || c.Cap >= 100 {
		c.Cap = 90
	}
	return c
}

// SimulatedProgress advances on a timer because the upload transport does
// not report byte progress. Reported values never decrease.
type SimulatedProgress struct {
	cfg    ProgressConfig
	report func(upload.Progress)

	mu      sync.Mutex
	percent int
	started bool
	halted  bool
	stop    chan struct{}
	done    chan struct{}
}

// NewSimulatedProgress creates a reporter calling report on every change.
func NewSimulatedProgress(cfg ProgressConfig, report func(upload.Progress)) *SimulatedProgress {
	return &SimulatedProgress{
		cfg:    cfg.withDefaults(),
		report: report,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

func (p *SimulatedProgress) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.halted {
		return
	}
	p.started = true
	p.report(upload.Progress{Percent: 0, Text: "Menyiapkan upload..."})
	go p.run()
}

func (p *SimulatedProgress) run() {
	defer close(p.done)

	ticker := time.NewTicker(p.cfg.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.advance()
		case <-p.stop:
			return
		}
	}
}

func (p *SimulatedProgress) advance() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.halted || p.percent >= p.cfg.Cap {
		return
	}
	p.percent += p.cfg.Step
	if p.percent > p.cfg.Cap {
		p.percent = p.cfg.Cap
	}
	p.report(upload.Progress{Percent: p.percent, Text: progressText(p.percent)})
}

// Settle stops the ticks and reports completion.
func (p *SimulatedProgress) Settle() {
	if !p.halt() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.percent = 100
	p.report(upload.Progress{Percent: 100, Text: "Menyelesaikan..."})
}

func (p *SimulatedProgress) Stop() {
	p.halt()
}

// halt ends the ticker once and reports whether this call did it.
func (p *SimulatedProgress) halt() bool {
	p.mu.Lock()
	if p.halted {
		p.mu.Unlock()
		return false
	}
	p.halted = true
	started := p.started
	p.mu.Unlock()

	close(p.stop)
	if started {
		<-p.done
	}
	return true
}

func progressText(percent int) string {
	switch {
	case percent < 50:
		return "Mengupload file..."
	case percent < 80:
		return "Memproses data..."
	default:
		return "Menyimpan data..."
	}
}
