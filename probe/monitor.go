package probe

import (
	"context"
	"sync"
	"time"
)

// MonitorConfig configures the background monitor.
type MonitorConfig struct {
	// Interval is the cadence of scheduled re-checks.
	// Default: 10 seconds
	Interval time.Duration

	// OnBatch, when set, is invoked after every completed batch with the
	// batch's results. It runs on the monitor goroutine with no locks
	// held, so hosts can log or record metrics from it. Must not panic.
	OnBatch func(results []Result)
}

// Monitor periodically re-runs a registry's probes in the background and
// caches the latest batch, so hot paths can read the most recent aggregate
// without paying for a fresh RunAll.
//
// One goroutine owns the loop; it re-checks on a ticker, on Trigger, and
// stops when Stop is called or the Start context is cancelled.
type Monitor struct {
	registry *Registry
	config   MonitorConfig

	mu        sync.RWMutex
	results   []Result
	healthy   bool
	refreshed time.Time

	trigger   chan struct{}
	stop      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewMonitor creates a monitor over the given registry.
// The monitor reports healthy until the first batch completes, matching
// a process that has not yet observed any failure.
func NewMonitor(registry *Registry, config ...MonitorConfig) *Monitor {
	cfg := MonitorConfig{
		Interval: 10 * time.Second,
	}
	if len(config) > 0 {
		cfg = config[0]
		if cfg.Interval <= 0 {
			cfg.Interval = 10 * time.Second
		}
	}

	return &Monitor{
		registry: registry,
		config:   cfg,
		healthy:  true,
		trigger:  make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}
}

// Start launches the background loop. Subsequent calls are no-ops.
// The loop runs an immediate first batch, then re-checks every Interval
// and on each Trigger, until Stop is called or ctx is cancelled.
func (m *Monitor) Start(ctx context.Context) {
	m.startOnce.Do(func() {
		go m.loop(ctx)
	})
}

// Stop terminates the background loop. Idempotent.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stop)
	})
}

// Trigger requests an immediate re-check. Non-blocking; triggers arriving
// while one is already pending are coalesced.
func (m *Monitor) Trigger() {
	select {
	case m.trigger <- struct{}{}:
	default:
	}
}

// Healthy returns the aggregate of the most recent batch.
func (m *Monitor) Healthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.healthy
}

// LastResults returns a copy of the most recent batch, or nil if no batch
// has completed yet.
func (m *Monitor) LastResults() []Result {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.results == nil {
		return nil
	}
	out := make([]Result, len(m.results))
	copy(out, m.results)
	return out
}

// RefreshedAt returns when the most recent batch completed.
// Zero until the first batch completes.
func (m *Monitor) RefreshedAt() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshed
}

func (m *Monitor) loop(ctx context.Context) {
	ticker := time.NewTicker(m.config.Interval)
	defer ticker.Stop()

	m.refresh(ctx)

	for {
		select {
		case <-ticker.C:
			m.refresh(ctx)
		case <-m.trigger:
			m.refresh(ctx)
		case <-m.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (m *Monitor) refresh(ctx context.Context) {
	results := m.registry.RunAll(ctx)
	healthy := AllOk(results)

	m.mu.Lock()
	m.results = results
	m.healthy = healthy
	m.refreshed = time.Now()
	m.mu.Unlock()

	if m.config.OnBatch != nil {
		m.config.OnBatch(results)
	}
}
