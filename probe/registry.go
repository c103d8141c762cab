package probe

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Config configures the probe registry.
type Config struct {
	// Timeout is the deadline for one RunAll batch. Probes still running
	// at the deadline are abandoned and reported with ErrProbeTimeout.
	// Default: 10 seconds
	Timeout time.Duration

	// Parallel runs the probes of a batch concurrently when true.
	// Results keep registration order either way.
	// Default: false (probes execute in registration order)
	Parallel bool

	// Coalesce deduplicates concurrent RunAll batches: callers arriving
	// while a batch is in flight share its results instead of starting
	// their own. Default: false
	Coalesce bool

	// PanicHandler, if set, is called with the recovered value and stack
	// whenever a probe panics. The correlation ID matches the one embedded
	// in the probe's Result error. Must not panic.
	PanicHandler func(name, correlationID string, recovered any, stack []byte)
}

// entry pairs a probe with the name it was registered under.
type entry struct {
	name  string
	probe Probe
}

// Registry is a concurrency-safe ordered collection of probes.
//
// Probes are held as an append-only list, not a keyed map: duplicate
// names are permitted and each occurrence runs. Registration order is
// stable for the process lifetime and is the reporting order of RunAll.
type Registry struct {
	config Config
	mu     sync.RWMutex
	probes []entry
	flight singleflight.Group
}

// NewRegistry creates a new probe registry.
func NewRegistry(config ...Config) *Registry {
	cfg := Config{
		Timeout: 10 * time.Second,
	}
	if len(config) > 0 {
		cfg = config[0]
		if cfg.Timeout <= 0 {
			cfg.Timeout = 10 * time.Second
		}
	}

	return &Registry{
		config: cfg,
		probes: make([]entry, 0),
	}
}

// Register appends a probe under the given name.
// Safe against concurrent Register and RunAll calls.
func (r *Registry) Register(name string, p Probe) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.probes = append(r.probes, entry{name: name, probe: p})
}

// RegisterFunc appends an ordinary function as a probe.
func (r *Registry) RegisterFunc(name string, fn func(context.Context) bool) {
	r.Register(name, NewFunc(name, fn))
}

// Unregister removes the first probe registered under the given name.
// The relative order of the remaining probes is unchanged.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.probes {
		if e.name == name {
			r.probes = append(r.probes[:i], r.probes[i+1:]...)
			return
		}
	}
}

// Names returns the registered probe names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.probes))
	for i, e := range r.probes {
		names[i] = e.name
	}
	return names
}

// Len returns the number of registered probes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.probes)
}

// RunAll executes every probe registered at the instant the call begins
// and returns exactly one Result per probe, in registration order.
//
// Probes registered while a batch is running are not part of that batch.
// The probe list lock is released before any probe body executes, so a
// slow probe never blocks Register. A panicking probe is reported with
// ErrProbePanic and the batch continues; a probe still running at the
// batch deadline is reported with ErrProbeTimeout and abandoned.
func (r *Registry) RunAll(ctx context.Context) []Result {
	if !r.config.Coalesce {
		return r.runAll(ctx)
	}

	v, _, shared := r.flight.Do("run_all", func() (any, error) {
		return r.runAll(ctx), nil
	})
	results := v.([]Result)
	if !shared {
		return results
	}
	// Shared batches get their own copy so callers cannot alias each other.
	out := make([]Result, len(results))
	copy(out, results)
	return out
}

// AllHealthy reports whether every probe in a fresh RunAll batch returned
// true with no fault. An empty registry is healthy.
func (r *Registry) AllHealthy(ctx context.Context) bool {
	return AllOk(r.RunAll(ctx))
}

func (r *Registry) runAll(ctx context.Context) []Result {
	r.mu.RLock()
	batch := make([]entry, len(r.probes))
	copy(batch, r.probes)
	r.mu.RUnlock()

	if len(batch) == 0 {
		return []Result{}
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	results := make([]Result, len(batch))

	if r.config.Parallel {
		g := new(errgroup.Group)
		for i, e := range batch {
			i, e := i, e
			g.Go(func() error {
				results[i] = r.runProbe(ctx, e)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, e := range batch {
			results[i] = r.runProbe(ctx, e)
		}
	}

	return results
}

// runProbe executes one probe against the batch deadline.
func (r *Registry) runProbe(ctx context.Context, e entry) Result {
	start := time.Now()

	resultCh := make(chan Result, 1)
	go func() {
		resultCh <- r.check(ctx, e, start)
	}()

	select {
	case result := <-resultCh:
		return result
	case <-ctx.Done():
		// The probe goroutine is abandoned, not killed; Go has no safe way
		// to preempt it. It will be collected once the probe body returns.
		return Result{
			Name:      e.name,
			Err:       ErrProbeTimeout,
			Duration:  time.Since(start),
			CheckedAt: start,
		}
	}
}

// check runs the probe body behind a panic boundary.
func (r *Registry) check(ctx context.Context, e entry, start time.Time) (result Result) {
	defer func() {
		if rec := recover(); rec != nil {
			correlationID := uuid.NewString()
			if r.config.PanicHandler != nil {
				r.config.PanicHandler(e.name, correlationID, rec, debug.Stack())
			}
			result = Result{
				Name:      e.name,
				Err:       fmt.Errorf("%w (correlation_id: %s): %v", ErrProbePanic, correlationID, rec),
				Duration:  time.Since(start),
				CheckedAt: start,
			}
		}
	}()

	healthy := e.probe.Check(ctx)
	return Result{
		Name:      e.name,
		Healthy:   healthy,
		Duration:  time.Since(start),
		CheckedAt: start,
	}
}
