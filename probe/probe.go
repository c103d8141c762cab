package probe

import (
	"context"
	"time"
)

// Probe is the interface for a single registered health check.
//
// Contract:
//   - Concurrency: Check may be called from any number of goroutines.
//   - Blocking: Check must be fast and must not block indefinitely; the
//     registry applies a batch deadline and abandons overrunning probes.
//   - Side effects: Check must be side-effect free. It may read shared
//     state, but it must tolerate stale reads.
type Probe interface {
	// Name returns the identifier used for reporting. Names should be
	// unique among registered probes but uniqueness is not enforced.
	Name() string

	// Check reports whether the probed condition currently holds.
	Check(ctx context.Context) bool
}

// Func is an adapter to allow ordinary functions to be used as Probes.
type Func struct {
	name string
	fn   func(context.Context) bool
}

// NewFunc creates a new Func probe.
func NewFunc(name string, fn func(context.Context) bool) *Func {
	return &Func{name: name, fn: fn}
}

// Name returns the identifier used for reporting.
func (f *Func) Name() string {
	return f.name
}

// Check reports whether the probed condition currently holds.
func (f *Func) Check(ctx context.Context) bool {
	return f.fn(ctx)
}

// Result contains the outcome of one probe execution within a batch.
type Result struct {
	// Name is the identifier the probe was registered under.
	Name string

	// Healthy is the boolean the probe returned. False when Err is set.
	Healthy bool

	// Err is non-nil when the probe faulted instead of returning:
	// ErrProbePanic for a recovered panic, ErrProbeTimeout for a probe
	// abandoned at the batch deadline.
	Err error

	// Duration is how long the probe ran.
	Duration time.Duration

	// CheckedAt is when the probe started.
	CheckedAt time.Time
}

// Ok reports whether the probe returned true with no fault.
func (r Result) Ok() bool {
	return r.Healthy && r.Err == nil
}

// AllOk reports whether every result in the batch is Ok.
// An empty batch is considered healthy.
func AllOk(results []Result) bool {
	for _, r := range results {
		if !r.Ok() {
			return false
		}
	}
	return true
}
