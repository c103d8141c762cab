// Package probe provides an ordered, concurrency-safe registry of
// boolean health checks.
//
// This package implements the check-execution half of an actuator core:
// callers register named, zero-argument boolean checks ("probes") and run
// them as a batch, collecting one result per probe in registration order.
//
// # Core Concepts
//
// A Probe is any component that can report a boolean condition. The Func
// adapter turns an ordinary function into a Probe. A Registry holds probes
// in an append-only ordered list; duplicate names are permitted and each
// occurrence runs.
//
// # Basic Usage
//
//	reg := probe.NewRegistry()
//	reg.RegisterFunc("database", func(ctx context.Context) bool {
//	    return db.PingContext(ctx) == nil
//	})
//	reg.RegisterFunc("downstream", func(ctx context.Context) bool {
//	    return downstream.Reachable()
//	})
//
//	results := reg.RunAll(ctx)
//	if probe.AllOk(results) {
//	    // render 200
//	}
//
// # Fault Isolation
//
// Probe bodies run behind a panic boundary: a panicking probe yields a
// Result carrying ErrProbePanic with a correlation ID, and the remaining
// probes of the batch still run. Probes still running at the batch
// deadline are reported with ErrProbeTimeout and abandoned (their
// goroutine cannot be safely killed).
//
// # Background Monitoring
//
// Monitor re-runs a registry on an interval and on demand, caching the
// latest batch:
//
//	mon := probe.NewMonitor(reg, probe.MonitorConfig{Interval: 10 * time.Second})
//	mon.Start(ctx)
//	defer mon.Stop()
//
//	if mon.Healthy() {
//	    // cheap read of the most recent aggregate
//	}
package probe
