package observe

import (
	"context"
	"errors"
	"time"
)

// CheckFunc is the signature for probe check functions.
// This is the standard function signature that Middleware wraps; the
// wrapped form can be registered directly with a probe registry.
type CheckFunc func(ctx context.Context) bool

// errCheckPanicked marks a span whose check body panicked; the caller's
// panic boundary owns the recovery and reporting.
var errCheckPanicked = errors.New("observe: check panicked")

// Middleware wraps probe checks with observability (tracing, metrics, logging).
//
// Contract:
//   - Concurrency: Wrap() returns a thread-safe CheckFunc.
//   - Context: Propagates context through tracing spans.
//   - Panics: A panicking check is recorded as a fault and the panic is
//     propagated unchanged for the registry's panic boundary to handle.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware with the given observability components.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Wrap wraps a CheckFunc with tracing, metrics, and logging.
func (m *Middleware) Wrap(meta ProbeMeta, fn CheckFunc) CheckFunc {
	return func(ctx context.Context) bool {
		ctx, span := m.tracer.StartSpan(ctx, meta)
		start := time.Now()

		// Close out the telemetry even when the check panics; the panic
		// itself propagates to the registry's boundary.
		completed := false
		defer func() {
			if completed {
				return
			}
			duration := time.Since(start)
			m.tracer.EndSpan(span, false, errCheckPanicked)
			m.metrics.RecordCheck(ctx, meta, duration, false, errCheckPanicked)
		}()

		healthy := fn(ctx)
		completed = true
		duration := time.Since(start)

		m.tracer.EndSpan(span, healthy, nil)
		m.metrics.RecordCheck(ctx, meta, duration, healthy, nil)

		probeLogger := m.logger.WithProbe(meta)
		fields := []Field{
			{Key: "duration_ms", Value: float64(duration.Milliseconds())},
			{Key: "healthy", Value: healthy},
		}
		if healthy {
			probeLogger.Debug(ctx, "probe check completed", fields...)
		} else {
			probeLogger.Warn(ctx, "probe check unhealthy", fields...)
		}

		return healthy
	}
}

// MiddlewareFromObserver creates a Middleware from an Observer.
// This is a convenience function for common use cases.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	tracer := newTracer(obs.Tracer())

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(tracer, metrics, obs.Logger()), nil
}

// NewMetrics creates a standalone Metrics instance from an Observer, for
// hosts that record batch results or state operations directly.
func NewMetrics(obs Observer) (Metrics, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}
	return newMetrics(obs.Meter())
}
