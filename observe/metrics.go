package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records execution metrics for probe batches and state operations.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordCheck records a single probe execution.
	RecordCheck(ctx context.Context, meta ProbeMeta, duration time.Duration, healthy bool, err error)

	// RecordBatch records one full RunAll batch.
	RecordBatch(ctx context.Context, size int, duration time.Duration, healthy bool)

	// RecordStateOp records a shared-state store operation ("get", "set",
	// "delete", "snapshot").
	RecordStateOp(ctx context.Context, op string)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter         metric.Meter
	checkCount    metric.Int64Counter
	checkFaults   metric.Int64Counter
	checkDuration metric.Float64Histogram
	batchCount    metric.Int64Counter
	batchDuration metric.Float64Histogram
	stateOps      metric.Int64Counter
}

// newMetrics creates a new Metrics instance with the given meter.
func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	checkCount, err := meter.Int64Counter(
		"probe.check.total",
		metric.WithDescription("Total number of probe executions"),
		metric.WithUnit("{check}"),
	)
	if err != nil {
		return nil, err
	}

	checkFaults, err := meter.Int64Counter(
		"probe.check.faults",
		metric.WithDescription("Total number of probe faults (panics, timeouts)"),
		metric.WithUnit("{fault}"),
	)
	if err != nil {
		return nil, err
	}

	checkDuration, err := meter.Float64Histogram(
		"probe.check.duration_ms",
		metric.WithDescription("Probe execution duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	batchCount, err := meter.Int64Counter(
		"probe.run.total",
		metric.WithDescription("Total number of RunAll batches"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	batchDuration, err := meter.Float64Histogram(
		"probe.run.duration_ms",
		metric.WithDescription("RunAll batch duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	stateOps, err := meter.Int64Counter(
		"state.op.total",
		metric.WithDescription("Total number of shared-state store operations"),
		metric.WithUnit("{op}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:         meter,
		checkCount:    checkCount,
		checkFaults:   checkFaults,
		checkDuration: checkDuration,
		batchCount:    batchCount,
		batchDuration: batchDuration,
		stateOps:      stateOps,
	}, nil
}

// RecordCheck records metrics for one probe execution.
func (m *metricsImpl) RecordCheck(ctx context.Context, meta ProbeMeta, duration time.Duration, healthy bool, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("probe.name", meta.Name),
		attribute.Bool("probe.healthy", healthy),
	}
	if meta.Kind != "" {
		attrs = append(attrs, attribute.String("probe.kind", meta.Kind))
	}

	opt := metric.WithAttributes(attrs...)

	m.checkCount.Add(ctx, 1, opt)
	if err != nil {
		m.checkFaults.Add(ctx, 1, opt)
	}
	m.checkDuration.Record(ctx, float64(duration.Milliseconds()), opt)
}

// RecordBatch records metrics for one RunAll batch.
func (m *metricsImpl) RecordBatch(ctx context.Context, size int, duration time.Duration, healthy bool) {
	opt := metric.WithAttributes(
		attribute.Int("probe.count", size),
		attribute.Bool("probe.healthy", healthy),
	)

	m.batchCount.Add(ctx, 1, opt)
	m.batchDuration.Record(ctx, float64(duration.Milliseconds()), opt)
}

// RecordStateOp records one shared-state store operation.
func (m *metricsImpl) RecordStateOp(ctx context.Context, op string) {
	m.stateOps.Add(ctx, 1, metric.WithAttributes(attribute.String("state.op", op)))
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (m *noopMetrics) RecordCheck(ctx context.Context, meta ProbeMeta, duration time.Duration, healthy bool, err error) {
}

func (m *noopMetrics) RecordBatch(ctx context.Context, size int, duration time.Duration, healthy bool) {
}

func (m *noopMetrics) RecordStateOp(ctx context.Context, op string) {}
