package observe

import (
	"context"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*metricsImpl, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := newMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("newMetrics failed: %v", err)
	}
	return metrics, reader
}

// TestMetrics_RecordCheck verifies check counters and histogram are recorded.
func TestMetrics_RecordCheck(t *testing.T) {
	metrics, reader := newTestMetrics(t)
	ctx := context.Background()

	metrics.RecordCheck(ctx, ProbeMeta{Name: "database"}, 5*time.Millisecond, true, nil)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	if findMetric(rm, "probe.check.total") == nil {
		t.Error("probe.check.total metric not found")
	}
	if findMetric(rm, "probe.check.duration_ms") == nil {
		t.Error("probe.check.duration_ms metric not found")
	}
	// No fault occurred, so the fault counter has no data points yet.
	if findMetric(rm, "probe.check.faults") != nil {
		t.Error("probe.check.faults should have no data points without a fault")
	}
}

// TestMetrics_RecordCheck_Fault verifies the fault counter increments on error.
func TestMetrics_RecordCheck_Fault(t *testing.T) {
	metrics, reader := newTestMetrics(t)
	ctx := context.Background()

	metrics.RecordCheck(ctx, ProbeMeta{Name: "faulty"}, time.Millisecond, false, errCheckPanicked)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	found := findMetric(rm, "probe.check.faults")
	if found == nil {
		t.Fatal("probe.check.faults metric not found")
	}
}

// TestMetrics_RecordBatch verifies batch counters are recorded.
func TestMetrics_RecordBatch(t *testing.T) {
	metrics, reader := newTestMetrics(t)
	ctx := context.Background()

	metrics.RecordBatch(ctx, 3, 12*time.Millisecond, false)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	if findMetric(rm, "probe.run.total") == nil {
		t.Error("probe.run.total metric not found")
	}
	if findMetric(rm, "probe.run.duration_ms") == nil {
		t.Error("probe.run.duration_ms metric not found")
	}
}

// TestMetrics_RecordStateOp verifies the state operation counter.
func TestMetrics_RecordStateOp(t *testing.T) {
	metrics, reader := newTestMetrics(t)
	ctx := context.Background()

	metrics.RecordStateOp(ctx, "set")
	metrics.RecordStateOp(ctx, "get")

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	found := findMetric(rm, "state.op.total")
	if found == nil {
		t.Fatal("state.op.total metric not found")
	}
	sum, ok := found.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("state.op.total has unexpected data type %T", found.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	if total != 2 {
		t.Errorf("state.op.total = %d, want 2", total)
	}
}

// TestNoopMetrics verifies the no-op implementation never panics.
func TestNoopMetrics(t *testing.T) {
	var m Metrics = &noopMetrics{}
	ctx := context.Background()

	m.RecordCheck(ctx, ProbeMeta{Name: "x"}, time.Millisecond, true, nil)
	m.RecordBatch(ctx, 0, 0, true)
	m.RecordStateOp(ctx, "get")
}

// findMetric searches for a metric by name in ResourceMetrics.
func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}
