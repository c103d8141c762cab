package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

// TestLogger_IncludesProbeFields verifies probe fields are present in log output.
func TestLogger_IncludesProbeFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	meta := ProbeMeta{
		Name: "database",
		Kind: "readiness",
	}

	probeLogger := logger.WithProbe(meta)
	probeLogger.Info(context.Background(), "test message")

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v\nOutput: %s", err, buf.String())
	}

	if v, ok := logEntry["probe.name"].(string); !ok || v != "database" {
		t.Errorf("expected probe.name='database', got %v", logEntry["probe.name"])
	}
	if v, ok := logEntry["probe.kind"].(string); !ok || v != "readiness" {
		t.Errorf("expected probe.kind='readiness', got %v", logEntry["probe.kind"])
	}
}

// TestLogger_OmitsEmptyKind verifies the kind attribute is skipped when empty.
func TestLogger_OmitsEmptyKind(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	probeLogger := logger.WithProbe(ProbeMeta{Name: "database"})
	probeLogger.Info(context.Background(), "test message")

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v", err)
	}

	if _, present := logEntry["probe.kind"]; present {
		t.Error("probe.kind should be omitted when empty")
	}
}

// TestLogger_IncludesDuration verifies duration_ms field is present.
func TestLogger_IncludesDuration(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	probeLogger := logger.WithProbe(ProbeMeta{Name: "database"})
	probeLogger.Info(context.Background(), "test message",
		Field{Key: "duration_ms", Value: 50.5},
	)

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v", err)
	}

	if v, ok := logEntry["duration_ms"].(float64); !ok || v != 50.5 {
		t.Errorf("expected duration_ms=50.5, got %v", logEntry["duration_ms"])
	}
}

// TestLogger_LevelFiltering verifies messages below the level are dropped.
func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("error", &buf)
	ctx := context.Background()

	logger.Debug(ctx, "dropped")
	logger.Info(ctx, "dropped")
	logger.Warn(ctx, "dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below error level, got: %s", buf.String())
	}

	logger.Error(ctx, "kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("expected error message in output, got: %s", buf.String())
	}
}

// TestLogger_RedactsSensitiveFields verifies state values are never logged verbatim.
func TestLogger_RedactsSensitiveFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Info(context.Background(), "state updated",
		Field{Key: "key", Value: "db.credentials"},
		Field{Key: "value", Value: "hunter2"},
		Field{Key: "token", Value: "abc123"},
	)

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v", err)
	}

	if logEntry["value"] != "[REDACTED]" {
		t.Errorf("expected value to be redacted, got %v", logEntry["value"])
	}
	if logEntry["token"] != "[REDACTED]" {
		t.Errorf("expected token to be redacted, got %v", logEntry["token"])
	}
	if logEntry["key"] != "db.credentials" {
		t.Errorf("key should not be redacted, got %v", logEntry["key"])
	}
	if strings.Contains(buf.String(), "hunter2") {
		t.Error("sensitive value leaked into log output")
	}
}

// TestParseLogLevel verifies level parsing with fallback to info.
func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
