package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFromContext_AddsRequestAndTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Output: &buf, Format: JSON, Service: "test"})

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithTraceID(ctx, "trace-1")
	log.FromContext(ctx).Info("hello")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("failed to decode log line: %v", err)
	}
	if record[RequestIDAttr] != "req-1" {
		t.Errorf("request_id = %v, want req-1", record[RequestIDAttr])
	}
	if record[TraceIDAttr] != "trace-1" {
		t.Errorf("trace_id = %v, want trace-1", record[TraceIDAttr])
	}
	if record[SERVICE] != "test" {
		t.Errorf("service = %v, want test", record[SERVICE])
	}
}

func TestFromContext_EmptyContextReturnsSameLogger(t *testing.T) {
	log := Discard()
	if got := log.FromContext(context.Background()); got != log {
		t.Error("expected the same logger when the context carries no ids")
	}
}

func TestNew_LevelFiltersRecords(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Output: &buf, Level: WARN})

	log.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info record to be filtered, got %q", buf.String())
	}
	log.Warn("kept")
	if buf.Len() == 0 {
		t.Fatal("expected warn record to be written")
	}
}
