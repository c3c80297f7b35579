package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
)

func TestCloudRunHandlerWritesSeverityAndData(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newCloudRunHandler(slog.LevelInfo, &buf)).With("request_id", "r1")

	log.Warn("clock-out rejected", "uid", "u1", "error", errors.New("boom"))

	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if event["severity"] != "WARNING" {
		t.Fatalf("severity = %v, want WARNING", event["severity"])
	}
	data, ok := event["data"].(map[string]any)
	if !ok {
		t.Fatalf("data missing: %v", event)
	}
	if data["request_id"] != "r1" || data["uid"] != "u1" {
		t.Fatalf("unexpected data: %v", data)
	}
	if data["error"] != "boom" {
		t.Fatalf("error attr = %v, want boom", data["error"])
	}
}

func TestCloudRunHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	h := newCloudRunHandler(slog.LevelWarn, &buf)

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("info should be disabled at warn level")
	}
	slog.New(h).Info("ignored")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestCloudRunHandlerGroupsFlatten(t *testing.T) {
	var buf bytes.Buffer
	slog.New(newCloudRunHandler(slog.LevelDebug, &buf)).WithGroup("attendance").Debug("saved", "date", "2025-01-15")

	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	data := event["data"].(map[string]any)
	if data["attendance.date"] != "2025-01-15" {
		t.Fatalf("unexpected data: %v", data)
	}
}
