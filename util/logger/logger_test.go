package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestHandleWritesAttrsAsKeyValue(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}, true)

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "compacted", 0)
	r.AddAttrs(slog.Uint64("addr", 0x300))

	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "compacted") || !strings.Contains(out, "addr=") {
		t.Errorf("Handle output missing message/attrs: %q", out)
	}
}

func TestSetDebugSuppressesDebugToStderrOnly(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}, false)
	h.SetDebug(false)

	r := slog.NewRecord(time.Now(), slog.LevelDebug, "replay step", 0)
	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(buf.String(), "replay step") {
		t.Errorf("file output should still receive debug records: %q", buf.String())
	}
}

func TestEnabledDelegatesToLevel(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}, false)
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Info should not be enabled at Warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("Error should be enabled at Warn level")
	}
}
