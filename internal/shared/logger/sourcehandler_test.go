package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConditionalSourceHandler_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		levels     []slog.Level
		wantSource bool
	}{
		{"info not listed", slog.LevelInfo, []slog.Level{slog.LevelWarn, slog.LevelError}, false},
		{"warn listed", slog.LevelWarn, []slog.Level{slog.LevelWarn, slog.LevelError}, true},
		{"error listed", slog.LevelError, []slog.Level{slog.LevelWarn, slog.LevelError}, true},
		{"debug listed in debug mode", slog.LevelDebug, debugSourceLevels, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			log := slog.New(NewConditionalSourceHandler(base, tt.levels...))

			log.Log(context.Background(), tt.level, "notification created")

			assert.Equal(t, tt.wantSource, bytes.Contains(buf.Bytes(), []byte("source=")), buf.String())
		})
	}
}

func TestConditionalSourceHandler_KeepsAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, nil)
	log := slog.New(NewConditionalSourceHandler(base, slog.LevelError)).
		With("user_id", 42).
		WithGroup("request")

	log.Info("listing notifications", "limit", 20)

	out := buf.String()
	assert.Contains(t, out, "user_id=42")
	assert.Contains(t, out, "request.limit=20")
	assert.NotContains(t, out, "source=")
}

func TestConditionalSourceHandler_DelegatesEnabled(t *testing.T) {
	base := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelInfo})
	h := NewConditionalSourceHandler(base, slog.LevelError)

	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
}

func TestSlogLogger_WithAndNamed(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithSlog(slog.New(slog.NewTextHandler(&buf, nil)))

	l.Named("triggers").With("event", "booking.created").Infow("trigger fired", "user_id", 7)

	out := buf.String()
	assert.Contains(t, out, "logger=triggers")
	assert.Contains(t, out, "event=booking.created")
	assert.Contains(t, out, "user_id=7")
}
