package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FormatSelection(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		format      string
		wantJSON    bool
	}{
		{"production defaults to json", "production", "", true},
		{"development defaults to text", "development", "", false},
		{"explicit json wins over environment", "development", "json", true},
		{"explicit text wins over environment", "production", "text", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(Config{
				Level:       slog.LevelInfo,
				Environment: tt.environment,
				Format:      tt.format,
				Writer:      &buf,
			})
			log.Info("hello")

			out := buf.String()
			assert.Contains(t, out, "hello")
			if tt.wantJSON {
				assert.Contains(t, out, `"msg":"hello"`)
			} else {
				assert.NotContains(t, out, `"msg"`)
				assert.Contains(t, out, "INF")
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "input %q", tt.in)
	}
}

func TestTextHandler_Enabled(t *testing.T) {
	var buf bytes.Buffer
	h := NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestTextHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	h := NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	log := slog.New(h)

	log.Info("request done", "status", 200, "path", "/api/v1/recipes")

	out := buf.String()
	assert.Contains(t, out, "request done")
	assert.Contains(t, out, "status=200")
	assert.Contains(t, out, "path=/api/v1/recipes")
	assert.Contains(t, out, "INF")
}

func TestTextHandler_LevelLabels(t *testing.T) {
	tests := []struct {
		level slog.Level
		label string
	}{
		{slog.LevelDebug, "DBG"},
		{slog.LevelInfo, "INF"},
		{slog.LevelWarn, "WRN"},
		{slog.LevelError, "ERR"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			var buf bytes.Buffer
			log := slog.New(NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			log.Log(context.Background(), tt.level, "x")
			assert.Contains(t, buf.String(), tt.label)
		})
	}
}

func TestTextHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	log := slog.New(h.WithAttrs([]slog.Attr{slog.String("component", "store")}))

	log.Info("opened")

	assert.Contains(t, buf.String(), "component=store")
	assert.Contains(t, buf.String(), "opened")
}

func TestTextHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	h := NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	assert.Equal(t, h, h.WithGroup(""))
	assert.NotEqual(t, h, h.WithGroup("request"))
}

func TestTextHandler_AddSource(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewTextHandler(&buf, &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
	}))

	log.Info("with source")

	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestLogger_WithHelpers(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: slog.LevelInfo, Format: "json", Writer: &buf})

	log.
		WithError(errors.New("disk full")).
		WithField("user_id", int64(7)).
		WithFields(map[string]any{"op": "upload"}).
		Error("image save failed")

	out := buf.String()
	assert.Contains(t, out, "disk full")
	assert.Contains(t, out, "user_id")
	assert.Contains(t, out, "upload")
	assert.Contains(t, out, "image save failed")
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: slog.LevelWarn, Format: "json", Writer: &buf})

	log.Debug("quiet")
	log.Info("also quiet")
	log.Warn("loud")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "loud")
}

func TestNewTextHandler_NilOptions(t *testing.T) {
	var buf bytes.Buffer
	h := NewTextHandler(&buf, nil)
	require.NotNil(t, h)

	slog.New(h).Info("ok")
	assert.Contains(t, buf.String(), "ok")
}
