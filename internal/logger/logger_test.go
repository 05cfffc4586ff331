package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainLogger(buf *bytes.Buffer, level slog.Level) *Logger {
	return New(Config{Writer: buf, Format: formatPretty, Level: level, NoColor: true})
}

func TestNew_FormatAutoDetection(t *testing.T) {
	tests := []struct {
		env      string
		wantJSON bool
	}{
		{"production", true},
		{"development", false},
		{"staging", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(Config{Writer: &buf, Environment: tt.env, Level: slog.LevelInfo})
			l.Info("hello", "tool_id", "tool-1")

			var decoded map[string]any
			isJSON := json.Unmarshal(buf.Bytes(), &decoded) == nil
			assert.Equal(t, tt.wantJSON, isJSON, buf.String())
		})
	}
}

func TestNew_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Writer: &buf, Format: formatJSON, Level: slog.LevelInfo})
	l.Warn("stale schema discarded", "key", "ai_tools_dashboard_tools")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "WARN", decoded["level"])
	assert.Equal(t, "stale schema discarded", decoded["msg"])
	assert.Equal(t, "ai_tools_dashboard_tools", decoded["key"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
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
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestPrettyHandler_Line(t *testing.T) {
	var buf bytes.Buffer
	l := plainLogger(&buf, slog.LevelDebug)

	l.Info("prompt added", "prompt_id", "prompt-1", "count", 3)

	line := buf.String()
	assert.True(t, strings.HasSuffix(line, "\n"))
	assert.Contains(t, line, "INF prompt added prompt_id=prompt-1 count=3")
	assert.NotContains(t, line, "\033[")
}

func TestPrettyHandler_ColorsByDefault(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	l := New(Config{Writer: &buf, Format: formatPretty, Level: slog.LevelInfo})
	l.Error("write failed", "error", "disk full")

	assert.Contains(t, buf.String(), colorRed)
	assert.Contains(t, buf.String(), colorReset)
}

func TestPrettyHandler_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	l := New(Config{Writer: &buf, Format: formatPretty, Level: slog.LevelInfo})
	l.Info("hello")

	assert.NotContains(t, buf.String(), "\033[")
}

func TestPrettyHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := plainLogger(&buf, slog.LevelWarn)

	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")

	out := buf.String()
	assert.NotContains(t, out, "DBG")
	assert.NotContains(t, out, "INF")
	assert.Contains(t, out, "WRN warn")
	assert.Contains(t, out, "ERR error")
}

func TestPrettyHandler_WithAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	l := plainLogger(&buf, slog.LevelInfo)

	scoped := l.With("component", "store").WithGroup("load").With("key", "tools")
	scoped.Info("loaded", "source", "default", slog.Group("repair", "orphans", 2))

	assert.Contains(t, buf.String(),
		"loaded component=store load.key=tools load.source=default load.repair.orphans=2")
}

func TestPrettyHandler_WithGroupEmptyNameIsNoop(t *testing.T) {
	h := NewPrettyHandler(&bytes.Buffer{}, nil)
	assert.Same(t, h, h.WithGroup(""))
}

func TestPrettyHandler_HandlersDoNotShareAttrs(t *testing.T) {
	var buf bytes.Buffer
	base := plainLogger(&buf, slog.LevelInfo)

	a := base.With("a", 1)
	b := base.With("b", 2)
	a.Info("first")
	b.Info("second")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "a=1")
	assert.NotContains(t, lines[0], "b=2")
	assert.Contains(t, lines[1], "b=2")
	assert.NotContains(t, lines[1], "a=1")
}

func TestPrettyHandler_WithSource(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Writer: &buf, Format: formatPretty, Level: slog.LevelInfo, AddSource: true, NoColor: true})
	l.Info("with source")

	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestFormatLevel(t *testing.T) {
	tests := []struct {
		level slog.Level
		str   string
		color string
	}{
		{slog.LevelDebug, "DBG", colorMagenta},
		{slog.LevelInfo, "INF", colorGreen},
		{slog.LevelWarn, "WRN", colorYellow},
		{slog.LevelError, "ERR", colorRed},
		{slog.Level(12), "ERROR+4", colorGray},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			str, color := formatLevel(tt.level)
			assert.Equal(t, tt.str, str)
			assert.Equal(t, tt.color, color)
		})
	}
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name  string
		value slog.Value
		want  string
	}{
		{"plain string", slog.StringValue("tools"), "tools"},
		{"string with space", slog.StringValue("disk full"), `"disk full"`},
		{"empty string", slog.StringValue(""), `""`},
		{"int", slog.IntValue(42), "42"},
		{"bool", slog.BoolValue(true), "true"},
		{"duration", slog.DurationValue(1500 * time.Millisecond), "1.5s"},
		{"time", slog.TimeValue(ts), "2026-01-02T03:04:05Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatValue(tt.value))
		})
	}
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	l := plainLogger(&buf, slog.LevelInfo)

	l.WithError(errors.New("quota exceeded")).Error("persist failed")
	assert.Contains(t, buf.String(), `error="quota exceeded"`)
}

func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := plainLogger(&buf, slog.LevelInfo)

	l.WithComponent("search").Info("rebuilt")
	assert.Contains(t, buf.String(), "rebuilt component=search")
}
