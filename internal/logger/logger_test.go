package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CustomWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: "json", Writer: &buf})
	logger.Info("test message")

	assert.Contains(t, buf.String(), "test message")
	assert.Contains(t, buf.String(), "\"level\":\"INFO\"")
}

func TestNew_FormatAutoDetection(t *testing.T) {
	var buf bytes.Buffer

	prod := New(Config{Environment: "production", Writer: &buf})
	prod.Info("hello")
	assert.True(t, strings.HasPrefix(buf.String(), "{"), "production should log JSON")

	buf.Reset()
	dev := New(Config{Environment: "development", Writer: &buf})
	dev.Info("hello")
	assert.False(t, strings.HasPrefix(buf.String(), "{"), "development should log pretty lines")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestPrettyHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Format: "pretty", Writer: &buf})

	logger.Debug("debug line")
	logger.Info("info line")
	logger.Warn("warn line")

	out := buf.String()
	assert.NotContains(t, out, "debug line")
	assert.NotContains(t, out, "info line")
	assert.Contains(t, out, "warn line")
}

func TestPrettyHandler_Attributes(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: "pretty", Writer: &buf})

	logger.Info("listing books", "genre", "Mystery", "page", 2)

	out := buf.String()
	assert.Contains(t, out, "genre=Mystery")
	assert.Contains(t, out, "page=2")
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: "json", Writer: &buf})

	logger.WithError(errors.New("boom")).Error("operation failed")

	require.Contains(t, buf.String(), "\"error\":\"boom\"")
}
