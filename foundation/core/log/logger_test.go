// File: logger_test.go
// Title: Logger Tests
// Description: Tests for the zerolog-backed logger including derived loggers,
//              level filtering and foundation error integration.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive logger tests
// - 2025-03-02 v0.2.0: Rewritten against JSON output of the zerolog backend

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwerror "github.com/msto63/clidispatch/foundation/core/error"
)

func newBufferLogger(level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewWithConfig(Config{Level: level, Format: FormatJSON, Output: &buf}), &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "line: %s", line)
		entries = append(entries, entry)
	}
	return entries
}

func TestNew(t *testing.T) {
	logger := New()
	if logger == nil {
		t.Fatal("New() should not return nil")
	}
	if logger.GetLevel() != DefaultLevel() {
		t.Errorf("New() level = %v, want %v", logger.GetLevel(), DefaultLevel())
	}
}

func TestNewWithConfig(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{
		Level:  LevelError,
		Format: FormatJSON,
		Output: &buf,
		Name:   "test-logger",
	})

	assert.Equal(t, LevelError, logger.GetLevel())
	assert.Equal(t, "test-logger", logger.Name())

	logger.Error("boom")
	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "test-logger", entries[0]["logger"])
	assert.Equal(t, "boom", entries[0]["message"])
	assert.Equal(t, "error", entries[0]["level"])
}

func TestLoggerWithLevel(t *testing.T) {
	logger := New()
	derived := logger.WithLevel(LevelDebug)

	if derived == logger {
		t.Error("WithLevel() should return a new logger instance")
	}
	assert.Equal(t, LevelDebug, derived.GetLevel())
	assert.Equal(t, DefaultLevel(), logger.GetLevel(), "original must be unchanged")
}

func TestLoggerLogLevels(t *testing.T) {
	tests := []struct {
		name  string
		logFn func(*Logger, string)
		level string
	}{
		{"trace", func(l *Logger, m string) { l.Trace(m) }, "trace"},
		{"debug", func(l *Logger, m string) { l.Debug(m) }, "debug"},
		{"info", func(l *Logger, m string) { l.Info(m) }, "info"},
		{"warn", func(l *Logger, m string) { l.Warn(m) }, "warn"},
		{"error", func(l *Logger, m string) { l.Error(m) }, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(LevelTrace)
			tt.logFn(logger, "hello")

			entries := decodeLines(t, buf)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0]["level"])
			assert.Equal(t, "hello", entries[0]["message"])
		})
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn)

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("kept")
	logger.Error("kept")

	entries := decodeLines(t, buf)
	assert.Len(t, entries, 2)
}

func TestLoggerContextFields(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo)
	derived := logger.
		WithField("component", "parser").
		WithFields(Fields{"attempt": 2}).
		WithRequestID("req-1")

	derived.Info("parsed", Field("tokens", 3))
	logger.Info("plain")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "parser", entries[0]["component"])
	assert.Equal(t, float64(2), entries[0]["attempt"])
	assert.Equal(t, "req-1", entries[0]["request_id"])
	assert.Equal(t, float64(3), entries[0]["tokens"])

	_, hasComponent := entries[1]["component"]
	assert.False(t, hasComponent, "parent logger must not inherit derived fields")
}

func TestLoggerErrorWithErr(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo)
	logger.ErrorWithErr("failed", errors.New("disk full"))
	logger.WarnWithErr("degraded", errors.New("slow"))

	entries := decodeLines(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "disk full", entries[0]["error"])
	assert.Equal(t, "error", entries[0]["level"])
	assert.Equal(t, "slow", entries[1]["error"])
	assert.Equal(t, "warn", entries[1]["level"])
}

func TestLoggerLogError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
		wantCode  string
	}{
		{
			name:      "plain error",
			err:       errors.New("plain"),
			wantLevel: "error",
		},
		{
			name:      "invocation failure",
			err:       mdwerror.New("handler failed").WithCode(mdwerror.CodeInvocationFailed).WithOperation("dispatch"),
			wantLevel: "error",
			wantCode:  "INVOCATION_FAILED",
		},
		{
			name:      "low severity",
			err:       mdwerror.New("not found").WithCode(mdwerror.CodeNotFound).WithSeverity(mdwerror.SeverityLow),
			wantLevel: "info",
			wantCode:  "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(LevelTrace)
			logger.LogError(tt.err)

			entries := decodeLines(t, buf)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantLevel, entries[0]["level"])
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, entries[0]["error_code"])
			}
		})
	}
}

func TestLoggerLogErrorStack(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo)
	logger.LogError(mdwerror.New("with stack").WithCode(mdwerror.CodeInternal))

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	stack, ok := entries[0]["stack"].(string)
	require.True(t, ok, "stack field should be present")
	assert.NotEmpty(t, stack)
}

func TestLoggerLogErrorNil(t *testing.T) {
	logger, buf := newBufferLogger(LevelTrace)
	logger.LogError(nil)
	assert.Empty(t, buf.String())
}

func TestLoggerIsLevelEnabled(t *testing.T) {
	logger, _ := newBufferLogger(LevelWarn)

	tests := []struct {
		level Level
		want  bool
	}{
		{LevelTrace, false},
		{LevelDebug, false},
		{LevelInfo, false},
		{LevelWarn, true},
		{LevelError, true},
		{LevelFatal, true},
	}
	for _, tt := range tests {
		if got := logger.IsLevelEnabled(tt.level); got != tt.want {
			t.Errorf("IsLevelEnabled(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{Level: LevelInfo, Format: FormatConsole, Output: &buf, NoColor: true})
	logger.Info("ready", Field("port", 0))

	out := buf.String()
	assert.Contains(t, out, "ready")
	assert.Contains(t, out, "port=0")
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Error("nothing")
	assert.False(t, logger.IsLevelEnabled(LevelFatal))
}

func TestGlobalLoggerFunctions(t *testing.T) {
	original := GetDefault()
	defer SetDefault(original)

	logger, buf := newBufferLogger(LevelDebug)
	SetDefault(logger)
	SetDefault(nil)

	Debug("d")
	Info("i")
	Warn("w")
	Error("e")

	assert.Len(t, decodeLines(t, buf), 4)
}

func BenchmarkLoggerInfo(b *testing.B) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark", Field("i", i))
	}
}
