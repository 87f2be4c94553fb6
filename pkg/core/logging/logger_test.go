package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwerror "github.com/msto63/clidispatch/foundation/core/error"
	mdwlog "github.com/msto63/clidispatch/foundation/core/log"
)

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig("clidispatch")

	assert.Equal(t, "clidispatch", cfg.ServiceName)
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.Equal(t, DefaultRotation(), cfg.Rotation)
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantLevel mdwlog.Level
		wantErr   bool
	}{
		{"defaults", "", "", mdwlog.LevelInfo, false},
		{"debug json", "debug", "json", mdwlog.LevelDebug, false},
		{"text alias", "warn", "text", mdwlog.LevelWarn, false},
		{"bad level", "loud", "json", mdwlog.LevelInfo, true},
		{"bad format", "info", "xml", mdwlog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, closer, err := NewLogger(LoggerConfig{Level: tt.level, Format: tt.format, Terminal: &buf})
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidConfig))
				return
			}
			require.NoError(t, err)
			defer closer.Close()
			assert.Equal(t, tt.wantLevel, logger.GetLevel())
		})
	}
}

func TestNewLoggerWritesServiceName(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := NewLogger(LoggerConfig{
		ServiceName: "clidispatch",
		Format:      "json",
		Terminal:    &buf,
	})
	require.NoError(t, err)
	defer closer.Close()

	logger.Info("started")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "clidispatch", entry["logger"])
	assert.Equal(t, "started", entry["message"])
}

func TestNewLoggerFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clidispatch.log")
	var terminal, extra bytes.Buffer

	logger, closer, err := NewLogger(LoggerConfig{
		Level:             "debug",
		Format:            "json",
		Terminal:          &terminal,
		File:              path,
		AdditionalOutputs: []io.Writer{&extra},
	})
	require.NoError(t, err)

	logger.Debug("written everywhere")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written everywhere")
	assert.Contains(t, terminal.String(), "written everywhere")
	assert.Contains(t, extra.String(), "written everywhere")
}

func TestNewLoggerFileOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "only.log")

	logger, closer, err := NewLogger(LoggerConfig{
		Format:     "console",
		File:       path,
		NoTerminal: true,
	})
	require.NoError(t, err)

	logger.Warn("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
	assert.False(t, strings.Contains(string(data), "\x1b["), "file output must not carry color codes")
}

func TestNewLoggerNoOutputs(t *testing.T) {
	logger, closer, err := NewLogger(LoggerConfig{NoTerminal: true})
	require.NoError(t, err)
	assert.NotPanics(t, func() { logger.Error("discarded") })
	assert.NoError(t, closer.Close())
}
