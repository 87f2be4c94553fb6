// ============================================================================
// clidispatch - Interactive command dispatch engine
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating loggers with optional rotating
//              file output
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	mdwerror "github.com/msto63/clidispatch/foundation/core/error"
	mdwlog "github.com/msto63/clidispatch/foundation/core/log"
)

// Rotation controls log file rotation
type Rotation struct {
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// DefaultRotation returns the rotation used when none is configured
func DefaultRotation() Rotation {
	return Rotation{MaxSize: 16, MaxBackups: 3, MaxAge: 14}
}

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name, added to every entry
	ServiceName string

	// Log level (trace, debug, info, warn, error, fatal)
	Level string

	// Output format: "console" / "text" or "json"
	Format string

	// Terminal output; defaults to stderr so diagnostics never mix with
	// command output on stdout
	Terminal io.Writer

	// NoTerminal disables terminal output, e.g. when only File is wanted
	NoTerminal bool

	// File enables rotating file output when set
	File     string
	Rotation Rotation

	// NoColor disables ANSI colors in console format
	NoColor bool

	// Additional outputs
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "console",
		Rotation:    DefaultRotation(),
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLogger creates a logger from cfg. The returned closer releases the log
// file and must be called when the process is done logging.
func NewLogger(cfg LoggerConfig) (*mdwlog.Logger, io.Closer, error) {
	level, err := mdwlog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, mdwerror.Wrap(err, "invalid log level").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("logging.NewLogger").
			WithDetail("level", cfg.Level)
	}
	format, err := mdwlog.ParseFormat(cfg.Format)
	if err != nil {
		return nil, nil, mdwerror.Wrap(err, "invalid log format").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("logging.NewLogger").
			WithDetail("format", cfg.Format)
	}

	var writers []io.Writer
	if !cfg.NoTerminal {
		terminal := cfg.Terminal
		if terminal == nil {
			terminal = os.Stderr
		}
		writers = append(writers, terminal)
	}

	var closer io.Closer = nopCloser{}
	noColor := cfg.NoColor
	if cfg.File != "" {
		rotation := cfg.Rotation
		if rotation == (Rotation{}) {
			rotation = DefaultRotation()
		}
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    rotation.MaxSize,
			MaxBackups: rotation.MaxBackups,
			MaxAge:     rotation.MaxAge,
			Compress:   rotation.Compress,
		}
		writers = append(writers, fileWriter)
		closer = fileWriter
		noColor = true
	}
	writers = append(writers, cfg.AdditionalOutputs...)

	var output io.Writer
	switch len(writers) {
	case 0:
		output = io.Discard
	case 1:
		output = writers[0]
	default:
		output = io.MultiWriter(writers...)
	}

	logger := mdwlog.NewWithConfig(mdwlog.Config{
		Level:   level,
		Format:  format,
		Output:  output,
		Name:    cfg.ServiceName,
		NoColor: noColor,
	})
	return logger, closer, nil
}
