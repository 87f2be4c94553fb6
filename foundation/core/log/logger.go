// File: logger.go
// Title: Core Logger Implementation
// Description: Implements the Logger type that provides structured logging
//              with contextual fields on top of zerolog, and integration with
//              the foundation error type for coded errors and stack traces.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging
// - 2025-03-02 v0.2.0: Replaced hand-written formatters with a zerolog backend

package log

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	mdwerror "github.com/msto63/clidispatch/foundation/core/error"
)

func init() {
	// Filtering happens per Logger; keep the global gate fully open.
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}

// Logger represents a structured logger with contextual information.
// Loggers are immutable; the With* methods return derived loggers.
type Logger struct {
	zl     zerolog.Logger
	level  Level
	name   string
	fields Fields
}

// Config represents logger configuration
type Config struct {
	Level   Level
	Format  Format
	Output  io.Writer
	Name    string
	NoColor bool
}

// New creates a new logger writing JSON to stderr at the default level
func New() *Logger {
	return NewWithConfig(Config{
		Level:  DefaultLevel(),
		Format: FormatJSON,
		Output: os.Stderr,
	})
}

// NewWithConfig creates a new logger with the specified configuration
func NewWithConfig(config Config) *Logger {
	output := config.Output
	if output == nil {
		output = os.Stderr
	}

	ctx := zerolog.New(formatWriter(config.Format, output, config.NoColor)).
		Level(config.Level.toZerolog()).
		With().
		Timestamp()
	if config.Name != "" {
		ctx = ctx.Str("logger", config.Name)
	}

	return &Logger{
		zl:     ctx.Logger(),
		level:  config.Level,
		name:   config.Name,
		fields: Fields{},
	}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop(), level: LevelFatal + 1, fields: Fields{}}
}

// WithLevel returns a copy with a different minimum level
func (l *Logger) WithLevel(level Level) *Logger {
	clone := l.clone()
	clone.zl = l.zl.Level(level.toZerolog())
	clone.level = level
	return clone
}

// WithName returns a copy with a logger name field
func (l *Logger) WithName(name string) *Logger {
	clone := l.clone()
	clone.zl = l.zl.With().Str("logger", name).Logger()
	clone.name = name
	return clone
}

// WithField returns a copy carrying key on every entry
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.WithFields(Fields{key: value})
}

// WithFields returns a copy carrying fields on every entry
func (l *Logger) WithFields(fields Fields) *Logger {
	clone := l.clone()
	clone.zl = l.zl.With().Fields(map[string]interface{}(fields)).Logger()
	clone.fields = l.fields.Merge(fields)
	return clone
}

// WithRequestID returns a copy tagged with a request ID
func (l *Logger) WithRequestID(requestID string) *Logger {
	return l.WithField("request_id", requestID)
}

// Trace logs a trace level message
func (l *Logger) Trace(message string, fields ...Fields) {
	l.log(LevelTrace, message, nil, fields...)
}

// Debug logs a debug level message
func (l *Logger) Debug(message string, fields ...Fields) {
	l.log(LevelDebug, message, nil, fields...)
}

// Info logs an info level message
func (l *Logger) Info(message string, fields ...Fields) {
	l.log(LevelInfo, message, nil, fields...)
}

// Warn logs a warning level message
func (l *Logger) Warn(message string, fields ...Fields) {
	l.log(LevelWarn, message, nil, fields...)
}

// Error logs an error level message
func (l *Logger) Error(message string, fields ...Fields) {
	l.log(LevelError, message, nil, fields...)
}

// ErrorWithErr logs an error with an error object
func (l *Logger) ErrorWithErr(message string, err error, fields ...Fields) {
	l.log(LevelError, message, err, fields...)
}

// WarnWithErr logs a warning with an error object
func (l *Logger) WarnWithErr(message string, err error, fields ...Fields) {
	l.log(LevelWarn, message, err, fields...)
}

// LogError logs an error with its full context. Foundation errors contribute
// code, severity, operation, details and the captured stack; the level follows
// the severity.
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}

	var mdwErr *mdwerror.Error
	if !errors.As(err, &mdwErr) {
		l.log(LevelError, err.Error(), err)
		return
	}

	fields := Fields{
		"error_code":     mdwErr.Code().String(),
		"error_severity": mdwErr.Severity().String(),
	}
	if op := mdwErr.Operation(); op != "" {
		fields["error_operation"] = op
	}
	if rid := mdwErr.RequestID(); rid != "" {
		fields["request_id"] = rid
	}
	for k, v := range mdwErr.Details() {
		fields["error_"+k] = v
	}
	if stack := mdwErr.FormatStack(); stack != "" {
		fields["stack"] = stack
	}

	switch mdwErr.Severity() {
	case mdwerror.SeverityLow:
		l.log(LevelInfo, err.Error(), err, fields)
	case mdwerror.SeverityCritical:
		l.log(LevelFatal, err.Error(), err, fields)
	default:
		l.log(LevelError, err.Error(), err, fields)
	}
}

// IsLevelEnabled returns true if the given level is enabled
func (l *Logger) IsLevelEnabled(level Level) bool {
	return level.ShouldLog(l.level)
}

// GetLevel returns the minimum log level
func (l *Logger) GetLevel() Level {
	return l.level
}

// Name returns the logger name
func (l *Logger) Name() string {
	return l.name
}

func (l *Logger) log(level Level, message string, err error, fields ...Fields) {
	if !level.ShouldLog(l.level) {
		return
	}

	ev := l.zl.WithLevel(level.toZerolog())
	if ev == nil {
		return
	}
	if err != nil {
		ev = ev.Err(err)
	}
	for _, f := range fields {
		if len(f) > 0 {
			ev = ev.Fields(map[string]interface{}(f))
		}
	}
	ev.Msg(message)
}

func (l *Logger) clone() *Logger {
	return &Logger{
		zl:     l.zl,
		level:  l.level,
		name:   l.name,
		fields: l.fields.Merge(nil),
	}
}

var (
	defaultLogger = NewWithConfig(Config{
		Level:  DefaultLevel(),
		Format: FormatConsole,
		Output: os.Stderr,
	})
	defaultMu sync.RWMutex
)

// GetDefault returns the process-wide default logger
func GetDefault() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide default logger
func SetDefault(logger *Logger) {
	if logger == nil {
		return
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// Debug logs to the default logger
func Debug(message string, fields ...Fields) {
	GetDefault().Debug(message, fields...)
}

// Info logs to the default logger
func Info(message string, fields ...Fields) {
	GetDefault().Info(message, fields...)
}

// Warn logs to the default logger
func Warn(message string, fields ...Fields) {
	GetDefault().Warn(message, fields...)
}

// Error logs to the default logger
func Error(message string, fields ...Fields) {
	GetDefault().Error(message, fields...)
}
