// Package log provides structured logging for the dispatch engine.
//
// Package: log
// Title: Structured Logging
// Description: Structured, levelled logging with contextual fields and
//              integration with the foundation error type. Output is
//              produced by zerolog, either as JSON lines or as a
//              human-readable console format.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2025-03-02 v0.2.0: zerolog backend, timers and audit level removed
//
// Usage:
//
//	logger := log.NewWithConfig(log.Config{
//		Level:  log.LevelInfo,
//		Format: log.FormatJSON,
//		Output: os.Stderr,
//	}).WithField("component", "dispatcher")
//
//	logger.Info("command dispatched", log.Fields{"command": "greet"})
//	logger.LogError(err)
//
// LogError understands *error.Error values and adds their code, severity,
// operation, details and captured stack as fields. Logging at LevelFatal
// never terminates the process.
package log
