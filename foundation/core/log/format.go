// File: format.go
// Title: Log Format Definitions
// Description: Output formats for log messages. JSON writes zerolog's native
//              line format, console renders zerolog's human-readable writer.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02

package log

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Format represents the output format for log messages
type Format int

const (
	// FormatJSON outputs one JSON object per line
	FormatJSON Format = iota

	// FormatConsole outputs human-readable lines for terminals
	FormatConsole
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatConsole:
		return "console"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a log format. "text" is accepted as an
// alias for console.
func ParseFormat(format string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return FormatJSON, nil
	case "console", "text", "":
		return FormatConsole, nil
	default:
		return FormatConsole, &ParseError{Value: format, Type: "format"}
	}
}

func formatWriter(format Format, out io.Writer, noColor bool) io.Writer {
	if format == FormatConsole {
		return zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    noColor,
			TimeFormat: "15:04:05",
		}
	}
	return out
}
