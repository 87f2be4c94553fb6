// File: severity.go
// Title: Error Severity Levels
// Description: Severity classification for errors, used by the logger to
//              pick a log level when an error is logged without an explicit one.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow covers user mistakes such as malformed input.
	SeverityLow Severity = iota

	// SeverityMedium covers failures that affect one operation only.
	SeverityMedium

	// SeverityHigh covers failures that end the interactive session.
	SeverityHigh

	// SeverityCritical covers failures that prevent startup.
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeEnvironmentError, CodeMissingConfig:
		return SeverityCritical

	case CodeInternal, CodeConfigError, CodeInvalidConfig:
		return SeverityHigh

	case CodeInvocationFailed, CodeHandlerResolution:
		return SeverityMedium

	case CodeInvalidInput, CodeEmptyInput, CodeInputTooLong, CodeNotFound, CodeShapeMismatch,
		CodeValidationFailed, CodeRequiredField, CodeValueOutOfRange:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
