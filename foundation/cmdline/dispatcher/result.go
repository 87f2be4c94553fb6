// File: result.go
// Title: Dispatch Results
// Description: Tagged outcome of one dispatch. The status distinguishes a
//              command that produced empty output from one that was not found.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-06
// Modified: 2025-03-06
//
// Change History:
// - 2025-03-06 v0.1.0: Initial result types

package dispatcher

import "time"

// Status classifies the outcome of a dispatch
type Status int

const (
	// StatusOK means a handler ran and returned; Output may be empty
	StatusOK Status = iota

	// StatusNotFound means no command matched; Output is the not-found message
	StatusNotFound

	// StatusFailed means the handler returned an error or panicked
	StatusFailed

	// StatusExit means the exit command was entered
	StatusExit

	// StatusHelp carries rendered help text
	StatusHelp

	// StatusVersion carries the engine version
	StatusVersion

	// StatusUsage means shape enforcement rejected the invocation
	StatusUsage
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not_found"
	case StatusFailed:
		return "failed"
	case StatusExit:
		return "exit"
	case StatusHelp:
		return "help"
	case StatusVersion:
		return "version"
	case StatusUsage:
		return "usage"
	default:
		return "unknown"
	}
}

// Result is the outcome of one dispatch
type Result struct {
	Status     Status
	Output     string
	Command    string
	RequestID  string
	Err        error  // set for StatusFailed and StatusUsage
	Suggestion string // closest known command for StatusNotFound, if enabled
	Duration   time.Duration
}

// Terminates reports whether the session should end
func (r *Result) Terminates() bool {
	return r.Status == StatusExit
}

// Printable reports whether Output should be shown to the user
func (r *Result) Printable() bool {
	return r.Status != StatusExit && r.Status != StatusFailed
}
