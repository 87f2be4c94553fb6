// ============================================================================
// clidispatch - Interactive command dispatch engine
// ============================================================================
//
// Package:     version
// Description: Central version information for the engine and the binary
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import "fmt"

// CLI is the engine version reported by the cliversion command
const CLI = "2.0.2"

// Build information, set via -ldflags at build time
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns a one-line summary of the build
func Info() string {
	return fmt.Sprintf("clidispatch %s (engine %s, commit %s, built %s)", Version, CLI, GitCommit, BuildDate)
}

// Component returns the version for a named component
func Component(name string) string {
	switch name {
	case "engine", "cliversion":
		return CLI
	case "binary", "clidispatch":
		return Version
	default:
		return CLI
	}
}
