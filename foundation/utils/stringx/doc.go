// File: doc.go
// Title: Package Documentation for stringx
// Description: Overview of the string helpers used by the command line
//              packages.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core string utilities
// - 2025-03-02 v0.2.0: Reduced to the helpers the dispatch packages use

// Package stringx provides the small set of string helpers shared by the
// clidispatch foundation packages.
//
// The functions are Unicode-aware: IsBlank treats every Unicode space as
// whitespace and Truncate never splits a multi-byte rune. LowerAll is used to
// normalise declared alias, argument and flag names before they are stored in
// a command descriptor.
package stringx
