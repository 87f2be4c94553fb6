// Package error provides structured errors for clidispatch.
//
// Package: error
// Title: Error Handling Framework
// Description: Errors carry a Code, a Severity derived from the code, free-form
//              details, the failed operation, the request ID of the dispatch
//              and a stack trace captured at creation. The stack trace is what
//              the dispatcher and the interactive loop print as the full
//              diagnostic trace when a handler or the loop itself fails.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Usage:
//
//	import mdwerror "github.com/msto63/clidispatch/foundation/core/error"
//
//	err := mdwerror.New("handler not found").
//		WithCode(mdwerror.CodeHandlerResolution).
//		WithOperation("registry.Build").
//		WithDetail("command", "greet")
//
//	if mdwerror.HasCode(err, mdwerror.CodeHandlerResolution) {
//		// skip the record
//	}
package error
