// File: doc.go
// Title: Dispatcher Package Documentation
// Description: Command routing, reserved commands and tagged results.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-06
// Modified: 2025-03-06

/*
Package dispatcher routes parsed commands to registered handlers.

Three names are reserved and never reach the registry: help renders the
command table (help <name> describes one command), cliversion returns the
engine version and exit asks the caller to end the session.

Every call yields a Result whose Status tells the outcomes apart:

	StatusOK        handler ran; Output may be empty
	StatusNotFound  Output is the configured not-found message
	StatusFailed    handler returned an error or panicked; Output is empty
	StatusExit      exit was entered
	StatusHelp      rendered help
	StatusVersion   the version string
	StatusUsage     shape enforcement rejected the call

Handler failures are logged with their stack under a per-dispatch request
ID and reported in Result.Err. They never propagate as panics.
*/
package dispatcher
