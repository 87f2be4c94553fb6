// File: doc.go
// Title: Command Line Parser Package Documentation
// Description: Tokenizes and classifies interactive command lines.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-04
// Modified: 2025-03-04

/*
Package parser turns one line of free text into a command invocation.

The whole line is lower-cased, split on whitespace and every token is placed
in exactly one category:

	greet bob --loud=true -v --msg="hello  world" ???

	Command  "greet"
	Params   ["bob"]
	Flags    {"v"}
	Args     {"loud": "true", "msg": "hello  world"}
	Ignored  ["???"]

The first token is always the command. Parameters are runs of letters,
digits and underscores; a parameter equal to the command is dropped.
Arguments use --key=value, or --key="value" when the value contains
whitespace. A token of the form -name or --name is a flag unless flag parsing
is disabled.

In QuoteLegacy mode quoted values keep their quotes, inner whitespace runs
are replaced by a placeholder and every comma of the line becomes a period.
*/
package parser
