// File: doc.go
// Title: Command Registry Package Documentation
// Description: Command metadata, handler binding and the ordered registry.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-05
// Modified: 2025-03-05

/*
Package registry binds declarative command records to handlers.

Records are plain Spec values, written in code or decoded from a manifest.
The handler is found through an Owner by the record's Handler name, which
defaults to the command name; a record may instead carry the function in
Func:

	reg := registry.Build([]registry.Spec{
		{Name: "greet", Params: 1, Description: "Say hello"},
		{Name: "hi", Handler: "greet"},
	}, registry.Handlers{"greet": greet}, registry.Options{Logger: logger})

Build never fails as a whole. A record with a blank name, an out of range
parameter count or an unresolvable handler is logged, recorded in Skipped
and left out. Names are lower-cased. When two records share a name both are
kept and the first one wins every lookup.

Required parameters, argument keys and flags are metadata only. Descriptor
CheckShape reports what is missing from an invocation; callers decide
whether to enforce it.
*/
package registry
