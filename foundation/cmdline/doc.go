// File: doc.go
// Title: Command Line Engine Package Documentation
// Description: Entry point for parsing and dispatching interactive commands.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-07
// Modified: 2025-03-07

/*
Package cmdline is a small dispatch engine for interactive command lines.

A line of text is parsed into a command, positional parameters, flags and
--key=value arguments (package parser), the command is looked up in an
ordered registry of declared commands (package registry) and the first
match's handler is invoked (package dispatcher):

	engine, err := cmdline.New([]registry.Spec{
		{Name: "greet", Params: 1, Description: "Say hello"},
	}, registry.Handlers{"greet": greet}, cmdline.Options{Logger: logger})
	if err != nil {
		return err
	}

	result, err := engine.Execute(ctx, `greet bob --loud=true`)
	if err != nil {
		return err
	}
	if result.Terminates() {
		return nil
	}
	fmt.Println(result.Output)

The engine is synchronous and holds no mutable state after construction.
*/
package cmdline
