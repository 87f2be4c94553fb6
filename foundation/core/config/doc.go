// File: doc.go
// Title: Configuration Management Package Documentation
// Description: Package config loads configuration documents from TOML, YAML
//              and JSON-with-comments files, applies environment overrides
//              and decodes documents into typed structs.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-03-03
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2025-03-03 v0.2.0: JSONC, Decode and .env support

/*
Package config provides file-based configuration loading.

The format is chosen from the file extension: .toml (default), .yaml/.yml,
and .json/.jsonc. JSON documents may contain comments and trailing commas.

Values are read with dot-separated keys. When an environment prefix is set,
a non-empty variable named PREFIX_SECTION_KEY takes precedence over the
document:

	cfg, err := config.LoadWithOptions("clidispatch.toml", config.LoadOptions{
		EnvPrefix: "CLIDISPATCH",
	})
	if err != nil {
		return err
	}
	prompt := cfg.GetString("shell.prompt", "$ ")   // CLIDISPATCH_SHELL_PROMPT wins

Typed access to a whole document goes through Decode, which uses the
document's own decoder and struct tags:

	var settings Settings
	if err := cfg.Decode(&settings); err != nil {
		return err
	}

LoadEnvFiles reads .env files into the process environment before loading, so
overrides can be kept next to the binary. Discover searches a list of
directories and base names when no explicit path is given.

All errors are *error.Error values with configuration codes
(CodeMissingConfig, CodeInvalidConfig, CodeEnvironmentError).
*/
package config
