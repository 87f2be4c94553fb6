// File: discovery.go
// Title: Configuration File Discovery Implementation
// Description: Locates a configuration file across a list of directories,
//              base names and extensions when no explicit path is given.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-03-03
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of file discovery
// - 2025-03-03 v0.2.0: JSONC extensions, env-only fallback removed

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	mdwerror "github.com/msto63/clidispatch/foundation/core/error"
)

// DiscoveryOptions defines options for automatic configuration file discovery
type DiscoveryOptions struct {
	Paths      []string // Directories to search for config files
	Filenames  []string // Base filenames to look for (without extension)
	Extensions []string // File extensions to try
	EnvPrefix  string   // Environment variable prefix for overrides
	Required   bool     // Whether finding a config file is required
}

// DefaultExtensions lists the extensions tried during discovery, in order
var DefaultExtensions = []string{".toml", ".yaml", ".yml", ".jsonc", ".json"}

// Discover finds and loads the first existing configuration file. When none
// exists and the file is not required, an empty configuration is returned.
func Discover(options DiscoveryOptions) (*Config, error) {
	options = withDiscoveryDefaults(options)

	configPath, err := FindConfigFile(options)
	if err != nil {
		if options.Required {
			return nil, err
		}
		return Empty(options.EnvPrefix), nil
	}

	cfg, err := LoadWithOptions(configPath, LoadOptions{
		Format:    FormatAuto,
		EnvPrefix: options.EnvPrefix,
	})
	if err != nil {
		return nil, mdwerror.Wrap(err, fmt.Sprintf("found config file %s but failed to load", configPath)).
			WithOperation("config.Discover").
			WithDetail("configPath", configPath)
	}
	return cfg, nil
}

// FindConfigFile searches for a configuration file without loading it
func FindConfigFile(options DiscoveryOptions) (string, error) {
	options = withDiscoveryDefaults(options)

	candidates := ListPossibleConfigFiles(options)
	for _, configPath := range candidates {
		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			return configPath, nil
		}
	}

	return "", mdwerror.New(fmt.Sprintf("no configuration file found in paths: %s", strings.Join(candidates, ", "))).
		WithCode(mdwerror.CodeMissingConfig).
		WithOperation("config.FindConfigFile").
		WithDetail("searchPaths", candidates)
}

// ListPossibleConfigFiles returns every candidate path in search order
func ListPossibleConfigFiles(options DiscoveryOptions) []string {
	paths := make([]string, 0, len(options.Paths)*len(options.Filenames)*len(options.Extensions))
	for _, dir := range options.Paths {
		for _, filename := range options.Filenames {
			for _, ext := range options.Extensions {
				paths = append(paths, filepath.Join(dir, filename+ext))
			}
		}
	}
	return paths
}

func withDiscoveryDefaults(options DiscoveryOptions) DiscoveryOptions {
	if len(options.Paths) == 0 {
		options.Paths = []string{"."}
	}
	if len(options.Filenames) == 0 {
		options.Filenames = []string{"config"}
	}
	if len(options.Extensions) == 0 {
		options.Extensions = DefaultExtensions
	}
	return options
}
