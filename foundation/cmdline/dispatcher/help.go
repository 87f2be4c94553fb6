// File: help.go
// Title: Help Rendering
// Description: Renders the command table for the reserved help command and
//              the single-command description for "help <name>".
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-06
// Modified: 2025-03-06

package dispatcher

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/msto63/clidispatch/foundation/cmdline/registry"
)

var headerColor = lipgloss.Color("#7C3AED")

// RenderTable renders all descriptors as a table. Shadowed duplicates are
// omitted since they can never be reached.
func RenderTable(reg *registry.Registry, renderer *lipgloss.Renderer) string {
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	headerStyle := renderer.NewStyle().Bold(true).Foreground(headerColor).Padding(0, 1)
	cellStyle := renderer.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(renderer.NewStyle().Foreground(lipgloss.Color("#6B7280"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("COMMAND", "USAGE", "ALIASES", "DESCRIPTION")

	seen := make(map[string]struct{})
	for _, d := range reg.Descriptors() {
		if _, dup := seen[d.Name()]; dup {
			continue
		}
		seen[d.Name()] = struct{}{}
		t.Row(d.Name(), d.Usage(), strings.Join(d.Aliases(), ", "), d.Description())
	}

	footer := fmt.Sprintf("Built-in: %s [command], %s, %s", CommandHelp, CommandVersion, CommandExit)
	return t.Render() + "\n" + footer
}

// Describe renders the help text of one descriptor
func Describe(d *registry.Descriptor, aliasesEnabled bool) string {
	var b strings.Builder
	b.WriteString(d.Name())
	if desc := d.Description(); desc != "" {
		fmt.Fprintf(&b, " - %s", desc)
	}
	fmt.Fprintf(&b, "\nusage: %s", d.Usage())
	if aliases := d.Aliases(); len(aliases) > 0 {
		note := ""
		if !aliasesEnabled {
			note = " (disabled)"
		}
		fmt.Fprintf(&b, "\naliases: %s%s", strings.Join(aliases, ", "), note)
	}
	return b.String()
}
