package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
	colorFg      = lipgloss.Color("#F9FAFB")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	PromptStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	EchoStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	OutputStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	HintStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	StatusOKStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)
