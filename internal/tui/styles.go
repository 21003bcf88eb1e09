// Package tui provides the terminal user interface for Workplan.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette for the timeline view.
var (
	ColorPrimary = lipgloss.Color("#7C3AED") // Purple
	ColorBar     = lipgloss.Color("#10B981") // Green
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
	ColorWarning = lipgloss.Color("#F59E0B") // Yellow
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorBorder  = lipgloss.Color("#4B5563") // Dark gray
)

// Base styles for the timeline view.
var (
	// StyleTitle is used for the project header.
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// StyleSubtitle is used for secondary information.
	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleTask is used for task titles.
	StyleTask = lipgloss.NewStyle()

	// StyleBar is used for schedule bars.
	StyleBar = lipgloss.NewStyle().
			Foreground(ColorBar)

	// StyleBarParent is used for bars of tasks with subtasks.
	StyleBarParent = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	// StyleError is used for error messages.
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	// StyleHelp is used for the key help line.
	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)

	// StyleFrame draws the timeline box.
	StyleFrame = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
)
