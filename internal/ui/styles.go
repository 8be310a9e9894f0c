package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/pollwatch/internal/observer"
)

// Colors
var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorMuted   = lipgloss.Color("#6B7280")
	ColorBorder  = lipgloss.Color("#3F3F46")
	ColorText    = lipgloss.Color("#E4E4E7")
	ColorDanger  = lipgloss.Color("#F56565")

	// Change colors
	ColorCreated    = lipgloss.Color("#86EFAC") // light green
	ColorCreatedBg  = lipgloss.Color("#14532D") // dark green bg
	ColorModified   = lipgloss.Color("#FDE047") // yellow
	ColorModifiedBg = lipgloss.Color("#713F12") // dark amber bg
	ColorErased     = lipgloss.Color("#FCA5A5") // light red
	ColorErasedBg   = lipgloss.Color("#7F1D1D") // dark red bg
)

// Styles
var (
	// Header
	HeaderStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F1F23")).
			Padding(0, 1)

	TargetStyle = lipgloss.NewStyle().
			Background(ColorPrimary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1).
			Bold(true)

	PausedBadge = lipgloss.NewStyle().
			Background(ColorModified).
			Foreground(lipgloss.Color("#000000")).
			Padding(0, 1).
			Bold(true)

	StatsStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// Change log
	LogPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	TimeStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Activity map
	ActivityPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder)

	// Help bar
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	HelpKey = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)
)

// KindStyle returns the foreground style used for a change kind
func KindStyle(kind observer.ChangeKind) lipgloss.Style {
	switch kind {
	case observer.Created:
		return lipgloss.NewStyle().Foreground(ColorCreated)
	case observer.Modified:
		return lipgloss.NewStyle().Foreground(ColorModified)
	case observer.Erased:
		return lipgloss.NewStyle().Foreground(ColorErased)
	}
	return lipgloss.NewStyle().Foreground(ColorMuted)
}

// kindMarker is the single-character tag shown in front of a log line
func kindMarker(kind observer.ChangeKind) string {
	switch kind {
	case observer.Created:
		return "+"
	case observer.Modified:
		return "~"
	case observer.Erased:
		return "-"
	}
	return "?"
}
