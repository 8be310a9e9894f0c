package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/pollwatch/internal/observer"
)

const helpKeyColumnWidth = 12 // Width for key column in help text

// HelpOverlay displays keyboard shortcuts in a centered overlay
type HelpOverlay struct {
	visible bool
	width   int
	height  int
}

// NewHelpOverlay creates a new help overlay component
func NewHelpOverlay() HelpOverlay {
	return HelpOverlay{}
}

// Toggle toggles the visibility of the help overlay
func (h *HelpOverlay) Toggle() {
	h.visible = !h.visible
}

// IsVisible returns whether the help overlay is visible
func (h HelpOverlay) IsVisible() bool {
	return h.visible
}

// SetSize sets the dimensions of the help overlay
func (ho *HelpOverlay) SetSize(w, h int) {
	ho.width = w
	ho.height = h
}

// View renders the help overlay
func (h HelpOverlay) View() string {
	if !h.visible {
		return ""
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)

	titleStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Bold(true).
		MarginTop(1)

	keyStyle := HelpKey
	descStyle := lipgloss.NewStyle().Foreground(ColorText)

	var content strings.Builder

	content.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	content.WriteString("\n")

	content.WriteString(sectionStyle.Render("LOG"))
	content.WriteString("\n")
	content.WriteString(formatHelpLine(keyStyle, descStyle, "↑↓/jk", "Scroll"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "PgUp/PgDn", "Scroll faster"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "g/G", "Oldest / follow newest"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "c", "Clear log"))

	content.WriteString(sectionStyle.Render("WATCH"))
	content.WriteString("\n")
	content.WriteString(formatHelpLine(keyStyle, descStyle, "p/Space", "Pause or resume polling"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "m/Tab", "Toggle activity map"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "o", "Open target in file manager"))

	content.WriteString(sectionStyle.Render("OTHER"))
	content.WriteString("\n")
	content.WriteString(formatHelpLine(keyStyle, descStyle, "?", "Toggle this help"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "q", "Quit"))

	content.WriteString(sectionStyle.Render("COLORS"))
	content.WriteString("\n")
	content.WriteString(formatColorLine(observer.Created, "Created"))
	content.WriteString(formatColorLine(observer.Modified, "Modified"))
	content.WriteString(strings.TrimSuffix(formatColorLine(observer.Erased, "Erased"), "\n"))

	box := boxStyle.Render(content.String())

	return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, box)
}

// formatHelpLine formats a single help line with key and description
func formatHelpLine(keyStyle, descStyle lipgloss.Style, key, desc string) string {
	return keyStyle.Width(helpKeyColumnWidth).Render(key) + descStyle.Render(desc) + "\n"
}

// formatColorLine formats a color indicator line
func formatColorLine(kind observer.ChangeKind, desc string) string {
	descStyle := lipgloss.NewStyle().Foreground(ColorText)
	return KindStyle(kind).Width(helpKeyColumnWidth).Render("████") + descStyle.Render(desc) + "\n"
}

// HelpBar renders a bottom help bar with key hints
func HelpBar(width int, keys KeyMap) string {
	var parts []string
	for _, b := range keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, HelpKey.Render(h.Key)+HelpStyle.UnsetPadding().Render(" "+h.Desc))
	}

	bar := strings.Join(parts, HelpStyle.UnsetPadding().Render("  |  "))

	return HelpStyle.Width(width).Render(bar)
}
