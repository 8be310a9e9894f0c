package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/lumipallolabs/pollwatch/internal/model"
	"github.com/lumipallolabs/pollwatch/internal/observer"
)

const (
	maxLogLines  = 5000 // oldest lines are dropped beyond this
	logTimestamp = "15:04:05"
)

// ChangeLog is a scrollable, newest-last list of reported changes
type ChangeLog struct {
	root    string
	changes []model.Change
	lines   []string // rendered changes, parallel to changes
	dirty   bool     // lines changed since the viewport last saw them
	vp      viewport.Model
	follow  bool // keep the newest line in view
	focused bool
	width   int
	height  int
}

// NewChangeLog creates a change log rendering paths relative to root
func NewChangeLog(root string) ChangeLog {
	return ChangeLog{
		root:   root,
		vp:     viewport.New(0, 0),
		follow: true,
	}
}

// SetSize sets the outer dimensions of the panel
func (l *ChangeLog) SetSize(w, h int) {
	l.width = w
	l.height = h
	l.vp.Width = max(w-4, 1)
	l.vp.Height = max(h-2, 1)
	l.dirty = true
	l.sync()
}

// SetFocused sets whether the panel owns keyboard scrolling
func (l *ChangeLog) SetFocused(focused bool) {
	l.focused = focused
}

// Append adds a change to the end of the log
func (l *ChangeLog) Append(c model.Change) {
	l.changes = append(l.changes, c)
	l.lines = append(l.lines, l.formatLine(c))
	if over := len(l.changes) - maxLogLines; over > 0 {
		l.changes = append(l.changes[:0], l.changes[over:]...)
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
	l.dirty = true
}

// Clear drops every line
func (l *ChangeLog) Clear() {
	l.changes = nil
	l.lines = nil
	l.follow = true
	l.dirty = true
	l.sync()
}

// Len returns the number of lines held
func (l ChangeLog) Len() int {
	return len(l.changes)
}

// Changes returns the lines held, oldest first
func (l ChangeLog) Changes() []model.Change {
	return l.changes
}

// ScrollUp moves the view towards older changes
func (l *ChangeLog) ScrollUp(n int) {
	l.sync()
	l.vp.LineUp(n)
	l.follow = false
}

// ScrollDown moves the view towards newer changes
func (l *ChangeLog) ScrollDown(n int) {
	l.sync()
	l.vp.LineDown(n)
	l.follow = l.vp.AtBottom()
}

// PageUp scrolls one screen towards older changes
func (l *ChangeLog) PageUp() {
	l.ScrollUp(l.vp.Height)
}

// PageDown scrolls one screen towards newer changes
func (l *ChangeLog) PageDown() {
	l.ScrollDown(l.vp.Height)
}

// Top jumps to the oldest change
func (l *ChangeLog) Top() {
	l.sync()
	l.vp.GotoTop()
	l.follow = false
}

// Bottom jumps to the newest change and keeps following it
func (l *ChangeLog) Bottom() {
	l.sync()
	l.vp.GotoBottom()
	l.follow = true
}

// Following reports whether new lines scroll into view automatically
func (l ChangeLog) Following() bool {
	return l.follow
}

// sync hands pending lines to the viewport
func (l *ChangeLog) sync() {
	if !l.dirty {
		return
	}
	l.vp.SetContent(strings.Join(l.lines, "\n"))
	if l.follow {
		l.vp.GotoBottom()
	}
	l.dirty = false
}

// formatLine renders "15:04:05 + rel/path  1.2 kB PNG"
func (l ChangeLog) formatLine(c model.Change) string {
	style := KindStyle(c.Kind)
	line := TimeStyle.Render(c.At.Format(logTimestamp)) + " " +
		style.Bold(true).Render(kindMarker(c.Kind)) + " " +
		style.Render(c.Rel(l.root))

	var meta []string
	if c.Kind != observer.Erased {
		meta = append(meta, humanize.Bytes(uint64(max(c.Size, 0))))
	}
	if c.Type != "" {
		meta = append(meta, c.Type)
	}
	if len(meta) > 0 {
		line += "  " + TimeStyle.Render(strings.Join(meta, " "))
	}
	return line
}

// View renders the log panel
func (l ChangeLog) View() string {
	style := LogPanelStyle.Width(max(l.width-2, 1)).Height(max(l.height-2, 1))
	if l.focused {
		style = style.BorderForeground(ColorPrimary)
	}

	if len(l.changes) == 0 {
		empty := lipgloss.NewStyle().Foreground(ColorMuted).Render("Waiting for changes…")
		return style.Render(empty)
	}
	l.sync()
	return style.Render(l.vp.View())
}
