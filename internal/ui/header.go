package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/lumipallolabs/pollwatch/internal/core"
	"github.com/lumipallolabs/pollwatch/internal/history"
	"github.com/lumipallolabs/pollwatch/internal/model"
	"github.com/lumipallolabs/pollwatch/internal/observer"
)

// Header displays the watched target, its phase and change counters
type Header struct {
	watch    core.WatchState
	lifetime model.Counts
	previous *history.Session
	width    int
}

// NewHeader creates a new header component
func NewHeader() Header {
	return Header{}
}

// SetState updates the watch state shown in the header
func (h *Header) SetState(state core.AppState) {
	h.watch = state.Watch
	h.lifetime = state.Lifetime
	h.previous = state.Previous
}

// SetWidth sets the header width
func (h *Header) SetWidth(w int) {
	h.width = w
}

// View renders the header
func (h Header) View() string {
	appName := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#C084FC")). // soft violet
		Bold(true).
		Render("POLLWATCH")

	target := TargetStyle.Render(h.watch.Target)
	if h.watch.Phase == core.PhasePaused {
		target += PausedBadge.Render("PAUSED")
	}

	muted := lipgloss.NewStyle().Foreground(ColorMuted)

	// Session counters sit in the middle, lifetime total and cadence on the right
	c := h.watch.Counts
	session := KindStyle(observer.Created).Render("+"+humanize.Comma(c.Created)) + " " +
		KindStyle(observer.Modified).Render("~"+humanize.Comma(c.Modified)) + " " +
		KindStyle(observer.Erased).Render("-"+humanize.Comma(c.Erased))

	stats := StatsStyle.Render(fmt.Sprintf("every %s", h.watch.Interval))
	if p := h.previous; p != nil && c.Total() == 0 {
		last := fmt.Sprintf("last run %s: %s changes", humanize.Time(p.Ended), humanize.Comma(int64(len(p.Changes))))
		stats = muted.Render(last) + muted.Render(" | ") + stats
	} else if h.lifetime.Total() > 0 {
		stats = muted.Render(humanize.Comma(h.lifetime.Total())+" lifetime") + muted.Render(" | ") + stats
	}
	statsCompact := StatsStyle.Render(fmt.Sprintf("every %s", h.watch.Interval))

	appNameWidth := lipgloss.Width(appName)
	sep := lipgloss.NewStyle().Foreground(ColorBorder).Render(" │ ")
	sepWidth := lipgloss.Width(sep)
	targetWidth := lipgloss.Width(target)
	sessionWidth := lipgloss.Width(session)
	statsWidth := lipgloss.Width(stats)

	totalContent := appNameWidth + sepWidth + targetWidth + sessionWidth + statsWidth + 4

	// For narrow terminals, progressively hide elements
	if h.width < totalContent {
		stats = statsCompact
		statsWidth = lipgloss.Width(stats)
		totalContent = appNameWidth + sepWidth + targetWidth + sessionWidth + statsWidth + 4
	}
	if h.width < totalContent {
		stats = ""
		statsWidth = 0
		totalContent = appNameWidth + sepWidth + targetWidth + sessionWidth + 2
	}
	if h.width < totalContent {
		session = ""
		sessionWidth = 0
		totalContent = appNameWidth + sepWidth + targetWidth
	}

	remainingSpace := h.width - totalContent
	if remainingSpace < 2 {
		remainingSpace = 2
	}
	leftGap := max(remainingSpace/2, 1)
	rightGap := max(remainingSpace-leftGap, 1)

	line := appName + sep + target + strings.Repeat(" ", leftGap) + session + strings.Repeat(" ", rightGap) + stats

	return HeaderStyle.MaxHeight(1).Render(line)
}
