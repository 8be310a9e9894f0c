package ui

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lumipallolabs/pollwatch/internal/core"
	"github.com/lumipallolabs/pollwatch/internal/model"
	"github.com/lumipallolabs/pollwatch/internal/observer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (App, string) {
	t.Helper()
	dir := t.TempDir()
	ctrl := core.NewController(core.Config{Target: dir, Interval: time.Hour})
	t.Cleanup(ctrl.Stop)

	app := NewApp(ctrl)
	m, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return m.(App), ctrl.State().Watch.Target
}

func press(t *testing.T, a App, keys string) App {
	t.Helper()
	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	return m.(App)
}

func TestAppRendersChanges(t *testing.T) {
	app, target := newTestApp(t)

	change := model.Change{Path: filepath.Join(target, "src", "main.go"), Kind: observer.Created, At: time.Now()}
	m, cmd := app.Update(controllerEventMsg{event: core.ChangeDetectedEvent{Change: change}})
	app = m.(App)

	assert.NotNil(t, cmd, "app keeps listening after an event")
	assert.Equal(t, 1, app.log.Len())
	require.Len(t, app.activity.Blocks(), 1)
	assert.Equal(t, "src", app.activity.Blocks()[0].Label)

	view := app.View()
	assert.Contains(t, view, "POLLWATCH")
	assert.Contains(t, view, filepath.Join("src", "main.go"))
}

func TestAppClearAndToggles(t *testing.T) {
	app, target := newTestApp(t)
	m, _ := app.Update(controllerEventMsg{event: core.ChangeDetectedEvent{
		Change: model.Change{Path: filepath.Join(target, "a"), Kind: observer.Modified},
	}})
	app = m.(App)

	assert.True(t, app.ShowingMap())
	app = press(t, app, "m")
	assert.False(t, app.ShowingMap())

	app = press(t, app, "c")
	assert.Zero(t, app.log.Len())
	assert.Empty(t, app.activity.Blocks())

	app = press(t, app, "?")
	assert.True(t, app.help.IsVisible())
	assert.Contains(t, app.View(), "Keyboard Shortcuts")

	// Keys other than help and quit are swallowed by the overlay
	app = press(t, app, "m")
	assert.False(t, app.ShowingMap())
	app = press(t, app, "?")
	assert.False(t, app.help.IsVisible())
}

func TestAppNarrowHidesMap(t *testing.T) {
	app, _ := newTestApp(t)
	m, _ := app.Update(tea.WindowSizeMsg{Width: minMapWidth - 1, Height: 20})
	app = m.(App)
	assert.False(t, app.ShowingMap())
}

func TestAppShowsErrors(t *testing.T) {
	app, _ := newTestApp(t)

	m, _ := app.Update(startResultMsg{err: errors.New("boom")})
	app = m.(App)
	assert.False(t, app.starting)
	assert.Contains(t, app.View(), "Error: boom")

	m, _ = app.Update(controllerEventMsg{event: core.WatchStartedEvent{Target: "/x", Interval: time.Second}})
	app = m.(App)
	assert.NotContains(t, app.View(), "Error:")
}

func TestAppPauseResume(t *testing.T) {
	app, _ := newTestApp(t)

	// Run the start command the way the program would
	m, _ := app.Update(app.startWatch()())
	app = m.(App)
	require.Equal(t, core.PhaseWatching, app.ctrl.State().Watch.Phase)

	app = press(t, app, "p")
	assert.Equal(t, core.PhasePaused, app.ctrl.State().Watch.Phase)
	assert.Contains(t, app.header.View(), "PAUSED")

	m, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	app = m.(App)
	require.NotNil(t, cmd)
	assert.True(t, app.starting)

	m, _ = app.Update(cmd())
	app = m.(App)
	assert.Equal(t, core.PhaseWatching, app.ctrl.State().Watch.Phase)
}

func TestRevealTarget(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, dir, revealTarget(dir))
	assert.Equal(t, dir, revealTarget(filepath.Join(dir, "missing.txt")))
}
