package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/pollwatch/internal/core"
	"github.com/lumipallolabs/pollwatch/internal/logging"
)

// minMapWidth is the terminal width below which the activity map is hidden
const minMapWidth = 80

// controllerEventMsg wraps an event read from the controller
type controllerEventMsg struct {
	event core.Event
}

// eventsClosedMsg is sent if the controller's event stream ends
type eventsClosedMsg struct{}

// startResultMsg carries the outcome of starting or resuming the watch
type startResultMsg struct {
	err error
}

// App is the main application model
type App struct {
	// Components
	header   Header
	log      ChangeLog
	activity ActivityMap
	help     HelpOverlay

	ctrl *core.Controller
	keys KeyMap

	// UI state
	showMap  bool
	starting bool
	err      error

	// Dimensions
	width  int
	height int
}

// NewApp creates a new application instance driving ctrl
func NewApp(ctrl *core.Controller) App {
	state := ctrl.State()
	target := state.Watch.Target

	app := App{
		header:   NewHeader(),
		log:      NewChangeLog(target),
		activity: NewActivityMap(target),
		help:     NewHelpOverlay(),
		ctrl:     ctrl,
		keys:     DefaultKeyMap(),
		showMap:  true,
		starting: true,
	}
	app.log.SetFocused(true)
	app.header.SetState(state)

	return app
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("POLLWATCH"),
		a.startWatch(),
		a.listenForEvents(),
	)
}

// startWatch starts the controller off the UI goroutine, since the baseline
// enumeration of a large tree takes a while
func (a App) startWatch() tea.Cmd {
	ctrl := a.ctrl
	return func() tea.Msg {
		return startResultMsg{err: ctrl.Start()}
	}
}

// listenForEvents returns a command that waits for the next controller event
func (a App) listenForEvents() tea.Cmd {
	events := a.ctrl.Events()
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return controllerEventMsg{event: event}
	}
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case startResultMsg:
		a.starting = false
		if msg.err != nil {
			a.err = msg.err
			logging.Debug.Warn("start failed", "err", msg.err)
		}
		a.refreshHeader()
		a.updateLayout()
		return a, nil

	case controllerEventMsg:
		a.handleEvent(msg.event)
		return a, a.listenForEvents()

	case eventsClosedMsg:
		return a, nil
	}

	return a, nil
}

// handleEvent applies one controller event to the view
func (a *App) handleEvent(event core.Event) {
	switch e := event.(type) {
	case core.ChangeDetectedEvent:
		a.log.Append(e.Change)
		a.activity.Record(e.Change)
	case core.WatchStartedEvent:
		a.err = nil
		a.updateLayout()
	case core.ErrorEvent:
		a.err = e.Err
		a.updateLayout()
	}
	a.refreshHeader()
}

func (a *App) refreshHeader() {
	a.header.SetState(a.ctrl.State())
}

// handleKey processes keyboard input
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The help overlay swallows everything except its own toggle and quit
	if a.help.IsVisible() {
		switch {
		case key.Matches(msg, a.keys.Help), msg.String() == "esc":
			a.help.Toggle()
		case msg.String() == "q", msg.String() == "ctrl+c":
			return a.quit()
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a.quit()

	case key.Matches(msg, a.keys.Help):
		a.help.Toggle()

	case key.Matches(msg, a.keys.Pause):
		return a.togglePause()

	case key.Matches(msg, a.keys.Clear):
		a.log.Clear()
		a.activity.Clear()

	case key.Matches(msg, a.keys.ToggleMap):
		a.showMap = !a.showMap
		a.updateLayout()

	case key.Matches(msg, a.keys.Open):
		target := a.ctrl.State().Watch.Target
		logging.Debug.Debug("revealing target", "path", target)
		if err := openInFileManager(target); err != nil {
			logging.Debug.Warn("reveal failed", "path", target, "err", err)
		}

	case key.Matches(msg, a.keys.Up):
		a.log.ScrollUp(1)
	case key.Matches(msg, a.keys.Down):
		a.log.ScrollDown(1)
	case key.Matches(msg, a.keys.PageUp):
		a.log.PageUp()
	case key.Matches(msg, a.keys.PageDown):
		a.log.PageDown()
	case key.Matches(msg, a.keys.Top):
		a.log.Top()
	case key.Matches(msg, a.keys.Bottom):
		a.log.Bottom()
	}

	return a, nil
}

// togglePause pauses a running watch or resumes a paused one
func (a App) togglePause() (tea.Model, tea.Cmd) {
	if a.starting {
		return a, nil
	}
	switch a.ctrl.State().Watch.Phase {
	case core.PhaseWatching:
		a.ctrl.Pause()
		a.refreshHeader()
		return a, nil
	case core.PhasePaused, core.PhaseIdle:
		a.starting = true
		return a, a.startWatch()
	}
	return a, nil
}

// quit stops the controller, which persists the session, and exits
func (a App) quit() (tea.Model, tea.Cmd) {
	a.ctrl.Stop()
	return a, tea.Quit
}

// ShowingMap reports whether the activity map is laid out next to the log
func (a App) ShowingMap() bool {
	return a.showMap && a.width >= minMapWidth
}

// updateLayout recalculates component sizes
func (a *App) updateLayout() {
	a.header.SetWidth(a.width)
	a.help.SetSize(a.width, a.height)

	// Header and help bar take one line each
	bodyH := max(a.height-2, 3)
	if a.err != nil {
		bodyH = max(bodyH-1, 3)
	}

	if a.ShowingMap() {
		logW := a.width * 3 / 5
		a.log.SetSize(logW, bodyH)
		a.activity.SetSize(a.width-logW, bodyH)
		return
	}
	a.log.SetSize(a.width, bodyH)
}

// View implements tea.Model
func (a App) View() string {
	if a.width == 0 {
		return "Starting…"
	}

	if a.help.IsVisible() {
		return a.help.View()
	}

	var sections []string
	sections = append(sections, a.header.View())

	if a.err != nil {
		sections = append(sections, ErrorStyle.Padding(0, 1).Render("Error: "+a.err.Error()))
	}

	body := a.log.View()
	if a.ShowingMap() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, a.activity.View())
	}
	sections = append(sections, body)
	sections = append(sections, HelpBar(a.width, a.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
