package monitor

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/pulse/internal/logger"
)

// pollInterval bounds how long the loop waits for input before checking
// whether a tick is due.
const pollInterval = 100 * time.Millisecond

// pollMsg wakes the loop up to attempt a tick.
type pollMsg time.Time

// Model is the Bubble Tea model for the dashboard. Dashboard state lives in
// the App; Model only adds what the terminal needs.
type Model struct {
	ctx   context.Context
	app   *App
	theme Theme
	log   logger.Logger

	width  int
	height int

	help help.Model

	filter    textinput.Model
	filtering bool

	// Detail overlay viewport
	detail     viewport.Model
	detailOpen bool

	quitting bool
}

// NewModel wraps a controller for bubbletea. Sampling runs inside the loop
// with ctx; cancelling ctx ends the program on the next poll.
func NewModel(ctx context.Context, app *App, theme Theme, log logger.Logger) Model {
	if log == nil {
		log = logger.Noop()
	}

	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter by name or command"
	ti.CharLimit = 64
	ti.PromptStyle = theme.Title
	ti.TextStyle = theme.Value
	ti.PlaceholderStyle = theme.Label
	ti.SetValue(app.State.Filter)

	return Model{
		ctx:    ctx,
		app:    app,
		theme:  theme,
		log:    log,
		help:   newHelp(theme),
		filter: ti,
		detail: viewport.New(0, 0),
	}
}

// App returns the controller behind the model.
func (m Model) App() *App {
	return m.app
}

// Init starts the poll loop. The first poll ticks immediately.
func (m Model) Init() tea.Cmd {
	return pollCmd()
}

func pollCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case pollMsg:
		if err := m.ctx.Err(); err != nil {
			m.log.Info("context done, stopping: %v", err)
			m.quitting = true
			return m, tea.Quit
		}
		m.app.Tick(m.ctx, time.Time(msg))
		m.syncDetail()
		return m, pollCmd()

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.handleKey(msg)
	}

	// Cursor blink and other textinput messages.
	if m.filtering {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey maps a key to an action and applies it.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	act := actionFor(msg)
	st := &m.app.State

	// Navigation scrolls the detail overlay while it is open.
	if st.ShowProcDetails {
		switch act {
		case ActionUp:
			m.detail.ScrollUp(1)
			return m, nil
		case ActionDown:
			m.detail.ScrollDown(1)
			return m, nil
		case ActionPageUp:
			m.detail.PageUp()
			return m, nil
		case ActionPageDown:
			m.detail.PageDown()
			return m, nil
		case ActionHome:
			m.detail.GotoTop()
			return m, nil
		case ActionEnd:
			m.detail.GotoBottom()
			return m, nil
		}
	}

	switch act {
	case ActionNone:
		return m, nil

	case ActionFilter:
		if st.View != ViewProcess {
			m.app.Dispatch(ActionViewProcess)
		}
		st.ShowHelp = false
		m.filtering = true
		m.filter.SetValue(st.Filter)
		m.filter.CursorEnd()
		return m, m.filter.Focus()
	}

	if m.app.Dispatch(act) {
		m.log.Info("quit requested (%s)", act)
		m.quitting = true
		return m, tea.Quit
	}
	m.syncDetail()
	return m, nil
}

// updateFilter feeds keys to the filter prompt. The filter applies as it is
// typed; enter keeps it and esc clears it.
func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		m.app.SetFilter(strings.TrimSpace(m.filter.Value()))
		return m, nil
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		m.filter.Reset()
		m.app.SetFilter("")
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.app.SetFilter(strings.TrimSpace(m.filter.Value()))
	return m, cmd
}

// bodyHeight is the space left for the current view.
func (m Model) bodyHeight() int {
	return max(m.height-chromeRows, 1)
}

// resize tracks the terminal size. The process viewport follows the height.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
	m.filter.Width = max(width-4, 10)

	body := m.bodyHeight()
	m.app.SetVisibleRows(body - processChrome)

	// The overlay spends two columns on padding and three rows on its
	// border and title.
	w, h := detailSize(width, body)
	m.detail.Width = max(w-2, 1)
	m.detail.Height = max(h-3, 1)
	m.syncDetail()
}

// syncDetail refreshes the detail viewport while the overlay is open and
// rewinds it each time the overlay opens.
func (m *Model) syncDetail() {
	if !m.app.State.ShowProcDetails {
		m.detailOpen = false
		return
	}
	if !m.detailOpen {
		m.detail.GotoTop()
		m.detailOpen = true
	}
	m.detail.SetContent(detailContent(m.app, m.theme, m.detail.Width))
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "starting pulse…"
	}

	st := &m.app.State
	bodyH := m.bodyHeight()

	var body string
	switch {
	case st.ShowHelp:
		body = renderHelpOverlay(m.help, m.theme, m.width, bodyH)
	case st.ShowProcDetails:
		body = renderDetailOverlay(m.app, m.theme, m.detail.View(), m.width, bodyH)
	default:
		body = frame{app: m.app, theme: m.theme, width: m.width, height: bodyH}.render()
	}
	body = lipgloss.NewStyle().Height(bodyH).MaxHeight(bodyH).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(m.app, m.theme, m.width),
		renderTabs(st.View, m.theme),
		body,
		m.footer(),
	)
}

// footer shows the filter prompt while typing, otherwise the short help.
func (m Model) footer() string {
	if m.filtering {
		return m.filter.View()
	}
	hints := m.help.ShortHelpView(keys.ShortHelp())
	if f := m.app.State.Filter; f != "" {
		hints = m.theme.Title.Render("filter: "+f) + "  " + hints
	}
	return m.theme.Footer.MaxWidth(max(m.width, 1)).Render(hints)
}
