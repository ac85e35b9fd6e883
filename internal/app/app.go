// Package app wires the sidebar and query workspace into the root
// Bubble Tea model and owns the status bar.
package app

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mitchellh/go-wordwrap"

	"github.com/sift-db/sift/internal/config"
	"github.com/sift-db/sift/internal/db"
	"github.com/sift-db/sift/internal/logger"
	"github.com/sift-db/sift/internal/ui"
	"github.com/sift-db/sift/internal/ui/styles"
	"github.com/sift-db/sift/internal/ui/views/sidebar"
	"github.com/sift-db/sift/internal/ui/views/workspace"
)

// Focus identifies which panel receives key input.
type Focus int

const (
	FocusWorkspace Focus = iota
	FocusSidebar
)

const sidebarWidth = 32

// Model is the root application model.
type Model struct {
	cfg     *config.Config
	session db.Session
	stats   *db.StatsRecorder

	workspace workspace.Model
	sidebar   sidebar.Model

	focus       Focus
	showSidebar bool
	helpVisible bool
	quitting    bool
	ready       bool

	width  int
	height int
}

// New assembles the root model around an open session.
func New(cfg *config.Config, session db.Session) Model {
	stats := db.NewStatsRecorder()
	clip := ui.NewClipboardWriter()
	return Model{
		cfg:         cfg,
		session:     session,
		stats:       stats,
		workspace:   workspace.New(session, stats, clip, cfg.Query.Timeout, cfg.Query.PageSize),
		sidebar:     sidebar.New(session),
		showSidebar: true,
	}
}

func (m Model) Init() tea.Cmd {
	return m.sidebar.LoadCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case sidebar.SchemaLoadedMsg:
		var cmd tea.Cmd
		m.sidebar, cmd = m.sidebar.Update(msg)
		return m, cmd

	case sidebar.InsertQueryMsg:
		m.workspace.SetQuery(msg.SQL)
		m.focus = FocusWorkspace
		return m, nil
	}

	// Query lifecycle and toast messages belong to the workspace.
	var cmd tea.Cmd
	m.workspace, cmd = m.workspace.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		logger.Info("shutting down")
		return m, tea.Quit
	case "q":
		// Quits only where q cannot be meant as input: the sidebar,
		// or the results pane outside the jump prompt.
		if m.focus == FocusSidebar || !m.workspace.InTextEntry() {
			m.quitting = true
			return m, tea.Quit
		}
	case "f1":
		m.helpVisible = !m.helpVisible
		return m, nil
	case "f2":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.focus = FocusSidebar
		} else {
			m.focus = FocusWorkspace
		}
		m.layout()
		return m, nil
	}

	if m.helpVisible {
		m.helpVisible = false
		return m, nil
	}

	if m.focus == FocusSidebar {
		switch msg.String() {
		case "esc":
			m.focus = FocusWorkspace
			return m, nil
		case "tab":
			// Focus cycles sidebar, editor, results.
			m.focus = FocusWorkspace
			m.workspace.FocusEditor()
			return m, nil
		}
		var cmd tea.Cmd
		m.sidebar, cmd = m.sidebar.Update(msg)
		return m, cmd
	}

	// Tab from the results pane continues the focus cycle into the
	// sidebar; everywhere else the workspace handles it (pane switch,
	// or a literal tab in insert mode).
	if msg.String() == "tab" && m.showSidebar &&
		m.workspace.FocusedPane() == workspace.PaneResults && !m.workspace.InTextEntry() {
		m.focus = FocusSidebar
		return m, nil
	}

	var cmd tea.Cmd
	m.workspace, cmd = m.workspace.Update(msg)
	return m, cmd
}

// layout distributes the window between the sidebar and the workspace,
// reserving one line for the status bar and one for the footer.
func (m *Model) layout() {
	mainHeight := m.height - 2
	if mainHeight < 4 {
		mainHeight = 4
	}
	wsWidth := m.width
	if m.showSidebar {
		wsWidth -= sidebarWidth
		m.sidebar.SetSize(sidebarWidth, mainHeight)
	}
	m.workspace.SetSize(wsWidth, mainHeight)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}
	if m.helpVisible {
		return m.renderHelp()
	}

	main := m.workspace.View()
	if m.showSidebar {
		main = lipgloss.JoinHorizontal(lipgloss.Top,
			m.sidebar.View(m.focus == FocusSidebar),
			main,
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		main,
		m.renderStatusBar(),
		m.renderFooter(),
	)
}

func (m Model) renderStatusBar() string {
	target := styles.StatusTargetStyle.Render(" " + m.session.Target() + " ")

	var last string
	if s, ok := m.stats.Last(); ok {
		if s.Kind.ReturnsRows() {
			last = fmt.Sprintf("%s · %d rows · %s", s.Kind, s.Rows, s.Elapsed.Round(timeRound(s.Elapsed)))
		} else {
			last = fmt.Sprintf("%s · %d affected · %s", s.Kind, s.Affected, s.Elapsed.Round(timeRound(s.Elapsed)))
		}
	}

	bar := target + " " + last
	gap := m.width - lipgloss.Width(bar)
	if gap > 0 {
		bar += strings.Repeat(" ", gap)
	}
	return styles.StatusBarStyle.Render(bar)
}

func (m Model) renderFooter() string {
	hints := "F5 run · tab pane · F2 schema · F1 help · ctrl+c quit"
	return styles.FooterHintStyle.Render(" " + hints)
}

func (m Model) renderHelp() string {
	text := `Query editor (vim keys): i/a/I/A/o/O enter insert mode, esc leaves it. ` +
		`h j k l move, w b e word motions, 0 $ ^ line motions, gg G buffer motions. ` +
		`d y c operate with a motion; dd yy cc work on whole lines. ` +
		`v and V select, p pastes, u undoes, ctrl+r redoes, x D C edit in place.

Results grid: j/k move rows, h/l move columns, H/L scroll columns, ` +
		`[ and ] change pages, : jumps to a row number, + and - resize the column, ` +
		`y copies the cell, Y copies the row as JSON.

Schema sidebar: F2 toggles it, j/k move, space expands columns, ` +
		`enter inserts SELECT * for the table, r reloads.

Press any key to close this help.`

	width := m.width - 8
	if width < 20 {
		width = 20
	}
	wrapped := wordwrap.WrapString(text, uint(width))
	return styles.PaneStyle.Width(m.width - 4).Render(
		styles.PaneTitleStyle.Render(" Help ") + "\n" + wrapped)
}

// Cleanup closes the session. Call after the program exits.
func (m Model) Cleanup() {
	m.session.Close()
}

// timeRound picks a rounding unit so short queries show sub-millisecond
// precision and long ones stay readable.
func timeRound(d time.Duration) time.Duration {
	if d < time.Second {
		return time.Microsecond * 10
	}
	return time.Millisecond * 10
}
