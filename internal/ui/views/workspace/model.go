// Package workspace implements the query workspace: a modal SQL editor
// pane over a paginated result grid pane.
package workspace

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sift-db/sift/internal/db"
	"github.com/sift-db/sift/internal/editor"
	"github.com/sift-db/sift/internal/grid"
	"github.com/sift-db/sift/internal/logger"
)

// Pane identifies which workspace pane has focus.
type Pane int

const (
	PaneEditor Pane = iota
	PaneResults
)

const toastDuration = 3 * time.Second

// Model is the query workspace view.
type Model struct {
	editor *editor.Editor
	grid   *grid.Model
	keys   KeyMap

	session db.Session
	stats   *db.StatsRecorder
	timeout time.Duration

	pane      Pane
	executing bool
	seq       int
	lastSQL   string

	errText string
	toast   string
	toastID int

	// jump-to-row prompt state
	jumpActive bool
	jumpInput  string

	width  int
	height int
}

// New creates a workspace bound to a session. clip may be nil.
func New(session db.Session, stats *db.StatsRecorder, clip Clipboard, timeout time.Duration, pageSize int) Model {
	return Model{
		editor:  editor.New("", clip),
		grid:    grid.New(pageSize, clip),
		keys:    DefaultKeyMap(),
		session: session,
		stats:   stats,
		timeout: timeout,
	}
}

// Clipboard is re-exported so callers wire one dependency for both the
// editor and the grid.
type Clipboard interface {
	Write(text string) error
}

// SetSize tells the workspace its render area.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.grid.SetViewportRows(m.resultsViewRows())
}

// InTextEntry reports whether keystrokes are being captured by the
// editor's insert mode or the jump prompt, so global single-letter
// shortcuts (like q) must not fire.
func (m Model) InTextEntry() bool {
	if m.jumpActive {
		return true
	}
	return m.pane == PaneEditor
}

// SetQuery replaces the editor content.
func (m *Model) SetQuery(sql string) {
	m.editor.SetText(sql)
	m.pane = PaneEditor
}

// Executing reports whether a query is in flight.
func (m Model) Executing() bool { return m.executing }

// FocusedPane returns the pane receiving key input.
func (m Model) FocusedPane() Pane { return m.pane }

// FocusEditor moves focus to the editor pane.
func (m *Model) FocusEditor() { m.pane = PaneEditor }

// Update handles messages routed from the application model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case QueryCompletedMsg:
		if msg.Seq != m.seq {
			// A newer execution superseded this one.
			logger.Debug("discarding stale query completion", "seq", msg.Seq)
			return m, nil
		}
		m.executing = false
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			logger.Warn("query failed", "error", msg.Err)
			return m, nil
		}
		m.errText = ""
		m.stats.Record(msg.Outcome)
		return m.applyOutcome(msg)

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) applyOutcome(msg QueryCompletedMsg) (Model, tea.Cmd) {
	out := msg.Outcome
	if out.Kind.ReturnsRows() {
		m.grid.SetResults(out.Headers, out.Rows)
		m.grid.SetViewportRows(m.resultsViewRows())
		m.pane = PaneResults
		return m.showToast(fmt.Sprintf("%d rows in %s", len(out.Rows), formatElapsed(out.Elapsed)))
	}
	m.grid.SetResults(nil, nil)
	return m.showToast(fmt.Sprintf("%s: %d rows affected in %s",
		out.Kind, out.Affected, formatElapsed(out.Elapsed)))
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.jumpActive {
		return m.handleJumpKey(msg)
	}

	// Execute works from either pane, but not while the editor is
	// inserting text (F5 is safe there too since it is not a rune).
	if key.Matches(msg, m.keys.Execute) {
		return m.startExecution()
	}

	if key.Matches(msg, m.keys.SwitchPane) && !m.editorWantsKey(msg) {
		if m.pane == PaneEditor {
			m.pane = PaneResults
		} else {
			m.pane = PaneEditor
		}
		return m, nil
	}

	if m.pane == PaneEditor {
		m.editor.HandleKey(editor.ParseKey(msg.String()))
		return m, nil
	}
	return m.handleResultsKey(msg)
}

// editorWantsKey reports whether the editor consumes this key itself
// (tab inserts a literal tab in insert mode).
func (m Model) editorWantsKey(msg tea.KeyMsg) bool {
	return m.pane == PaneEditor && m.editor.Mode() == editor.ModeInsert && msg.String() == "tab"
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.grid.NextRow()
	case key.Matches(msg, m.keys.Up):
		m.grid.PreviousRow()
	case key.Matches(msg, m.keys.ColRight):
		m.grid.NextColumn()
	case key.Matches(msg, m.keys.ColLeft):
		m.grid.PreviousColumn()
	case key.Matches(msg, m.keys.ScrollRight):
		m.grid.ScrollRight()
	case key.Matches(msg, m.keys.ScrollLeft):
		m.grid.ScrollLeft()
	case key.Matches(msg, m.keys.NextPage):
		m.grid.NextPage()
	case key.Matches(msg, m.keys.PrevPage):
		m.grid.PreviousPage()
	case key.Matches(msg, m.keys.Widen):
		m.grid.AdjustColumnWidth(2)
	case key.Matches(msg, m.keys.Narrow):
		m.grid.AdjustColumnWidth(-2)
	case key.Matches(msg, m.keys.JumpRow):
		if m.grid.RowCount() > 0 {
			m.jumpActive = true
			m.jumpInput = ""
		}
	case key.Matches(msg, m.keys.CopyCell):
		if value, ok := m.grid.CopySelectedCell(); ok {
			return m.showToast(fmt.Sprintf("copied cell: %s", truncateToast(value)))
		}
	case key.Matches(msg, m.keys.CopyRow):
		if _, ok := m.grid.CopySelectedRow(); ok {
			return m.showToast("copied row as JSON")
		}
		return m.showToast("row copy failed")
	}
	return m, nil
}

func (m Model) handleJumpKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.jumpActive = false
		m.jumpInput = ""
	case "enter":
		m.jumpActive = false
		if n, err := strconv.Atoi(m.jumpInput); err == nil && n > 0 {
			// The prompt takes 1-based display row numbers.
			m.grid.JumpToRow(n - 1)
		}
		m.jumpInput = ""
	case "backspace":
		if len(m.jumpInput) > 0 {
			m.jumpInput = m.jumpInput[:len(m.jumpInput)-1]
		}
	default:
		s := msg.String()
		if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
			m.jumpInput += s
		}
	}
	return m, nil
}

func (m Model) startExecution() (Model, tea.Cmd) {
	if m.executing {
		return m.showToast("a query is already running")
	}
	sql := strings.TrimSpace(m.editor.Text())
	if sql == "" {
		return m.showToast("nothing to execute")
	}

	m.seq++
	m.executing = true
	m.errText = ""
	m.lastSQL = sql
	logger.Info("executing query", "kind", db.Classify(sql).String())
	return m, tea.Batch(
		func() tea.Msg { return QueryExecutingMsg{SQL: sql, Seq: m.seq} },
		m.executeCmd(sql, m.seq),
	)
}

// executeCmd runs the statement on a command goroutine and reports the
// outcome back as a message.
func (m Model) executeCmd(sql string, seq int) tea.Cmd {
	session := m.session
	timeout := m.timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		out, err := session.Execute(ctx, sql)
		return QueryCompletedMsg{Seq: seq, SQL: sql, Outcome: out, Err: err}
	}
}

func (m Model) showToast(text string) (Model, tea.Cmd) {
	m.toast = text
	m.toastID++
	id := m.toastID
	return m, tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func truncateToast(s string) string {
	const max = 40
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}

func formatElapsed(d time.Duration) string {
	if d < time.Millisecond {
		return d.Round(time.Microsecond).String()
	}
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(10 * time.Millisecond).String()
}
