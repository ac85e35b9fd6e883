// Package sidebar renders the schema browser: a tree of tables and
// views with row counts, on-disk sizes, and expandable column lists.
package sidebar

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/xlab/treeprint"

	"github.com/sift-db/sift/internal/db"
	"github.com/sift-db/sift/internal/logger"
	"github.com/sift-db/sift/internal/ui/styles"
)

const loadTimeout = 10 * time.Second

// SchemaLoadedMsg carries the result of a schema refresh.
type SchemaLoadedMsg struct {
	Tables []db.TableMeta
	Err    error
}

// InsertQueryMsg asks the workspace to replace the editor contents
// with a query for the chosen table.
type InsertQueryMsg struct {
	SQL string
}

// Model is the schema browser state.
type Model struct {
	session db.Session

	tables   []db.TableMeta
	selected int
	expanded map[string]bool
	loading  bool
	err      error

	width  int
	height int
}

// New creates a sidebar bound to a session. Call LoadCmd to populate it.
func New(session db.Session) Model {
	return Model{
		session:  session,
		expanded: map[string]bool{},
		loading:  true,
	}
}

// LoadCmd fetches table metadata off the UI goroutine.
func (m Model) LoadCmd() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		tables, err := session.Tables(ctx)
		if err != nil {
			logger.Error("schema load failed", "error", err)
		}
		return SchemaLoadedMsg{Tables: tables, Err: err}
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles schema results and navigation keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SchemaLoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.tables = msg.Tables
			if m.selected >= len(m.tables) {
				m.selected = 0
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.selected < len(m.tables)-1 {
			m.selected++
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
	case "g":
		m.selected = 0
	case "G":
		if len(m.tables) > 0 {
			m.selected = len(m.tables) - 1
		}
	case " ", "space", "l", "h":
		if t, ok := m.selectedTable(); ok {
			m.expanded[t.Name] = !m.expanded[t.Name]
		}
	case "enter":
		if t, ok := m.selectedTable(); ok {
			sql := fmt.Sprintf("SELECT * FROM %s;", t.Name)
			return m, func() tea.Msg { return InsertQueryMsg{SQL: sql} }
		}
	case "r":
		m.loading = true
		return m, m.LoadCmd()
	}
	return m, nil
}

func (m Model) selectedTable() (db.TableMeta, bool) {
	if m.selected < 0 || m.selected >= len(m.tables) {
		return db.TableMeta{}, false
	}
	return m.tables[m.selected], true
}

// View renders the schema tree inside a bordered pane.
func (m Model) View(focused bool) string {
	innerWidth := m.width - 2

	var body string
	switch {
	case m.loading:
		body = styles.FooterHintStyle.Render("loading schema…")
	case m.err != nil:
		body = styles.StatusErrorStyle.Render("schema error: " + m.err.Error())
	case len(m.tables) == 0:
		body = styles.FooterHintStyle.Render("no tables")
	default:
		body = m.renderTree(focused)
	}

	pane := styles.PaneStyle
	if focused {
		pane = styles.PaneFocusedStyle
	}
	title := styles.PaneTitleStyle.Render(" Schema ")
	return pane.Width(innerWidth).Height(m.height - 2).Render(title + "\n" + m.fitHeight(body))
}

func (m Model) renderTree(focused bool) string {
	tree := treeprint.New()
	tree.SetValue(styles.PaneTitleStyle.Render(m.session.Target()))

	for i, t := range m.tables {
		label := m.tableLabel(t)
		if i == m.selected && focused {
			label = styles.TableSelectedStyle.Render(label)
		} else if t.Kind == "view" {
			label = lipgloss.NewStyle().Foreground(styles.ColorAccent).Render(label)
		}

		if m.expanded[t.Name] && len(t.Columns) > 0 {
			branch := tree.AddBranch(label)
			for _, c := range t.Columns {
				branch.AddNode(styles.FooterHintStyle.Render(columnLabel(c)))
			}
		} else {
			tree.AddNode(label)
		}
	}
	return tree.String()
}

func (m Model) tableLabel(t db.TableMeta) string {
	label := t.Name
	if t.RowCount >= 0 {
		label += fmt.Sprintf(" (%s rows", humanize.Comma(t.RowCount))
		if t.SizeBytes > 0 {
			label += ", " + humanize.Bytes(uint64(t.SizeBytes))
		}
		label += ")"
	}
	if m.width > 4 && len(label) > m.width-4 {
		label = label[:m.width-4]
	}
	return label
}

func columnLabel(c db.ColumnMeta) string {
	label := c.Name + " " + c.DataType
	if !c.Nullable {
		label += " NOT NULL"
	}
	return label
}

// fitHeight scrolls the tree so the selected table stays visible and
// pads or trims to the pane height.
func (m Model) fitHeight(body string) string {
	maxLines := m.height - 3
	if maxLines < 1 {
		maxLines = 1
	}
	lines := strings.Split(body, "\n")

	// Selected table line index: root line plus preceding tables and
	// their expanded columns.
	top := 0
	if sel := m.selectedLine(); sel >= maxLines {
		top = sel - maxLines + 1
	}
	if top > 0 && top < len(lines) {
		lines = lines[top:]
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return strings.Join(lines, "\n")
}

func (m Model) selectedLine() int {
	line := 1
	for i := 0; i < m.selected && i < len(m.tables); i++ {
		line++
		if m.expanded[m.tables[i].Name] {
			line += len(m.tables[i].Columns)
		}
	}
	return line
}
