package workspace

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/sift-db/sift/internal/editor"
	"github.com/sift-db/sift/internal/ui"
	"github.com/sift-db/sift/internal/ui/styles"
)

// editorPaneHeight splits the workspace area: the editor takes two
// fifths, the rest goes to results.
func (m Model) editorPaneHeight() int {
	h := m.height * 2 / 5
	if h < 6 {
		h = 6
	}
	return h
}

// resultsViewRows is the number of data rows the results pane can show
// after its border, header, separator, and footer.
func (m Model) resultsViewRows() int {
	h := m.height - m.editorPaneHeight() - 7
	if h < 3 {
		h = 3
	}
	return h
}

// View renders the editor pane over the results pane.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderEditorPane(),
		m.renderResultsPane(),
	)
}

func (m Model) renderEditorPane() string {
	innerWidth := m.width - 2
	innerHeight := m.editorPaneHeight() - 2

	title := m.editorTitle()
	body := m.renderEditorBody(innerWidth, innerHeight-1)

	pane := styles.PaneStyle
	if m.pane == PaneEditor {
		pane = styles.PaneFocusedStyle
	}
	return pane.Width(innerWidth).Render(title + "\n" + body)
}

func (m Model) editorTitle() string {
	var badge string
	switch m.editor.Mode() {
	case editor.ModeInsert:
		badge = styles.ModeBadge(styles.ColorInsert).Render("INSERT")
	case editor.ModeVisual:
		badge = styles.ModeBadge(styles.ColorVisual).Render("VISUAL")
	case editor.ModeOperatorPending:
		badge = styles.ModeBadge(styles.ColorPending).Render(
			fmt.Sprintf("PENDING %c", m.editor.PendingOperator()))
	default:
		badge = styles.ModeBadge(styles.ColorMuted).Render("NORMAL")
	}

	hint := styles.FooterHintStyle.Render("  i insert · v visual · F5 run")
	if m.executing {
		hint = styles.StatusToastStyle.Render("  running…")
	}
	return styles.PaneTitleStyle.Render(" Query ") + badge + hint
}

// renderEditorBody draws buffer lines with line numbers, the visual
// selection, and the cursor. Lines scroll vertically so the cursor
// stays visible.
func (m Model) renderEditorBody(width, height int) string {
	lines := m.editor.Buffer().Lines()
	cursor := m.editor.Cursor()
	selStart, selEnd, hasSel := m.editor.Selection()

	top := 0
	if cursor.Row >= height {
		top = cursor.Row - height + 1
	}

	gutterWidth := len(strconv.Itoa(len(lines)))
	var sb strings.Builder
	for i := 0; i < height; i++ {
		row := top + i
		if i > 0 {
			sb.WriteByte('\n')
		}
		if row >= len(lines) {
			sb.WriteString(styles.LineNumberStyle.Render(strings.Repeat(" ", gutterWidth) + "~"))
			continue
		}
		num := fmt.Sprintf("%*d ", gutterWidth, row+1)
		sb.WriteString(styles.LineNumberStyle.Render(num))
		sb.WriteString(m.renderEditorLine([]rune(lines[row]), row, cursor, selStart, selEnd, hasSel))
	}
	return sb.String()
}

func (m Model) renderEditorLine(line []rune, row int, cursor editor.Position, selStart, selEnd editor.Position, hasSel bool) string {
	showCursor := m.pane == PaneEditor && cursor.Row == row

	// Without a cursor or selection to overlay, the line can go
	// through the syntax highlighter whole.
	if !showCursor && !hasSel {
		return ui.HighlightSQL(string(line))
	}

	if len(line) == 0 {
		if showCursor {
			return styles.CursorStyle.Render(" ")
		}
		return ""
	}

	selected := func(col int) bool {
		if !hasSel {
			return false
		}
		pos := editor.Position{Row: row, Col: col}
		return !pos.Less(selStart) && !selEnd.Less(pos)
	}

	var sb strings.Builder
	for col, r := range line {
		s := string(r)
		switch {
		case showCursor && col == cursor.Col:
			sb.WriteString(styles.CursorStyle.Render(s))
		case selected(col):
			sb.WriteString(styles.SelectionStyle.Render(s))
		default:
			sb.WriteString(s)
		}
	}
	// Cursor past the last rune (insert mode at end of line).
	if showCursor && cursor.Col >= len(line) {
		sb.WriteString(styles.CursorStyle.Render(" "))
	}
	return sb.String()
}

func (m Model) renderResultsPane() string {
	innerWidth := m.width - 2
	innerHeight := m.height - m.editorPaneHeight() - 2
	if innerHeight < 4 {
		innerHeight = 4
	}

	var body string
	switch {
	case m.errText != "":
		body = styles.StatusErrorStyle.Render(wrapError(m.errText, innerWidth))
	case m.grid.RowCount() == 0 && len(m.grid.Columns()) == 0:
		body = styles.FooterHintStyle.Render("No results. Press F5 to run the query.")
	default:
		body = m.renderTable(innerWidth, innerHeight-3)
	}

	title := styles.PaneTitleStyle.Render(" Results ")
	if m.lastSQL != "" && m.errText == "" {
		title += styles.FooterHintStyle.Render(truncateCell(m.lastSQL, innerWidth-20))
	}

	pane := styles.PaneStyle
	if m.pane == PaneResults {
		pane = styles.PaneFocusedStyle
	}
	return pane.Width(innerWidth).Render(title + "\n" + body + "\n" + m.renderResultsFooter())
}

// renderTable draws the header and the visible page rows. Column 0 is
// the row-number pseudo-column; data columns start at the horizontal
// scroll offset and as many fit in the width budget as possible.
func (m Model) renderTable(width, height int) string {
	numWidth := len(strconv.Itoa(m.grid.RowCount())) + 2
	if numWidth < 4 {
		numWidth = 4
	}

	cols := m.grid.Columns()
	widths := m.grid.ColumnWidths()
	first := m.grid.ColOffset()

	// Fit columns into the width budget.
	visible := []int{}
	budget := width - numWidth
	for i := first; i < len(cols) && budget > 0; i++ {
		w := widths[i]
		if w > budget {
			break
		}
		visible = append(visible, i)
		budget -= w
	}
	if len(visible) == 0 && first < len(cols) {
		visible = append(visible, first)
	}

	var sb strings.Builder

	// Header.
	sb.WriteString(m.styleHeaderCell("#", numWidth, 0))
	for vi, i := range visible {
		sb.WriteString(m.styleHeaderCell(cols[i], widths[i], vi+1))
	}
	sb.WriteByte('\n')
	sb.WriteString(styles.FooterHintStyle.Render(strings.Repeat("─", min(width, numWidth+totalWidth(widths, visible)))))

	// Rows.
	pageRows := m.grid.PageRows()
	pageStart := m.grid.Page() * m.grid.PageSize()
	offset := m.grid.RowOffset()
	for i := offset; i < len(pageRows) && i-offset < height; i++ {
		absolute := pageStart + i
		isSelRow := absolute == m.grid.SelectedRow()
		sb.WriteByte('\n')
		sb.WriteString(m.styleCell(strconv.Itoa(absolute+1), numWidth, isSelRow, m.grid.SelectedCol() == 0 && isSelRow, false))
		row := pageRows[i]
		for vi, ci := range visible {
			value := ""
			if ci < len(row) {
				value = row[ci]
			}
			isNull := strings.EqualFold(value, "null")
			isSelCell := isSelRow && m.grid.SelectedCol() == vi+1
			sb.WriteString(m.styleCell(value, widths[ci], isSelRow, isSelCell, isNull))
		}
	}
	return sb.String()
}

func (m Model) styleHeaderCell(name string, width, visibleIdx int) string {
	cell := padCell(name, width)
	if m.pane == PaneResults && m.grid.SelectedCol() == visibleIdx {
		return styles.TableHeaderStyle.Underline(true).Render(cell)
	}
	return styles.TableHeaderStyle.Render(cell)
}

func (m Model) styleCell(value string, width int, selRow, selCell, isNull bool) string {
	cell := padCell(value, width)
	switch {
	case selCell && m.pane == PaneResults:
		return styles.CursorStyle.Render(cell)
	case selRow:
		return styles.TableSelectedStyle.Render(cell)
	case isNull:
		return styles.TableNullStyle.Render(cell)
	default:
		return styles.TableCellStyle.Render(cell)
	}
}

func (m Model) renderResultsFooter() string {
	if m.jumpActive {
		return styles.StatusToastStyle.Render(fmt.Sprintf("jump to row: %s█", m.jumpInput))
	}
	if m.toast != "" {
		return styles.StatusToastStyle.Render(m.toast)
	}
	if m.grid.TotalPages() == 0 {
		return styles.FooterHintStyle.Render("")
	}

	start, end := m.pageRowRange()
	info := fmt.Sprintf("page %d/%d · rows %d–%d of %d",
		m.grid.Page()+1, m.grid.TotalPages(), start, end, m.grid.RowCount())
	return styles.FooterHintStyle.Render(info)
}

// pageRowRange returns the 1-based display range of the current page.
func (m Model) pageRowRange() (int, int) {
	start := m.grid.Page()*m.grid.PageSize() + 1
	end := start + len(m.grid.PageRows()) - 1
	return start, end
}

// padCell truncates or pads a value to an exact display width, leaving
// one space of right padding.
func padCell(s string, width int) string {
	if width < 2 {
		width = 2
	}
	s = runewidth.Truncate(s, width-1, "…")
	return runewidth.FillRight(s, width)
}

func truncateCell(s string, width int) string {
	if width < 4 {
		return ""
	}
	return runewidth.Truncate(" "+s, width, "…")
}

func totalWidth(widths []int, visible []int) int {
	sum := 0
	for _, i := range visible {
		sum += widths[i]
	}
	return sum
}

func wrapError(s string, width int) string {
	if width < 10 {
		return s
	}
	return "Error: " + s
}
