// Package grid implements the paginated result grid backing the
// results pane: page-local row navigation, horizontal column scroll
// and selection, column width adjustment, and clipboard export.
package grid

import (
	"github.com/mattn/go-runewidth"
)

const (
	// DefaultPageSize is the number of rows shown per page.
	DefaultPageSize = 100
	// minColumnWidth floors every column width.
	minColumnWidth = 4
	// columnPadding is added around the widest cell of each column.
	columnPadding = 2
	// defaultViewportRows is used until the view reports its height.
	defaultViewportRows = 10
)

// Clipboard receives exported cells and rows. Writes are best-effort.
type Clipboard interface {
	Write(text string) error
}

// Model holds a paginated result set and its view state. Rows is the
// full result; pages are views over it. selectedRow is an absolute row
// index. selectedCol is a visible column index where 0 addresses the
// row-number pseudo-column and data columns start at 1, offset by the
// horizontal scroll.
type Model struct {
	columns   []string
	rows      [][]string
	colWidths []int
	minWidths []int

	pageSize    int
	page        int
	selectedRow int
	selectedCol int
	rowOffset   int
	colOffset   int
	viewRows    int

	clip Clipboard
}

// New creates an empty grid. clip may be nil.
func New(pageSize int, clip Clipboard) *Model {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Model{
		pageSize:    pageSize,
		selectedRow: -1,
		viewRows:    defaultViewportRows,
		clip:        clip,
	}
}

// SetResults replaces the grid content and resets all view state. An
// empty result clears the selection.
func (m *Model) SetResults(columns []string, rows [][]string) {
	m.columns = columns
	m.rows = rows
	m.page = 0
	m.rowOffset = 0
	m.colOffset = 0
	m.selectedCol = 0
	if len(rows) > 0 {
		m.selectedRow = 0
	} else {
		m.selectedRow = -1
	}
	m.computeWidths()
}

// computeWidths sizes each column to its widest content plus padding,
// floored at the minimum width. The content width is also kept as the
// lower bound for manual adjustment.
func (m *Model) computeWidths() {
	m.minWidths = make([]int, len(m.columns))
	for i, col := range m.columns {
		w := runewidth.StringWidth(col)
		for _, row := range m.rows {
			if i < len(row) {
				if cw := runewidth.StringWidth(row[i]); cw > w {
					w = cw
				}
			}
		}
		w += columnPadding
		if w < minColumnWidth {
			w = minColumnWidth
		}
		m.minWidths[i] = w
	}
	m.colWidths = append([]int{}, m.minWidths...)
}

// Columns returns the column headers.
func (m *Model) Columns() []string { return m.columns }

// Rows returns all result rows.
func (m *Model) Rows() [][]string { return m.rows }

// RowCount returns the total number of rows.
func (m *Model) RowCount() int { return len(m.rows) }

// PageSize returns the page size.
func (m *Model) PageSize() int { return m.pageSize }

// Page returns the zero-based current page.
func (m *Model) Page() int { return m.page }

// TotalPages returns ceil(rows/pageSize), 0 for an empty grid.
func (m *Model) TotalPages() int {
	if len(m.rows) == 0 {
		return 0
	}
	return (len(m.rows) + m.pageSize - 1) / m.pageSize
}

// SelectedRow returns the absolute selected row index, -1 when empty.
func (m *Model) SelectedRow() int { return m.selectedRow }

// SelectedCol returns the visible selected column index (0 is the
// row-number pseudo-column).
func (m *Model) SelectedCol() int { return m.selectedCol }

// RowOffset returns the page-local vertical scroll offset.
func (m *Model) RowOffset() int { return m.rowOffset }

// ColOffset returns the first visible data column index.
func (m *Model) ColOffset() int { return m.colOffset }

// ColumnWidths returns the current display widths.
func (m *Model) ColumnWidths() []int { return m.colWidths }

// SetViewportRows tells the grid how many rows the view can show, so
// vertical scrolling tracks the selection.
func (m *Model) SetViewportRows(n int) {
	if n < 1 {
		n = 1
	}
	m.viewRows = n
	m.ensureVisible()
}

// pageBounds returns the absolute [start, end) row range of the
// current page.
func (m *Model) pageBounds() (int, int) {
	start := m.page * m.pageSize
	end := start + m.pageSize
	if end > len(m.rows) {
		end = len(m.rows)
	}
	return start, end
}

// PageRows returns the rows of the current page.
func (m *Model) PageRows() [][]string {
	start, end := m.pageBounds()
	if start >= end {
		return nil
	}
	return m.rows[start:end]
}

// ensureVisible adjusts the vertical scroll so the selected row stays
// inside the viewport.
func (m *Model) ensureVisible() {
	if m.selectedRow < 0 {
		m.rowOffset = 0
		return
	}
	start, _ := m.pageBounds()
	local := m.selectedRow - start
	if local < m.rowOffset {
		m.rowOffset = local
	}
	if local >= m.rowOffset+m.viewRows {
		m.rowOffset = local - m.viewRows + 1
	}
}

// NextRow moves the selection down within the current page, wrapping
// to the first row of the page past the last.
func (m *Model) NextRow() {
	if m.selectedRow < 0 {
		return
	}
	start, end := m.pageBounds()
	if m.selectedRow+1 >= end {
		m.selectedRow = start
	} else {
		m.selectedRow++
	}
	m.ensureVisible()
}

// PreviousRow moves the selection up within the current page, wrapping
// to the last row of the page past the first.
func (m *Model) PreviousRow() {
	if m.selectedRow < 0 {
		return
	}
	start, end := m.pageBounds()
	if m.selectedRow-1 < start {
		m.selectedRow = end - 1
	} else {
		m.selectedRow--
	}
	m.ensureVisible()
}

// NextPage advances one page, clamped at the last, selecting the first
// row of the new page.
func (m *Model) NextPage() {
	if m.page+1 >= m.TotalPages() {
		return
	}
	m.page++
	start, _ := m.pageBounds()
	m.selectedRow = start
	m.rowOffset = 0
}

// PreviousPage goes back one page, clamped at the first.
func (m *Model) PreviousPage() {
	if m.page == 0 || len(m.rows) == 0 {
		return
	}
	m.page--
	start, _ := m.pageBounds()
	m.selectedRow = start
	m.rowOffset = 0
}

// JumpToRow selects an absolute row, clamped to the result, switching
// to the page that contains it.
func (m *Model) JumpToRow(n int) {
	if len(m.rows) == 0 {
		return
	}
	if n < 0 {
		n = 0
	}
	if n >= len(m.rows) {
		n = len(m.rows) - 1
	}
	m.page = n / m.pageSize
	m.selectedRow = n
	m.rowOffset = 0
	m.ensureVisible()
}

// visibleColCount is the number of data columns past the horizontal
// scroll offset.
func (m *Model) visibleColCount() int {
	n := len(m.columns) - m.colOffset
	if n < 0 {
		return 0
	}
	return n
}

// NextColumn moves the column selection right, clamped to the last
// visible column.
func (m *Model) NextColumn() {
	if m.selectedCol < m.visibleColCount() {
		m.selectedCol++
	}
}

// PreviousColumn moves the column selection left, clamped to the
// row-number pseudo-column.
func (m *Model) PreviousColumn() {
	if m.selectedCol > 0 {
		m.selectedCol--
	}
}

// ScrollRight shifts the visible data columns right by one, clamped to
// the last column.
func (m *Model) ScrollRight() {
	if m.colOffset < len(m.columns)-1 {
		m.colOffset++
	}
	m.clampSelectedCol()
}

// ScrollLeft shifts the visible data columns left by one.
func (m *Model) ScrollLeft() {
	if m.colOffset > 0 {
		m.colOffset--
	}
	m.clampSelectedCol()
}

func (m *Model) clampSelectedCol() {
	if max := m.visibleColCount(); m.selectedCol > max {
		m.selectedCol = max
	}
}

// AdjustColumnWidth widens or narrows the selected data column. The
// width never drops below the content width floor. Selecting the
// row-number pseudo-column makes this a no-op.
func (m *Model) AdjustColumnWidth(delta int) {
	idx := m.selectedDataCol()
	if idx < 0 {
		return
	}
	w := m.colWidths[idx] + delta
	if w < m.minWidths[idx] {
		w = m.minWidths[idx]
	}
	m.colWidths[idx] = w
}

// selectedDataCol resolves the visible column selection to an absolute
// data column index, or -1 for the pseudo-column or out of range.
func (m *Model) selectedDataCol() int {
	if m.selectedCol == 0 {
		return -1
	}
	idx := m.colOffset + m.selectedCol - 1
	if idx < 0 || idx >= len(m.columns) {
		return -1
	}
	return idx
}
