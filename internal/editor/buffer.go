// Package editor implements a modal, vim-style text editing engine.
//
// The engine is UI-agnostic: it consumes Key values and mutates an
// in-memory TextBuffer. Rendering, key decoding from the terminal, and
// clipboard integration live with the caller.
package editor

import "strings"

// Position is a cursor location in a TextBuffer. Row and Col are
// zero-based rune offsets.
type Position struct {
	Row int
	Col int
}

// Less reports whether p precedes o in document order.
func (p Position) Less(o Position) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}

// bufferState is a snapshot for undo/redo.
type bufferState struct {
	lines  [][]rune
	cursor Position
}

// TextBuffer holds editable text as lines of runes, with snapshot-based
// undo and redo stacks. A buffer always contains at least one line.
type TextBuffer struct {
	lines     [][]rune
	undoStack []bufferState
	redoStack []bufferState
}

// NewTextBuffer creates a buffer from initial content.
func NewTextBuffer(content string) *TextBuffer {
	b := &TextBuffer{}
	b.setContent(content)
	return b
}

func (b *TextBuffer) setContent(content string) {
	parts := strings.Split(content, "\n")
	b.lines = make([][]rune, len(parts))
	for i, p := range parts {
		b.lines[i] = []rune(p)
	}
	if len(b.lines) == 0 {
		b.lines = [][]rune{{}}
	}
}

// Text returns the full buffer content.
func (b *TextBuffer) Text() string {
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// Lines returns the buffer content line by line.
func (b *TextBuffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, line := range b.lines {
		out[i] = string(line)
	}
	return out
}

// LineCount returns the number of lines. Always >= 1.
func (b *TextBuffer) LineCount() int {
	return len(b.lines)
}

// Line returns the content of a line, or "" if row is out of range.
func (b *TextBuffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return string(b.lines[row])
}

// LineLen returns the rune length of a line, or 0 if row is out of range.
func (b *TextBuffer) LineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

func (b *TextBuffer) lineRunes(row int) []rune {
	if row < 0 || row >= len(b.lines) {
		return nil
	}
	return b.lines[row]
}

// clampPosition bounds pos to valid buffer coordinates. maxCol is the
// line length, so the result may address the slot one past the last
// rune (valid for insertion).
func (b *TextBuffer) clampPosition(pos Position) Position {
	if pos.Row < 0 {
		pos.Row = 0
	}
	if pos.Row >= len(b.lines) {
		pos.Row = len(b.lines) - 1
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	if n := len(b.lines[pos.Row]); pos.Col > n {
		pos.Col = n
	}
	return pos
}

// TextRange returns the text between start (inclusive) and end
// (exclusive). Positions are clamped to the buffer.
func (b *TextBuffer) TextRange(start, end Position) string {
	start = b.clampPosition(start)
	end = b.clampPosition(end)
	if end.Less(start) {
		start, end = end, start
	}
	if start.Row == end.Row {
		return string(b.lines[start.Row][start.Col:end.Col])
	}

	var sb strings.Builder
	sb.WriteString(string(b.lines[start.Row][start.Col:]))
	for row := start.Row + 1; row < end.Row; row++ {
		sb.WriteByte('\n')
		sb.WriteString(string(b.lines[row]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(b.lines[end.Row][:end.Col]))
	return sb.String()
}

// DeleteRange removes the text between start (inclusive) and end
// (exclusive) and returns it. The caller is responsible for saving an
// undo snapshot first.
func (b *TextBuffer) DeleteRange(start, end Position) string {
	start = b.clampPosition(start)
	end = b.clampPosition(end)
	if end.Less(start) {
		start, end = end, start
	}
	text := b.TextRange(start, end)

	if start.Row == end.Row {
		line := b.lines[start.Row]
		b.lines[start.Row] = append(line[:start.Col:start.Col], line[end.Col:]...)
		return text
	}

	joined := append(b.lines[start.Row][:start.Col:start.Col], b.lines[end.Row][end.Col:]...)
	b.lines[start.Row] = joined
	b.lines = append(b.lines[:start.Row+1], b.lines[end.Row+1:]...)
	return text
}

// InsertText inserts text at pos and returns the position just past the
// inserted content. Newlines in text split lines.
func (b *TextBuffer) InsertText(pos Position, text string) Position {
	pos = b.clampPosition(pos)
	parts := strings.Split(text, "\n")

	line := b.lines[pos.Row]
	prefix := append([]rune{}, line[:pos.Col]...)
	suffix := append([]rune{}, line[pos.Col:]...)

	if len(parts) == 1 {
		merged := append(prefix, []rune(parts[0])...)
		b.lines[pos.Row] = append(merged, suffix...)
		return Position{Row: pos.Row, Col: pos.Col + len([]rune(parts[0]))}
	}

	newLines := make([][]rune, len(parts))
	newLines[0] = append(prefix, []rune(parts[0])...)
	for i := 1; i < len(parts)-1; i++ {
		newLines[i] = []rune(parts[i])
	}
	last := []rune(parts[len(parts)-1])
	endCol := len(last)
	newLines[len(parts)-1] = append(last, suffix...)

	rest := append([][]rune{}, b.lines[pos.Row+1:]...)
	b.lines = append(b.lines[:pos.Row], newLines...)
	b.lines = append(b.lines, rest...)
	return Position{Row: pos.Row + len(parts) - 1, Col: endCol}
}

// InsertRune inserts a single rune at pos.
func (b *TextBuffer) InsertRune(pos Position, r rune) {
	pos = b.clampPosition(pos)
	line := b.lines[pos.Row]
	line = append(line[:pos.Col:pos.Col], append([]rune{r}, line[pos.Col:]...)...)
	b.lines[pos.Row] = line
}

// SplitLine breaks the line at pos in two.
func (b *TextBuffer) SplitLine(pos Position) {
	pos = b.clampPosition(pos)
	line := b.lines[pos.Row]
	before := append([]rune{}, line[:pos.Col]...)
	after := append([]rune{}, line[pos.Col:]...)
	b.lines[pos.Row] = before
	rest := append([][]rune{}, b.lines[pos.Row+1:]...)
	b.lines = append(b.lines[:pos.Row+1], append([][]rune{after}, rest...)...)
}

// InsertLines inserts whole lines starting at row index.
func (b *TextBuffer) InsertLines(row int, lines []string) {
	if row < 0 {
		row = 0
	}
	if row > len(b.lines) {
		row = len(b.lines)
	}
	inserted := make([][]rune, len(lines))
	for i, l := range lines {
		inserted[i] = []rune(l)
	}
	rest := append([][]rune{}, b.lines[row:]...)
	b.lines = append(b.lines[:row], append(inserted, rest...)...)
}

func cloneLines(lines [][]rune) [][]rune {
	out := make([][]rune, len(lines))
	for i, line := range lines {
		out[i] = append([]rune{}, line...)
	}
	return out
}

func linesEqual(a, b [][]rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if string(a[i]) != string(b[i]) {
			return false
		}
	}
	return true
}

// SaveUndo pushes the current buffer state onto the undo stack and
// clears the redo stack. Consecutive identical states collapse.
func (b *TextBuffer) SaveUndo(cursor Position) {
	if n := len(b.undoStack); n > 0 && linesEqual(b.undoStack[n-1].lines, b.lines) {
		return
	}
	b.undoStack = append(b.undoStack, bufferState{lines: cloneLines(b.lines), cursor: cursor})
	b.redoStack = nil
}

// Undo restores the most recent snapshot. It returns the cursor
// position recorded with that snapshot and whether an undo happened.
func (b *TextBuffer) Undo(current Position) (Position, bool) {
	if len(b.undoStack) == 0 {
		return current, false
	}
	b.redoStack = append(b.redoStack, bufferState{lines: cloneLines(b.lines), cursor: current})
	last := b.undoStack[len(b.undoStack)-1]
	b.undoStack = b.undoStack[:len(b.undoStack)-1]
	b.lines = last.lines
	return last.cursor, true
}

// Redo reverses the most recent undo.
func (b *TextBuffer) Redo(current Position) (Position, bool) {
	if len(b.redoStack) == 0 {
		return current, false
	}
	b.undoStack = append(b.undoStack, bufferState{lines: cloneLines(b.lines), cursor: current})
	last := b.redoStack[len(b.redoStack)-1]
	b.redoStack = b.redoStack[:len(b.redoStack)-1]
	b.lines = last.lines
	return last.cursor, true
}
