package editor

import (
	"strings"

	"github.com/sift-db/sift/internal/logger"
)

// Mode is the editor's current input mode.
type Mode int

const (
	// ModeNormal dispatches motions and commands.
	ModeNormal Mode = iota
	// ModeInsert inserts typed runes into the buffer.
	ModeInsert
	// ModeVisual extends a selection from an anchor.
	ModeVisual
	// ModeOperatorPending holds an operator (y, d, c) waiting for a
	// motion or a doubled operator key.
	ModeOperatorPending
)

// String returns the mode name for display.
func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeVisual:
		return "VISUAL"
	case ModeOperatorPending:
		return "PENDING"
	default:
		return "NORMAL"
	}
}

// TransitionKind classifies the result of dispatching a key.
type TransitionKind int

const (
	// NoChange means the key was consumed without a mode change.
	NoChange TransitionKind = iota
	// ModeChanged means the editor switched modes.
	ModeChanged
	// AwaitingOperand means the key did not match and is retained so a
	// following key can complete a two-key sequence (gg).
	AwaitingOperand
)

// Transition is the outcome of HandleKey.
type Transition struct {
	Kind    TransitionKind
	Mode    Mode // valid when Kind == ModeChanged
	Operand Key  // valid when Kind == AwaitingOperand
}

func noChange() Transition {
	return Transition{Kind: NoChange}
}

func modeChanged(m Mode) Transition {
	return Transition{Kind: ModeChanged, Mode: m}
}

// Clipboard receives yanked or deleted text. Writes are best-effort;
// failures are logged and never interrupt editing.
type Clipboard interface {
	Write(text string) error
}

// Editor is the modal editing engine over a TextBuffer.
type Editor struct {
	buf    *TextBuffer
	cursor Position
	mode   Mode

	// op is the active operator while in ModeOperatorPending.
	op rune
	// pending is the last unmatched key, kept for two-key sequences.
	pending    Key
	hasPending bool

	// anchor marks the start of a visual selection or operator span.
	anchor   Position
	linewise bool

	// register holds the last yank or delete. A leading newline marks
	// linewise content; paste opens a new line for it.
	register string

	desiredCol int

	clip Clipboard
}

// New creates an editor over the given initial text. clip may be nil.
func New(initial string, clip Clipboard) *Editor {
	return &Editor{
		buf:  NewTextBuffer(initial),
		clip: clip,
	}
}

// Mode returns the current input mode.
func (e *Editor) Mode() Mode { return e.mode }

// Cursor returns the current cursor position.
func (e *Editor) Cursor() Position { return e.cursor }

// Buffer exposes the underlying text buffer for rendering.
func (e *Editor) Buffer() *TextBuffer { return e.buf }

// Text returns the full buffer content.
func (e *Editor) Text() string { return e.buf.Text() }

// PendingOperator returns the active operator rune while in
// ModeOperatorPending, or 0.
func (e *Editor) PendingOperator() rune {
	if e.mode == ModeOperatorPending {
		return e.op
	}
	return 0
}

// Register returns the current yank register content.
func (e *Editor) Register() string { return e.register }

// SetText replaces the buffer content and resets editing state.
func (e *Editor) SetText(text string) {
	e.buf = NewTextBuffer(text)
	e.cursor = Position{}
	e.mode = ModeNormal
	e.op = 0
	e.hasPending = false
	e.desiredCol = 0
}

// Selection returns the normalized visual selection as an inclusive
// range, and whether one is active.
func (e *Editor) Selection() (start, end Position, ok bool) {
	if e.mode != ModeVisual {
		return Position{}, Position{}, false
	}
	start, end = e.anchor, e.cursor
	if end.Less(start) {
		start, end = end, start
	}
	if e.linewise {
		start = Position{Row: start.Row}
		end = Position{Row: end.Row, Col: e.maxCol(end.Row)}
	}
	return start, end, true
}

// HandleKey dispatches one key event and returns the resulting
// transition.
func (e *Editor) HandleKey(k Key) Transition {
	if k.Kind == KeyNone {
		return noChange()
	}
	if e.mode == ModeInsert {
		return e.handleInsertKey(k)
	}
	return e.handleCommandKey(k)
}

func (e *Editor) handleInsertKey(k Key) Transition {
	switch {
	case k.Kind == KeyEsc, k.Ctrl && k.Rune == 'c':
		return e.toNormal()
	case k.Kind == KeyEnter:
		e.buf.SplitLine(e.cursor)
		e.cursor = Position{Row: e.cursor.Row + 1}
		e.desiredCol = 0
		return noChange()
	case k.Kind == KeyBackspace:
		if e.cursor.Col > 0 {
			e.buf.DeleteRange(Position{Row: e.cursor.Row, Col: e.cursor.Col - 1}, e.cursor)
			e.cursor.Col--
		} else if e.cursor.Row > 0 {
			prevLen := e.buf.LineLen(e.cursor.Row - 1)
			e.buf.DeleteRange(Position{Row: e.cursor.Row - 1, Col: prevLen}, e.cursor)
			e.cursor = Position{Row: e.cursor.Row - 1, Col: prevLen}
		}
		e.desiredCol = e.cursor.Col
		return noChange()
	case k.Kind == KeyRune && !k.Ctrl:
		e.buf.InsertRune(e.cursor, k.Rune)
		e.cursor.Col++
		e.desiredCol = e.cursor.Col
		return noChange()
	default:
		return noChange()
	}
}

// handleCommandKey dispatches keys in Normal, Visual, and
// OperatorPending modes. Motions share one table; when an operator is
// pending, a matched motion completes it.
func (e *Editor) handleCommandKey(k Key) Transition {
	if k.Kind == KeyEsc || (k.Ctrl && k.Rune == 'c') {
		if e.mode != ModeNormal {
			e.op = 0
			return e.toNormal()
		}
		return noChange()
	}

	if k.Ctrl {
		// Redo works regardless of a pending operator or selection
		// and resolves to Normal.
		if k.Rune == 'r' {
			if pos, ok := e.buf.Redo(e.cursor); ok {
				e.cursor = pos
			}
			e.op = 0
			return e.toNormal()
		}
		return e.awaitOperand(k)
	}

	if k.Kind != KeyRune {
		return e.awaitOperand(k)
	}

	moved := false
	inclusive := false

	switch k.Rune {
	case 'h':
		e.moveLeft()
		moved = true
	case 'l':
		e.moveRight()
		moved = true
	case 'j':
		e.moveDown()
		moved = true
	case 'k':
		e.moveUp()
		moved = true
	case 'w':
		e.moveWordForward()
		moved = true
	case 'e':
		e.moveWordEnd()
		moved = true
		inclusive = true
	case 'b':
		e.moveWordBack()
		moved = true
	case '0':
		e.cursor.Col = 0
		e.desiredCol = 0
		moved = true
	case '^':
		e.moveFirstNonBlank()
		moved = true
	case '$':
		e.moveLineEnd()
		moved = true
		inclusive = true
	case 'G':
		e.moveBottom()
		moved = true
	case 'g':
		// gg jumps to the first line; a lone g waits for its pair.
		if e.hasPending && e.pending.Kind == KeyRune && e.pending.Rune == 'g' && !e.pending.Ctrl {
			e.moveTop()
			moved = true
		} else {
			return e.awaitOperand(k)
		}

	case 'i', 'a', 'I', 'A', 'o', 'O':
		if e.mode != ModeNormal {
			return e.awaitOperand(k)
		}
		return e.enterInsert(k.Rune)

	case 'v':
		switch e.mode {
		case ModeNormal:
			e.anchor = e.cursor
			e.linewise = false
			e.mode = ModeVisual
			return modeChanged(ModeVisual)
		case ModeVisual:
			return e.toNormal()
		default:
			return e.awaitOperand(k)
		}
	case 'V':
		switch e.mode {
		case ModeNormal:
			e.anchor = Position{Row: e.cursor.Row}
			e.linewise = true
			e.moveLineEnd()
			e.mode = ModeVisual
			return modeChanged(ModeVisual)
		case ModeVisual:
			return e.toNormal()
		default:
			return e.awaitOperand(k)
		}

	case 'y', 'd', 'c':
		switch e.mode {
		case ModeVisual:
			return e.applyVisualOperator(k.Rune)
		case ModeOperatorPending:
			if k.Rune == e.op {
				return e.applyLinewiseOperator(k.Rune)
			}
			return e.awaitOperand(k)
		default:
			e.op = k.Rune
			e.anchor = e.cursor
			e.mode = ModeOperatorPending
			return modeChanged(ModeOperatorPending)
		}

	// Paste, undo, and the in-place edits apply regardless of a
	// pending operator or selection, dropping both, and resolve to
	// Normal (change resolves to Insert).
	case 'p':
		e.paste()
		e.op = 0
		return e.toNormal()
	case 'u':
		if pos, ok := e.buf.Undo(e.cursor); ok {
			e.cursor = pos
		}
		e.op = 0
		return e.toNormal()
	case 'x':
		e.deleteCharUnderCursor()
		e.op = 0
		return e.toNormal()
	case 'D':
		e.deleteToLineEnd()
		e.op = 0
		return e.toNormal()
	case 'C':
		e.op = 0
		e.linewise = false
		e.buf.SaveUndo(e.cursor)
		e.deleteToLineEnd()
		e.mode = ModeInsert
		return modeChanged(ModeInsert)

	default:
		return e.awaitOperand(k)
	}

	if moved && e.mode == ModeOperatorPending {
		return e.applyPendingOperator(inclusive)
	}
	return noChange()
}

func (e *Editor) awaitOperand(k Key) Transition {
	e.pending = k
	e.hasPending = true
	return Transition{Kind: AwaitingOperand, Operand: k}
}

func (e *Editor) toNormal() Transition {
	e.mode = ModeNormal
	e.linewise = false
	e.clampCursor()
	return modeChanged(ModeNormal)
}

func (e *Editor) enterInsert(cmd rune) Transition {
	e.buf.SaveUndo(e.cursor)
	switch cmd {
	case 'a':
		if e.buf.LineLen(e.cursor.Row) > 0 {
			e.cursor.Col++
		}
	case 'I':
		e.moveFirstNonBlank()
	case 'A':
		e.cursor.Col = e.buf.LineLen(e.cursor.Row)
	case 'o':
		e.buf.InsertLines(e.cursor.Row+1, []string{""})
		e.cursor = Position{Row: e.cursor.Row + 1}
	case 'O':
		e.buf.InsertLines(e.cursor.Row, []string{""})
		e.cursor = Position{Row: e.cursor.Row}
	}
	e.desiredCol = e.cursor.Col
	e.mode = ModeInsert
	return modeChanged(ModeInsert)
}

// maxCol is the rightmost addressable column for non-insert modes.
func (e *Editor) maxCol(row int) int {
	n := e.buf.LineLen(row) - 1
	if n < 0 {
		return 0
	}
	return n
}

// clampCursor bounds the cursor for normal-mode addressing.
func (e *Editor) clampCursor() {
	if e.cursor.Row < 0 {
		e.cursor.Row = 0
	}
	if last := e.buf.LineCount() - 1; e.cursor.Row > last {
		e.cursor.Row = last
	}
	if e.cursor.Col < 0 {
		e.cursor.Col = 0
	}
	if max := e.maxCol(e.cursor.Row); e.cursor.Col > max {
		e.cursor.Col = max
	}
}

func (e *Editor) writeClipboard(text string) {
	if e.clip == nil {
		return
	}
	if err := e.clip.Write(text); err != nil {
		logger.Warn("clipboard write failed", "error", err)
	}
}

func (e *Editor) paste() {
	if e.register == "" {
		return
	}
	e.buf.SaveUndo(e.cursor)
	if body, ok := strings.CutPrefix(e.register, "\n"); ok {
		lines := strings.Split(body, "\n")
		e.buf.InsertLines(e.cursor.Row+1, lines)
		e.cursor = Position{Row: e.cursor.Row + 1}
		e.desiredCol = 0
		return
	}
	pos := e.cursor
	if e.buf.LineLen(pos.Row) > 0 {
		pos.Col++
	}
	end := e.buf.InsertText(pos, e.register)
	if end.Col > 0 {
		end.Col--
	}
	e.cursor = end
	e.desiredCol = e.cursor.Col
}

func (e *Editor) deleteCharUnderCursor() {
	row, col := e.cursor.Row, e.cursor.Col
	if e.buf.LineLen(row) == 0 {
		return
	}
	e.buf.SaveUndo(e.cursor)
	deleted := e.buf.DeleteRange(e.cursor, Position{Row: row, Col: col + 1})
	e.register = deleted
	e.writeClipboard(deleted)
	e.clampCursor()
}

func (e *Editor) deleteToLineEnd() {
	row := e.cursor.Row
	if e.cursor.Col >= e.buf.LineLen(row) {
		return
	}
	e.buf.SaveUndo(e.cursor)
	deleted := e.buf.DeleteRange(e.cursor, Position{Row: row, Col: e.buf.LineLen(row)})
	e.register = deleted
	e.writeClipboard(deleted)
}
