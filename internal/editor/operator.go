package editor

// applyPendingOperator completes an operator after a matched motion.
// The span runs from the anchor (where the operator was pressed) to the
// cursor, end-exclusive. Motions that land on their target rune ('e',
// '$') extend the span by one so the rune is included.
func (e *Editor) applyPendingOperator(inclusive bool) Transition {
	start, end := e.anchor, e.cursor
	if end.Less(start) {
		start, end = end, start
	} else if inclusive {
		end.Col++
	}
	op := e.op
	e.op = 0

	switch op {
	case 'y':
		text := e.buf.TextRange(start, end)
		e.register = text
		e.writeClipboard(text)
		e.cursor = start
		return e.toNormal()
	case 'd':
		e.buf.SaveUndo(e.cursor)
		text := e.buf.DeleteRange(start, end)
		e.register = text
		e.writeClipboard(text)
		e.cursor = start
		return e.toNormal()
	case 'c':
		e.buf.SaveUndo(e.cursor)
		text := e.buf.DeleteRange(start, end)
		e.register = text
		e.writeClipboard(text)
		e.cursor = start
		e.mode = ModeInsert
		return modeChanged(ModeInsert)
	}
	return e.toNormal()
}

// applyLinewiseOperator handles a doubled operator key (yy, dd, cc)
// acting on the cursor line.
func (e *Editor) applyLinewiseOperator(op rune) Transition {
	row := e.cursor.Row
	line := e.buf.Line(row)
	e.register = "\n" + line
	e.writeClipboard(line + "\n")
	e.op = 0

	switch op {
	case 'y':
		return e.toNormal()
	case 'd':
		e.buf.SaveUndo(e.cursor)
		e.deleteWholeLine(row)
		return e.toNormal()
	case 'c':
		e.buf.SaveUndo(e.cursor)
		e.buf.DeleteRange(Position{Row: row}, Position{Row: row, Col: e.buf.LineLen(row)})
		e.cursor = Position{Row: row}
		e.desiredCol = 0
		e.mode = ModeInsert
		return modeChanged(ModeInsert)
	}
	return e.toNormal()
}

// deleteWholeLine removes a line including its newline. The sole line
// of a buffer is cleared instead.
func (e *Editor) deleteWholeLine(row int) {
	last := e.buf.LineCount() - 1
	switch {
	case last == 0:
		e.buf.DeleteRange(Position{}, Position{Col: e.buf.LineLen(0)})
		e.cursor = Position{}
	case row < last:
		e.buf.DeleteRange(Position{Row: row}, Position{Row: row + 1})
		e.cursor = Position{Row: row}
	default:
		e.buf.DeleteRange(
			Position{Row: row - 1, Col: e.buf.LineLen(row - 1)},
			Position{Row: row, Col: e.buf.LineLen(row)},
		)
		e.cursor = Position{Row: row - 1}
	}
	e.desiredCol = 0
}

// applyVisualOperator applies y, d, or c to the active selection.
// Selections are inclusive of the rune under the cursor; line
// selections cover whole lines.
func (e *Editor) applyVisualOperator(op rune) Transition {
	start, end := e.anchor, e.cursor
	if end.Less(start) {
		start, end = end, start
	}

	linewise := e.linewise
	last := e.buf.LineCount() - 1
	reachedLast := false
	if linewise {
		start = Position{Row: start.Row}
		if end.Row < last {
			end = Position{Row: end.Row + 1}
		} else {
			reachedLast = true
			end = Position{Row: end.Row, Col: e.buf.LineLen(end.Row)}
		}
	} else {
		if end.Col < e.buf.LineLen(end.Row) {
			end.Col++
		}
	}

	switch op {
	case 'y':
		text := e.buf.TextRange(start, end)
		e.register = registerText(text, linewise, end)
		e.writeClipboard(text)
		e.cursor = start
		return e.toNormal()
	case 'd', 'c':
		// A line selection reaching the last row must also consume the
		// newline before it, like dd on the last line.
		if linewise && reachedLast && start.Row > 0 {
			text := e.buf.TextRange(start, end)
			e.register = "\n" + text
			e.writeClipboard(text)
			e.buf.SaveUndo(e.cursor)
			e.buf.DeleteRange(
				Position{Row: start.Row - 1, Col: e.buf.LineLen(start.Row - 1)},
				end,
			)
			e.cursor = Position{Row: start.Row - 1}
		} else {
			text := e.buf.TextRange(start, end)
			e.register = registerText(text, linewise, end)
			e.writeClipboard(text)
			e.buf.SaveUndo(e.cursor)
			e.buf.DeleteRange(start, end)
			e.cursor = start
		}
		if op == 'c' {
			e.linewise = false
			e.mode = ModeInsert
			return modeChanged(ModeInsert)
		}
		return e.toNormal()
	}
	return e.toNormal()
}

// registerText normalizes yanked text for the register. Linewise spans
// carry a leading newline so paste opens a new line.
func registerText(text string, linewise bool, end Position) string {
	if !linewise {
		return text
	}
	if end.Col == 0 && len(text) > 0 {
		// Span ended at the start of the following line; trim the
		// trailing newline from the captured text.
		text = text[:len(text)-1]
	}
	return "\n" + text
}
