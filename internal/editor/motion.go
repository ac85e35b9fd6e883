package editor

import "unicode"

// charClass buckets runes for word motions: whitespace, word runes
// (letters, digits, underscore), and other punctuation.
func charClass(r rune) int {
	switch {
	case unicode.IsSpace(r):
		return 0
	case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
		return 1
	default:
		return 2
	}
}

func (e *Editor) moveLeft() {
	if e.cursor.Col > 0 {
		e.cursor.Col--
	}
	e.desiredCol = e.cursor.Col
}

func (e *Editor) moveRight() {
	if e.cursor.Col < e.maxCol(e.cursor.Row) {
		e.cursor.Col++
	}
	e.desiredCol = e.cursor.Col
}

func (e *Editor) moveDown() {
	if e.cursor.Row < e.buf.LineCount()-1 {
		e.cursor.Row++
		e.cursor.Col = min(e.desiredCol, e.maxCol(e.cursor.Row))
	}
}

func (e *Editor) moveUp() {
	if e.cursor.Row > 0 {
		e.cursor.Row--
		e.cursor.Col = min(e.desiredCol, e.maxCol(e.cursor.Row))
	}
}

func (e *Editor) moveLineEnd() {
	e.cursor.Col = e.maxCol(e.cursor.Row)
	e.desiredCol = e.cursor.Col
}

func (e *Editor) moveFirstNonBlank() {
	line := e.buf.lineRunes(e.cursor.Row)
	col := 0
	for col < len(line) && unicode.IsSpace(line[col]) {
		col++
	}
	if col >= len(line) {
		col = 0
	}
	e.cursor.Col = col
	e.desiredCol = col
}

func (e *Editor) moveTop() {
	e.cursor.Row = 0
	e.cursor.Col = min(e.desiredCol, e.maxCol(0))
}

func (e *Editor) moveBottom() {
	e.cursor.Row = e.buf.LineCount() - 1
	e.cursor.Col = min(e.desiredCol, e.maxCol(e.cursor.Row))
}

// moveWordForward advances to the start of the next word, crossing
// line boundaries. At the end of the buffer it stops on the last rune.
func (e *Editor) moveWordForward() {
	row, col := e.cursor.Row, e.cursor.Col
	line := e.buf.lineRunes(row)

	if col < len(line) {
		cls := charClass(line[col])
		if cls != 0 {
			for col < len(line) && charClass(line[col]) == cls {
				col++
			}
		}
	}

	for {
		for col < len(line) && unicode.IsSpace(line[col]) {
			col++
		}
		if col < len(line) {
			break
		}
		if row >= e.buf.LineCount()-1 {
			col = e.maxCol(row)
			break
		}
		row++
		col = 0
		line = e.buf.lineRunes(row)
		if len(line) == 0 {
			break
		}
	}

	e.cursor = Position{Row: row, Col: col}
	e.desiredCol = col
}

// moveWordEnd advances to the last rune of the next word.
func (e *Editor) moveWordEnd() {
	row, col := e.cursor.Row, e.cursor.Col
	last := e.buf.LineCount() - 1
	line := e.buf.lineRunes(row)

	col++
	for {
		for col >= len(line) {
			if row >= last {
				e.cursor = Position{Row: row, Col: e.maxCol(row)}
				e.desiredCol = e.cursor.Col
				return
			}
			row++
			col = 0
			line = e.buf.lineRunes(row)
		}
		if !unicode.IsSpace(line[col]) {
			break
		}
		col++
	}

	cls := charClass(line[col])
	for col+1 < len(line) && charClass(line[col+1]) == cls {
		col++
	}
	e.cursor = Position{Row: row, Col: col}
	e.desiredCol = col
}

// moveWordBack retreats to the start of the previous word.
func (e *Editor) moveWordBack() {
	row, col := e.cursor.Row, e.cursor.Col
	line := e.buf.lineRunes(row)

	col--
	for {
		for col < 0 {
			if row == 0 {
				e.cursor = Position{Row: 0, Col: 0}
				e.desiredCol = 0
				return
			}
			row--
			line = e.buf.lineRunes(row)
			col = len(line) - 1
		}
		if !unicode.IsSpace(line[col]) {
			break
		}
		col--
	}

	cls := charClass(line[col])
	for col > 0 && charClass(line[col-1]) == cls {
		col--
	}
	e.cursor = Position{Row: row, Col: col}
	e.desiredCol = col
}
