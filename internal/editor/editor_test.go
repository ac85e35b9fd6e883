package editor

import (
	"testing"
)

// feed dispatches each rune as a key press.
func feed(e *Editor, keys string) {
	for _, r := range keys {
		e.HandleKey(RuneKey(r))
	}
}

func pressEsc(e *Editor) {
	e.HandleKey(Key{Kind: KeyEsc})
}

func TestInsertModeRoundTrip(t *testing.T) {
	e := New("", nil)

	tr := e.HandleKey(RuneKey('i'))
	if tr.Kind != ModeChanged || tr.Mode != ModeInsert {
		t.Fatalf("expected ModeChanged(Insert), got %+v", tr)
	}

	feed(e, "select 1")
	if e.Text() != "select 1" {
		t.Errorf("expected 'select 1', got %q", e.Text())
	}

	tr = e.HandleKey(Key{Kind: KeyEsc})
	if tr.Kind != ModeChanged || tr.Mode != ModeNormal {
		t.Fatalf("expected ModeChanged(Normal), got %+v", tr)
	}
	// Normal mode clamps the cursor onto the last rune.
	if e.Cursor() != (Position{Row: 0, Col: 7}) {
		t.Errorf("expected cursor at col 7, got %+v", e.Cursor())
	}
}

func TestInsertEnterSplitsLine(t *testing.T) {
	e := New("", nil)
	feed(e, "iab")
	e.HandleKey(Key{Kind: KeyEnter})
	feed(e, "cd")

	if e.Text() != "ab\ncd" {
		t.Errorf("expected 'ab\\ncd', got %q", e.Text())
	}
	if e.Cursor() != (Position{Row: 1, Col: 2}) {
		t.Errorf("expected cursor {1 2}, got %+v", e.Cursor())
	}
}

func TestInsertBackspaceJoinsLines(t *testing.T) {
	e := New("ab\ncd", nil)
	feed(e, "j")
	feed(e, "i")
	e.HandleKey(Key{Kind: KeyBackspace})

	if e.Text() != "abcd" {
		t.Errorf("expected 'abcd', got %q", e.Text())
	}
	if e.Cursor() != (Position{Row: 0, Col: 2}) {
		t.Errorf("expected cursor {0 2}, got %+v", e.Cursor())
	}
}

func TestMotionBounds(t *testing.T) {
	e := New("ab\ncd", nil)

	// h and k at the origin stay put.
	feed(e, "hhkk")
	if e.Cursor() != (Position{}) {
		t.Errorf("expected origin, got %+v", e.Cursor())
	}

	// l stops at the last rune, j at the last row.
	feed(e, "lllljjjj")
	if e.Cursor() != (Position{Row: 1, Col: 1}) {
		t.Errorf("expected {1 1}, got %+v", e.Cursor())
	}
}

func TestLineMotions(t *testing.T) {
	e := New("  hello world", nil)

	feed(e, "$")
	if e.Cursor().Col != 12 {
		t.Errorf("$ expected col 12, got %d", e.Cursor().Col)
	}
	feed(e, "^")
	if e.Cursor().Col != 2 {
		t.Errorf("^ expected col 2, got %d", e.Cursor().Col)
	}
	feed(e, "0")
	if e.Cursor().Col != 0 {
		t.Errorf("0 expected col 0, got %d", e.Cursor().Col)
	}
}

func TestWordMotions(t *testing.T) {
	e := New("foo bar, baz", nil)

	feed(e, "w")
	if e.Cursor().Col != 4 {
		t.Errorf("w expected col 4 (bar), got %d", e.Cursor().Col)
	}
	feed(e, "w")
	if e.Cursor().Col != 7 {
		t.Errorf("w expected col 7 (comma), got %d", e.Cursor().Col)
	}
	feed(e, "w")
	if e.Cursor().Col != 9 {
		t.Errorf("w expected col 9 (baz), got %d", e.Cursor().Col)
	}
	feed(e, "b")
	if e.Cursor().Col != 7 {
		t.Errorf("b expected col 7, got %d", e.Cursor().Col)
	}
	feed(e, "0e")
	if e.Cursor().Col != 2 {
		t.Errorf("e expected col 2 (end of foo), got %d", e.Cursor().Col)
	}
}

func TestWordForwardCrossesLines(t *testing.T) {
	e := New("foo\nbar", nil)
	feed(e, "w")
	if e.Cursor() != (Position{Row: 1, Col: 0}) {
		t.Errorf("expected {1 0}, got %+v", e.Cursor())
	}
}

func TestGgAndG(t *testing.T) {
	e := New("one\ntwo\nthree", nil)

	feed(e, "G")
	if e.Cursor().Row != 2 {
		t.Errorf("G expected row 2, got %d", e.Cursor().Row)
	}

	// First g is unmatched and retained; the second completes gg.
	tr := e.HandleKey(RuneKey('g'))
	if tr.Kind != AwaitingOperand || tr.Operand.Rune != 'g' {
		t.Fatalf("expected AwaitingOperand(g), got %+v", tr)
	}
	e.HandleKey(RuneKey('g'))
	if e.Cursor().Row != 0 {
		t.Errorf("gg expected row 0, got %d", e.Cursor().Row)
	}
}

func TestDdDeletesLine(t *testing.T) {
	e := New("one\ntwo\nthree", nil)
	feed(e, "j")

	tr := e.HandleKey(RuneKey('d'))
	if tr.Kind != ModeChanged || tr.Mode != ModeOperatorPending {
		t.Fatalf("expected ModeChanged(OperatorPending), got %+v", tr)
	}
	if e.PendingOperator() != 'd' {
		t.Errorf("expected pending operator 'd', got %q", e.PendingOperator())
	}

	tr = e.HandleKey(RuneKey('d'))
	if tr.Kind != ModeChanged || tr.Mode != ModeNormal {
		t.Fatalf("expected ModeChanged(Normal), got %+v", tr)
	}
	if e.Text() != "one\nthree" {
		t.Errorf("expected 'one\\nthree', got %q", e.Text())
	}
	if e.Cursor().Row != 1 {
		t.Errorf("expected cursor on row 1, got %d", e.Cursor().Row)
	}
	if e.Register() != "\ntwo" {
		t.Errorf("expected linewise register '\\ntwo', got %q", e.Register())
	}
}

func TestDdLastLine(t *testing.T) {
	e := New("one\ntwo", nil)
	feed(e, "jdd")
	if e.Text() != "one" {
		t.Errorf("expected 'one', got %q", e.Text())
	}
	if e.Cursor().Row != 0 {
		t.Errorf("expected row 0, got %d", e.Cursor().Row)
	}
}

func TestDdSoleLine(t *testing.T) {
	e := New("only", nil)
	feed(e, "dd")
	if e.Text() != "" {
		t.Errorf("expected empty buffer, got %q", e.Text())
	}
	if e.Buffer().LineCount() != 1 {
		t.Errorf("buffer must keep one line, got %d", e.Buffer().LineCount())
	}
}

func TestYyThenPaste(t *testing.T) {
	e := New("one\ntwo", nil)
	feed(e, "yyp")
	if e.Text() != "one\none\ntwo" {
		t.Errorf("expected 'one\\none\\ntwo', got %q", e.Text())
	}
	if e.Cursor() != (Position{Row: 1, Col: 0}) {
		t.Errorf("expected cursor {1 0}, got %+v", e.Cursor())
	}
}

func TestDeleteWordOperator(t *testing.T) {
	e := New("foo bar baz", nil)
	feed(e, "dw")
	if e.Text() != "bar baz" {
		t.Errorf("dw expected 'bar baz', got %q", e.Text())
	}
	if e.Mode() != ModeNormal {
		t.Errorf("expected Normal after dw, got %v", e.Mode())
	}
}

func TestDeleteToLineEndOperator(t *testing.T) {
	e := New("foo bar", nil)
	feed(e, "wd$")
	if e.Text() != "foo " {
		t.Errorf("d$ expected 'foo ', got %q", e.Text())
	}
}

func TestChangeWordEntersInsert(t *testing.T) {
	e := New("foo bar", nil)
	tr := e.HandleKey(RuneKey('c'))
	if tr.Kind != ModeChanged || tr.Mode != ModeOperatorPending {
		t.Fatalf("expected ModeChanged(OperatorPending), got %+v", tr)
	}
	tr = e.HandleKey(RuneKey('e'))
	if tr.Kind != ModeChanged || tr.Mode != ModeInsert {
		t.Fatalf("expected ModeChanged(Insert), got %+v", tr)
	}
	if e.Text() != " bar" {
		t.Errorf("ce expected ' bar', got %q", e.Text())
	}
	feed(e, "qux")
	if e.Text() != "qux bar" {
		t.Errorf("expected 'qux bar', got %q", e.Text())
	}
}

func TestOperatorAbortedByEscape(t *testing.T) {
	e := New("foo", nil)
	feed(e, "d")
	pressEsc(e)
	if e.Mode() != ModeNormal {
		t.Errorf("expected Normal after esc, got %v", e.Mode())
	}
	feed(e, "l")
	if e.Text() != "foo" {
		t.Errorf("buffer must be unchanged, got %q", e.Text())
	}
}

func TestVisualYankPasteRoundTrip(t *testing.T) {
	e := New("hello", nil)

	tr := e.HandleKey(RuneKey('v'))
	if tr.Kind != ModeChanged || tr.Mode != ModeVisual {
		t.Fatalf("expected ModeChanged(Visual), got %+v", tr)
	}
	feed(e, "ll") // selects "hel"
	feed(e, "y")
	if e.Mode() != ModeNormal {
		t.Fatalf("expected Normal after yank, got %v", e.Mode())
	}
	if e.Register() != "hel" {
		t.Fatalf("expected register 'hel', got %q", e.Register())
	}

	feed(e, "p")
	if e.Text() != "hhelello" {
		t.Errorf("expected 'hhelello', got %q", e.Text())
	}
}

func TestVisualDelete(t *testing.T) {
	e := New("hello world", nil)
	feed(e, "ved")
	if e.Text() != " world" {
		t.Errorf("ved expected ' world', got %q", e.Text())
	}
}

func TestVisualLineDelete(t *testing.T) {
	e := New("one\ntwo\nthree", nil)
	feed(e, "Vjd")
	if e.Text() != "three" {
		t.Errorf("Vjd expected 'three', got %q", e.Text())
	}
}

func TestVisualLineYankIsLinewise(t *testing.T) {
	e := New("one\ntwo", nil)
	feed(e, "Vy")
	if e.Register() != "\none" {
		t.Errorf("expected register '\\none', got %q", e.Register())
	}
	feed(e, "p")
	if e.Text() != "one\none\ntwo" {
		t.Errorf("expected 'one\\none\\ntwo', got %q", e.Text())
	}
}

func TestVisualSelectionNormalized(t *testing.T) {
	e := New("abcdef", nil)
	feed(e, "llllvhh") // anchor at col 4, cursor back to col 2

	start, end, ok := e.Selection()
	if !ok {
		t.Fatal("expected active selection")
	}
	if start != (Position{Row: 0, Col: 2}) || end != (Position{Row: 0, Col: 4}) {
		t.Errorf("expected {0 2}..{0 4}, got %+v..%+v", start, end)
	}
}

func TestUnmatchedKeyInVisualAwaitsOperand(t *testing.T) {
	e := New("abc", nil)
	feed(e, "v")
	tr := e.HandleKey(RuneKey('z'))
	if tr.Kind != AwaitingOperand || tr.Operand.Rune != 'z' {
		t.Errorf("expected AwaitingOperand(z), got %+v", tr)
	}
	if e.Mode() != ModeVisual {
		t.Errorf("mode must stay Visual, got %v", e.Mode())
	}
}

func TestDeleteCharUnderCursor(t *testing.T) {
	e := New("abc", nil)
	feed(e, "x")
	if e.Text() != "bc" {
		t.Errorf("x expected 'bc', got %q", e.Text())
	}
	feed(e, "xxx") // last x is a no-op on the empty line
	if e.Text() != "" {
		t.Errorf("expected empty buffer, got %q", e.Text())
	}
}

func TestDeleteToEndShorthand(t *testing.T) {
	e := New("foo bar", nil)
	feed(e, "wD")
	if e.Text() != "foo " {
		t.Errorf("D expected 'foo ', got %q", e.Text())
	}
	if e.Mode() != ModeNormal {
		t.Errorf("expected Normal after D, got %v", e.Mode())
	}
}

func TestChangeToEndShorthand(t *testing.T) {
	e := New("foo bar", nil)
	feed(e, "wC")
	if e.Mode() != ModeInsert {
		t.Fatalf("expected Insert after C, got %v", e.Mode())
	}
	feed(e, "qux")
	if e.Text() != "foo qux" {
		t.Errorf("expected 'foo qux', got %q", e.Text())
	}
}

func TestUndoRedo(t *testing.T) {
	e := New("start", nil)
	feed(e, "dd")
	if e.Text() != "" {
		t.Fatalf("expected empty, got %q", e.Text())
	}

	feed(e, "u")
	if e.Text() != "start" {
		t.Errorf("undo expected 'start', got %q", e.Text())
	}

	e.HandleKey(CtrlKey('r'))
	if e.Text() != "" {
		t.Errorf("redo expected empty, got %q", e.Text())
	}
}

func TestPasteInVisualResolvesToNormal(t *testing.T) {
	e := New("one", nil)
	feed(e, "yy")
	feed(e, "v")

	tr := e.HandleKey(RuneKey('p'))
	if tr.Kind != ModeChanged || tr.Mode != ModeNormal {
		t.Fatalf("expected ModeChanged(Normal), got %+v", tr)
	}
	if e.Text() != "one\none" {
		t.Errorf("expected 'one\\none', got %q", e.Text())
	}

	// The selection is dropped along with the mode.
	if _, _, ok := e.Selection(); ok {
		t.Error("selection must be cleared by paste")
	}
}

func TestUndoInOperatorPendingResolvesToNormal(t *testing.T) {
	e := New("one\ntwo", nil)
	feed(e, "dd")
	feed(e, "d") // pending operator

	tr := e.HandleKey(RuneKey('u'))
	if tr.Kind != ModeChanged || tr.Mode != ModeNormal {
		t.Fatalf("expected ModeChanged(Normal), got %+v", tr)
	}
	if e.Text() != "one\ntwo" {
		t.Errorf("undo expected 'one\\ntwo', got %q", e.Text())
	}

	// The dropped operator must not fire on the next motion.
	feed(e, "j")
	if e.Text() != "one\ntwo" {
		t.Errorf("text changed after plain motion, got %q", e.Text())
	}
}

func TestRedoInVisualResolvesToNormal(t *testing.T) {
	e := New("one\ntwo", nil)
	feed(e, "ddu")
	feed(e, "v")

	tr := e.HandleKey(CtrlKey('r'))
	if tr.Kind != ModeChanged || tr.Mode != ModeNormal {
		t.Fatalf("expected ModeChanged(Normal), got %+v", tr)
	}
	if e.Text() != "two" {
		t.Errorf("redo expected 'two', got %q", e.Text())
	}
}

func TestDeleteCharInVisualResolvesToNormal(t *testing.T) {
	e := New("abc", nil)
	feed(e, "lv")

	tr := e.HandleKey(RuneKey('x'))
	if tr.Kind != ModeChanged || tr.Mode != ModeNormal {
		t.Fatalf("expected ModeChanged(Normal), got %+v", tr)
	}
	if e.Text() != "ac" {
		t.Errorf("x expected 'ac', got %q", e.Text())
	}
}

func TestDeleteToLineEndInOperatorPending(t *testing.T) {
	e := New("abc def", nil)
	feed(e, "ly") // pending yank with cursor on col 1

	tr := e.HandleKey(RuneKey('D'))
	if tr.Kind != ModeChanged || tr.Mode != ModeNormal {
		t.Fatalf("expected ModeChanged(Normal), got %+v", tr)
	}
	if e.Text() != "a" {
		t.Errorf("D expected 'a', got %q", e.Text())
	}
}

func TestChangeToLineEndInVisual(t *testing.T) {
	e := New("abc", nil)
	feed(e, "v")

	tr := e.HandleKey(RuneKey('C'))
	if tr.Kind != ModeChanged || tr.Mode != ModeInsert {
		t.Fatalf("expected ModeChanged(Insert), got %+v", tr)
	}
	if e.Text() != "" {
		t.Errorf("C expected empty line, got %q", e.Text())
	}
	feed(e, "z")
	if e.Text() != "z" {
		t.Errorf("expected insert after C, got %q", e.Text())
	}
}

func TestUndoInsertSession(t *testing.T) {
	e := New("abc", nil)
	feed(e, "A")
	feed(e, "def")
	pressEsc(e)
	if e.Text() != "abcdef" {
		t.Fatalf("expected 'abcdef', got %q", e.Text())
	}

	// One undo reverts the whole insert session.
	feed(e, "u")
	if e.Text() != "abc" {
		t.Errorf("undo expected 'abc', got %q", e.Text())
	}
}

func TestOpenLineBelowAndAbove(t *testing.T) {
	e := New("one\ntwo", nil)
	feed(e, "o")
	pressEsc(e)
	if e.Text() != "one\n\ntwo" {
		t.Errorf("o expected 'one\\n\\ntwo', got %q", e.Text())
	}

	e = New("one", nil)
	feed(e, "O")
	pressEsc(e)
	if e.Text() != "\none" {
		t.Errorf("O expected '\\none', got %q", e.Text())
	}
}

func TestAppendAtLineEnd(t *testing.T) {
	e := New("ab", nil)
	feed(e, "A!")
	if e.Text() != "ab!" {
		t.Errorf("A expected 'ab!', got %q", e.Text())
	}
}

func TestInsertCommandsRejectedOutsideNormal(t *testing.T) {
	e := New("abc", nil)
	feed(e, "v")
	tr := e.HandleKey(RuneKey('i'))
	if tr.Kind != AwaitingOperand {
		t.Errorf("expected AwaitingOperand for i in visual, got %+v", tr)
	}
	if e.Mode() != ModeVisual {
		t.Errorf("mode must stay Visual, got %v", e.Mode())
	}
}

func TestEmptyBufferCommandsAreNoOps(t *testing.T) {
	e := New("", nil)
	feed(e, "xDwbe$^Gp")
	feed(e, "gg")
	if e.Text() != "" {
		t.Errorf("expected empty buffer, got %q", e.Text())
	}
	if e.Cursor() != (Position{}) {
		t.Errorf("expected origin, got %+v", e.Cursor())
	}
	if e.Mode() != ModeNormal {
		t.Errorf("expected Normal, got %v", e.Mode())
	}
}

type recordingClipboard struct {
	writes []string
}

func (c *recordingClipboard) Write(text string) error {
	c.writes = append(c.writes, text)
	return nil
}

func TestYankWritesClipboard(t *testing.T) {
	clip := &recordingClipboard{}
	e := New("one\ntwo", clip)
	feed(e, "yy")
	if len(clip.writes) != 1 || clip.writes[0] != "one\n" {
		t.Errorf("expected clipboard write 'one\\n', got %v", clip.writes)
	}
}
