package editor

import "testing"

func TestTextRangeSingleLine(t *testing.T) {
	b := NewTextBuffer("hello world")
	got := b.TextRange(Position{Col: 6}, Position{Col: 11})
	if got != "world" {
		t.Errorf("expected 'world', got %q", got)
	}
}

func TestTextRangeMultiLine(t *testing.T) {
	b := NewTextBuffer("one\ntwo\nthree")
	got := b.TextRange(Position{Row: 0, Col: 1}, Position{Row: 2, Col: 2})
	if got != "ne\ntwo\nth" {
		t.Errorf("expected 'ne\\ntwo\\nth', got %q", got)
	}
}

func TestTextRangeSwapsReversedBounds(t *testing.T) {
	b := NewTextBuffer("abc")
	got := b.TextRange(Position{Col: 2}, Position{Col: 0})
	if got != "ab" {
		t.Errorf("expected 'ab', got %q", got)
	}
}

func TestDeleteRangeAcrossLines(t *testing.T) {
	b := NewTextBuffer("one\ntwo\nthree")
	deleted := b.DeleteRange(Position{Row: 0, Col: 2}, Position{Row: 2, Col: 3})
	if deleted != "e\ntwo\nthr" {
		t.Errorf("expected deleted 'e\\ntwo\\nthr', got %q", deleted)
	}
	if b.Text() != "onee" {
		t.Errorf("expected 'onee', got %q", b.Text())
	}
	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
}

func TestInsertTextMultiLine(t *testing.T) {
	b := NewTextBuffer("ab")
	end := b.InsertText(Position{Col: 1}, "x\ny\nz")
	if b.Text() != "ax\ny\nzb" {
		t.Errorf("expected 'ax\\ny\\nzb', got %q", b.Text())
	}
	if end != (Position{Row: 2, Col: 1}) {
		t.Errorf("expected end {2 1}, got %+v", end)
	}
}

func TestRangePositionsClamped(t *testing.T) {
	b := NewTextBuffer("ab")
	got := b.TextRange(Position{Row: -5, Col: -5}, Position{Row: 99, Col: 99})
	if got != "ab" {
		t.Errorf("expected 'ab', got %q", got)
	}
}

func TestUndoCollapsesIdenticalSnapshots(t *testing.T) {
	b := NewTextBuffer("abc")
	b.SaveUndo(Position{})
	b.SaveUndo(Position{Col: 1}) // same content, collapsed
	b.InsertRune(Position{Col: 3}, '!')
	b.SaveUndo(Position{Col: 3})

	if _, ok := b.Undo(Position{}); !ok {
		t.Fatal("expected first undo to apply")
	}
	if b.Text() != "abc!" {
		t.Errorf("expected 'abc!', got %q", b.Text())
	}
	if _, ok := b.Undo(Position{}); !ok {
		t.Fatal("expected second undo to apply")
	}
	if b.Text() != "abc" {
		t.Errorf("expected 'abc', got %q", b.Text())
	}
	if _, ok := b.Undo(Position{}); ok {
		t.Error("undo stack should be empty")
	}
}

func TestRedoClearedByNewEdit(t *testing.T) {
	b := NewTextBuffer("abc")
	b.SaveUndo(Position{})
	b.InsertRune(Position{Col: 3}, '!')

	b.Undo(Position{})
	if b.Text() != "abc" {
		t.Fatalf("expected 'abc', got %q", b.Text())
	}

	b.SaveUndo(Position{})
	b.InsertRune(Position{Col: 3}, '?')
	if _, ok := b.Redo(Position{}); ok {
		t.Error("redo stack must be cleared by a new edit")
	}
}
