package cursor

import (
	"testing"

	"github.com/dshills/editcore/internal/engine/buffer"
)

func pos(line, col int) buffer.Position {
	return buffer.Position{Line: line, Column: col}
}

func TestCursorVerticalMovement(t *testing.T) {
	doc := buffer.NewBufferFromString("alpha\nbeta\ngamma")

	c := At(1, 2)
	c.MoveDown(doc)
	if c.Pos != pos(2, 2) {
		t.Errorf("after down Pos = %v", c.Pos)
	}
	c.MoveUp(doc)
	c.MoveUp(doc)
	if c.Pos != pos(0, 2) {
		t.Errorf("after up twice Pos = %v", c.Pos)
	}

	// clamped at document edges
	c.MoveUp(doc)
	if c.Pos.Line != 0 {
		t.Errorf("MoveUp at top moved to line %d", c.Pos.Line)
	}
	c.Pos = pos(2, 0)
	c.MoveDown(doc)
	if c.Pos.Line != 2 {
		t.Errorf("MoveDown at bottom moved to line %d", c.Pos.Line)
	}
}

func TestCursorPreferredColumn(t *testing.T) {
	doc := buffer.NewBufferFromString("long line here\nhi\nanother long line")

	c := At(0, 10)
	c.MoveDown(doc)
	if c.Pos != pos(1, 2) {
		t.Errorf("through short line Pos = %v", c.Pos)
	}
	c.MoveDown(doc)
	if c.Pos != pos(2, 10) {
		t.Errorf("preferred column not restored, Pos = %v", c.Pos)
	}

	// horizontal movement restarts the preferred column at the new spot
	c.MoveLeft(doc)
	c.MoveUp(doc)
	if c.Pos != pos(1, 2) {
		t.Errorf("Pos = %v", c.Pos)
	}
	c.MoveUp(doc)
	if c.Pos != pos(0, 9) {
		t.Errorf("preferred column should stick from column 9, Pos = %v", c.Pos)
	}
}

func TestCursorHorizontalWrap(t *testing.T) {
	doc := buffer.NewBufferFromString("ab\ncd")

	c := At(1, 0)
	c.MoveLeft(doc)
	if c.Pos != pos(0, 2) {
		t.Errorf("left wrap Pos = %v", c.Pos)
	}
	c.MoveRight(doc)
	if c.Pos != pos(1, 0) {
		t.Errorf("right wrap Pos = %v", c.Pos)
	}

	// edges clamp
	c.MoveTo(pos(0, 0))
	c.MoveLeft(doc)
	if c.Pos != pos(0, 0) {
		t.Errorf("left at start Pos = %v", c.Pos)
	}
	c.MoveTo(pos(1, 2))
	c.MoveRight(doc)
	if c.Pos != pos(1, 2) {
		t.Errorf("right at end Pos = %v", c.Pos)
	}
}

func TestCursorLineAndDocumentJumps(t *testing.T) {
	doc := buffer.NewBufferFromString("hello\nworld")

	c := At(1, 3)
	c.MoveToLineStart()
	if c.Pos != pos(1, 0) {
		t.Errorf("line start Pos = %v", c.Pos)
	}
	c.MoveToLineEnd(doc)
	if c.Pos != pos(1, 5) {
		t.Errorf("line end Pos = %v", c.Pos)
	}
	c.MoveToDocumentStart()
	if c.Pos != pos(0, 0) {
		t.Errorf("doc start Pos = %v", c.Pos)
	}
	c.MoveToDocumentEnd(doc)
	if c.Pos != pos(1, 5) {
		t.Errorf("doc end Pos = %v", c.Pos)
	}
}

func TestCursorWordMovement(t *testing.T) {
	doc := buffer.NewBufferFromString("foo bar_baz qux\nnext")

	c := At(0, 0)
	c.MoveWordRight(doc)
	if c.Pos != pos(0, 4) {
		t.Errorf("word right Pos = %v", c.Pos)
	}
	c.MoveWordRight(doc)
	if c.Pos != pos(0, 12) {
		t.Errorf("word right over identifier Pos = %v", c.Pos)
	}
	c.MoveWordLeft(doc)
	if c.Pos != pos(0, 4) {
		t.Errorf("word left Pos = %v", c.Pos)
	}

	// wraps across lines at the edges
	c.MoveTo(pos(0, 15))
	c.MoveWordRight(doc)
	if c.Pos != pos(1, 0) {
		t.Errorf("word right at EOL Pos = %v", c.Pos)
	}
	c.MoveWordLeft(doc)
	if c.Pos != pos(0, 15) {
		t.Errorf("word left at BOL Pos = %v", c.Pos)
	}
}

func TestWordSpans(t *testing.T) {
	tests := []struct {
		name string
		line string
		col  int
		next int
		prev int
	}{
		{"simple", "foo bar", 0, 4, 0},
		{"mid word", "foo bar", 1, 4, 0},
		{"from second word", "foo bar", 4, 7, 0},
		{"punctuation skipped", "a, b, c", 0, 3, 0},
		{"no following word", "foo", 1, 3, 0},
		{"unicode", "héllo wörld", 0, 6, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextWordStart(tt.line, tt.col); got != tt.next {
				t.Errorf("NextWordStart(%q, %d) = %d, want %d", tt.line, tt.col, got, tt.next)
			}
			if got := PrevWordStart(tt.line, tt.col); got != tt.prev {
				t.Errorf("PrevWordStart(%q, %d) = %d, want %d", tt.line, tt.col, got, tt.prev)
			}
		})
	}
}

func TestWordRangeAt(t *testing.T) {
	start, end := WordRangeAt("foo bar_baz qux", 5)
	if start != 4 || end != 11 {
		t.Errorf("WordRangeAt = (%d, %d), want (4, 11)", start, end)
	}

	// not inside a word
	start, end = WordRangeAt("foo bar", 3)
	if start != 3 || end != 3 {
		t.Errorf("WordRangeAt on space = (%d, %d), want (3, 3)", start, end)
	}
}

func TestSetAddAndMerge(t *testing.T) {
	s := NewSet(pos(0, 0))
	s.Add(pos(5, 0))
	s.Add(pos(10, 0))
	if s.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", s.Count())
	}
	if s.Primary().Pos != pos(10, 0) {
		t.Errorf("Primary() = %v", s.Primary().Pos)
	}

	// adding a duplicate collapses
	s.Add(pos(5, 0))
	if s.Count() != 3 {
		t.Errorf("duplicate add Count() = %d, want 3", s.Count())
	}
}

func TestSetMoveAllCollapsesDuplicates(t *testing.T) {
	doc := buffer.NewBufferFromString("ab\ncd\nef")
	s := NewSet(pos(0, 0))
	s.Add(pos(0, 1))

	// both cursors move left; the second lands on the first
	s.MoveAll(func(c *Cursor) { c.MoveLeft(doc) })
	if s.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", s.Count())
	}
	if s.Primary().Pos != pos(0, 0) {
		t.Errorf("Primary() = %v", s.Primary().Pos)
	}
}

func TestSetOrderedAfterMove(t *testing.T) {
	doc := buffer.NewBufferFromString("abc\ndef\nghi")
	s := NewSet(pos(2, 1))
	s.Add(pos(0, 1))
	s.MoveAll(func(c *Cursor) { c.MoveRight(doc) })

	got := s.Positions()
	if len(got) != 2 || got[0] != pos(0, 2) || got[1] != pos(2, 2) {
		t.Errorf("Positions() = %v", got)
	}
	// primary follows its cursor through the sort
	if s.Primary().Pos != pos(0, 2) {
		t.Errorf("Primary() = %v", s.Primary().Pos)
	}
}

func TestSetAddAboveBelow(t *testing.T) {
	doc := buffer.NewBufferFromString("short\nlonger line\nx")
	s := NewSet(pos(1, 8))

	s.AddAbove(doc)
	if s.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", s.Count())
	}
	// column clamps to the shorter line
	if got := s.Positions()[0]; got != pos(0, 5) {
		t.Errorf("cursor above at %v", got)
	}

	s.AddBelow(doc)
	if got := s.Positions()[2]; got != pos(2, 1) {
		t.Errorf("cursor below at %v", got)
	}

	s.Collapse()
	if s.Count() != 1 {
		t.Errorf("after Collapse Count() = %d", s.Count())
	}
}

func TestSelectionNormalized(t *testing.T) {
	sel := NewSelection(pos(2, 3), pos(0, 1))
	lo, hi := sel.Normalized()
	if lo != pos(0, 1) || hi != pos(2, 3) {
		t.Errorf("Normalized() = %v, %v", lo, hi)
	}
	if sel.Min() != pos(0, 1) || sel.Max() != pos(2, 3) {
		t.Errorf("Min/Max = %v, %v", sel.Min(), sel.Max())
	}
}

func TestSelectionContains(t *testing.T) {
	sel := NewSelection(pos(1, 2), pos(3, 4))
	tests := []struct {
		pos  buffer.Position
		want bool
	}{
		{pos(1, 2), true},
		{pos(3, 4), true},
		{pos(2, 0), true},
		{pos(2, 99), true},
		{pos(1, 1), false},
		{pos(3, 5), false},
		{pos(0, 9), false},
		{pos(4, 0), false},
	}
	for _, tt := range tests {
		if got := sel.Contains(tt.pos); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestSelectionMerge(t *testing.T) {
	a := NewSelection(pos(5, 0), pos(10, 0))
	b := NewSelection(pos(8, 0), pos(15, 0))
	m, ok := a.Merge(b)
	if !ok {
		t.Fatal("Merge() = false for overlapping selections")
	}
	if m.Start != pos(5, 0) || m.End != pos(15, 0) {
		t.Errorf("merged = %v..%v", m.Start, m.End)
	}

	c := NewSelection(pos(20, 0), pos(21, 0))
	if _, ok := a.Merge(c); ok {
		t.Error("disjoint selections should not merge")
	}

	// touching endpoints merge
	d := NewSelection(pos(10, 0), pos(12, 0))
	m, ok = a.Merge(d)
	if !ok || m.End != pos(12, 0) {
		t.Errorf("touching merge = %v (ok=%v)", m, ok)
	}
}

func TestSelectionSetMerge(t *testing.T) {
	ss := NewSelectionSet()
	ss.Add(NewSelection(pos(5, 0), pos(10, 0)))
	ss.Add(NewSelection(pos(8, 0), pos(15, 0)))
	if ss.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", ss.Count())
	}
	got := ss.All()[0]
	if got.Start != pos(5, 0) || got.End != pos(15, 0) {
		t.Errorf("merged = %v..%v", got.Start, got.End)
	}

	ss.Add(NewSelection(pos(20, 0), pos(25, 0)))
	if ss.Count() != 2 {
		t.Errorf("disjoint selection should be preserved, Count() = %d", ss.Count())
	}
}

func TestSelectionSetZeroWidth(t *testing.T) {
	ss := NewSelectionSet()
	ss.Add(EmptySelection(pos(0, 1)))
	ss.Add(EmptySelection(pos(0, 5)))
	if ss.Count() != 2 {
		t.Errorf("distinct zero-width selections preserved, Count() = %d", ss.Count())
	}

	// a zero-width selection inside a non-empty one folds into it
	ss.Add(NewSelection(pos(0, 0), pos(0, 3)))
	if ss.Count() != 2 {
		t.Errorf("Count() = %d, want 2", ss.Count())
	}
}

func TestSelectionSetExtendAll(t *testing.T) {
	ss := NewSelectionSet()
	ss.Add(NewSelection(pos(0, 0), pos(0, 2)))
	ss.Add(NewSelection(pos(2, 0), pos(2, 2)))
	ss.ExtendAllTo(pos(3, 0))
	// both now end at the same position and overlap
	if ss.Count() != 1 {
		t.Errorf("Count() = %d, want 1", ss.Count())
	}
}

func TestSelectionSetPrimaryAndClear(t *testing.T) {
	ss := Single(NewSelection(pos(0, 0), pos(0, 5)))
	p, ok := ss.Primary()
	if !ok || p.End != pos(0, 5) {
		t.Errorf("Primary() = %v, %v", p, ok)
	}

	ss.SetPrimary(NewSelection(pos(1, 0), pos(1, 1)))
	if ss.Count() != 1 {
		t.Errorf("SetPrimary should leave one selection, Count() = %d", ss.Count())
	}

	ss.Clear()
	if !ss.IsEmpty() {
		t.Error("Clear should empty the set")
	}
	if _, ok := ss.Primary(); ok {
		t.Error("Primary() on empty set should report false")
	}
}
