package cursor

import (
	"sort"

	"github.com/dshills/editcore/internal/engine/buffer"
)

// Set holds one or more cursors in document order. There is always at
// least one cursor; exactly one is primary. Every batch mutation ends
// with a merge pass that sorts the cursors and collapses duplicates, so
// two cursors never share a position.
type Set struct {
	cursors []Cursor
	primary int
	nextID  int
}

// NewSet creates a set with a single primary cursor at pos.
func NewSet(pos buffer.Position) *Set {
	s := &Set{}
	s.cursors = []Cursor{s.newCursor(pos)}
	return s
}

func (s *Set) newCursor(pos buffer.Position) Cursor {
	c := New(pos)
	c.ID = s.nextID
	s.nextID++
	return c
}

// Count returns the number of cursors.
func (s *Set) Count() int {
	return len(s.cursors)
}

// Primary returns the primary cursor.
func (s *Set) Primary() Cursor {
	return s.cursors[s.primary]
}

// PrimaryIndex returns the index of the primary cursor.
func (s *Set) PrimaryIndex() int {
	return s.primary
}

// Positions returns all cursor positions in document order.
func (s *Set) Positions() []buffer.Position {
	out := make([]buffer.Position, len(s.cursors))
	for i, c := range s.cursors {
		out[i] = c.Pos
	}
	return out
}

// All returns the cursors in document order. The slice is shared; do
// not mutate it.
func (s *Set) All() []Cursor {
	return s.cursors
}

// Add inserts a cursor at pos. The new cursor becomes primary; a
// cursor already at pos is collapsed by the merge pass.
func (s *Set) Add(pos buffer.Position) {
	s.cursors = append(s.cursors, s.newCursor(pos))
	s.primary = len(s.cursors) - 1
	s.merge()
}

// AddAbove adds a cursor one line above the topmost cursor, keeping
// its column clamped to the new line. A no-op on line 0.
func (s *Set) AddAbove(doc Document) {
	top := s.cursors[0]
	if top.Pos.Line == 0 {
		return
	}
	c := s.newCursor(buffer.Position{Line: top.Pos.Line - 1, Column: top.Pos.Column})
	c.Clamp(doc)
	s.cursors = append(s.cursors, c)
	s.primary = len(s.cursors) - 1
	s.merge()
}

// AddBelow adds a cursor one line below the bottommost cursor, keeping
// its column clamped to the new line. A no-op on the last line.
func (s *Set) AddBelow(doc Document) {
	bottom := s.cursors[len(s.cursors)-1]
	if bottom.Pos.Line+1 >= doc.LineCount() {
		return
	}
	c := s.newCursor(buffer.Position{Line: bottom.Pos.Line + 1, Column: bottom.Pos.Column})
	c.Clamp(doc)
	s.cursors = append(s.cursors, c)
	s.primary = len(s.cursors) - 1
	s.merge()
}

// ResetTo replaces all cursors with one at each given position. The
// last position becomes primary. A no-op when no positions are given.
func (s *Set) ResetTo(positions ...buffer.Position) {
	if len(positions) == 0 {
		return
	}
	s.cursors = s.cursors[:0]
	for _, p := range positions {
		s.cursors = append(s.cursors, s.newCursor(p))
	}
	s.primary = len(s.cursors) - 1
	s.merge()
}

// UpdatePrimary applies fn to the primary cursor only, then merges.
func (s *Set) UpdatePrimary(fn func(c *Cursor)) {
	fn(&s.cursors[s.primary])
	s.merge()
}

// Collapse removes all secondary cursors, leaving only the primary.
func (s *Set) Collapse() {
	primary := s.cursors[s.primary]
	s.cursors = s.cursors[:0]
	s.cursors = append(s.cursors, primary)
	s.primary = 0
}

// SetPrimary moves the primary cursor to pos, leaving secondaries in
// place, then merges.
func (s *Set) SetPrimary(pos buffer.Position) {
	s.cursors[s.primary].MoveTo(pos)
	s.merge()
}

// MoveAll applies fn to every cursor, then merges. This is how batch
// movement runs: each cursor moves independently and cursors that land
// on the same position collapse into one.
func (s *Set) MoveAll(fn func(c *Cursor)) {
	for i := range s.cursors {
		fn(&s.cursors[i])
	}
	s.merge()
}

// merge sorts cursors by position and removes duplicates. The primary
// follows its cursor; if the primary was deduplicated away, the
// surviving cursor at its position becomes primary.
func (s *Set) merge() {
	primaryPos := s.cursors[s.primary].Pos

	sort.SliceStable(s.cursors, func(i, j int) bool {
		return s.cursors[i].Pos.Before(s.cursors[j].Pos)
	})

	out := s.cursors[:0]
	for _, c := range s.cursors {
		if len(out) > 0 && out[len(out)-1].Pos == c.Pos {
			continue
		}
		out = append(out, c)
	}
	s.cursors = out

	s.primary = 0
	for i, c := range s.cursors {
		if c.Pos == primaryPos {
			s.primary = i
			break
		}
	}
}
