package cursor

import (
	"sort"

	"github.com/dshills/editcore/internal/engine/buffer"
)

// SelectionMode records how a selection was created. It changes how
// the selection extends, not what range it covers.
type SelectionMode int

const (
	// ModeCharacter is plain char-wise selection.
	ModeCharacter SelectionMode = iota
	// ModeWord snaps to word boundaries (double-click).
	ModeWord
	// ModeLine covers whole lines (triple-click).
	ModeLine
	// ModeBlock is rectangular column selection.
	ModeBlock
)

func (m SelectionMode) String() string {
	switch m {
	case ModeCharacter:
		return "character"
	case ModeWord:
		return "word"
	case ModeLine:
		return "line"
	case ModeBlock:
		return "block"
	default:
		return "unknown"
	}
}

// Selection is an anchored text range. Start is the anchor, End the
// active end that follows the cursor; End may precede Start while the
// user drags backwards. Use Normalized for an ordered pair.
type Selection struct {
	Start buffer.Position
	End   buffer.Position
	Mode  SelectionMode
}

// NewSelection creates a char-mode selection.
func NewSelection(start, end buffer.Position) Selection {
	return Selection{Start: start, End: end, Mode: ModeCharacter}
}

// WithMode creates a selection with an explicit mode.
func WithMode(start, end buffer.Position, mode SelectionMode) Selection {
	return Selection{Start: start, End: end, Mode: mode}
}

// EmptySelection creates a zero-width selection at pos.
func EmptySelection(pos buffer.Position) Selection {
	return Selection{Start: pos, End: pos, Mode: ModeCharacter}
}

// IsEmpty returns true for a zero-width selection.
func (s Selection) IsEmpty() bool {
	return s.Start == s.End
}

// Normalized returns the ordered (min, max) endpoints.
func (s Selection) Normalized() (buffer.Position, buffer.Position) {
	if s.Start.Before(s.End) || s.Start == s.End {
		return s.Start, s.End
	}
	return s.End, s.Start
}

// Min returns the lesser endpoint.
func (s Selection) Min() buffer.Position {
	lo, _ := s.Normalized()
	return lo
}

// Max returns the greater endpoint.
func (s Selection) Max() buffer.Position {
	_, hi := s.Normalized()
	return hi
}

// Contains reports whether pos falls within the selection, endpoints
// inclusive.
func (s Selection) Contains(pos buffer.Position) bool {
	lo, hi := s.Normalized()
	if pos.Before(lo) || pos.After(hi) {
		return false
	}
	return true
}

// ExtendTo moves the active end to pos, leaving the anchor in place.
func (s *Selection) ExtendTo(pos buffer.Position) {
	s.End = pos
}

// LineCount returns the number of lines the selection spans.
func (s Selection) LineCount() int {
	lo, hi := s.Normalized()
	return hi.Line - lo.Line + 1
}

// Overlaps reports whether two selections share any position. Touching
// endpoints count as overlap.
func (s Selection) Overlaps(other Selection) bool {
	lo, hi := other.Normalized()
	sLo, sHi := s.Normalized()
	return s.Contains(lo) || s.Contains(hi) || other.Contains(sLo) || other.Contains(sHi)
}

// Merge combines two overlapping selections into their covering range.
// Returns false if the selections do not overlap.
func (s Selection) Merge(other Selection) (Selection, bool) {
	if !s.Overlaps(other) {
		return Selection{}, false
	}
	lo1, hi1 := s.Normalized()
	lo2, hi2 := other.Normalized()
	return NewSelection(buffer.Min(lo1, lo2), buffer.Max(hi1, hi2)), true
}

// SelectionSet holds zero or more selections. Every mutation ends with
// a merge pass: selections are sorted by start and overlapping or
// touching ranges collapse into their covering range.
type SelectionSet struct {
	selections []Selection
	primary    int
}

// NewSelectionSet creates an empty selection set.
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{}
}

// Single creates a set with one selection.
func Single(sel Selection) *SelectionSet {
	return &SelectionSet{selections: []Selection{sel}}
}

// IsEmpty returns true if the set has no selections.
func (ss *SelectionSet) IsEmpty() bool {
	return len(ss.selections) == 0
}

// Count returns the number of selections.
func (ss *SelectionSet) Count() int {
	return len(ss.selections)
}

// Primary returns the primary selection; ok is false for an empty set.
func (ss *SelectionSet) Primary() (Selection, bool) {
	if len(ss.selections) == 0 {
		return Selection{}, false
	}
	return ss.selections[ss.primary], true
}

// All returns the selections in start order. The slice is shared; do
// not mutate it.
func (ss *SelectionSet) All() []Selection {
	return ss.selections
}

// Add inserts a selection, merging it with any it overlaps.
func (ss *SelectionSet) Add(sel Selection) {
	ss.selections = append(ss.selections, sel)
	ss.mergeOverlapping()
}

// SetPrimary replaces all selections with a single one.
func (ss *SelectionSet) SetPrimary(sel Selection) {
	ss.selections = ss.selections[:0]
	ss.selections = append(ss.selections, sel)
	ss.primary = 0
}

// Clear removes all selections.
func (ss *SelectionSet) Clear() {
	ss.selections = ss.selections[:0]
	ss.primary = 0
}

// ExtendPrimaryTo moves the primary selection's active end to pos,
// then merges. A no-op on an empty set.
func (ss *SelectionSet) ExtendPrimaryTo(pos buffer.Position) {
	if len(ss.selections) == 0 {
		return
	}
	ss.selections[ss.primary].ExtendTo(pos)
	ss.mergeOverlapping()
}

// ExtendAllTo moves every selection's active end to pos, then merges.
func (ss *SelectionSet) ExtendAllTo(pos buffer.Position) {
	for i := range ss.selections {
		ss.selections[i].ExtendTo(pos)
	}
	ss.mergeOverlapping()
}

// mergeOverlapping sorts selections by normalized start and sweeps,
// folding each selection into the previous one when they overlap.
func (ss *SelectionSet) mergeOverlapping() {
	if len(ss.selections) < 2 {
		return
	}

	sort.SliceStable(ss.selections, func(i, j int) bool {
		return ss.selections[i].Min().Before(ss.selections[j].Min())
	})

	merged := ss.selections[:1]
	for _, sel := range ss.selections[1:] {
		if m, ok := merged[len(merged)-1].Merge(sel); ok {
			merged[len(merged)-1] = m
		} else {
			merged = append(merged, sel)
		}
	}
	ss.selections = merged

	if ss.primary >= len(ss.selections) {
		ss.primary = len(ss.selections) - 1
	}
}
