package buffer

import "fmt"

// Position represents a line and column location in the buffer.
// Both Line and Column are 0-indexed. Column is a char offset within
// the line, not a byte offset or a rendered-width offset.
type Position struct {
	Line   int
	Column int
}

// NewPosition creates a position from line and column.
func NewPosition(line, column int) Position {
	return Position{Line: line, Column: column}
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other,
// ordering lexicographically by line then column.
func (p Position) Compare(other Position) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Column < other.Column {
		return -1
	}
	if p.Column > other.Column {
		return 1
	}
	return 0
}

// Before returns true if p comes before other in document order.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other in document order.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// IsZero returns true if this is the zero position (0:0).
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

// Min returns the earlier of two positions in document order.
func Min(a, b Position) Position {
	if a.Compare(b) <= 0 {
		return a
	}
	return b
}

// Max returns the later of two positions in document order.
func Max(a, b Position) Position {
	if a.Compare(b) >= 0 {
		return a
	}
	return b
}
