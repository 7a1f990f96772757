package buffer

import "github.com/dshills/editcore/internal/engine/rope"

// Snapshot is a read-only view of buffer content at a point in time.
// Ropes are immutable, so snapshots share structure with the live
// buffer and are safe for concurrent use from other goroutines.
type Snapshot struct {
	content rope.Rope
}

// Text returns the full snapshot content.
func (s *Snapshot) Text() string {
	return s.content.String()
}

// Len returns the snapshot length in chars.
func (s *Snapshot) Len() int {
	return s.content.Len()
}

// LineCount returns the number of lines in the snapshot.
func (s *Snapshot) LineCount() int {
	return s.content.LineCount()
}

// LineText returns the text of a line, without its newline.
func (s *Snapshot) LineText(line int) string {
	return s.content.LineText(line)
}

// Slice returns the text in the char range [start, end), clamped.
func (s *Snapshot) Slice(start, end int) string {
	return s.content.Slice(start, end)
}
