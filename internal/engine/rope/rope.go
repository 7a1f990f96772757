package rope

import (
	"io"
	"strings"
)

// Rope is an immutable rope over Unicode scalar values.
// All offsets are measured in chars (runes), matching the coordinate
// system used by the rest of the engine. Operations return new Rope
// values; the original is never modified, which makes snapshots cheap
// and concurrent reads safe.
type Rope struct {
	root *Node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeafNode()}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return buildFromChunks(splitIntoChunks(s))
}

// FromReader creates a rope from an io.Reader.
func FromReader(r io.Reader) (Rope, error) {
	var builder Builder
	if _, err := builder.ReadFrom(r); err != nil {
		return Rope{}, err
	}
	return builder.Build(), nil
}

// buildFromChunks builds a rope from a slice of chunks.
func buildFromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}

	var leaves []*Node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := i + MaxChunksPerLeaf
		if end > len(chunks) {
			end = len(chunks)
		}
		leafChunks := make([]Chunk, end-i)
		copy(leafChunks, chunks[i:end])
		leaves = append(leaves, newLeafNodeWithChunks(leafChunks))
	}

	return Rope{root: buildNodeFromChildren(leaves)}
}

// Len returns the total length in chars.
func (r Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.summary.Chars
}

// ByteLen returns the total length in UTF-8 bytes.
func (r Rope) ByteLen() int {
	if r.root == nil {
		return 0
	}
	return r.root.summary.Bytes
}

// LineCount returns the number of lines (newlines + 1).
// An empty rope has one line.
func (r Rope) LineCount() int {
	if r.root == nil {
		return 1
	}
	return r.root.summary.Lines + 1
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// String returns the full text as a string.
// Use sparingly for large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(r.root.summary.Bytes)
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice returns the text in the char range [start, end).
// Out-of-range bounds are clamped.
func (r Rope) Slice(start, end int) string {
	if r.root == nil {
		return ""
	}
	if start < 0 {
		start = 0
	}
	if end > r.Len() {
		end = r.Len()
	}
	if start >= end {
		return ""
	}
	var sb strings.Builder
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// RuneAt returns the rune at the given char offset.
// Returns 0 and false if the offset is out of range.
func (r Rope) RuneAt(offset int) (rune, bool) {
	if r.root == nil || offset < 0 || offset >= r.Len() {
		return 0, false
	}
	s := r.Slice(offset, offset+1)
	for _, ru := range s {
		return ru, true
	}
	return 0, false
}

// Insert inserts text at the given char offset.
// Returns a new rope; the original is unchanged.
func (r Rope) Insert(offset int, text string) Rope {
	if len(text) == 0 {
		return r
	}
	if r.root == nil || r.Len() == 0 {
		return FromString(text)
	}
	if offset <= 0 {
		return FromString(text).Concat(r)
	}
	if offset >= r.Len() {
		return r.Concat(FromString(text))
	}

	left, right := r.Split(offset)
	return left.Concat(FromString(text)).Concat(right)
}

// Delete removes text in the char range [start, end).
// Returns a new rope; the original is unchanged.
func (r Rope) Delete(start, end int) Rope {
	if r.root == nil || start >= end {
		return r
	}

	total := r.Len()
	if start < 0 {
		start = 0
	}
	if start >= total {
		return r
	}
	if end > total {
		end = total
	}

	if start == 0 && end >= total {
		return New()
	}
	if start == 0 {
		_, right := r.Split(end)
		return right
	}
	if end >= total {
		left, _ := r.Split(start)
		return left
	}

	left, temp := r.Split(start)
	_, right := temp.Split(end - start)
	return left.Concat(right)
}

// Replace replaces text in the char range [start, end) with new text.
// Returns a new rope; the original is unchanged.
func (r Rope) Replace(start, end int, text string) Rope {
	if start >= end {
		return r.Insert(start, text)
	}
	if len(text) == 0 {
		return r.Delete(start, end)
	}
	return r.Delete(start, end).Insert(start, text)
}

// Split splits the rope at a char offset, returning two ropes.
// Left contains [0, offset), right contains [offset, end).
func (r Rope) Split(offset int) (Rope, Rope) {
	if r.root == nil || offset <= 0 {
		return New(), r
	}
	if offset >= r.Len() {
		return r, New()
	}
	leftRoot, rightRoot := r.root.split(offset)
	return Rope{root: leftRoot}, Rope{root: rightRoot}
}

// Concat concatenates two ropes.
func (r Rope) Concat(other Rope) Rope {
	if r.root == nil || r.Len() == 0 {
		return other
	}
	if other.root == nil || other.Len() == 0 {
		return r
	}
	return Rope{root: concat(r.root, other.root)}
}

// Summary returns the aggregated metrics for the entire rope.
func (r Rope) Summary() Summary {
	if r.root == nil {
		return Summary{}
	}
	return r.root.summary
}

// LineStartOffset returns the char offset of the start of the given line.
// Lines are 0-indexed; out-of-range lines clamp to the rope length.
func (r Rope) LineStartOffset(line int) int {
	if r.root == nil || line <= 0 {
		return 0
	}
	if line >= r.LineCount() {
		return r.Len()
	}
	return r.root.lineStartChar(line)
}

// LineEndOffset returns the char offset of the end of the given line,
// not including the newline character.
func (r Rope) LineEndOffset(line int) int {
	if r.root == nil {
		return 0
	}
	lineCount := r.LineCount()
	if line < 0 {
		line = 0
	}
	if line >= lineCount-1 {
		return r.Len()
	}
	// Start of the next line minus the newline.
	return r.root.lineStartChar(line+1) - 1
}

// LineLen returns the char length of the given line, without its newline.
func (r Rope) LineLen(line int) int {
	return r.LineEndOffset(line) - r.LineStartOffset(line)
}

// LineText returns the text of the given line, without its newline.
func (r Rope) LineText(line int) string {
	return r.Slice(r.LineStartOffset(line), r.LineEndOffset(line))
}

// LineForOffset returns the 0-indexed line containing the given char offset.
// Offsets past the end map to the last line.
func (r Rope) LineForOffset(offset int) int {
	if r.root == nil || offset <= 0 {
		return 0
	}
	if offset > r.Len() {
		offset = r.Len()
	}
	return r.root.linesBefore(offset)
}

// Height returns the height of the rope tree. Useful in balance tests.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}

// Equals returns true if two ropes contain the same text.
// This compares content, not structure.
func (r Rope) Equals(other Rope) bool {
	if r.Len() != other.Len() || r.ByteLen() != other.ByteLen() {
		return false
	}
	return r.String() == other.String()
}
