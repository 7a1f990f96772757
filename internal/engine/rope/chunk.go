package rope

import "unicode/utf8"

// Chunk size constants control the granularity of text storage.
const (
	// MaxChunkSize is the maximum bytes per chunk before splitting.
	MaxChunkSize = 256

	// TargetChunkSize is the preferred chunk size when building.
	TargetChunkSize = 192
)

// Chunk represents a bounded string stored in leaf nodes.
// Chunks are immutable once created.
type Chunk struct {
	data    string
	summary Summary
}

// NewChunk creates a chunk from a string, computing metrics eagerly.
func NewChunk(s string) Chunk {
	return Chunk{
		data:    s,
		summary: ComputeSummary(s),
	}
}

// String returns the chunk's text.
func (c Chunk) String() string {
	return c.data
}

// Summary returns the chunk's precomputed metrics.
func (c Chunk) Summary() Summary {
	return c.summary
}

// Chars returns the char length of the chunk.
func (c Chunk) Chars() int {
	return c.summary.Chars
}

// IsEmpty returns true if the chunk contains no text.
func (c Chunk) IsEmpty() bool {
	return len(c.data) == 0
}

// Split splits a chunk at a char offset, returning two chunks.
func (c Chunk) Split(chars int) (Chunk, Chunk) {
	if chars <= 0 {
		return Chunk{}, c
	}
	if chars >= c.summary.Chars {
		return c, Chunk{}
	}
	b := charToByte(c.data, chars)
	return NewChunk(c.data[:b]), NewChunk(c.data[b:])
}

// splitIntoChunks splits a string into chunks of roughly TargetChunkSize
// bytes, never breaking a UTF-8 sequence.
func splitIntoChunks(s string) []Chunk {
	if len(s) == 0 {
		return nil
	}
	if len(s) <= MaxChunkSize {
		return []Chunk{NewChunk(s)}
	}

	chunks := make([]Chunk, 0, len(s)/TargetChunkSize+1)
	for len(s) > 0 {
		if len(s) <= MaxChunkSize {
			chunks = append(chunks, NewChunk(s))
			break
		}
		end := TargetChunkSize
		// Back up to a rune boundary.
		for end > 0 && !utf8.RuneStart(s[end]) {
			end--
		}
		if end == 0 {
			end = TargetChunkSize
		}
		chunks = append(chunks, NewChunk(s[:end]))
		s = s[end:]
	}
	return chunks
}
