package rope

import (
	"io"
	"strings"
)

// Builder provides efficient incremental construction of a rope.
// It buffers writes and builds the tree when Build is called.
type Builder struct {
	chunks []Chunk
	buffer strings.Builder
}

// NewBuilder creates a new rope builder.
func NewBuilder() *Builder {
	return &Builder{chunks: make([]Chunk, 0, 64)}
}

// WriteString appends a string to the builder.
func (b *Builder) WriteString(s string) {
	if len(s) == 0 {
		return
	}
	b.buffer.WriteString(s)
	if b.buffer.Len() >= MaxChunkSize*2 {
		b.flush()
	}
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	b.WriteString(string(p))
	return len(p), nil
}

// ReadFrom implements io.ReaderFrom.
func (b *Builder) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, 64*1024)
	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			b.WriteString(string(buf[:n]))
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// flush converts buffered text to chunks. Reads can split a multi-byte
// rune across Write calls, so an incomplete trailing sequence is held
// back for the next write.
func (b *Builder) flush() {
	if b.buffer.Len() == 0 {
		return
	}
	s := b.buffer.String()
	b.buffer.Reset()

	cut := len(s) - truncatedTailLen(s)
	if cut < len(s) {
		b.buffer.WriteString(s[cut:])
		s = s[:cut]
	}
	b.chunks = append(b.chunks, splitIntoChunks(s)...)
}

// truncatedTailLen returns the byte length of an incomplete UTF-8
// sequence at the end of s, or 0 if s ends on a rune boundary.
func truncatedTailLen(s string) int {
	n := len(s)
	for i := 1; i <= 4 && i <= n; i++ {
		c := s[n-i]
		if c&0x80 == 0 {
			return 0 // ASCII tail
		}
		if c&0xC0 == 0xC0 {
			var want int
			switch {
			case c&0xF8 == 0xF0:
				want = 4
			case c&0xF0 == 0xE0:
				want = 3
			default:
				want = 2
			}
			if want > i {
				return i
			}
			return 0
		}
	}
	return 0
}

// Reset clears the builder for reuse.
func (b *Builder) Reset() {
	b.chunks = b.chunks[:0]
	b.buffer.Reset()
}

// Build creates the rope from accumulated data and resets the builder.
func (b *Builder) Build() Rope {
	// Final flush takes whatever remains, complete or not.
	if b.buffer.Len() > 0 {
		b.chunks = append(b.chunks, splitIntoChunks(b.buffer.String())...)
		b.buffer.Reset()
	}

	if len(b.chunks) == 0 {
		b.Reset()
		return New()
	}
	chunks := b.chunks
	b.Reset()
	return buildFromChunks(chunks)
}
