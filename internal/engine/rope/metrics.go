package rope

import (
	"strings"
	"unicode/utf8"
)

// Summary holds aggregated metrics for a text span.
// It is the monoid carried by every node of the tree, allowing
// O(log n) seeks by character offset or line number.
type Summary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// Chars is the Unicode scalar value count. All public rope offsets
	// are measured in chars, not bytes.
	Chars int

	// Lines is the number of newline characters.
	Lines int
}

// Add combines two summaries (monoid operation).
func (s Summary) Add(other Summary) Summary {
	return Summary{
		Bytes: s.Bytes + other.Bytes,
		Chars: s.Chars + other.Chars,
		Lines: s.Lines + other.Lines,
	}
}

// IsZero returns true if the summary describes empty text.
func (s Summary) IsZero() bool {
	return s.Bytes == 0
}

// ComputeSummary calculates metrics for a string.
func ComputeSummary(text string) Summary {
	return Summary{
		Bytes: len(text),
		Chars: utf8.RuneCountInString(text),
		Lines: strings.Count(text, "\n"),
	}
}

// charToByte returns the byte index of the char-th rune in s.
// chars past the end map to len(s).
func charToByte(s string, chars int) int {
	if chars <= 0 {
		return 0
	}
	for i := range s {
		if chars == 0 {
			return i
		}
		chars--
	}
	return len(s)
}

// charsBefore counts the runes in s before the given byte index.
func charsBefore(s string, byteIdx int) int {
	return utf8.RuneCountInString(s[:byteIdx])
}
