package cursor

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// span is a half-open char range within a line.
type span struct {
	start, end int
}

// wordSpans returns the char spans of word segments in s, using
// Unicode word segmentation. Whitespace and punctuation runs are
// skipped; adjacent word segments coalesce into one span.
func wordSpans(s string) []span {
	var spans []span
	offset := 0
	state := -1
	var seg string
	for rest := s; len(rest) > 0; {
		seg, rest, state = uniseg.FirstWordInString(rest, state)
		n := utf8.RuneCountInString(seg)
		if isWordSegment(seg) {
			if len(spans) > 0 && spans[len(spans)-1].end == offset {
				spans[len(spans)-1].end = offset + n
			} else {
				spans = append(spans, span{start: offset, end: offset + n})
			}
		}
		offset += n
	}
	return spans
}

func isWordSegment(seg string) bool {
	for _, r := range seg {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return true
		}
	}
	return false
}

// NextWordStart returns the column of the next word start after col, or
// the line length if no word follows.
func NextWordStart(line string, col int) int {
	for _, sp := range wordSpans(line) {
		if sp.start > col {
			return sp.start
		}
	}
	return utf8.RuneCountInString(line)
}

// PrevWordStart returns the column of the last word start before col,
// or 0 if none precedes it.
func PrevWordStart(line string, col int) int {
	prev := 0
	for _, sp := range wordSpans(line) {
		if sp.start >= col {
			break
		}
		prev = sp.start
	}
	return prev
}

// WordRangeAt returns the char span of the word containing col. When
// col is not inside a word, the empty span at col is returned.
func WordRangeAt(line string, col int) (start, end int) {
	for _, sp := range wordSpans(line) {
		if col >= sp.start && col < sp.end {
			return sp.start, sp.end
		}
	}
	return col, col
}
