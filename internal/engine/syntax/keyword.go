package syntax

import (
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/editcore/internal/engine/buffer"
)

// KeywordHighlighter is a small line-based highlighter: keywords,
// line comments, quoted strings, and numbers. It caches its last
// result and invalidates the cache when the buffer reports an edit.
type KeywordHighlighter struct {
	language    string
	keywords    map[string]struct{}
	lineComment string
	quotes      []rune

	mu     sync.Mutex
	cached []TaggedRange
	valid  bool
}

// NewKeywordHighlighter creates a highlighter for the named language.
func NewKeywordHighlighter(language string) *KeywordHighlighter {
	return &KeywordHighlighter{
		language: language,
		keywords: make(map[string]struct{}),
		quotes:   []rune{'"'},
	}
}

// AddKeywords registers words to tag as keywords.
func (h *KeywordHighlighter) AddKeywords(words ...string) *KeywordHighlighter {
	for _, w := range words {
		h.keywords[w] = struct{}{}
	}
	return h
}

// SetLineComment sets the prefix that starts a comment running to end
// of line.
func (h *KeywordHighlighter) SetLineComment(prefix string) *KeywordHighlighter {
	h.lineComment = prefix
	return h
}

// SetQuotes sets the chars that delimit string literals.
func (h *KeywordHighlighter) SetQuotes(quotes ...rune) *KeywordHighlighter {
	h.quotes = quotes
	return h
}

// Language returns the language name.
func (h *KeywordHighlighter) Language() string {
	return h.language
}

// TextEdited invalidates the cached ranges. The whole document is
// re-scanned on the next Highlight call; the descriptor's span could
// narrow this to the touched lines if scanning ever shows up in
// profiles.
func (h *KeywordHighlighter) TextEdited(_ *buffer.Snapshot, _ buffer.EditDescriptor) {
	h.mu.Lock()
	h.valid = false
	h.mu.Unlock()
}

// Highlight returns tagged ranges for the snapshot in ascending offset
// order, serving a cached result when no edit has occurred since the
// last call.
func (h *KeywordHighlighter) Highlight(snap *buffer.Snapshot) []TaggedRange {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.valid {
		return h.cached
	}

	var ranges []TaggedRange
	lineStart := 0
	for line := 0; line < snap.LineCount(); line++ {
		text := snap.LineText(line)
		ranges = append(ranges, h.scanLine(text, lineStart)...)
		lineStart += utf8.RuneCountInString(text) + 1
	}

	h.cached = ranges
	h.valid = true
	return ranges
}

// scanLine tags one line. lineStart is the char offset of the line's
// first char in the document.
func (h *KeywordHighlighter) scanLine(text string, lineStart int) []TaggedRange {
	var ranges []TaggedRange
	runes := []rune(text)
	commentRunes := []rune(h.lineComment)

	for i := 0; i < len(runes); {
		r := runes[i]

		if len(commentRunes) > 0 && hasRunePrefix(runes[i:], commentRunes) {
			ranges = append(ranges, TaggedRange{
				Start: lineStart + i,
				End:   lineStart + len(runes),
				Tag:   TagComment,
			})
			break
		}

		if h.isQuote(r) {
			end := i + 1
			for end < len(runes) && runes[end] != r {
				if runes[end] == '\\' {
					end++
				}
				end++
			}
			if end < len(runes) {
				end++
			}
			ranges = append(ranges, TaggedRange{
				Start: lineStart + i,
				End:   lineStart + end,
				Tag:   TagString,
			})
			i = end
			continue
		}

		if unicode.IsDigit(r) {
			end := i + 1
			for end < len(runes) && (unicode.IsDigit(runes[end]) || runes[end] == '.' || runes[end] == '_') {
				end++
			}
			ranges = append(ranges, TaggedRange{
				Start: lineStart + i,
				End:   lineStart + end,
				Tag:   TagNumber,
			})
			i = end
			continue
		}

		if unicode.IsLetter(r) || r == '_' {
			end := i + 1
			for end < len(runes) && isWordChar(runes[end]) {
				end++
			}
			if _, ok := h.keywords[string(runes[i:end])]; ok {
				ranges = append(ranges, TaggedRange{
					Start: lineStart + i,
					End:   lineStart + end,
					Tag:   TagKeyword,
				})
			}
			i = end
			continue
		}

		i++
	}
	return ranges
}

func (h *KeywordHighlighter) isQuote(r rune) bool {
	for _, q := range h.quotes {
		if r == q {
			return true
		}
	}
	return false
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func hasRunePrefix(runes, prefix []rune) bool {
	if len(runes) < len(prefix) {
		return false
	}
	for i, r := range prefix {
		if runes[i] != r {
			return false
		}
	}
	return true
}

// GoHighlighter returns a keyword highlighter preloaded for Go source.
func GoHighlighter() *KeywordHighlighter {
	return NewKeywordHighlighter("go").
		SetLineComment("//").
		SetQuotes('"', '\'', '`').
		AddKeywords(
			"break", "case", "chan", "const", "continue", "default",
			"defer", "else", "fallthrough", "for", "func", "go", "goto",
			"if", "import", "interface", "map", "package", "range",
			"return", "select", "struct", "switch", "type", "var",
		)
}
