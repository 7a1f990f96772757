package buffer

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/editcore/internal/engine/rope"
)

// Errors returned by buffer I/O operations. In-memory mutations never
// fail; out-of-range input is clamped or ignored.
var (
	ErrNoPath   = errors.New("buffer has no file path")
	ErrNoFileIO = errors.New("no file I/O collaborator configured")
)

// FileIO is the external collaborator that performs file loading and
// saving. Errors are opaque I/O failures surfaced unchanged; the
// buffer does not interpret file-system semantics.
type FileIO interface {
	Load(ctx context.Context, path string) (string, error)
	Save(ctx context.Context, path string, text string) error
}

// Buffer owns mutable text content, a dirty flag, an optional file
// path, and bounded undo/redo history. Content is stored in a rope for
// amortized-efficient edits at arbitrary offsets and O(log n) line
// lookups. All methods are thread-safe, though the engine as a whole
// expects a single owning goroutine per document.
type Buffer struct {
	mu        sync.RWMutex
	content   rope.Rope
	path      string
	dirty     bool
	hist      history
	tabWidth  int
	softTabs  bool
	fileIO    FileIO
	observers []Observer
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		content:  rope.New(),
		hist:     newHistory(DefaultMaxHistory),
		tabWidth: DefaultTabWidth,
		softTabs: true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.content = rope.FromString(s)
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	b := NewBuffer(opts...)
	content, err := rope.FromReader(r)
	if err != nil {
		return nil, err
	}
	b.content = content
	return b, nil
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.String()
}

// TextRange returns text in the given char range, clamped.
func (b *Buffer) TextRange(r Range) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.Slice(r.Start, r.End)
}

// Len returns the total char length of the buffer.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.Len()
}

// LineCount returns the number of lines. Always at least 1.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.LineCount()
}

// LineText returns the text of a line, without its newline.
func (b *Buffer) LineText(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.LineText(line)
}

// LineLen returns the char length of a line, without its newline.
func (b *Buffer) LineLen(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.LineLen(line)
}

// IsEmpty returns true if the buffer has no content.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// IsDirty returns true if content differs from the last load/save baseline.
func (b *Buffer) IsDirty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dirty
}

// Path returns the associated file path, or "" for an unsaved buffer.
func (b *Buffer) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

// TabWidth returns the configured tab width.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

// SoftTabs returns true if InsertTab writes spaces.
func (b *Buffer) SoftTabs() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.softTabs
}

// CanUndo returns true if an undo entry is available.
func (b *Buffer) CanUndo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.hist.undo) > 0
}

// CanRedo returns true if a redo entry is available.
func (b *Buffer) CanRedo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.hist.redo) > 0
}

// Snapshot returns a read-only snapshot of current content.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return &Snapshot{content: b.content}
}

// AddObserver registers an observer for content changes.
func (b *Buffer) AddObserver(o Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers = append(b.observers, o)
}

// Position Algebra

// PositionToOffset converts a (line, column) position to a char offset.
// The line is clamped to the valid line range and the column to the
// line's length, so the result is always a valid offset. Never fails.
func (b *Buffer) PositionToOffset(pos Position) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.positionToOffsetLocked(pos)
}

func (b *Buffer) positionToOffsetLocked(pos Position) int {
	line := pos.Line
	if line < 0 {
		line = 0
	}
	lineCount := b.content.LineCount()
	if line >= lineCount {
		return b.content.Len()
	}

	col := pos.Column
	if col < 0 {
		col = 0
	}
	if lineLen := b.content.LineLen(line); col > lineLen {
		col = lineLen
	}
	return b.content.LineStartOffset(line) + col
}

// OffsetToPosition converts a char offset to a (line, column) position.
// The offset is clamped to [0, Len]. Never fails.
func (b *Buffer) OffsetToPosition(offset int) Position {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.offsetToPositionLocked(offset)
}

func (b *Buffer) offsetToPositionLocked(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if total := b.content.Len(); offset > total {
		offset = total
	}
	line := b.content.LineForOffset(offset)
	return Position{Line: line, Column: offset - b.content.LineStartOffset(line)}
}

// Write Operations

// Insert inserts text at a (line, column) position and returns the char
// offset just past the inserted text. Out-of-range positions clamp.
func (b *Buffer) Insert(pos Position, text string) int {
	b.mu.Lock()
	offset := b.positionToOffsetLocked(pos)
	return b.insertLocked(offset, text)
}

// InsertAtOffset inserts text at a char offset and returns the offset
// just past the inserted text. Out-of-range offsets clamp.
func (b *Buffer) InsertAtOffset(offset int, text string) int {
	b.mu.Lock()
	return b.insertLocked(offset, text)
}

// insertLocked performs the insert and releases the lock.
func (b *Buffer) insertLocked(offset int, text string) int {
	if offset < 0 {
		offset = 0
	}
	if total := b.content.Len(); offset > total {
		offset = total
	}
	if len(text) == 0 {
		b.mu.Unlock()
		return offset
	}

	b.hist.push(NewInsertOp(offset, text))
	b.content = b.content.Insert(offset, text)
	b.dirty = true
	end := offset + utf8.RuneCountInString(text)

	snap := &Snapshot{content: b.content}
	b.mu.Unlock()
	b.notify(snap, EditDescriptor{Start: offset, OldEnd: offset, NewEnd: end})
	return end
}

// Delete removes text in the given char range. A no-op if the range is
// empty, inverted, or starts out of bounds; the end is clamped.
func (b *Buffer) Delete(r Range) {
	b.mu.Lock()
	if r.Start >= r.End || r.Start < 0 || r.Start >= b.content.Len() {
		b.mu.Unlock()
		return
	}
	end := r.End
	if total := b.content.Len(); end > total {
		end = total
	}

	removed := b.content.Slice(r.Start, end)
	b.hist.push(NewDeleteOp(r.Start, removed))
	b.content = b.content.Delete(r.Start, end)
	b.dirty = true

	snap := &Snapshot{content: b.content}
	b.mu.Unlock()
	b.notify(snap, EditDescriptor{Start: r.Start, OldEnd: end, NewEnd: r.Start})
}

// DeleteLine removes an entire line including its trailing newline, or
// up to end-of-buffer for the last line. Out-of-range lines are a no-op.
func (b *Buffer) DeleteLine(line int) {
	b.mu.RLock()
	if line < 0 || line >= b.content.LineCount() {
		b.mu.RUnlock()
		return
	}
	start := b.content.LineStartOffset(line)
	var end int
	if line+1 < b.content.LineCount() {
		end = b.content.LineStartOffset(line + 1)
	} else {
		end = b.content.Len()
	}
	b.mu.RUnlock()

	b.Delete(Range{Start: start, End: end})
}

// Replace swaps the text in the given char range with new text as a
// single undo entry. The range end is clamped; a no-op if the start is
// out of bounds.
func (b *Buffer) Replace(r Range, newText string) {
	b.mu.Lock()
	if r.Start < 0 || r.Start > b.content.Len() {
		b.mu.Unlock()
		return
	}
	end := r.End
	if total := b.content.Len(); end > total {
		end = total
	}
	if end < r.Start {
		end = r.Start
	}

	oldText := b.content.Slice(r.Start, end)
	b.hist.push(NewReplaceOp(r.Start, oldText, newText))
	b.content = b.content.Replace(r.Start, end, newText)
	b.dirty = true
	newEnd := r.Start + utf8.RuneCountInString(newText)

	snap := &Snapshot{content: b.content}
	b.mu.Unlock()
	b.notify(snap, EditDescriptor{Start: r.Start, OldEnd: end, NewEnd: newEnd})
}

// InsertTab inserts a tab (or a run of spaces when soft tabs are on) at
// the given char offset and returns the offset past the insertion.
func (b *Buffer) InsertTab(offset int) int {
	b.mu.Lock()
	text := "\t"
	if b.softTabs {
		text = strings.Repeat(" ", b.tabWidth)
	}
	return b.insertLocked(offset, text)
}

// InsertNewline inserts a newline at the given char offset, carrying
// over the current line's leading whitespace, and returns the offset
// past the insertion.
func (b *Buffer) InsertNewline(offset int) int {
	b.mu.Lock()
	line := b.content.LineForOffset(clampOffset(offset, b.content.Len()))
	lineText := b.content.LineText(line)

	var indent strings.Builder
	for _, r := range lineText {
		if r != ' ' && r != '\t' {
			break
		}
		indent.WriteRune(r)
	}
	return b.insertLocked(offset, "\n"+indent.String())
}

func clampOffset(offset, total int) int {
	if offset < 0 {
		return 0
	}
	if offset > total {
		return total
	}
	return offset
}

// Undo / Redo

// Undo reverts the most recent edit by applying its inverse. Returns
// false and performs no mutation if the undo stack is empty.
func (b *Buffer) Undo() bool {
	b.mu.Lock()
	op, ok := b.hist.popUndo()
	if !ok {
		b.mu.Unlock()
		return false
	}
	edit := b.applyLocked(op.Inverse())
	b.hist.pushRedo(op)
	b.dirty = true

	snap := &Snapshot{content: b.content}
	b.mu.Unlock()
	b.notify(snap, edit)
	return true
}

// Redo re-applies the most recently undone edit. Returns false and
// performs no mutation if the redo stack is empty.
func (b *Buffer) Redo() bool {
	b.mu.Lock()
	op, ok := b.hist.popRedo()
	if !ok {
		b.mu.Unlock()
		return false
	}
	edit := b.applyLocked(op)
	b.hist.pushUndoOnly(op)
	b.dirty = true

	snap := &Snapshot{content: b.content}
	b.mu.Unlock()
	b.notify(snap, edit)
	return true
}

// applyLocked applies an operation without recording it.
func (b *Buffer) applyLocked(op EditOperation) EditDescriptor {
	total := b.content.Len()
	pos := clampOffset(op.Pos, total)

	switch op.Kind {
	case OpInsert:
		b.content = b.content.Insert(pos, op.NewText)
		return EditDescriptor{Start: pos, OldEnd: pos, NewEnd: pos + utf8.RuneCountInString(op.NewText)}
	case OpDelete:
		end := clampOffset(pos+utf8.RuneCountInString(op.OldText), total)
		b.content = b.content.Delete(pos, end)
		return EditDescriptor{Start: pos, OldEnd: end, NewEnd: pos}
	case OpReplace:
		end := clampOffset(pos+utf8.RuneCountInString(op.OldText), total)
		b.content = b.content.Replace(pos, end, op.NewText)
		return EditDescriptor{Start: pos, OldEnd: end, NewEnd: pos + utf8.RuneCountInString(op.NewText)}
	default:
		return EditDescriptor{}
	}
}

// Find / Replace

// Find returns all non-overlapping occurrences of query in document
// order, as char ranges. An empty query yields no matches. The scan
// advances past each full match, so matches never overlap.
func (b *Buffer) Find(query string, caseSensitive bool) []Range {
	if len(query) == 0 {
		return nil
	}

	b.mu.RLock()
	text := b.content.String()
	b.mu.RUnlock()

	haystack := []rune(text)
	needle := []rune(query)
	var matches []Range

	for i := 0; i+len(needle) <= len(haystack); {
		if runesMatch(haystack[i:i+len(needle)], needle, caseSensitive) {
			matches = append(matches, Range{Start: i, End: i + len(needle)})
			i += len(needle)
		} else {
			i++
		}
	}
	return matches
}

// runesMatch compares two equal-length rune slices, optionally folding case.
func runesMatch(a, q []rune, caseSensitive bool) bool {
	for i := range q {
		if a[i] == q[i] {
			continue
		}
		if caseSensitive || unicode.ToLower(a[i]) != unicode.ToLower(q[i]) {
			return false
		}
	}
	return true
}

// FindReplace replaces every match of query with replacement and
// returns the match count. Matches are rewritten in reverse document
// order so earlier offsets stay valid as later matches change length.
func (b *Buffer) FindReplace(query, replacement string, caseSensitive bool) int {
	matches := b.Find(query, caseSensitive)
	for i := len(matches) - 1; i >= 0; i-- {
		b.Replace(matches[i], replacement)
	}
	return len(matches)
}

// File I/O (delegated to the FileIO collaborator)

// Save writes the buffer to its associated path and clears the dirty
// flag. Fails with ErrNoPath if no path is set. A failed save leaves
// all buffer state unchanged.
func (b *Buffer) Save(ctx context.Context) error {
	b.mu.RLock()
	path := b.path
	b.mu.RUnlock()
	if path == "" {
		return ErrNoPath
	}
	return b.SaveAs(ctx, path)
}

// SaveAs writes the buffer to path, updates the associated path, and
// clears the dirty flag. A failed save leaves all buffer state unchanged.
func (b *Buffer) SaveAs(ctx context.Context, path string) error {
	b.mu.RLock()
	fio := b.fileIO
	text := b.content.String()
	b.mu.RUnlock()

	if fio == nil {
		return ErrNoFileIO
	}
	if err := fio.Save(ctx, path, text); err != nil {
		return err
	}

	b.mu.Lock()
	b.path = path
	b.dirty = false
	b.mu.Unlock()
	return nil
}

// Load replaces buffer content with the file at path, clears history
// and the dirty flag, and updates the associated path. A failed load
// leaves the previous content untouched.
func (b *Buffer) Load(ctx context.Context, path string) error {
	b.mu.RLock()
	fio := b.fileIO
	b.mu.RUnlock()

	if fio == nil {
		return ErrNoFileIO
	}
	text, err := fio.Load(ctx, path)
	if err != nil {
		return err
	}

	b.mu.Lock()
	oldLen := b.content.Len()
	b.content = rope.FromString(text)
	b.path = path
	b.dirty = false
	b.hist.clear()
	newLen := b.content.Len()

	snap := &Snapshot{content: b.content}
	b.mu.Unlock()
	b.notify(snap, EditDescriptor{Start: 0, OldEnd: oldLen, NewEnd: newLen})
	return nil
}

// notify delivers a change to all observers, outside the buffer lock.
func (b *Buffer) notify(snap *Snapshot, edit EditDescriptor) {
	b.mu.RLock()
	observers := make([]Observer, len(b.observers))
	copy(observers, b.observers)
	b.mu.RUnlock()

	for _, o := range observers {
		o.TextEdited(snap, edit)
	}
}
