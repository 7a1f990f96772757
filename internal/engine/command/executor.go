package command

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dshills/editcore/internal/engine/buffer"
	"github.com/dshills/editcore/internal/engine/cursor"
)

// Defaults for executor tunables.
const (
	DefaultPageSize      = 20
	DefaultIndentWidth   = 4
	DefaultCommentPrefix = "// "
)

// State is the mutable editor state a command executes against: one
// buffer plus its cursor and selection sets. A document owns exactly
// one State for its lifetime.
type State struct {
	Buf        *buffer.Buffer
	Cursors    *cursor.Set
	Selections *cursor.SelectionSet
}

// NewState wraps a buffer with a fresh cursor at (0, 0) and no
// selections.
func NewState(buf *buffer.Buffer) *State {
	return &State{
		Buf:        buf,
		Cursors:    cursor.NewSet(buffer.Position{}),
		Selections: cursor.NewSelectionSet(),
	}
}

func (st *State) primaryPos() buffer.Position {
	return st.Cursors.Primary().Pos
}

// Executor dispatches commands against editor state. It holds the
// transient cross-command state: clipboard text, the active find query,
// and the last computed match list with a circular index into it.
type Executor struct {
	clipboard     string
	findQuery     string
	findMatches   []buffer.Range
	findIndex     int
	pageSize      int
	indentWidth   int
	commentPrefix string
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithPageSize sets the line count PageUp/PageDown move by.
func WithPageSize(n int) ExecutorOption {
	return func(e *Executor) {
		if n > 0 {
			e.pageSize = n
		}
	}
}

// WithIndentWidth sets the space count Indent/Outdent operate with.
func WithIndentWidth(n int) ExecutorOption {
	return func(e *Executor) {
		if n > 0 {
			e.indentWidth = n
		}
	}
}

// WithCommentPrefix sets the line comment prefix ToggleComment uses.
func WithCommentPrefix(prefix string) ExecutorOption {
	return func(e *Executor) {
		if prefix != "" {
			e.commentPrefix = prefix
		}
	}
}

// NewExecutor creates an executor with default tunables.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{
		pageSize:      DefaultPageSize,
		indentWidth:   DefaultIndentWidth,
		commentPrefix: DefaultCommentPrefix,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Clipboard returns the executor clipboard content.
func (e *Executor) Clipboard() string {
	return e.clipboard
}

// SetClipboard replaces the executor clipboard content.
func (e *Executor) SetClipboard(text string) {
	e.clipboard = text
}

// Execute runs a command against the given state and reports the
// outcome. Movement and selection commands never touch the undo stack;
// edit commands replace any active selection before inserting.
func (e *Executor) Execute(cmd Command, st *State) Result {
	switch c := cmd.(type) {

	// Movement
	case MoveCursor:
		st.Cursors.MoveAll(func(cur *cursor.Cursor) { moveCursor(cur, st.Buf, c.Dir) })
		st.Selections.Clear()
		return OK()

	case MoveCursorWord:
		st.Cursors.MoveAll(func(cur *cursor.Cursor) {
			switch c.Dir {
			case Left:
				cur.MoveWordLeft(st.Buf)
			case Right:
				cur.MoveWordRight(st.Buf)
			}
		})
		st.Selections.Clear()
		return OK()

	case MoveToLineStart:
		st.Cursors.MoveAll(func(cur *cursor.Cursor) { cur.MoveToLineStart() })
		st.Selections.Clear()
		return OK()

	case MoveToLineEnd:
		st.Cursors.MoveAll(func(cur *cursor.Cursor) { cur.MoveToLineEnd(st.Buf) })
		st.Selections.Clear()
		return OK()

	case MoveToDocumentStart:
		st.Cursors.MoveAll(func(cur *cursor.Cursor) { cur.MoveToDocumentStart() })
		st.Selections.Clear()
		return OK()

	case MoveToDocumentEnd:
		st.Cursors.MoveAll(func(cur *cursor.Cursor) { cur.MoveToDocumentEnd(st.Buf) })
		st.Selections.Clear()
		return OK()

	case PageUp:
		st.Cursors.MoveAll(func(cur *cursor.Cursor) {
			for i := 0; i < e.pageSize; i++ {
				cur.MoveUp(st.Buf)
			}
		})
		st.Selections.Clear()
		return OK()

	case PageDown:
		st.Cursors.MoveAll(func(cur *cursor.Cursor) {
			for i := 0; i < e.pageSize; i++ {
				cur.MoveDown(st.Buf)
			}
		})
		st.Selections.Clear()
		return OK()

	// Selection
	case SelectAll:
		last := st.Buf.LineCount() - 1
		sel := cursor.NewSelection(
			buffer.Position{},
			buffer.Position{Line: last, Column: st.Buf.LineLen(last)},
		)
		st.Selections.SetPrimary(sel)
		return OK()

	case SelectWord:
		pos := st.primaryPos()
		start, end := cursor.WordRangeAt(st.Buf.LineText(pos.Line), pos.Column)
		sel := cursor.WithMode(
			buffer.Position{Line: pos.Line, Column: start},
			buffer.Position{Line: pos.Line, Column: end},
			cursor.ModeWord,
		)
		st.Selections.SetPrimary(sel)
		st.Cursors.UpdatePrimary(func(cur *cursor.Cursor) { cur.MoveTo(sel.End) })
		return OK()

	case SelectLine:
		line := st.primaryPos().Line
		end := buffer.Position{Line: line, Column: st.Buf.LineLen(line)}
		if line+1 < st.Buf.LineCount() {
			end = buffer.Position{Line: line + 1}
		}
		sel := cursor.WithMode(buffer.Position{Line: line}, end, cursor.ModeLine)
		st.Selections.SetPrimary(sel)
		st.Cursors.UpdatePrimary(func(cur *cursor.Cursor) { cur.MoveTo(sel.End) })
		return OK()

	case ExtendSelection:
		if st.Selections.IsEmpty() {
			st.Selections.SetPrimary(cursor.EmptySelection(st.primaryPos()))
		}
		st.Cursors.UpdatePrimary(func(cur *cursor.Cursor) { moveCursor(cur, st.Buf, c.Dir) })
		st.Selections.ExtendPrimaryTo(st.primaryPos())
		return OK()

	case ClearSelection:
		st.Selections.Clear()
		return OK()

	// Edits
	case InsertChar:
		e.insertAtCursors(st, string(c.Ch))
		return OK()

	case InsertText:
		e.insertAtCursors(st, c.Text)
		return OK()

	case InsertNewline:
		e.editAtCursors(st, func(offset int) (int, int) {
			end := st.Buf.InsertNewline(offset)
			return end, end - offset
		})
		return OK()

	case InsertTab:
		e.editAtCursors(st, func(offset int) (int, int) {
			end := st.Buf.InsertTab(offset)
			return end, end - offset
		})
		return OK()

	case DeleteBackward:
		if e.deleteSelections(st) {
			return OK()
		}
		e.editAtCursors(st, func(offset int) (int, int) {
			if offset == 0 {
				return 0, 0
			}
			st.Buf.Delete(buffer.Range{Start: offset - 1, End: offset})
			return offset - 1, -1
		})
		return OK()

	case DeleteForward:
		if e.deleteSelections(st) {
			return OK()
		}
		e.editAtCursors(st, func(offset int) (int, int) {
			if offset >= st.Buf.Len() {
				return offset, 0
			}
			st.Buf.Delete(buffer.Range{Start: offset, End: offset + 1})
			return offset, -1
		})
		return OK()

	case DeleteWord:
		if e.deleteSelections(st) {
			return OK()
		}
		e.editAtCursors(st, func(offset int) (int, int) {
			pos := st.Buf.OffsetToPosition(offset)
			var end int
			if pos.Column >= st.Buf.LineLen(pos.Line) {
				// at end of line, delete the newline
				end = offset + 1
				if end > st.Buf.Len() {
					return offset, 0
				}
			} else {
				next := cursor.NextWordStart(st.Buf.LineText(pos.Line), pos.Column)
				end = offset + (next - pos.Column)
			}
			st.Buf.Delete(buffer.Range{Start: offset, End: end})
			return offset, offset - end
		})
		return OK()

	case DeleteLine:
		st.Buf.DeleteLine(st.primaryPos().Line)
		st.Selections.Clear()
		st.Cursors.MoveAll(func(cur *cursor.Cursor) { cur.Clamp(st.Buf) })
		return OK()

	// Clipboard
	case Copy:
		text, ok := e.selectedText(st)
		if !ok {
			return WithMessage("No selection to copy")
		}
		e.clipboard = text
		return WithMessage("Copied to clipboard")

	case Cut:
		text, ok := e.selectedText(st)
		if !ok {
			return WithMessage("No selection to cut")
		}
		e.clipboard = text
		e.deleteSelections(st)
		return WithMessage("Cut to clipboard")

	case Paste:
		text := c.Text
		if text == "" {
			text = e.clipboard
		}
		e.insertAtCursors(st, text)
		return OK()

	// History
	case Undo:
		if !st.Buf.Undo() {
			return WithMessage("Nothing to undo")
		}
		st.Selections.Clear()
		st.Cursors.MoveAll(func(cur *cursor.Cursor) { cur.Clamp(st.Buf) })
		return WithMessage("Undone")

	case Redo:
		if !st.Buf.Redo() {
			return WithMessage("Nothing to redo")
		}
		st.Selections.Clear()
		st.Cursors.MoveAll(func(cur *cursor.Cursor) { cur.Clamp(st.Buf) })
		return WithMessage("Redone")

	// Find / replace
	case Find:
		e.findQuery = c.Query
		e.findMatches = st.Buf.Find(c.Query, false)
		e.findIndex = 0
		if len(e.findMatches) == 0 {
			return WithMessage("No matches found")
		}
		return WithMessage(fmt.Sprintf("Found %d matches", len(e.findMatches)))

	case FindNext:
		if len(e.findMatches) == 0 {
			return WithMessage("No matches")
		}
		e.findIndex = (e.findIndex + 1) % len(e.findMatches)
		e.selectMatch(st)
		return WithMessage(fmt.Sprintf("Match %d of %d", e.findIndex+1, len(e.findMatches)))

	case FindPrevious:
		if len(e.findMatches) == 0 {
			return WithMessage("No matches")
		}
		if e.findIndex == 0 {
			e.findIndex = len(e.findMatches) - 1
		} else {
			e.findIndex--
		}
		e.selectMatch(st)
		return WithMessage(fmt.Sprintf("Match %d of %d", e.findIndex+1, len(e.findMatches)))

	case Replace:
		if c.Query != e.findQuery || len(e.findMatches) == 0 {
			e.findQuery = c.Query
			e.findMatches = st.Buf.Find(c.Query, false)
			e.findIndex = 0
		}
		if len(e.findMatches) == 0 {
			return WithMessage("No matches found")
		}
		m := e.findMatches[e.findIndex]
		st.Buf.Replace(m, c.Replacement)
		caret := st.Buf.OffsetToPosition(m.Start + utf8.RuneCountInString(c.Replacement))
		st.Cursors.ResetTo(caret)
		st.Selections.Clear()
		e.findMatches = st.Buf.Find(c.Query, false)
		if e.findIndex >= len(e.findMatches) {
			e.findIndex = 0
		}
		return WithMessage("Replaced 1 occurrence")

	case ReplaceAll:
		count := st.Buf.FindReplace(c.Query, c.Replacement, false)
		e.findQuery = c.Query
		e.findMatches = nil
		e.findIndex = 0
		st.Selections.Clear()
		st.Cursors.MoveAll(func(cur *cursor.Cursor) { cur.Clamp(st.Buf) })
		return WithMessage(fmt.Sprintf("Replaced %d occurrences", count))

	// Line-level
	case Indent:
		start, end := e.lineSpan(st)
		indent := strings.Repeat(" ", e.indentWidth)
		for line := start; line <= end; line++ {
			st.Buf.Insert(buffer.Position{Line: line}, indent)
		}
		st.Cursors.MoveAll(func(cur *cursor.Cursor) { cur.Clamp(st.Buf) })
		return OK()

	case Outdent:
		start, end := e.lineSpan(st)
		for line := start; line <= end; line++ {
			text := st.Buf.LineText(line)
			leading := 0
			for _, r := range text {
				if r != ' ' {
					break
				}
				leading++
			}
			remove := leading
			if remove > e.indentWidth {
				remove = e.indentWidth
			}
			if remove > 0 {
				off := st.Buf.PositionToOffset(buffer.Position{Line: line})
				st.Buf.Delete(buffer.Range{Start: off, End: off + remove})
			}
		}
		st.Cursors.MoveAll(func(cur *cursor.Cursor) { cur.Clamp(st.Buf) })
		return OK()

	case ToggleComment:
		e.toggleComment(st)
		return OK()

	case FormatDocument:
		return Failed("Command not implemented")

	// Multi-cursor
	case AddCursorAbove:
		st.Cursors.AddAbove(st.Buf)
		return OK()

	case AddCursorBelow:
		st.Cursors.AddBelow(st.Buf)
		return OK()

	case AddCursorAtSelection:
		if st.Selections.IsEmpty() {
			return Failed("No selection")
		}
		for _, sel := range st.Selections.All() {
			st.Cursors.Add(sel.Max())
		}
		return OK()

	default:
		return Failed("Command not implemented")
	}
}

func moveCursor(c *cursor.Cursor, doc cursor.Document, dir Direction) {
	switch dir {
	case Up:
		c.MoveUp(doc)
	case Down:
		c.MoveDown(doc)
	case Left:
		c.MoveLeft(doc)
	case Right:
		c.MoveRight(doc)
	}
}

// selectedText returns the primary selection's text; ok is false when
// there is no non-empty selection.
func (e *Executor) selectedText(st *State) (string, bool) {
	sel, ok := st.Selections.Primary()
	if !ok || sel.IsEmpty() {
		return "", false
	}
	lo, hi := sel.Normalized()
	r := buffer.Range{
		Start: st.Buf.PositionToOffset(lo),
		End:   st.Buf.PositionToOffset(hi),
	}
	return st.Buf.TextRange(r), true
}

// deleteSelections removes the text of every non-empty selection in
// reverse document order, places a cursor at each deletion point, and
// clears the selection set. Returns false if nothing was deleted.
func (e *Executor) deleteSelections(st *State) bool {
	var spans []buffer.Range
	for _, sel := range st.Selections.All() {
		if sel.IsEmpty() {
			continue
		}
		lo, hi := sel.Normalized()
		spans = append(spans, buffer.Range{
			Start: st.Buf.PositionToOffset(lo),
			End:   st.Buf.PositionToOffset(hi),
		})
	}
	if len(spans) == 0 {
		return false
	}

	for i := len(spans) - 1; i >= 0; i-- {
		st.Buf.Delete(spans[i])
	}

	removed := 0
	carets := make([]buffer.Position, len(spans))
	for i, sp := range spans {
		carets[i] = st.Buf.OffsetToPosition(sp.Start - removed)
		removed += sp.End - sp.Start
	}
	st.Cursors.ResetTo(carets...)
	st.Selections.Clear()
	return true
}

// insertAtCursors types text at every cursor, replacing any active
// selection first.
func (e *Executor) insertAtCursors(st *State, text string) {
	e.deleteSelections(st)
	n := utf8.RuneCountInString(text)
	e.editAtCursors(st, func(offset int) (int, int) {
		return st.Buf.InsertAtOffset(offset, text), n
	})
}

// editAtCursors applies an edit at every cursor position in document
// order. Cursor positions are resolved to offsets up front; each edit
// reports the new caret offset and its length delta so later cursors
// shift correctly. Ends with the mandatory merge via ResetTo.
func (e *Executor) editAtCursors(st *State, edit func(offset int) (caret, delta int)) {
	poss := st.Cursors.Positions()
	offs := make([]int, len(poss))
	for i, p := range poss {
		offs[i] = st.Buf.PositionToOffset(p)
	}

	delta := 0
	carets := make([]int, len(offs))
	for i, off := range offs {
		caret, d := edit(off + delta)
		carets[i] = caret
		delta += d
	}

	newPoss := make([]buffer.Position, len(carets))
	for i, off := range carets {
		newPoss[i] = st.Buf.OffsetToPosition(off)
	}
	st.Cursors.ResetTo(newPoss...)
}

// lineSpan returns the inclusive line range of the primary selection,
// or the primary cursor's line when there is no selection.
func (e *Executor) lineSpan(st *State) (int, int) {
	if sel, ok := st.Selections.Primary(); ok && !sel.IsEmpty() {
		lo, hi := sel.Normalized()
		return lo.Line, hi.Line
	}
	line := st.primaryPos().Line
	return line, line
}

// toggleComment adds or strips the line comment prefix on the primary
// cursor's line. A prefix without its trailing space is also
// recognized when stripping.
func (e *Executor) toggleComment(st *State) {
	line := st.primaryPos().Line
	content := st.Buf.LineText(line)
	trimmed := strings.TrimLeft(content, " \t")
	indent := utf8.RuneCountInString(content) - utf8.RuneCountInString(trimmed)
	bare := strings.TrimRight(e.commentPrefix, " ")

	switch {
	case strings.HasPrefix(trimmed, e.commentPrefix):
		start := st.Buf.PositionToOffset(buffer.Position{Line: line, Column: indent})
		st.Buf.Delete(buffer.Range{Start: start, End: start + utf8.RuneCountInString(e.commentPrefix)})
	case strings.HasPrefix(trimmed, bare):
		start := st.Buf.PositionToOffset(buffer.Position{Line: line, Column: indent})
		st.Buf.Delete(buffer.Range{Start: start, End: start + utf8.RuneCountInString(bare)})
	default:
		st.Buf.Insert(buffer.Position{Line: line, Column: indent}, e.commentPrefix)
	}
	st.Cursors.MoveAll(func(cur *cursor.Cursor) { cur.Clamp(st.Buf) })
}

// selectMatch moves the primary cursor and selection to the current
// find match.
func (e *Executor) selectMatch(st *State) {
	m := e.findMatches[e.findIndex]
	start := st.Buf.OffsetToPosition(m.Start)
	end := st.Buf.OffsetToPosition(m.End)
	st.Cursors.ResetTo(start)
	st.Selections.SetPrimary(cursor.NewSelection(start, end))
}
