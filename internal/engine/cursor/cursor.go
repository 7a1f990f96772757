package cursor

import (
	"github.com/dshills/editcore/internal/engine/buffer"
)

// Document is the read surface cursors use for movement. *buffer.Buffer
// satisfies it.
type Document interface {
	LineCount() int
	LineLen(line int) int
	LineText(line int) string
}

// Cursor is a caret at a (line, column) position. The preferred column
// keeps vertical movement sticky: moving through a short line remembers
// the column the cursor wants to return to. Horizontal movement clears
// it.
type Cursor struct {
	Pos     buffer.Position
	Visible bool
	ID      int

	// preferredColumn is -1 when unset.
	preferredColumn int
}

// New creates a visible cursor at the given position.
func New(pos buffer.Position) Cursor {
	return Cursor{Pos: pos, Visible: true, preferredColumn: -1}
}

// At creates a cursor at (line, column).
func At(line, column int) Cursor {
	return New(buffer.Position{Line: line, Column: column})
}

// MoveUp moves the cursor up one line, clamping the column to the new
// line's length while remembering the preferred column.
func (c *Cursor) MoveUp(doc Document) {
	if c.Pos.Line == 0 {
		return
	}
	c.stickColumn()
	c.Pos.Line--
	c.Pos.Column = min(c.preferredColumn, doc.LineLen(c.Pos.Line))
}

// MoveDown moves the cursor down one line, clamping the column to the
// new line's length while remembering the preferred column.
func (c *Cursor) MoveDown(doc Document) {
	if c.Pos.Line+1 >= doc.LineCount() {
		return
	}
	c.stickColumn()
	c.Pos.Line++
	c.Pos.Column = min(c.preferredColumn, doc.LineLen(c.Pos.Line))
}

// MoveLeft moves one char left, wrapping to the end of the previous
// line at column 0.
func (c *Cursor) MoveLeft(doc Document) {
	c.preferredColumn = -1
	switch {
	case c.Pos.Column > 0:
		c.Pos.Column--
	case c.Pos.Line > 0:
		c.Pos.Line--
		c.Pos.Column = doc.LineLen(c.Pos.Line)
	}
}

// MoveRight moves one char right, wrapping to the start of the next
// line at end of line.
func (c *Cursor) MoveRight(doc Document) {
	c.preferredColumn = -1
	switch {
	case c.Pos.Column < doc.LineLen(c.Pos.Line):
		c.Pos.Column++
	case c.Pos.Line+1 < doc.LineCount():
		c.Pos.Line++
		c.Pos.Column = 0
	}
}

// MoveWordLeft moves to the start of the previous word, wrapping to the
// previous line when already at column 0.
func (c *Cursor) MoveWordLeft(doc Document) {
	c.preferredColumn = -1
	if c.Pos.Column == 0 {
		if c.Pos.Line > 0 {
			c.Pos.Line--
			c.Pos.Column = doc.LineLen(c.Pos.Line)
		}
		return
	}
	c.Pos.Column = PrevWordStart(doc.LineText(c.Pos.Line), c.Pos.Column)
}

// MoveWordRight moves to the start of the next word, wrapping to the
// next line when already at end of line.
func (c *Cursor) MoveWordRight(doc Document) {
	c.preferredColumn = -1
	if c.Pos.Column >= doc.LineLen(c.Pos.Line) {
		if c.Pos.Line+1 < doc.LineCount() {
			c.Pos.Line++
			c.Pos.Column = 0
		}
		return
	}
	c.Pos.Column = NextWordStart(doc.LineText(c.Pos.Line), c.Pos.Column)
}

// MoveToLineStart moves to column 0 of the current line.
func (c *Cursor) MoveToLineStart() {
	c.preferredColumn = -1
	c.Pos.Column = 0
}

// MoveToLineEnd moves past the last char of the current line.
func (c *Cursor) MoveToLineEnd(doc Document) {
	c.preferredColumn = -1
	c.Pos.Column = doc.LineLen(c.Pos.Line)
}

// MoveToDocumentStart moves to (0, 0).
func (c *Cursor) MoveToDocumentStart() {
	c.preferredColumn = -1
	c.Pos = buffer.Position{}
}

// MoveToDocumentEnd moves past the last char of the last line.
func (c *Cursor) MoveToDocumentEnd(doc Document) {
	c.preferredColumn = -1
	c.Pos.Line = doc.LineCount() - 1
	c.Pos.Column = doc.LineLen(c.Pos.Line)
}

// MoveTo places the cursor at an explicit position and forgets the
// preferred column.
func (c *Cursor) MoveTo(pos buffer.Position) {
	c.preferredColumn = -1
	c.Pos = pos
}

// Clamp constrains the cursor to valid document coordinates.
func (c *Cursor) Clamp(doc Document) {
	if c.Pos.Line < 0 {
		c.Pos.Line = 0
	}
	if last := doc.LineCount() - 1; c.Pos.Line > last {
		c.Pos.Line = last
	}
	if c.Pos.Column < 0 {
		c.Pos.Column = 0
	}
	if lineLen := doc.LineLen(c.Pos.Line); c.Pos.Column > lineLen {
		c.Pos.Column = lineLen
	}
}

// stickColumn records the current column as preferred if none is set.
func (c *Cursor) stickColumn() {
	if c.preferredColumn < 0 {
		c.preferredColumn = c.Pos.Column
	}
}
