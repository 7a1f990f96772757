package buffer

import (
	"fmt"
	"unicode/utf8"
)

// OpKind identifies the kind of an EditOperation.
type OpKind uint8

const (
	// OpInsert records text inserted at a position.
	OpInsert OpKind = iota

	// OpDelete records text removed from a position. The removed text is
	// captured at delete time so the operation is self-contained.
	OpDelete

	// OpReplace records text swapped at a position.
	OpReplace
)

// String returns a string representation of the operation kind.
func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// EditOperation is an immutable, invertible record of a single buffer
// mutation. Pos is a char offset. Insert operations carry NewText,
// delete operations carry OldText, replace operations carry both.
type EditOperation struct {
	Kind    OpKind
	Pos     int
	OldText string
	NewText string
}

// NewInsertOp creates an operation recording an insertion.
func NewInsertOp(pos int, text string) EditOperation {
	return EditOperation{Kind: OpInsert, Pos: pos, NewText: text}
}

// NewDeleteOp creates an operation recording a deletion.
func NewDeleteOp(pos int, removed string) EditOperation {
	return EditOperation{Kind: OpDelete, Pos: pos, OldText: removed}
}

// NewReplaceOp creates an operation recording a replacement.
func NewReplaceOp(pos int, oldText, newText string) EditOperation {
	return EditOperation{Kind: OpReplace, Pos: pos, OldText: oldText, NewText: newText}
}

// Inverse returns the operation that exactly undoes this one.
// Applying an operation and then its inverse restores the prior text.
func (op EditOperation) Inverse() EditOperation {
	switch op.Kind {
	case OpInsert:
		return EditOperation{Kind: OpDelete, Pos: op.Pos, OldText: op.NewText}
	case OpDelete:
		return EditOperation{Kind: OpInsert, Pos: op.Pos, NewText: op.OldText}
	case OpReplace:
		return EditOperation{Kind: OpReplace, Pos: op.Pos, OldText: op.NewText, NewText: op.OldText}
	default:
		return op
	}
}

// CharsDelta returns the change in buffer length, in chars.
func (op EditOperation) CharsDelta() int {
	return utf8.RuneCountInString(op.NewText) - utf8.RuneCountInString(op.OldText)
}

// String returns a human-readable representation of the operation.
func (op EditOperation) String() string {
	switch op.Kind {
	case OpInsert:
		return fmt.Sprintf("Insert(%d, %q)", op.Pos, op.NewText)
	case OpDelete:
		return fmt.Sprintf("Delete(%d, %q)", op.Pos, op.OldText)
	case OpReplace:
		return fmt.Sprintf("Replace(%d, %q -> %q)", op.Pos, op.OldText, op.NewText)
	default:
		return "Unknown"
	}
}
