// Package buffer implements the mutable text buffer at the heart of the
// editing engine. A Buffer pairs rope-backed content with a dirty flag,
// an optional file path, and bounded undo/redo history recorded as
// invertible edit operations.
//
// All coordinates are char (Unicode scalar) offsets or (line, column)
// positions; out-of-range input is clamped rather than rejected, so the
// position algebra never fails. Undo and redo replay recorded
// operations exactly: every edit stores enough text to reconstruct the
// prior content without diffing.
package buffer
