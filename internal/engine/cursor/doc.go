// Package cursor implements carets and selections over a buffer.
//
// A Cursor is a single caret with sticky-column vertical movement. A
// Set holds multiple cursors in document order and collapses cursors
// that land on the same position after each batch move, so multi-cursor
// editing never produces duplicate carets. Selections are anchored
// ranges; a SelectionSet keeps them sorted and merges overlapping or
// touching ranges after every mutation.
//
// Word-wise movement and word selection use Unicode word segmentation
// (UAX #29) rather than ASCII heuristics.
package cursor
