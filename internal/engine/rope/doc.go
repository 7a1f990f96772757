// Package rope provides an immutable rope data structure for efficient
// text storage and manipulation.
//
// A rope is a tree where leaf nodes contain text chunks and internal
// nodes store aggregated metrics (char count, line count). This
// implementation uses a B+ tree variant for cache locality and bounded
// worst-case performance.
//
// All public offsets are measured in chars (Unicode scalar values), not
// bytes. The engine's position algebra is character based, so the rope
// carries both byte and char counts in its summaries and converts at
// the chunk level.
//
// Key properties:
//   - O(log n) insertion, deletion, slicing, and line lookups
//   - Immutable operations return new ropes; originals are never modified
//   - Copy-on-write structure sharing makes snapshots cheap
//   - Safe for concurrent reads
//
// Basic usage:
//
//	r := rope.FromString("hello world")
//	r = r.Insert(5, ",")           // "hello, world"
//	r = r.Delete(0, 6)             // "world"
//	text := r.String()             // "world"
package rope
