package syntax

import (
	"github.com/dshills/editcore/internal/engine/buffer"
)

// Tag classifies a highlighted range. The engine interprets none of
// these; they exist for the renderer.
type Tag string

const (
	TagKeyword Tag = "keyword"
	TagString  Tag = "string"
	TagComment Tag = "comment"
	TagNumber  Tag = "number"
)

// TaggedRange is a non-overlapping char range with its classification.
type TaggedRange struct {
	Start int
	End   int
	Tag   Tag
}

// Highlighter is the external syntax collaborator surface. It consumes
// read-only buffer snapshots and produces tagged ranges in ascending
// offset order. TextEdited is delivered after every length-changing
// mutation with the edit descriptor so an implementation can re-parse
// incrementally; it satisfies buffer.Observer, so a highlighter can be
// registered directly with Buffer.AddObserver.
type Highlighter interface {
	Language() string
	Highlight(snap *buffer.Snapshot) []TaggedRange
	TextEdited(snap *buffer.Snapshot, edit buffer.EditDescriptor)
}
