package document

import (
	"context"

	"github.com/google/uuid"

	"github.com/dshills/editcore/internal/engine/buffer"
	"github.com/dshills/editcore/internal/engine/command"
	"github.com/dshills/editcore/internal/engine/cursor"
)

// Document is one open text document: a buffer plus the cursor set,
// selection set, and command executor that live exactly as long as it
// does. Each document is fully independent; nothing is shared across
// documents.
type Document struct {
	id    uuid.UUID
	state *command.State
	exec  *command.Executor
}

// New creates an empty unsaved document.
func New(bufOpts []buffer.Option, execOpts ...command.ExecutorOption) *Document {
	return &Document{
		id:    uuid.New(),
		state: command.NewState(buffer.NewBuffer(bufOpts...)),
		exec:  command.NewExecutor(execOpts...),
	}
}

// NewFromString creates an unsaved document with initial content.
func NewFromString(text string, bufOpts []buffer.Option, execOpts ...command.ExecutorOption) *Document {
	d := New(bufOpts, execOpts...)
	d.state = command.NewState(buffer.NewBufferFromString(text, bufOpts...))
	return d
}

// Open creates a document by loading path through the buffer's file
// I/O collaborator. The buffer options must carry a FileIO.
func Open(ctx context.Context, path string, bufOpts []buffer.Option, execOpts ...command.ExecutorOption) (*Document, error) {
	d := New(bufOpts, execOpts...)
	if err := d.state.Buf.Load(ctx, path); err != nil {
		return nil, err
	}
	return d, nil
}

// ID returns the document's unique identifier.
func (d *Document) ID() uuid.UUID {
	return d.id
}

// Buffer returns the document's text buffer.
func (d *Document) Buffer() *buffer.Buffer {
	return d.state.Buf
}

// Cursors returns the document's cursor set.
func (d *Document) Cursors() *cursor.Set {
	return d.state.Cursors
}

// Selections returns the document's selection set.
func (d *Document) Selections() *cursor.SelectionSet {
	return d.state.Selections
}

// Executor returns the document's command executor.
func (d *Document) Executor() *command.Executor {
	return d.exec
}

// Execute runs a command against this document.
func (d *Document) Execute(cmd command.Command) command.Result {
	return d.exec.Execute(cmd, d.state)
}

// Path returns the associated file path, or "" for an unsaved document.
func (d *Document) Path() string {
	return d.state.Buf.Path()
}

// IsDirty reports whether the document has unsaved changes.
func (d *Document) IsDirty() bool {
	return d.state.Buf.IsDirty()
}

// Save writes the document to its associated path.
func (d *Document) Save(ctx context.Context) error {
	return d.state.Buf.Save(ctx)
}

// SaveAs writes the document to path and re-associates it.
func (d *Document) SaveAs(ctx context.Context, path string) error {
	return d.state.Buf.SaveAs(ctx, path)
}
