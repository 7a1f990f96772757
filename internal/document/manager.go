package document

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/editcore/internal/engine/buffer"
	"github.com/dshills/editcore/internal/engine/command"
)

var (
	ErrNotFound   = errors.New("document not found")
	ErrDirtyClose = errors.New("document has unsaved changes")
)

// Manager tracks the open documents of one editor instance. Documents
// are keyed by their uuid; a path maps to at most one open document.
type Manager struct {
	mu       sync.RWMutex
	docs     map[uuid.UUID]*Document
	byPath   map[string]uuid.UUID
	bufOpts  []buffer.Option
	execOpts []command.ExecutorOption
}

// NewManager creates a manager. The given options are applied to every
// buffer and executor it creates.
func NewManager(bufOpts []buffer.Option, execOpts ...command.ExecutorOption) *Manager {
	return &Manager{
		docs:     make(map[uuid.UUID]*Document),
		byPath:   make(map[string]uuid.UUID),
		bufOpts:  bufOpts,
		execOpts: execOpts,
	}
}

// NewUntitled opens a new empty document.
func (m *Manager) NewUntitled() *Document {
	d := New(m.bufOpts, m.execOpts...)
	m.mu.Lock()
	m.docs[d.ID()] = d
	m.mu.Unlock()
	return d
}

// Open loads path into a new document, or returns the already-open
// document for that path.
func (m *Manager) Open(ctx context.Context, path string) (*Document, error) {
	m.mu.RLock()
	if id, ok := m.byPath[path]; ok {
		d := m.docs[id]
		m.mu.RUnlock()
		return d, nil
	}
	m.mu.RUnlock()

	d, err := Open(ctx, path, m.bufOpts, m.execOpts...)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.docs[d.ID()] = d
	m.byPath[path] = d.ID()
	m.mu.Unlock()
	return d, nil
}

// Get returns the document with the given id.
func (m *Manager) Get(id uuid.UUID) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

// List returns all open documents in no particular order.
func (m *Manager) List() []*Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Document, 0, len(m.docs))
	for _, d := range m.docs {
		out = append(out, d)
	}
	return out
}

// Close removes a document. A dirty document is refused with
// ErrDirtyClose unless force is set; callers save first or force.
func (m *Manager) Close(id uuid.UUID, force bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[id]
	if !ok {
		return ErrNotFound
	}
	if d.IsDirty() && !force {
		return ErrDirtyClose
	}
	delete(m.docs, id)
	if p := d.Path(); p != "" {
		delete(m.byPath, p)
	}
	return nil
}

// Count returns the number of open documents.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}
