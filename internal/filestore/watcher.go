package filestore

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind classifies an external change to a watched file.
type ChangeKind int

const (
	// Modified means the file content changed on disk.
	Modified ChangeKind = iota
	// Removed means the file was deleted or renamed away.
	Removed
)

// Change is an external modification to a watched file.
type Change struct {
	Path string
	Kind ChangeKind
}

// Watcher reports on-disk changes to open documents, so a caller can
// prompt for reload when a file is modified outside the editor.
// Events are debounced: editors and build tools often emit bursts of
// writes for a single logical change.
type Watcher struct {
	fsw      *fsnotify.Watcher
	changes  chan Change
	errs     chan error
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
	closed  bool
	done    chan struct{}
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the window in which repeated writes to one path
// collapse into a single change event.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// NewWatcher creates a watcher. Callers consume Changes and Errs until
// Close.
func NewWatcher(opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:      fsw,
		changes:  make(chan Change, 64),
		errs:     make(chan error, 8),
		debounce: 50 * time.Millisecond,
		pending:  make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	go w.run()
	return w, nil
}

// Watch starts watching a file path.
func (w *Watcher) Watch(path string) error {
	if err := w.fsw.Add(path); err != nil {
		return NewPathError("watch", path, err)
	}
	return nil
}

// Unwatch stops watching a file path.
func (w *Watcher) Unwatch(path string) error {
	if err := w.fsw.Remove(path); err != nil {
		return NewPathError("unwatch", path, err)
	}
	return nil
}

// Changes returns the debounced change channel.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Errs returns the watcher error channel.
func (w *Watcher) Errs() <-chan error {
	return w.errs
}

// Close stops the watcher and closes its channels.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for _, t := range w.pending {
		t.Stop()
	}
	w.mu.Unlock()

	err := w.fsw.Close()
	<-w.done
	close(w.changes)
	close(w.errs)
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	var kind ChangeKind
	switch {
	case ev.Op&(fsnotify.Write|fsnotify.Create) != 0:
		kind = Modified
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		kind = Removed
	default:
		return
	}
	w.deliverDebounced(Change{Path: ev.Name, Kind: kind})
}

// deliverDebounced delays delivery so write bursts coalesce; a later
// event for the same path resets the timer.
func (w *Watcher) deliverDebounced(c Change) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if t, ok := w.pending[c.Path]; ok {
		t.Stop()
	}
	w.pending[c.Path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, c.Path)
		closed := w.closed
		w.mu.Unlock()
		if closed {
			return
		}
		select {
		case w.changes <- c:
		default:
		}
	})
}
