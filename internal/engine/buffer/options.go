package buffer

// Defaults for buffer configuration.
const (
	DefaultTabWidth   = 4
	DefaultMaxHistory = 1000
)

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithTabWidth sets the buffer's tab width.
func WithTabWidth(width int) Option {
	return func(b *Buffer) {
		if width > 0 {
			b.tabWidth = width
		}
	}
}

// WithSoftTabs controls whether InsertTab writes spaces instead of a
// tab character.
func WithSoftTabs(soft bool) Option {
	return func(b *Buffer) {
		b.softTabs = soft
	}
}

// WithMaxHistory bounds the undo stack. Oldest entries are evicted
// once the bound is exceeded.
func WithMaxHistory(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.hist.maxEntries = n
		}
	}
}

// WithPath associates a file path with the buffer. An empty path means
// the buffer is unsaved/new.
func WithPath(path string) Option {
	return func(b *Buffer) {
		b.path = path
	}
}

// WithFileIO sets the collaborator used by Load, Save, and SaveAs.
func WithFileIO(io FileIO) Option {
	return func(b *Buffer) {
		b.fileIO = io
	}
}
