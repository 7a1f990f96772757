package filestore

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
)

// DefaultMaxFileSize bounds the files the store will load.
const DefaultMaxFileSize = 10 * 1024 * 1024 // 10MB

// Store performs document file I/O against the local file system. It
// implements the buffer's FileIO contract: plain UTF-8 text in and
// out, with size and binary checks on load and atomic writes on save.
type Store struct {
	maxFileSize int64
}

// Option configures a Store.
type Option func(*Store)

// WithMaxFileSize sets the maximum file size the store will load.
// Zero means unlimited.
func WithMaxFileSize(size int64) Option {
	return func(s *Store) {
		s.maxFileSize = size
	}
}

// NewStore creates a file store.
func NewStore(opts ...Option) *Store {
	s := &Store{maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the file at path and returns its content as text.
// Directories, oversized files, and binary content are refused with a
// PathError wrapping the specific kind.
func (s *Store) Load(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", NewPathError("load", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", NewPathError("load", path, err)
	}
	if info.IsDir() {
		return "", NewPathError("load", path, ErrIsDirectory)
	}
	if s.maxFileSize > 0 && info.Size() > s.maxFileSize {
		return "", NewPathError("load", path, ErrFileTooLarge)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", NewPathError("load", path, err)
	}
	if isBinary(content) {
		return "", NewPathError("load", path, ErrBinaryFile)
	}
	return string(content), nil
}

// Save writes text to path atomically: the content goes to a temp file
// in the same directory which is then renamed over the target, so a
// crashed save never leaves a truncated file.
func (s *Store) Save(ctx context.Context, path string, text string) error {
	if err := ctx.Err(); err != nil {
		return NewPathError("save", path, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".edit-*")
	if err != nil {
		return NewPathError("save", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return NewPathError("save", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return NewPathError("save", path, err)
	}

	// carry over the target's permissions when it exists
	if info, err := os.Stat(path); err == nil {
		os.Chmod(tmpName, info.Mode().Perm())
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return NewPathError("save", path, err)
	}
	return nil
}

// isBinary reports whether content looks like binary data: a null byte
// or a high share of control chars in the first 8KB.
func isBinary(content []byte) bool {
	if len(content) == 0 {
		return false
	}

	checkLen := len(content)
	if checkLen > 8192 {
		checkLen = 8192
	}
	sample := content[:checkLen]

	if bytes.Contains(sample, []byte{0}) {
		return true
	}

	nonText := 0
	for _, b := range sample {
		if b < 32 && b != '\t' && b != '\n' && b != '\r' {
			nonText++
		}
	}
	return nonText*10 > len(sample)
}
