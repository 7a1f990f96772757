package filestore

import (
	"errors"
	"fmt"
)

// Standard errors returned by the filestore.
var (
	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrFileTooLarge indicates the file exceeds the maximum size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrBinaryFile indicates the file appears to be binary.
	ErrBinaryFile = errors.New("binary file")
)

// PathError associates an I/O failure with the operation and path that
// produced it.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// NewPathError creates a new PathError.
func NewPathError(op, path string, err error) *PathError {
	return &PathError{Op: op, Path: path, Err: err}
}
