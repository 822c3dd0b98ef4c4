package wordlist

import (
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// IOError reports a local filesystem failure while reading or writing a
// word-list file.
type IOError struct {
	// Op is the failed operation: "mkdir", "create", "write", "close" or "read".
	Op string

	// Path is the file or directory involved.
	Path string

	// Err is the underlying error.
	Err error
}

// Error implements error.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// newIOError builds an *IOError carrying the stack of its caller.
func newIOError(op, path string, err error) error {
	return goerrors.Wrap(&IOError{Op: op, Path: path, Err: err}, 1)
}
