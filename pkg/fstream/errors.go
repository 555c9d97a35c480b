package fstream

import (
	"errors"
	"fmt"

	"github.com/arthur-debert/fstream/pkg/fstream/handle"
)

// Sentinel errors for conditions callers are expected to branch on with
// errors.Is. Platform failures carry their description in the wrapped
// error's message instead.
var (
	// ErrInvalidMode reports an unrecognized open mode.
	ErrInvalidMode = handle.ErrInvalidMode

	// ErrClosed reports an operation on a closed stream.
	ErrClosed = errors.New("stream is closed")

	// ErrSizeLimit reports a write that would reach or exceed MaxWriteSize.
	ErrSizeLimit = errors.New("maximum file size limit reached")

	// ErrNotReadable reports a read on a stream whose mode forbids reading.
	ErrNotReadable = errors.New("stream is not open for reading")

	// ErrNotWritable reports a write on a stream whose mode forbids writing.
	ErrNotWritable = errors.New("stream is not open for writing")
)

// StreamError wraps a failure of one stream operation with the operation
// name and the file path it was operating on.
type StreamError struct {
	Op   string // one of the Op* constants
	Path string // normalized file path
	Err  error  // underlying cause
}

// Error returns a formatted error message.
func (e *StreamError) Error() string {
	return fmt.Sprintf("fstream: failed to %s '%s': %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *StreamError) Unwrap() error {
	return e.Err
}

func newStreamError(op, path string, err error) *StreamError {
	return &StreamError{Op: op, Path: path, Err: err}
}
