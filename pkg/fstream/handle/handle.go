// Package handle abstracts the native file resource behind one capability
// interface so the stream layer never touches platform types. Each target
// platform contributes one implementation, selected by build tags; an
// in-memory backend is available for hermetic use.
package handle

import (
	"errors"
	"os"
)

// Mode selects which operations a handle permits. It is fixed at open time.
type Mode int

const (
	// Read opens an existing file for reading only.
	Read Mode = iota
	// Write opens (creating if needed) a file for writing only.
	Write
	// ReadWrite opens (creating if needed) a file for both.
	ReadWrite
)

// String returns the mode name for error messages and logs.
func (m Mode) String() string {
	switch m {
	case Read:
		return "read"
	case Write:
		return "write"
	case ReadWrite:
		return "read-write"
	default:
		return "invalid"
	}
}

// CanRead reports whether the mode permits read operations.
func (m Mode) CanRead() bool { return m == Read || m == ReadWrite }

// CanWrite reports whether the mode permits write operations.
func (m Mode) CanWrite() bool { return m == Write || m == ReadWrite }

// ErrInvalidMode is returned by Open when the mode value is not one of
// Read, Write or ReadWrite. Flag derivation is total: an unrecognized mode
// is an error, never undefined behavior.
var ErrInvalidMode = errors.New("invalid file open mode")

// createPerm is the permission applied to files this package creates.
const createPerm = 0o600

// Handle owns exactly one native file resource. It is valid from a
// successful Open until Close; afterwards every operation fails with a
// closed-handle error. Close is idempotent.
type Handle interface {
	// Read performs one blocking read at the current position. A short
	// count without error means end of resource, not failure.
	Read(p []byte) (int, error)

	// Write performs one blocking write of p at the current position.
	Write(p []byte) (int, error)

	// Seek repositions the cursor to an absolute byte offset.
	Seek(position uint64) error

	// Sync forces OS-buffered writes to stable storage.
	Sync() error

	// Close releases the resource. Calling it again is a no-op.
	Close() error
}

// errHandleClosed is what operations on a released handle return.
var errHandleClosed = errors.New("handle is closed")

// openFlags derives the portable os.O_* flag set for a mode. Truncation is
// applied only when requested and the mode permits writing.
func openFlags(mode Mode, truncate bool) (int, error) {
	var flags int
	switch mode {
	case Read:
		flags = os.O_RDONLY
	case Write:
		flags = os.O_WRONLY | os.O_CREATE
	case ReadWrite:
		flags = os.O_RDWR | os.O_CREATE
	default:
		return 0, ErrInvalidMode
	}
	if truncate && mode != Read {
		flags |= os.O_TRUNC
	}
	return flags, nil
}
