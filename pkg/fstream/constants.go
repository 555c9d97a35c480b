package fstream

// --- Buffering ---

const (
	// BufferCapacity is the fixed capacity of the write buffer. Small
	// writes accumulate up to this many bytes before one platform write
	// call is issued.
	BufferCapacity = 4096
)

// --- Limits ---

const (
	// MaxWriteSize is the ceiling on the cumulative write offset (1 GB).
	// A write that would make the logical offset reach or exceed it fails
	// with ErrSizeLimit. The ceiling is a fixed constant, independent of
	// available storage.
	MaxWriteSize = 1_000_000_000
)

// --- Operation names recorded in StreamError.Op ---

const (
	// OpOpen is the operation name for open failures.
	OpOpen = "open"
	// OpRead is the operation name for read failures.
	OpRead = "read"
	// OpWrite is the operation name for write failures.
	OpWrite = "write"
	// OpFlush is the operation name for flush failures.
	OpFlush = "flush"
	// OpSeek is the operation name for seek failures.
	OpSeek = "seek"
	// OpSync is the operation name for sync failures during close.
	OpSync = "sync"
	// OpClose is the operation name for close failures.
	OpClose = "close"
)
