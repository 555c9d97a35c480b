// Package fstream provides a buffered, seekable binary file stream over
// one native file resource. Small writes coalesce in a fixed 4 KiB buffer
// before reaching the platform; offset and logical size are tracked by the
// stream itself, since buffering defers their visibility to the OS.
//
// The model is synchronous and blocking. A Stream is not safe for
// concurrent use; callers needing shared access must serialize externally.
package fstream

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/fstream/pkg/fstream/handle"
)

// Mode selects which operations a stream permits. Fixed at open time.
type Mode = handle.Mode

const (
	// Read opens an existing file for reading only.
	Read = handle.Read
	// Write opens (creating if needed) a file for writing only.
	Write = handle.Write
	// ReadWrite opens (creating if needed) a file for both.
	ReadWrite = handle.ReadWrite
)

// Handle is the platform file resource a stream drives. See the handle
// package for the OS-backed and in-memory implementations.
type Handle = handle.Handle

// Stream is a buffered, seekable binary file stream. Copies of a *Stream
// share one underlying state: offset, size, buffer and resource are per
// open file, not per reference, and the resource is closed exactly once.
type Stream struct {
	fs *streamState
}

// streamState is the single shared state behind all copies of a Stream.
type streamState struct {
	mode     Mode
	filePath string
	name     string

	// fileSize is the logical size, which may exceed the on-disk size
	// until buffered writes are flushed. currentOffset is the logical
	// position; reads are clamped so it never passes fileSize, while
	// writes and seeks may grow fileSize to match it.
	fileSize      uint64
	currentOffset uint64

	buf    WriteBuffer
	handle Handle
	closed bool

	log zerolog.Logger
}

// Open opens path in the given mode using the platform backend. Existing
// content is kept; use OpenFile to truncate.
func Open(path string, mode Mode) (*Stream, error) {
	return OpenFile(path, false, mode)
}

// OpenFile opens path in the given mode, truncating existing content when
// truncate is true and the mode permits writing. Truncation is never
// applied to read-only opens. The underlying resource is acquired here and
// released by Close; a failed open leaves nothing behind.
func OpenFile(path string, truncate bool, mode Mode) (*Stream, error) {
	path = NormalizePath(path)
	h, size, err := handle.Open(path, mode, truncate)
	if err != nil {
		return nil, newStreamError(OpOpen, path, err)
	}
	return New(h, size, path, mode), nil
}

// New wraps an already-open handle in a stream. size must be the
// resource's size at open time. The stream takes ownership of h and will
// close it. Use this to drive custom backends such as handle.Backend.
func New(h Handle, size uint64, path string, mode Mode) *Stream {
	return &Stream{fs: &streamState{
		mode:     mode,
		filePath: path,
		name:     DisplayName(path),
		fileSize: size,
		handle:   h,
		log:      zerolog.Nop(),
	}}
}

// WithLogger attaches a logger used on teardown paths. The default logger
// is disabled.
func (s *Stream) WithLogger(log zerolog.Logger) *Stream {
	s.fs.log = log
	return s
}

// Read fills p from the current offset and advances it by the bytes read.
// The request is clamped so the offset never passes the logical size: a
// read at or beyond the end returns 0 bytes and no error. Short reads are
// not errors either; only platform failures are.
func (s *Stream) Read(p []byte) (int, error) {
	fs := s.fs
	if fs.closed {
		return 0, newStreamError(OpRead, fs.filePath, ErrClosed)
	}
	if !fs.mode.CanRead() {
		return 0, newStreamError(OpRead, fs.filePath, ErrNotReadable)
	}

	// Clamp without underflow: a seek may have pushed the offset past the
	// logical size, in which case nothing remains.
	var remaining uint64
	if fs.fileSize > fs.currentOffset {
		remaining = fs.fileSize - fs.currentOffset
	}
	if uint64(len(p)) > remaining {
		p = p[:remaining]
	}
	if len(p) == 0 {
		return 0, nil
	}

	n, err := fs.handle.Read(p)
	if err != nil {
		return 0, newStreamError(OpRead, fs.filePath, err)
	}
	fs.currentOffset += uint64(n)
	return n, nil
}

// Write buffers p and advances the offset, flushing to the platform
// whenever the buffer fills. It either commits all of p or stops early:
// a platform failure surfaces as an error alongside the count already
// committed, and a flush that drains less than was pending returns that
// partial count without error. Bytes flushed before the failure stay
// committed; only the unflushed remainder is lost.
//
// A write that would make the cumulative offset reach or exceed
// MaxWriteSize fails as a whole, leaving offset, size and buffer
// untouched.
func (s *Stream) Write(p []byte) (int, error) {
	fs := s.fs
	if fs.closed {
		return 0, newStreamError(OpWrite, fs.filePath, ErrClosed)
	}
	if !fs.mode.CanWrite() {
		return 0, newStreamError(OpWrite, fs.filePath, ErrNotWritable)
	}
	if fs.currentOffset+uint64(len(p)) >= MaxWriteSize {
		return 0, newStreamError(OpWrite, fs.filePath, ErrSizeLimit)
	}

	accepted := 0
	for {
		accepted += fs.buf.Write(p[accepted:])
		if accepted == len(p) {
			break
		}

		// The buffer is full and p has a remainder: drain before going on.
		pending := fs.buf.Len()
		flushed, err := fs.flushBuffer()
		if err != nil {
			committed := accepted - min(pending, accepted)
			fs.advance(committed)
			return committed, newStreamError(OpWrite, fs.filePath, err)
		}
		if flushed < pending {
			// Short drain. The undrained tail is the most recently
			// buffered data, so the loss comes out of this call's bytes.
			lost := pending - flushed
			committed := accepted - min(lost, accepted)
			fs.advance(committed)
			return committed, nil
		}
	}

	fs.advance(accepted)
	return accepted, nil
}

// Flush writes any buffered bytes to the platform and resets the buffer,
// returning the count flushed. It is a no-op returning 0 when nothing is
// buffered or the mode forbids writing.
func (s *Stream) Flush() (int, error) {
	fs := s.fs
	if fs.closed {
		return 0, newStreamError(OpFlush, fs.filePath, ErrClosed)
	}
	n, err := fs.flushBuffer()
	if err != nil {
		return 0, newStreamError(OpFlush, fs.filePath, err)
	}
	return n, nil
}

// Seek flushes pending writes, then repositions the stream to an absolute
// offset. Seeking past the logical size grows it to the new position
// (sparse extend). Seek is permitted in every mode; the mode check applies
// at the read and write call sites.
func (s *Stream) Seek(position uint64) error {
	fs := s.fs
	if fs.closed {
		return newStreamError(OpSeek, fs.filePath, ErrClosed)
	}

	// Pending bytes must land at the offset they were written at, not at
	// the seek target.
	if _, err := fs.flushBuffer(); err != nil {
		return newStreamError(OpSeek, fs.filePath, err)
	}
	if err := fs.handle.Seek(position); err != nil {
		return newStreamError(OpSeek, fs.filePath, err)
	}

	fs.currentOffset = position
	if fs.currentOffset > fs.fileSize {
		fs.fileSize = fs.currentOffset
	}
	return nil
}

// Close flushes pending writes, syncs when the mode allowed writing, and
// releases the underlying resource. It is idempotent: closing an already
// closed stream is a no-op. A flush failure takes precedence over
// sync/close failures, which are logged and reported only when nothing
// earlier failed.
func (s *Stream) Close() error {
	fs := s.fs
	if fs.closed {
		return nil
	}

	var firstErr error
	if _, err := fs.flushBuffer(); err != nil {
		firstErr = newStreamError(OpFlush, fs.filePath, err)
	}

	if fs.mode.CanWrite() {
		if err := fs.handle.Sync(); err != nil {
			fs.log.Warn().Err(err).Str("path", fs.filePath).Msg("sync failed during close")
			if firstErr == nil {
				firstErr = newStreamError(OpSync, fs.filePath, err)
			}
		}
	}

	if err := fs.handle.Close(); err != nil {
		fs.log.Warn().Err(err).Str("path", fs.filePath).Msg("close failed")
		if firstErr == nil {
			firstErr = newStreamError(OpClose, fs.filePath, err)
		}
	}

	fs.closed = true
	return firstErr
}

// Size returns the logical file size, which counts buffered writes not
// yet on disk.
func (s *Stream) Size() uint64 {
	return s.fs.fileSize
}

// Tell returns the current logical offset.
func (s *Stream) Tell() uint64 {
	return s.fs.currentOffset
}

// CanRead reports whether the stream's mode permits reading.
func (s *Stream) CanRead() bool {
	return s.fs.mode.CanRead()
}

// CanWrite reports whether the stream's mode permits writing.
func (s *Stream) CanWrite() bool {
	return s.fs.mode.CanWrite()
}

// Mode returns the mode the stream was opened with.
func (s *Stream) Mode() Mode {
	return s.fs.mode
}

// Name returns the stream's display name, the final path segment.
func (s *Stream) Name() string {
	return s.fs.name
}

// Path returns the normalized path the stream was opened with.
func (s *Stream) Path() string {
	return s.fs.filePath
}

// flushBuffer drains the write buffer to the handle when the mode allows
// writing and data is pending, returning the bytes the handle took. The
// buffer is reset only after a successful platform write.
func (fs *streamState) flushBuffer() (int, error) {
	if !fs.mode.CanWrite() || !fs.buf.HasData() {
		return 0, nil
	}
	n, err := fs.handle.Write(fs.buf.Bytes())
	if err != nil {
		return 0, err
	}
	fs.buf.Reset()
	return n, nil
}

// advance moves the logical offset forward by n committed bytes, growing
// the logical size when the offset passes it.
func (fs *streamState) advance(n int) {
	fs.currentOffset += uint64(n)
	if fs.currentOffset > fs.fileSize {
		fs.fileSize = fs.currentOffset
	}
}
