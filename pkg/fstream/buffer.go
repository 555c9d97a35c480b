package fstream

// WriteBuffer coalesces small writes into larger platform write calls. It
// is a fixed-capacity byte arena plus an index marking the write boundary.
// Resetting moves the index back to the start without clearing memory;
// stale bytes beyond the index are never read.
//
// The zero value is ready to use. All operations are pure memory
// operations and cannot fail.
type WriteBuffer struct {
	data [BufferCapacity]byte
	pos  int
}

// Write copies min(len(p), remaining capacity) bytes from p starting at
// the write boundary and returns the count actually accepted. The caller
// must handle a short count, typically by flushing and retrying the
// remainder.
func (b *WriteBuffer) Write(p []byte) int {
	n := copy(b.data[b.pos:], p)
	b.pos += n
	return n
}

// Len returns the number of bytes currently buffered.
func (b *WriteBuffer) Len() int {
	return b.pos
}

// Cap returns the fixed buffer capacity.
func (b *WriteBuffer) Cap() int {
	return len(b.data)
}

// HasData reports whether any bytes are buffered.
func (b *WriteBuffer) HasData() bool {
	return b.pos > 0
}

// Reset moves the write boundary back to the start. The buffered content
// is not cleared and is invalid until overwritten.
func (b *WriteBuffer) Reset() {
	b.pos = 0
}

// Bytes returns the buffered prefix. The slice is only valid until the
// next Write or Reset.
func (b *WriteBuffer) Bytes() []byte {
	return b.data[:b.pos]
}
