package fstream_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/fstream/pkg/fstream"
	"github.com/arthur-debert/fstream/pkg/fstream/handle"
)

// recordingHandle is an in-memory Handle that counts platform calls and
// records the bytes it accepted, for observing buffering behavior.
type recordingHandle struct {
	data   []byte
	reads  int
	writes int
	seeks  int

	writeLimit int   // accept at most this many bytes per call when > 0
	writeErr   error // returned by Write when set
	syncErr    error // returned by Sync when set
	closeErr   error // returned by Close when set
}

func (h *recordingHandle) Read(p []byte) (int, error) {
	h.reads++
	return 0, nil
}

func (h *recordingHandle) Write(p []byte) (int, error) {
	h.writes++
	if h.writeErr != nil {
		return 0, h.writeErr
	}
	n := len(p)
	if h.writeLimit > 0 && n > h.writeLimit {
		n = h.writeLimit
	}
	h.data = append(h.data, p[:n]...)
	return n, nil
}

func (h *recordingHandle) Seek(position uint64) error {
	h.seeks++
	return nil
}

func (h *recordingHandle) Sync() error  { return h.syncErr }
func (h *recordingHandle) Close() error { return h.closeErr }

func TestWriteCoalescing(t *testing.T) {
	r := require.New(t)

	h := &recordingHandle{}
	s := fstream.New(h, 0, "mem/coalesce.bin", fstream.Write)

	// Four writes summing to less than the buffer capacity reach the
	// platform as zero write calls until flushed.
	payload := make([]byte, 0, 4000)
	for i := 0; i < 4; i++ {
		chunk := make([]byte, 1000)
		for j := range chunk {
			chunk[j] = byte(i)
		}
		n, err := s.Write(chunk)
		r.NoError(err)
		r.Equal(1000, n)
		payload = append(payload, chunk...)
	}
	r.Equal(0, h.writes)
	r.Equal(uint64(4000), s.Tell())
	r.Equal(uint64(4000), s.Size())

	flushed, err := s.Flush()
	r.NoError(err)
	r.Equal(4000, flushed)
	r.Equal(1, h.writes)
	r.Equal(payload, h.data)
}

func TestWriteExceedingCapacityFlushesMidCall(t *testing.T) {
	r := require.New(t)

	h := &recordingHandle{}
	s := fstream.New(h, 0, "mem/big.bin", fstream.Write)

	n, err := s.Write(make([]byte, 5000))
	r.NoError(err)
	r.Equal(5000, n)

	// One flush happened mid-call for the first 4096 bytes; the 904-byte
	// tail is still buffered.
	r.Equal(1, h.writes)
	r.Len(h.data, 4096)
	r.Equal(uint64(5000), s.Tell())

	flushed, err := s.Flush()
	r.NoError(err)
	r.Equal(904, flushed)
	r.Len(h.data, 5000)
}

func TestWriteSizeLimit(t *testing.T) {
	r := require.New(t)

	h := &recordingHandle{}
	s := fstream.New(h, 0, "mem/limit.bin", fstream.Write)

	r.NoError(s.Seek(fstream.MaxWriteSize - 10))

	// Reaching the ceiling rejects the whole call and leaves all state
	// untouched.
	n, err := s.Write(make([]byte, 20))
	r.ErrorIs(err, fstream.ErrSizeLimit)
	r.Equal(0, n)
	r.Equal(uint64(fstream.MaxWriteSize-10), s.Tell())
	r.Equal(uint64(fstream.MaxWriteSize-10), s.Size())
	r.Equal(0, h.writes)

	// One byte below the ceiling still fits.
	n, err = s.Write(make([]byte, 9))
	r.NoError(err)
	r.Equal(9, n)
	r.Equal(uint64(fstream.MaxWriteSize-1), s.Tell())

	// Landing exactly on the ceiling does not.
	_, err = s.Write(make([]byte, 1))
	r.ErrorIs(err, fstream.ErrSizeLimit)
}

func TestWritePartialFlushCommitsDrainedPrefix(t *testing.T) {
	r := require.New(t)

	h := &recordingHandle{writeLimit: 1000}
	s := fstream.New(h, 0, "mem/partial.bin", fstream.Write)

	payload := make([]byte, 5000)
	for i := range payload {
		payload[i] = byte(i % 251)
	}

	// The mid-call flush drains only 1000 of the 4096 pending bytes; the
	// call stops early. Bytes that reached the handle stay committed, the
	// undrained remainder is lost.
	n, err := s.Write(payload)
	r.NoError(err)
	r.Equal(1000, n)
	r.Equal(payload[:1000], h.data)
	r.Equal(uint64(1000), s.Tell())
	r.Equal(uint64(1000), s.Size())

	// The buffer was reset by the flush; nothing further is pending.
	flushed, err := s.Flush()
	r.NoError(err)
	r.Equal(0, flushed)
}

func TestWriteFlushFailure(t *testing.T) {
	r := require.New(t)

	cause := errors.New("device is out of space")
	h := &recordingHandle{writeErr: cause}
	s := fstream.New(h, 0, "mem/fail.bin", fstream.Write)

	n, err := s.Write(make([]byte, 5000))
	r.Equal(0, n)
	r.Error(err)

	var serr *fstream.StreamError
	r.ErrorAs(err, &serr)
	r.Equal(fstream.OpWrite, serr.Op)
	r.ErrorIs(err, cause)

	// Nothing was committed.
	r.Equal(uint64(0), s.Tell())
	r.Equal(uint64(0), s.Size())
}

func TestFlushFailure(t *testing.T) {
	r := require.New(t)

	h := &recordingHandle{}
	s := fstream.New(h, 0, "mem/flushfail.bin", fstream.Write)

	_, err := s.Write(make([]byte, 100))
	r.NoError(err)

	h.writeErr = errors.New("input/output error")
	_, err = s.Flush()

	var serr *fstream.StreamError
	r.ErrorAs(err, &serr)
	r.Equal(fstream.OpFlush, serr.Op)
}

func TestCloseErrorPrecedence(t *testing.T) {
	t.Run("flush failure wins over sync failure", func(t *testing.T) {
		r := require.New(t)

		h := &recordingHandle{
			writeErr: errors.New("write failed"),
			syncErr:  errors.New("sync failed"),
		}
		s := fstream.New(h, 0, "mem/teardown.bin", fstream.Write)
		_, err := s.Write(make([]byte, 10))
		r.NoError(err)

		err = s.Close()
		var serr *fstream.StreamError
		r.ErrorAs(err, &serr)
		r.Equal(fstream.OpFlush, serr.Op)

		// The stream is closed regardless; a second close is a no-op.
		r.NoError(s.Close())
	})

	t.Run("sync failure alone is reported", func(t *testing.T) {
		r := require.New(t)

		h := &recordingHandle{syncErr: errors.New("sync failed")}
		s := fstream.New(h, 0, "mem/sync.bin", fstream.Write)

		err := s.Close()
		var serr *fstream.StreamError
		r.ErrorAs(err, &serr)
		r.Equal(fstream.OpSync, serr.Op)
	})

	t.Run("close failure alone is reported", func(t *testing.T) {
		r := require.New(t)

		h := &recordingHandle{closeErr: errors.New("close failed")}
		s := fstream.New(h, 0, "mem/close.bin", fstream.Read)

		err := s.Close()
		var serr *fstream.StreamError
		r.ErrorAs(err, &serr)
		r.Equal(fstream.OpClose, serr.Op)
	})
}

func TestStreamOverMemoryBackend(t *testing.T) {
	r := require.New(t)

	backend := handle.NewMemoryBackend()

	h, size, err := backend.Open("data.bin", handle.ReadWrite, false)
	r.NoError(err)
	r.Equal(uint64(0), size)

	s := fstream.New(h, size, "data.bin", fstream.ReadWrite)
	_, err = s.Write([]byte("hello world"))
	r.NoError(err)
	r.NoError(s.Seek(0))

	buf := make([]byte, 11)
	n, err := s.Read(buf)
	r.NoError(err)
	r.Equal(11, n)
	r.Equal("hello world", string(buf))
	r.NoError(s.Close())

	// A second handle from the same backend sees the flushed bytes.
	h2, size2, err := backend.Open("data.bin", handle.Read, false)
	r.NoError(err)
	r.Equal(uint64(11), size2)

	s2 := fstream.New(h2, size2, "data.bin", fstream.Read)
	got := make([]byte, 11)
	n, err = s2.Read(got)
	r.NoError(err)
	r.Equal("hello world", string(got[:n]))
	r.NoError(s2.Close())
}
