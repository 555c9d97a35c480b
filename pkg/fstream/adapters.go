package fstream

import "io"

// Reader returns an io.Reader view of the stream so generic consumers
// (io.Copy, typed binary readers) can layer on top. Stream.Read reports
// end of stream as a 0-byte result without error; the adapter maps that to
// io.EOF as the io.Reader contract requires.
func (s *Stream) Reader() io.Reader {
	return streamReader{s}
}

// Writer returns an io.Writer view of the stream. Stream.Write may return
// a partial count without error when a flush drains short; the adapter
// surfaces that as io.ErrShortWrite per the io.Writer contract.
func (s *Stream) Writer() io.Writer {
	return streamWriter{s}
}

type streamReader struct {
	s *Stream
}

func (r streamReader) Read(p []byte) (int, error) {
	n, err := r.s.Read(p)
	if err != nil {
		return n, err
	}
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

type streamWriter struct {
	s *Stream
}

func (w streamWriter) Write(p []byte) (int, error) {
	n, err := w.s.Write(p)
	if err != nil {
		return n, err
	}
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}
