//go:build unix

package handle

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// unixHandle is the descriptor-based implementation used on POSIX systems.
type unixHandle struct {
	fd     int
	closed bool
}

// Open opens path with the native I/O model of the current platform. On
// success it returns the handle together with the on-disk size queried at
// open time. Files created in a writable mode get permission 0600.
func Open(path string, mode Mode, truncate bool) (Handle, uint64, error) {
	flags, err := openFlags(mode, truncate)
	if err != nil {
		return nil, 0, err
	}

	fd, err := unix.Open(path, flags, createPerm)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open file: %s", describe(err))
	}

	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		// The fd must not leak when the size query fails.
		_ = unix.Close(fd)
		return nil, 0, fmt.Errorf("failed to get the file size: %s", describe(err))
	}

	return &unixHandle{fd: fd}, uint64(st.Size), nil
}

func (h *unixHandle) Read(p []byte) (int, error) {
	if h.closed {
		return 0, errHandleClosed
	}
	n, err := unix.Read(h.fd, p)
	if err != nil {
		return 0, fmt.Errorf("failed to read from file: %s", describe(err))
	}
	return n, nil
}

func (h *unixHandle) Write(p []byte) (int, error) {
	if h.closed {
		return 0, errHandleClosed
	}
	n, err := unix.Write(h.fd, p)
	if err != nil {
		return 0, fmt.Errorf("failed to write data to file: %s", describe(err))
	}
	return n, nil
}

func (h *unixHandle) Seek(position uint64) error {
	if h.closed {
		return errHandleClosed
	}
	if _, err := unix.Seek(h.fd, int64(position), unix.SEEK_SET); err != nil {
		return fmt.Errorf("failed to seek to position %d: %s", position, describe(err))
	}
	return nil
}

func (h *unixHandle) Sync() error {
	if h.closed {
		return errHandleClosed
	}
	if err := unix.Fsync(h.fd); err != nil {
		return fmt.Errorf("failed to sync file: %s", describe(err))
	}
	return nil
}

func (h *unixHandle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	if err := unix.Close(h.fd); err != nil {
		return fmt.Errorf("failed to close file: %s", describe(err))
	}
	return nil
}
