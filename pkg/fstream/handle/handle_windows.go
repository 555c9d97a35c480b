//go:build windows

package handle

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// windowsHandle is the HANDLE-based implementation used on Windows.
type windowsHandle struct {
	h      windows.Handle
	closed bool
}

// Open opens path with the native I/O model of the current platform. On
// success it returns the handle together with the on-disk size queried at
// open time.
func Open(path string, mode Mode, truncate bool) (Handle, uint64, error) {
	var access uint32
	switch mode {
	case Read:
		access = windows.GENERIC_READ
	case Write:
		access = windows.GENERIC_WRITE
	case ReadWrite:
		access = windows.GENERIC_READ | windows.GENERIC_WRITE
	default:
		return nil, 0, ErrInvalidMode
	}

	// Read opens only existing files; writable modes create on demand, and
	// truncation maps to CREATE_ALWAYS.
	disposition := uint32(windows.OPEN_ALWAYS)
	switch {
	case mode == Read:
		disposition = windows.OPEN_EXISTING
	case truncate:
		disposition = windows.CREATE_ALWAYS
	}

	wpath, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open file: %s", describe(err))
	}

	h, err := windows.CreateFile(
		wpath,
		access,
		windows.FILE_SHARE_READ,
		nil,
		disposition,
		windows.FILE_ATTRIBUTE_NORMAL,
		0,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open file: %s", describe(err))
	}

	var size int64
	if err := windows.GetFileSizeEx(h, &size); err != nil {
		// The handle must not leak when the size query fails.
		_ = windows.CloseHandle(h)
		return nil, 0, fmt.Errorf("failed to get the file size: %s", describe(err))
	}

	return &windowsHandle{h: h}, uint64(size), nil
}

func (h *windowsHandle) Read(p []byte) (int, error) {
	if h.closed {
		return 0, errHandleClosed
	}
	var done uint32
	if err := windows.ReadFile(h.h, p, &done, nil); err != nil {
		return 0, fmt.Errorf("failed to read from file: %s", describe(err))
	}
	return int(done), nil
}

func (h *windowsHandle) Write(p []byte) (int, error) {
	if h.closed {
		return 0, errHandleClosed
	}
	var done uint32
	if err := windows.WriteFile(h.h, p, &done, nil); err != nil {
		return 0, fmt.Errorf("failed to write data to file: %s", describe(err))
	}
	return int(done), nil
}

func (h *windowsHandle) Seek(position uint64) error {
	if h.closed {
		return errHandleClosed
	}
	if _, err := windows.Seek(h.h, int64(position), windows.FILE_BEGIN); err != nil {
		return fmt.Errorf("failed to seek to position %d: %s", position, describe(err))
	}
	return nil
}

func (h *windowsHandle) Sync() error {
	if h.closed {
		return errHandleClosed
	}
	if err := windows.FlushFileBuffers(h.h); err != nil {
		return fmt.Errorf("failed to sync file: %s", describe(err))
	}
	return nil
}

func (h *windowsHandle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	if err := windows.CloseHandle(h.h); err != nil {
		return fmt.Errorf("failed to close file: %s", describe(err))
	}
	return nil
}
