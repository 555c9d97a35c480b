package handle

import (
	"errors"
	"io/fs"
	"syscall"
)

// describe returns a human-readable description of a native I/O failure,
// unwrapping down to the platform errno when one is present.
func describe(err error) string {
	if err == nil {
		return ""
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno.Error()
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}
