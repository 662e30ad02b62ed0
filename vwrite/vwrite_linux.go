//go:build linux

package vwrite

import (
	"errors"
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

func bufAddr(buf []byte) uintptr {
	return uintptr(unsafe.Pointer(&buf[0]))
}

// pwritev issues one vectored positional write. The kernel may write fewer
// bytes than requested; the loop advances the iovec list until done.
func pwritev(f *os.File, bufs [][]byte, off int64) (int, error) {
	remaining := make([][]byte, 0, len(bufs))
	for _, buf := range bufs {
		if len(buf) > 0 {
			remaining = append(remaining, buf)
		}
	}
	total := 0
	for len(remaining) > 0 {
		n, err := unix.Pwritev(int(f.Fd()), remaining, off+int64(total))
		if err != nil {
			return total, classifyErrno(err)
		}
		if n == 0 {
			return total, fmt.Errorf("%w: zero-length write", ErrUnexpected)
		}
		total += n
		for n > 0 && len(remaining) > 0 {
			if n >= len(remaining[0]) {
				n -= len(remaining[0])
				remaining = remaining[1:]
				continue
			}
			remaining[0] = remaining[0][n:]
			n = 0
		}
	}
	return total, nil
}

func classifyErrno(err error) error {
	var errno unix.Errno
	if !errors.As(err, &errno) {
		return classifyOS(err)
	}
	var sentinel error
	switch errno {
	case unix.ENOENT:
		sentinel = ErrNotFound
	case unix.EACCES, unix.EPERM:
		sentinel = ErrAccessDenied
	case unix.EINVAL, unix.EBADF:
		sentinel = ErrInvalidArgument
	case unix.ENOMEM:
		sentinel = ErrOutOfMemory
	case unix.ECANCELED, unix.EINTR:
		sentinel = ErrOperationAborted
	case unix.EBUSY, unix.EAGAIN:
		sentinel = ErrDeviceBusy
	case unix.EPIPE, unix.ECONNRESET:
		sentinel = ErrBrokenPipe
	case unix.ENOSPC, unix.EDQUOT:
		sentinel = ErrDiskFull
	default:
		sentinel = ErrUnexpected
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}
