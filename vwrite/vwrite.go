// Package vwrite writes an ordered list of buffers to a file at an offset in
// a single vectored syscall where the platform has one, falling back to
// sequential positional writes elsewhere. Failures come back as classified
// sentinel errors rather than raw OS errors.
package vwrite

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

var (
	ErrNotFound         = errors.New("vwrite: file not found")
	ErrAccessDenied     = errors.New("vwrite: access denied")
	ErrInvalidArgument  = errors.New("vwrite: invalid argument")
	ErrOutOfMemory      = errors.New("vwrite: out of memory")
	ErrOperationAborted = errors.New("vwrite: operation aborted")
	ErrDeviceBusy       = errors.New("vwrite: device busy")
	ErrBrokenPipe       = errors.New("vwrite: broken pipe")
	ErrDiskFull         = errors.New("vwrite: disk full")
	ErrUnexpected       = errors.New("vwrite: unexpected error")
	ErrBadAlignment     = errors.New("vwrite: buffer not sector aligned")
)

// Pwritev writes bufs to f starting at off and returns the total bytes
// written. A short count with a nil error cannot happen; errors are one of
// the package sentinels, wrapped around the underlying OS error.
func Pwritev(f *os.File, bufs [][]byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("%w: negative offset %d", ErrInvalidArgument, off)
	}
	return pwritev(f, bufs, off)
}

// ValidateAlignment checks every buffer's address and length against the
// device sector size, as direct I/O requires. A violation is reported as
// ErrBadAlignment instead of letting the kernel truncate or reject the write.
func ValidateAlignment(bufs [][]byte, sectorSize int) error {
	if sectorSize <= 0 {
		return fmt.Errorf("%w: sector size %d", ErrInvalidArgument, sectorSize)
	}
	for i, buf := range bufs {
		if len(buf)%sectorSize != 0 {
			return fmt.Errorf("%w: buffer %d length %d", ErrBadAlignment, i, len(buf))
		}
		if len(buf) > 0 && bufAddr(buf)%uintptr(sectorSize) != 0 {
			return fmt.Errorf("%w: buffer %d address", ErrBadAlignment, i)
		}
	}
	return nil
}

// WriteFile creates (or truncates) path and writes bufs at offset zero.
func WriteFile(path string, bufs [][]byte) error {
	f, err := os.Create(path)
	if err != nil {
		return classifyOS(err)
	}
	defer f.Close()
	if _, err := Pwritev(f, bufs, 0); err != nil {
		return err
	}
	return nil
}

// classifyOS maps portable error kinds; platform files refine this with
// errno-level detail.
func classifyOS(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %v", ErrAccessDenied, err)
	case errors.Is(err, fs.ErrInvalid):
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	default:
		return fmt.Errorf("%w: %v", ErrUnexpected, err)
	}
}
