//go:build !linux

package vwrite

import (
	"os"
	"unsafe"
)

func bufAddr(buf []byte) uintptr {
	return uintptr(unsafe.Pointer(&buf[0]))
}

// pwritev falls back to one positional write per buffer on platforms without
// a vectored positional write syscall.
func pwritev(f *os.File, bufs [][]byte, off int64) (int, error) {
	total := 0
	for _, buf := range bufs {
		if len(buf) == 0 {
			continue
		}
		n, err := f.WriteAt(buf, off+int64(total))
		total += n
		if err != nil {
			return total, classifyOS(err)
		}
	}
	return total, nil
}
