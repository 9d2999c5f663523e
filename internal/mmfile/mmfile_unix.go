//go:build unix

package mmfile

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Open maps the file at path read-only.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() // the mapping outlives the descriptor

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	if size == 0 {
		return &Mapping{data: []byte{}}, nil
	}
	if size > int64(^uint(0)>>1) {
		return nil, fmt.Errorf("mmfile: %s too large to map (%d bytes)", path, size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmfile: mmap %s: %w", path, err)
	}
	return &Mapping{data: data, unmap: unix.Munmap}, nil
}
