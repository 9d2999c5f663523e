//go:build unix

package wad

import (
	"os"

	"golang.org/x/sys/unix"
)

// lockFile takes an advisory flock on f, shared or exclusive. The returned
// func releases it.
func lockFile(f *os.File, exclusive bool) (func(), error) {
	how := unix.LOCK_SH
	if exclusive {
		how = unix.LOCK_EX
	}
	fd := int(f.Fd())
	for {
		err := unix.Flock(fd, how)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return func() {}, err
		}
		break
	}
	return func() { _ = unix.Flock(fd, unix.LOCK_UN) }, nil
}

// syncData flushes file data without forcing a metadata update.
func syncData(f *os.File) error {
	return unix.Fdatasync(int(f.Fd()))
}
