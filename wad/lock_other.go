//go:build !unix

package wad

import "os"

func lockFile(*os.File, bool) (func(), error) {
	return func() {}, nil
}

func syncData(f *os.File) error {
	return f.Sync()
}
