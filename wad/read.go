package wad

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aidantambling/Fuse-Wad-Explorer/pkg/types"
)

// ReadContents copies lump bytes of the file at p, starting off bytes into
// the lump, into dst. Reads past the end of the lump return 0 and no error.
// A truncated archive yields fewer bytes.
func (a *Archive) ReadContents(p string, dst []byte, off int64) (int, error) {
	if err := a.refresh(); err != nil {
		return 0, err
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	id, err := a.lookupLocked(p)
	if err != nil {
		return 0, err
	}
	n := a.st.nodes[id]
	if n.kind != types.StandardFile {
		return 0, fmt.Errorf("%s: %w", p, types.ErrNotContent)
	}
	if off < 0 {
		return 0, fmt.Errorf("%s: %d: %w", p, off, types.ErrInvalidOffset)
	}

	avail := int64(n.size) - off
	if avail <= 0 || len(dst) == 0 {
		return 0, nil
	}
	want := min(int64(len(dst)), avail)

	f, err := os.Open(a.path)
	if err != nil {
		a.log.Error("open for read failed", "path", a.path, "error", err)
		return 0, fmt.Errorf("%s: %w: %w", p, types.ErrIO, err)
	}
	defer f.Close()
	unlock, err := lockFile(f, false)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %w", p, types.ErrIO, err)
	}
	defer unlock()

	got, err := f.ReadAt(dst[:want], int64(n.offset)+off)
	if err != nil && !errors.Is(err, io.EOF) {
		a.log.Error("read failed", "path", p, "error", err)
		return got, fmt.Errorf("%s: %w: %w", p, types.ErrIO, err)
	}
	return got, nil
}
