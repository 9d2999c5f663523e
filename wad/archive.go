package wad

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/aidantambling/Fuse-Wad-Explorer/internal/format"
	"github.com/aidantambling/Fuse-Wad-Explorer/internal/mmfile"
	"github.com/aidantambling/Fuse-Wad-Explorer/pkg/types"
)

// Archive is an opened WAD file. The backing file is opened per call; the
// Archive itself only holds the parsed table and tree.
type Archive struct {
	mu     sync.RWMutex
	path   string
	opts   Options
	log    *slog.Logger
	st     *state
	seen   fileStamp // file version st was parsed from
	closed bool
}

// Open parses the archive at path. Any failure to open, map or decode the
// header and descriptor table is reported as types.ErrMalformed.
func Open(path string, opts Options) (*Archive, error) {
	a := &Archive{
		path: path,
		opts: opts,
		log:  opts.logger(),
	}
	st, err := a.loadMapped()
	if err != nil {
		return nil, err
	}
	a.st = st
	a.log.Debug("archive opened",
		"path", path,
		"descriptors", st.header.Count,
		"table", st.header.TableOffset,
	)
	return a, nil
}

// Create writes a new archive with no descriptors at path and opens it.
// The file must not exist.
func Create(path, magic string, opts Options) (*Archive, error) {
	if len(magic) != format.HeaderMagicSize {
		return nil, fmt.Errorf("wad: magic %q must be %d bytes: %w",
			magic, format.HeaderMagicSize, types.ErrInvalidName)
	}
	hdr := format.Header{TableOffset: format.HeaderSize}
	copy(hdr.Magic[:], magic)
	hb, err := hdr.MarshalBinary()
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("wad: create %s: %w: %w", path, types.ErrIO, err)
	}
	if _, err := f.Write(hb); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("wad: create %s: %w: %w", path, types.ErrIO, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("wad: create %s: %w: %w", path, types.ErrIO, err)
	}
	return Open(path, opts)
}

func (a *Archive) loadMapped() (*state, error) {
	// Stamped before mapping: an edit in between only costs a reparse later.
	fi, err := os.Stat(a.path)
	if err != nil {
		return nil, fmt.Errorf("wad: open %s: %w: %w", a.path, types.ErrMalformed, err)
	}
	m, err := mmfile.Open(a.path)
	if err != nil {
		return nil, fmt.Errorf("wad: open %s: %w: %w", a.path, types.ErrMalformed, err)
	}
	defer func() {
		if err := m.Close(); err != nil {
			a.log.Warn("unmap failed", "path", a.path, "error", err)
		}
	}()
	st, err := a.load(m, m.Len())
	if err != nil {
		return nil, err
	}
	a.seen = stampOf(fi)
	return st, nil
}

// fileStamp identifies one version of the file on disk. Every edit grows
// the file, so the size alone tells versions apart; the mtime catches
// rewrites of the same length.
type fileStamp struct {
	size int64
	mod  time.Time
}

func stampOf(fi os.FileInfo) fileStamp { return fileStamp{size: fi.Size(), mod: fi.ModTime()} }

func (s fileStamp) same(o fileStamp) bool { return s.size == o.size && s.mod.Equal(o.mod) }

// refresh reparses the file when it changed on disk since the tree was
// built, so reads see edits made through other handles or processes. The
// common case costs one stat.
func (a *Archive) refresh() error {
	fi, err := os.Stat(a.path)
	if err != nil {
		return nil // the read itself reports a missing file
	}
	a.mu.RLock()
	stale := !a.closed && !a.seen.same(stampOf(fi))
	a.mu.RUnlock()
	if !stale {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	f, err := os.Open(a.path)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrIO, err)
	}
	defer f.Close()
	unlock, err := lockFile(f, false)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrIO, err)
	}
	defer unlock()
	if fi, err = f.Stat(); err != nil {
		return fmt.Errorf("%w: %w", types.ErrIO, err)
	}
	return a.refreshLocked(f, fi)
}

func (a *Archive) load(r io.ReaderAt, size int64) (*state, error) {
	hdr, descs, err := ReadTable(r, size)
	if err != nil {
		return nil, fmt.Errorf("wad: open %s: %w", a.path, err)
	}
	return buildTree(hdr, descs, a.log), nil
}

// Reload discards the tree and parses the file again.
func (a *Archive) Reload() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return errClosed
	}
	st, err := a.loadMapped()
	if err != nil {
		return err
	}
	a.st = st
	return nil
}

// Close releases the tree. Further calls fail with types.ErrIO.
func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	a.st = nil
	return nil
}

var errClosed = fmt.Errorf("%w: %w", types.ErrIO, os.ErrClosed)

// Path returns the backing file path.
func (a *Archive) Path() string { return a.path }

// Magic returns the four header magic bytes as stored.
func (a *Archive) Magic() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return ""
	}
	return string(a.st.header.Magic[:])
}

// Info reports header metadata.
func (a *Archive) Info() (types.ArchiveInfo, error) {
	if err := a.refresh(); err != nil {
		return types.ArchiveInfo{}, err
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return types.ArchiveInfo{}, errClosed
	}
	info := types.ArchiveInfo{
		Path:            a.path,
		Magic:           string(a.st.header.Magic[:]),
		DescriptorCount: a.st.header.Count,
		TableOffset:     a.st.header.TableOffset,
		Nodes:           len(a.st.nodes),
	}
	if fi, err := os.Stat(a.path); err == nil {
		info.FileSize = fi.Size()
	}
	return info, nil
}

// Descriptors returns the descriptor table in file order.
func (a *Archive) Descriptors() []types.Descriptor {
	if err := a.refresh(); err != nil {
		a.log.Warn("refresh failed, using cached table", "path", a.path, "error", err)
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return nil
	}
	out := make([]types.Descriptor, len(a.st.descriptors))
	for i, d := range a.st.descriptors {
		out[i] = types.Descriptor{
			Index:    i,
			Position: a.st.recordPos(i),
			Offset:   d.Offset,
			Length:   d.Length,
			Name:     d.DisplayName(),
		}
	}
	return out
}

func (a *Archive) lookupLocked(p string) (types.NodeID, error) {
	if a.closed {
		return 0, errClosed
	}
	id, ok := a.st.resolve(p, types.RootID)
	if !ok {
		return 0, fmt.Errorf("%s: %w", p, types.ErrNotFound)
	}
	return id, nil
}

// Stat returns the node at p.
func (a *Archive) Stat(p string) (types.NodeInfo, error) {
	if err := a.refresh(); err != nil {
		return types.NodeInfo{}, err
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	id, err := a.lookupLocked(p)
	if err != nil {
		return types.NodeInfo{}, err
	}
	return a.st.info(id), nil
}

// List returns the children of the directory at p in descriptor order.
func (a *Archive) List(p string) ([]types.NodeInfo, error) {
	if err := a.refresh(); err != nil {
		return nil, err
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	id, err := a.lookupLocked(p)
	if err != nil {
		return nil, err
	}
	n := &a.st.nodes[id]
	if !n.kind.IsDir() {
		return nil, fmt.Errorf("%s: %w", p, types.ErrNotDirectory)
	}
	out := make([]types.NodeInfo, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, a.st.info(c))
	}
	return out, nil
}

// WalkFunc is called for every node in pre-order. Returning SkipDir from a
// directory skips its children.
type WalkFunc func(path string, info types.NodeInfo) error

// SkipDir can be returned by a WalkFunc to skip a directory's children.
var SkipDir = errors.New("wad: skip directory")

// Walk visits the tree rooted at root in descriptor order. The archive is
// read-locked for the whole walk, so fn must not call back into it.
func (a *Archive) Walk(root string, fn WalkFunc) error {
	if err := a.refresh(); err != nil {
		return err
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	start, err := a.lookupLocked(root)
	if err != nil {
		return err
	}

	type item struct {
		id   types.NodeID
		path string
	}
	stack := []item{{start, a.st.pathOf(start)}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		err := fn(it.path, a.st.info(it.id))
		if errors.Is(err, SkipDir) {
			continue
		}
		if err != nil {
			return err
		}

		children := a.st.nodes[it.id].children
		for i := len(children) - 1; i >= 0; i-- {
			c := children[i]
			p := it.path + "/" + a.st.nodes[c].name
			if it.path == "/" {
				p = "/" + a.st.nodes[c].name
			}
			stack = append(stack, item{c, p})
		}
	}
	return nil
}
