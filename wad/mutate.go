package wad

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/aidantambling/Fuse-Wad-Explorer/internal/buf"
	"github.com/aidantambling/Fuse-Wad-Explorer/internal/format"
	"github.com/aidantambling/Fuse-Wad-Explorer/pkg/types"
)

// splice describes one insertion: payload goes in at pos and every byte that
// was at or after pos moves forward by len(payload).
type splice struct {
	pos     uint32
	payload []byte
}

// planFunc stages a mutation on next (a clone of the current state) and
// returns the bytes to insert. Returning an error leaves the file untouched.
type planFunc func(next *state) (splice, error)

// mutate runs one edit with the archive and the file locked exclusively.
// The file is rewritten from the descriptor table onwards in a single write,
// then the header is written; the staged state replaces the current one only
// after both succeed.
func (a *Archive) mutate(op, p string, plan planFunc) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return errClosed
	}
	if a.opts.ReadOnly {
		return fmt.Errorf("%s %s: %w", op, p, types.ErrReadOnly)
	}

	f, err := os.OpenFile(a.path, os.O_RDWR, 0)
	if err != nil {
		a.log.Error("open for write failed", "op", op, "path", a.path, "error", err)
		return fmt.Errorf("%s %s: %w: %w", op, p, types.ErrIO, err)
	}
	defer f.Close()

	unlock, err := lockFile(f, true)
	if err != nil {
		a.log.Error("lock failed", "op", op, "path", a.path, "error", err)
		return fmt.Errorf("%s %s: %w: %w", op, p, types.ErrIO, err)
	}
	defer unlock()

	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", op, p, types.ErrIO, err)
	}
	if err := a.refreshLocked(f, fi); err != nil {
		return err
	}

	next := a.st.clone()
	sp, err := plan(next)
	if err != nil {
		return fmt.Errorf("%s %s: %w", op, p, err)
	}
	if end, ok := buf.AddInt64(fi.Size(), int64(len(sp.payload))); !ok || end > math.MaxUint32 {
		return fmt.Errorf("%s %s: %w", op, p, types.ErrTooLarge)
	}
	next.syncDescriptors()

	if err := a.rewrite(f, fi.Size(), sp, next); err != nil {
		a.log.Error("mutation failed", "op", op, "path", p, "error", err)
		return fmt.Errorf("%s %s: %w: %w", op, p, types.ErrIO, err)
	}
	if a.opts.Sync {
		if err := syncData(f); err != nil {
			a.log.Warn("sync failed", "op", op, "path", a.path, "error", err)
		}
	}

	a.st = next
	if fi, err := f.Stat(); err == nil {
		a.seen = stampOf(fi)
	}
	a.log.Debug("archive mutated",
		"op", op,
		"path", p,
		"position", sp.pos,
		"inserted", len(sp.payload),
		"descriptors", next.header.Count,
		"table", next.header.TableOffset,
	)
	return nil
}

// refreshLocked reparses the file when its header no longer matches the tree,
// which happens when another process edited it since we last looked.
func (a *Archive) refreshLocked(f *os.File, fi os.FileInfo) error {
	hb := make([]byte, format.HeaderSize)
	if _, err := f.ReadAt(hb, 0); err != nil {
		return fmt.Errorf("%w: read header: %w", types.ErrIO, err)
	}
	hdr, err := format.ParseHeader(hb)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrMalformed, err)
	}
	if hdr == a.st.header {
		a.seen = stampOf(fi)
		return nil
	}
	a.log.Info("archive changed on disk, reloading",
		"path", a.path,
		"descriptors", hdr.Count,
		"table", hdr.TableOffset,
	)
	st, err := a.load(f, fi.Size())
	if err != nil {
		return err
	}
	a.st = st
	a.seen = stampOf(fi)
	return nil
}

// rewrite applies sp to the file. Everything from the old table offset to EOF
// is read, the payload is spliced in, next's descriptors are encoded at the
// new table position, and the result is written back in one call. The header
// is written last.
func (a *Archive) rewrite(f *os.File, size int64, sp splice, next *state) error {
	base := a.st.header.TableOffset
	if sp.pos < base || int64(sp.pos) > size {
		return fmt.Errorf("insert position %d outside [%d, %d]", sp.pos, base, size)
	}

	region := make([]byte, size-int64(base))
	if _, err := f.ReadAt(region, int64(base)); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read tail: %w", err)
	}

	cut := int(sp.pos - base)
	out := make([]byte, 0, len(region)+len(sp.payload))
	out = append(out, region[:cut]...)
	out = append(out, sp.payload...)
	out = append(out, region[cut:]...)

	tableAt := int(next.header.TableOffset - base)
	for i, d := range next.descriptors {
		rec, ok := buf.Slice(out, tableAt+i*format.DescriptorSize, format.DescriptorSize)
		if !ok {
			return fmt.Errorf("descriptor %d lands past end of file", i)
		}
		if err := format.PutDescriptor(rec, d); err != nil {
			return err
		}
	}

	if _, err := f.WriteAt(out, int64(base)); err != nil {
		return fmt.Errorf("write tail: %w", err)
	}
	hb, err := next.header.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := f.WriteAt(hb, 0); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

// namespaceParent resolves the parent of p and validates the new child name.
func (s *state) namespaceParent(p string) (types.NodeID, string, error) {
	parentPath, name, ok := splitParent(p)
	if !ok {
		return 0, "", fmt.Errorf("%w: %q", types.ErrInvalidName, p)
	}
	parent, ok := s.resolve(parentPath, types.RootID)
	if !ok {
		return 0, "", fmt.Errorf("%s: %w", parentPath, types.ErrNotFound)
	}
	if s.nodes[parent].kind != types.NamespaceDirectory {
		return 0, "", fmt.Errorf("%s: %w", parentPath, types.ErrNotDirectory)
	}
	if _, dup := s.child(parent, name); dup {
		return 0, "", fmt.Errorf("%s: %w", name, types.ErrExists)
	}
	return parent, name, nil
}

func (s *state) insertDescriptors(pos uint32, ds ...format.Descriptor) {
	i := int((pos - s.header.TableOffset) / format.DescriptorSize)
	s.descriptors = append(s.descriptors[:i], append(ds, s.descriptors[i:]...)...)
	s.header.Count += uint32(len(ds))
}

func encodeRecords(ds ...format.Descriptor) []byte {
	var b bytes.Buffer
	for _, d := range ds {
		rec, _ := d.MarshalBinary()
		b.Write(rec)
	}
	return b.Bytes()
}

// Mkdir creates the namespace directory p. The name must be one or two
// characters; the parent must be a namespace directory. A start and end
// marker are inserted just before the parent's end marker.
func (a *Archive) Mkdir(p string) error {
	return a.mutate("mkdir", p, func(next *state) (splice, error) {
		parent, name, err := next.namespaceParent(p)
		if err != nil {
			return splice{}, err
		}
		start, end, err := format.MarkerNames(name)
		if err != nil {
			return splice{}, fmt.Errorf("%w: %w", types.ErrInvalidName, err)
		}

		pos := next.nodes[parent].closeOff
		marker := next.nodes[parent].offset
		records := []format.Descriptor{
			{Offset: marker, Name: start},
			{Offset: marker, Name: end},
		}
		delta := uint32(len(records) * format.DescriptorSize)

		next.insertDescriptors(pos, records...)
		next.shift(pos, delta, types.RootID)
		next.add(parent, node{
			kind:     types.NamespaceDirectory,
			name:     name,
			descOff:  pos,
			closeOff: pos + format.DescriptorSize,
			offset:   marker,
		})
		return splice{pos: pos, payload: encodeRecords(records...)}, nil
	})
}

// Mknod creates the empty lump p (offset 0, length 0). The name must fit in
// eight bytes and must not read back as a marker. A sibling with the same
// name is types.ErrExists.
func (a *Archive) Mknod(p string) error {
	return a.mutate("mknod", p, func(next *state) (splice, error) {
		parent, name, err := next.namespaceParent(p)
		if err != nil {
			return splice{}, err
		}
		if format.IsReservedFileName(name) {
			return splice{}, fmt.Errorf("%s: %w", name, types.ErrReservedName)
		}
		raw, err := format.EncodeName(name)
		if err != nil {
			return splice{}, fmt.Errorf("%w: %w", types.ErrInvalidName, err)
		}

		pos := next.nodes[parent].closeOff
		rec := format.Descriptor{Name: raw}

		next.insertDescriptors(pos, rec)
		next.shift(pos, format.DescriptorSize, types.RootID)
		next.add(parent, node{
			kind:    types.StandardFile,
			name:    name,
			descOff: pos,
		})
		return splice{pos: pos, payload: encodeRecords(rec)}, nil
	})
}

// Write gives the empty lump p its content. The lump is placed immediately
// before the descriptor table, which moves forward. off leaves that many zero
// bytes in front of data. A lump can be written once; later calls return 0
// and types.ErrAlreadyWritten. It returns len(data).
func (a *Archive) Write(p string, data []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("write %s: %d: %w", p, off, types.ErrInvalidOffset)
	}
	written := 0
	err := a.mutate("write", p, func(next *state) (splice, error) {
		id, ok := next.resolve(p, types.RootID)
		if !ok {
			return splice{}, types.ErrNotFound
		}
		target := &next.nodes[id]
		if target.kind != types.StandardFile {
			return splice{}, types.ErrNotContent
		}
		if target.size != 0 {
			return splice{}, types.ErrAlreadyWritten
		}
		if len(data) == 0 {
			return splice{}, errNothingToWrite
		}
		if off > math.MaxUint32-int64(len(data)) {
			return splice{}, types.ErrTooLarge
		}

		lump := make([]byte, int(off)+len(data))
		copy(lump[off:], data)

		pos := next.header.TableOffset
		delta := uint32(len(lump))
		next.shift(pos, delta, id)
		target = &next.nodes[id]
		target.offset = pos
		target.size = delta
		next.header.TableOffset += delta

		written = len(data)
		return splice{pos: pos, payload: lump}, nil
	})
	if errors.Is(err, errNothingToWrite) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return written, nil
}

var errNothingToWrite = errors.New("wad: nothing to write")
