package wad

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aidantambling/Fuse-Wad-Explorer/internal/format"
)

// entry is one record of a test archive. Entries with data get a lump laid
// out after the header in entry order; the rest are written as markers.
type entry struct {
	name string
	data []byte
}

func marker(name string) entry { return entry{name: name} }
func lump(name, data string) entry { return entry{name: name, data: []byte(data)} }

// chunk is raw bytes placed at an absolute file position.
type chunk struct {
	at   uint32
	data []byte
}

func record(name string, offset, length uint32) format.Descriptor {
	d := format.Descriptor{Offset: offset, Length: length}
	copy(d.Name[:], name)
	return d
}

// rawWAD lays out a file with the given header fields, records at
// tableOffset and any extra chunks. The file is as long as the furthest byte
// written.
func rawWAD(t *testing.T, count, tableOffset uint32, recs []format.Descriptor, extra ...chunk) []byte {
	t.Helper()
	var out []byte
	put := func(at uint32, b []byte) {
		if end := int(at) + len(b); end > len(out) {
			out = append(out, make([]byte, end-len(out))...)
		}
		copy(out[at:], b)
	}

	hdr := format.Header{Count: count, TableOffset: tableOffset}
	copy(hdr.Magic[:], "PWAD")
	hb, err := hdr.MarshalBinary()
	require.NoError(t, err)
	put(0, hb)

	for i, d := range recs {
		rec, err := d.MarshalBinary()
		require.NoError(t, err)
		put(tableOffset+uint32(i*format.DescriptorSize), rec)
	}
	for _, c := range extra {
		put(c.at, c.data)
	}
	return out
}

// buildWAD lays out lumps right after the header and the table after them.
func buildWAD(t *testing.T, entries ...entry) []byte {
	t.Helper()
	var (
		recs   []format.Descriptor
		chunks []chunk
		pos    = uint32(format.HeaderSize)
	)
	for _, e := range entries {
		if e.data == nil {
			recs = append(recs, record(e.name, 0, 0))
			continue
		}
		recs = append(recs, record(e.name, pos, uint32(len(e.data))))
		chunks = append(chunks, chunk{at: pos, data: e.data})
		pos += uint32(len(e.data))
	}
	return rawWAD(t, uint32(len(recs)), pos, recs, chunks...)
}

func writeWAD(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.wad")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func openWAD(t *testing.T, data []byte) (*Archive, string) {
	t.Helper()
	path := writeWAD(t, data)
	a, err := Open(path, Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a, path
}

func reopen(t *testing.T, path string) *Archive {
	t.Helper()
	a, err := Open(path, Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func readAll(t *testing.T, a *Archive, p string) string {
	t.Helper()
	info, err := a.Stat(p)
	require.NoError(t, err)
	b := make([]byte, info.Size)
	n, err := a.ReadContents(p, b, 0)
	require.NoError(t, err)
	return string(b[:n])
}

func childNames(t *testing.T, a *Archive, p string) []string {
	t.Helper()
	names, n := a.GetDirectory(p)
	require.GreaterOrEqual(t, n, 0, "%s is not a directory", p)
	return names
}
