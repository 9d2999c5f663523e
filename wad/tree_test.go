package wad

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aidantambling/Fuse-Wad-Explorer/internal/format"
	"github.com/aidantambling/Fuse-Wad-Explorer/pkg/types"
)

func TestTree_MapWindow(t *testing.T) {
	entries := []entry{marker("E1M1")}
	window := []string{"THINGS", "LINEDEFS", "F_START", "SIDEDEFS", "E2M1", "VERTEXES", "F_END", "SECTORS", "REJECT", "BLOCKMAP"}
	for _, name := range window {
		entries = append(entries, lump(name, "x"))
	}
	entries = append(entries, lump("AFTER1", "y"), lump("AFTER2", "z"))
	a, _ := openWAD(t, buildWAD(t, entries...))

	m, err := a.Stat("/E1M1")
	require.NoError(t, err)
	require.Equal(t, types.MapDirectory, m.Kind)
	require.Equal(t, 10, m.Children)
	require.Equal(t, m.DescriptorOffset+11*format.DescriptorSize, m.ClosingDescriptorOffset)

	// Marker-looking names inside the window are plain lumps.
	require.Equal(t, window, childNames(t, a, "/E1M1"))
	require.True(t, a.IsContent("/E1M1/F_START"))
	require.True(t, a.IsContent("/E1M1/E2M1"))

	require.Equal(t, []string{"E1M1", "AFTER1", "AFTER2"}, childNames(t, a, "/"))
}

func TestTree_MapWindowClampedAtTableEnd(t *testing.T) {
	a, _ := openWAD(t, buildWAD(t,
		lump("A", "a"), marker("E1M1"), lump("B", "b"), lump("C", "c"),
	))
	require.Equal(t, []string{"B", "C"}, childNames(t, a, "/E1M1"))
	require.Equal(t, []string{"A", "E1M1"}, childNames(t, a, "/"))
	m, err := a.Stat("/E1M1")
	require.NoError(t, err)
	root, err := a.Stat("/")
	require.NoError(t, err)
	require.Equal(t, root.ClosingDescriptorOffset, m.ClosingDescriptorOffset)

	a, _ = openWAD(t, buildWAD(t, marker("E3M9")))
	names, n := a.GetDirectory("/E3M9")
	require.Equal(t, 0, n)
	require.Empty(t, names)
}

func TestTree_NamespaceBalance(t *testing.T) {
	a, _ := openWAD(t, buildWAD(t,
		marker("F_START"), lump("A", "a"), lump("B", "b"), marker("F_END"), lump("C", "c"),
	))
	// T = 12 + 3 lump bytes
	const table = 15

	f, err := a.Stat("/F")
	require.NoError(t, err)
	require.Equal(t, types.NamespaceDirectory, f.Kind)
	require.Equal(t, 2, f.Children)
	require.Equal(t, uint32(table), f.DescriptorOffset)
	require.Equal(t, uint32(table+3*format.DescriptorSize), f.ClosingDescriptorOffset)

	root, err := a.Stat("/")
	require.NoError(t, err)
	require.Equal(t, RootName, root.Name)
	require.Equal(t, uint32(table+5*format.DescriptorSize), root.ClosingDescriptorOffset)
	require.Equal(t, []string{"F", "C"}, childNames(t, a, "/"))

	b, err := a.Stat("/F/B")
	require.NoError(t, err)
	require.Equal(t, uint32(table+2*format.DescriptorSize), b.DescriptorOffset)
	require.Equal(t, uint32(13), b.Offset)
	require.Equal(t, uint32(1), b.Size)
}

func TestTree_Nested(t *testing.T) {
	a, _ := openWAD(t, buildWAD(t,
		marker("AA_START"),
		marker("B_START"), lump("X", "x"), marker("B_END"),
		lump("Y", "y"),
		marker("E1M1"), lump("THINGS", "t"),
		marker("AA_END"),
	))
	require.Equal(t, []string{"AA"}, childNames(t, a, "/"))
	require.Equal(t, []string{"B", "Y", "E1M1"}, childNames(t, a, "/AA"))
	require.Equal(t, []string{"X"}, childNames(t, a, "/AA/B"))
	// The map window swallows AA_END, so AA stays open.
	require.Equal(t, []string{"THINGS", "AA_END"}, childNames(t, a, "/AA/E1M1"))
}

func TestTree_UnmatchedEndIgnored(t *testing.T) {
	a, _ := openWAD(t, buildWAD(t,
		marker("G_END"),
		marker("F_START"), lump("A", "a"), marker("G_END"), marker("F_END"),
		lump("B", "b"),
	))
	require.Equal(t, []string{"F", "B"}, childNames(t, a, "/"))
	require.Equal(t, []string{"A"}, childNames(t, a, "/F"))
}

func TestTree_OpenScopeRunsToTableEnd(t *testing.T) {
	a, _ := openWAD(t, buildWAD(t, marker("S_START"), lump("A", "a"), lump("B", "b")))
	s, err := a.Stat("/S")
	require.NoError(t, err)
	require.Equal(t, 2, s.Children)
	root, err := a.Stat("/")
	require.NoError(t, err)
	require.Equal(t, root.ClosingDescriptorOffset, s.ClosingDescriptorOffset)
}

func TestTree_EmptyNamespaceAfterGap(t *testing.T) {
	// The table starts at 20, leaving eight unused bytes after the header.
	data := rawWAD(t, 2, 20, []format.Descriptor{
		record("F_START", 0, 0),
		record("F_END", 0, 0),
	})
	a, _ := openWAD(t, data)

	f, err := a.Stat("/F")
	require.NoError(t, err)
	require.Equal(t, types.NamespaceDirectory, f.Kind)
	require.Zero(t, f.Children)
	require.Equal(t, uint32(36), f.ClosingDescriptorOffset)

	names, n := a.GetDirectory("/F")
	require.Equal(t, 0, n)
	require.Empty(t, names)
}

func TestTree_SiblingOrderMatchesTable(t *testing.T) {
	var entries []entry
	for i := range 6 {
		entries = append(entries, lump(fmt.Sprintf("L%d", i), "d"))
	}
	entries = append(entries, marker("P_START"), lump("L0", "dup"), marker("P_END"))
	a, _ := openWAD(t, buildWAD(t, entries...))

	require.Equal(t, []string{"L0", "L1", "L2", "L3", "L4", "L5", "P"}, childNames(t, a, "/"))
	require.Equal(t, "d", readAll(t, a, "/L0"))
	require.Equal(t, "dup", readAll(t, a, "/P/L0"))

	var walked []string
	err := a.Walk("/", func(p string, _ types.NodeInfo) error {
		walked = append(walked, p)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{
		"/", "/L0", "/L1", "/L2", "/L3", "/L4", "/L5", "/P", "/P/L0",
	}, walked)

	// Records follow the same order.
	var files []string
	for _, d := range a.Descriptors() {
		files = append(files, d.Name)
	}
	require.Equal(t, []string{"L0", "L1", "L2", "L3", "L4", "L5", "P_START", "L0", "P_END"}, files)
}

func TestWalk_SkipDir(t *testing.T) {
	a, _ := openWAD(t, buildWAD(t,
		marker("F_START"), lump("A", "a"), marker("F_END"), lump("B", "b"),
	))
	var walked []string
	err := a.Walk("/", func(p string, info types.NodeInfo) error {
		walked = append(walked, p)
		if info.Name == "F" {
			return SkipDir
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"/", "/F", "/B"}, walked)

	err = a.Walk("/missing", func(string, types.NodeInfo) error { return nil })
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestTree_MapEndStaysPutOnInsertAfterWindow(t *testing.T) {
	entries := []entry{marker("E1M1")}
	for i := range format.MapWindow {
		entries = append(entries, lump(fmt.Sprintf("L%d", i), "x"))
	}
	a, path := openWAD(t, buildWAD(t, entries...))

	before, err := a.Stat("/E1M1")
	require.NoError(t, err)
	require.NoError(t, a.Mknod("/X"))

	m, err := a.Stat("/E1M1")
	require.NoError(t, err)
	require.Equal(t, before.ClosingDescriptorOffset, m.ClosingDescriptorOffset)
	x, err := a.Stat("/X")
	require.NoError(t, err)
	require.Equal(t, m.ClosingDescriptorOffset, x.DescriptorOffset)

	b := reopen(t, path)
	require.Equal(t, []string{"E1M1", "X"}, childNames(t, b, "/"))
	again, err := b.Stat("/E1M1")
	require.NoError(t, err)
	require.Equal(t, m.ClosingDescriptorOffset, again.ClosingDescriptorOffset)
}
