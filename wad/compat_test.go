package wad

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompat_Queries(t *testing.T) {
	a, _ := openWAD(t, buildWAD(t,
		marker("F_START"), lump("A", "abcdef"), marker("F_END"),
		marker("E1M1"), lump("THINGS", "t"),
	))

	require.True(t, a.IsDirectory("/"))
	require.True(t, a.IsDirectory("/F"))
	require.True(t, a.IsDirectory("/E1M1"))
	require.False(t, a.IsDirectory("/F/A"))
	require.False(t, a.IsDirectory("/nope"))

	require.True(t, a.IsContent("/F/A"))
	require.False(t, a.IsContent("/F"))
	require.False(t, a.IsContent("/nope"))

	require.Equal(t, 6, a.GetSize("/F/A"))
	require.Equal(t, -1, a.GetSize("/F"))
	require.Equal(t, -1, a.GetSize("/nope"))

	buf := make([]byte, 4)
	require.Equal(t, 4, a.GetContents("/F/A", buf, 0))
	require.Equal(t, "abcd", string(buf))
	require.Equal(t, 2, a.GetContents("/F/A", buf, 4))
	require.Equal(t, "ef", string(buf[:2]))
	require.Equal(t, 0, a.GetContents("/F/A", buf, 6))
	require.Equal(t, -1, a.GetContents("/F", buf, 0))
	require.Equal(t, -1, a.GetContents("/nope", buf, 0))

	names, n := a.GetDirectory("/")
	require.Equal(t, 2, n)
	require.Equal(t, []string{"F", "E1M1"}, names)
	names, n = a.GetDirectory("/F/A")
	require.Equal(t, -1, n)
	require.Nil(t, names)
}

func TestCompat_Mutations(t *testing.T) {
	a, path := openWAD(t, buildWAD(t, marker("F_START"), marker("F_END")))

	a.CreateDirectory("/F/G")
	a.CreateFile("/F/G/LUMP")
	require.True(t, a.IsDirectory("/F/G"))
	require.True(t, a.IsContent("/F/G/LUMP"))

	require.Equal(t, 3, a.WriteToFile("/F/G/LUMP", []byte("abc"), 0))
	require.Equal(t, 0, a.WriteToFile("/F/G/LUMP", []byte("xyz"), 0))
	require.Equal(t, -1, a.WriteToFile("/F/G", []byte("xyz"), 0))
	require.Equal(t, -1, a.WriteToFile("/F/NOPE", []byte("xyz"), 0))

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	// Rejected creations are silent.
	a.CreateDirectory("/F/LONG")
	a.CreateDirectory("/NOPE/G")
	a.CreateFile("/F/G/LUMP/X")
	a.CreateFile("/F/E1M1")
	a.CreateFile("/F/G/LUMP")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, before, after)
	names, count := a.GetDirectory("/F/G")
	require.Equal(t, 1, count, "duplicate CreateFile must not add a second LUMP")
	require.Equal(t, []string{"LUMP"}, names)

	b := reopen(t, path)
	buf := make([]byte, 8)
	n := b.GetContents("/F/G/LUMP", buf, 0)
	require.Equal(t, "abc", string(buf[:n]))
}
