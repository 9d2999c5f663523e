package wad

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aidantambling/Fuse-Wad-Explorer/internal/format"
	"github.com/aidantambling/Fuse-Wad-Explorer/pkg/types"
)

func TestReadContents(t *testing.T) {
	a, _ := openWAD(t, buildWAD(t,
		lump("A", "hello world"), marker("F_START"), marker("F_END"),
	))

	buf := make([]byte, 5)
	n, err := a.ReadContents("/A", buf, 0)
	require.NoError(t, err)
	require.Equal(t, "hello", string(buf[:n]))

	n, err = a.ReadContents("/A", buf, 6)
	require.NoError(t, err)
	require.Equal(t, "world", string(buf[:n]))

	// Clamped to the lump length.
	big := make([]byte, 64)
	n, err = a.ReadContents("/A", big, 8)
	require.NoError(t, err)
	require.Equal(t, "rld", string(big[:n]))

	n, err = a.ReadContents("/A", buf, 11)
	require.NoError(t, err)
	require.Zero(t, n)
	n, err = a.ReadContents("/A", buf, 500)
	require.NoError(t, err)
	require.Zero(t, n)

	_, err = a.ReadContents("/A", buf, -1)
	require.ErrorIs(t, err, types.ErrInvalidOffset)
	_, err = a.ReadContents("/F", buf, 0)
	require.ErrorIs(t, err, types.ErrNotContent)
	_, err = a.ReadContents("/B", buf, 0)
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestReadContents_LumpPastEOF(t *testing.T) {
	// The lump claims 10 bytes but the file ends 4 bytes into it.
	data := rawWAD(t, 1, format.HeaderSize, []format.Descriptor{
		record("A", 28, 10),
	}, chunk{at: 28, data: []byte("abcd")})
	a, _ := openWAD(t, data)

	buf := make([]byte, 10)
	n, err := a.ReadContents("/A", buf, 0)
	require.NoError(t, err)
	require.Equal(t, "abcd", string(buf[:n]))
}

func TestReadContents_Closed(t *testing.T) {
	a, _ := openWAD(t, buildWAD(t, lump("A", "a")))
	require.NoError(t, a.Close())
	_, err := a.ReadContents("/A", make([]byte, 1), 0)
	require.ErrorIs(t, err, types.ErrIO)
	kind, ok := types.KindOf(err)
	require.True(t, ok)
	require.Equal(t, types.ErrKindIO, kind)
}
