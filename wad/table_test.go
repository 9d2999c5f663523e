package wad

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aidantambling/Fuse-Wad-Explorer/internal/format"
	"github.com/aidantambling/Fuse-Wad-Explorer/pkg/types"
)

func TestReadTable(t *testing.T) {
	data := buildWAD(t, lump("A", "aaaa"), marker("F_START"), marker("F_END"))

	hdr, descs, err := ReadTable(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Equal(t, "PWAD", string(hdr.Magic[:]))
	require.Equal(t, uint32(3), hdr.Count)
	require.Equal(t, uint32(16), hdr.TableOffset)
	require.Len(t, descs, 3)
	require.Equal(t, "A", descs[0].DisplayName())
	require.Equal(t, uint32(12), descs[0].Offset)
	require.Equal(t, uint32(4), descs[0].Length)
	require.Equal(t, "F_END", descs[2].DisplayName())
}

func TestReadTable_Malformed(t *testing.T) {
	valid := buildWAD(t, lump("A", "aaaa"), lump("B", "bb"))

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short header", valid[:format.HeaderSize-1]},
		{"table cut short", valid[:len(valid)-1]},
		{"table past end", rawWAD(t, 4, 12, []format.Descriptor{record("A", 0, 0)})},
		{"table offset past end", rawWAD(t, 0, 1000, nil)},
		{"table inside header", rawWAD(t, 0, 4, nil)},
		{"table at zero", rawWAD(t, 0, 0, nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadTable(bytes.NewReader(tt.data), int64(len(tt.data)))
			require.ErrorIs(t, err, types.ErrMalformed)
			kind, ok := types.KindOf(err)
			require.True(t, ok)
			require.Equal(t, types.ErrKindMalformed, kind)
		})
	}
}

func TestReadTable_Empty(t *testing.T) {
	data := rawWAD(t, 0, format.HeaderSize, nil)
	hdr, descs, err := ReadTable(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Zero(t, hdr.Count)
	require.Empty(t, descs)
}

func TestOpen_Malformed(t *testing.T) {
	path := writeWAD(t, []byte("PWAD\x05"))
	_, err := Open(path, Options{})
	require.ErrorIs(t, err, types.ErrMalformed)

	_, err = Open(path+".missing", Options{})
	require.ErrorIs(t, err, types.ErrMalformed)
}

func TestOpen_TableOverlapsHeader(t *testing.T) {
	data := rawWAD(t, 0, 4, nil)
	path := writeWAD(t, data)

	_, err := Open(path, Options{})
	require.ErrorIs(t, err, types.ErrMalformed)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, data, got)
}
