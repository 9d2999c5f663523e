package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func rawName(s string) [NameSize]byte {
	var raw [NameSize]byte
	copy(raw[:], s)
	return raw
}

func TestDecodeName(t *testing.T) {
	require.Equal(t, "F_START", DecodeName(rawName("F_START")))
	require.Equal(t, "E1M1", DecodeName(rawName("E1M1")))
	require.Equal(t, "FULLNAME", DecodeName(rawName("FULLNAME")))
	require.Equal(t, "AB", DecodeName(rawName("AB\x00XYZ")), "name ends at first NUL")
	require.Equal(t, "", DecodeName([NameSize]byte{}))
	require.Equal(t, "CAFÉ", DecodeName(rawName("CAF\xc9")))
}

func TestEncodeName(t *testing.T) {
	raw, err := EncodeName("CAFÉ")
	require.NoError(t, err)
	require.Equal(t, rawName("CAF\xc9"), raw)

	_, err = EncodeName("")
	require.ErrorIs(t, err, ErrNameEmpty)
	_, err = EncodeName("TOOLONGNAME")
	require.ErrorIs(t, err, ErrNameTooLong)
	_, err = EncodeName("A/B")
	require.ErrorIs(t, err, ErrNameInvalid)
	_, err = EncodeName("雪")
	require.ErrorIs(t, err, ErrNameInvalid)
}

func TestIsMapMarker(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"E1M1", true},
		{"E9M9XYZ", true},
		{"e1m1", false},
		{"E1M", false},
		{"EXM1", false},
		{"MAP01", false},
		{"", false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, IsMapMarker(tt.name), tt.name)
	}
}

func TestNamespaceMarkers(t *testing.T) {
	prefix, ok := NamespaceStart("F_START")
	require.True(t, ok)
	require.Equal(t, "F", prefix)

	prefix, ok = NamespaceStart("F1_START")
	require.True(t, ok)
	require.Equal(t, "F1", prefix)

	_, ok = NamespaceStart("_START")
	require.False(t, ok)
	_, ok = NamespaceStart("F_STAR")
	require.False(t, ok)

	prefix, ok = NamespaceEnd("P2_END")
	require.True(t, ok)
	require.Equal(t, "P2", prefix)

	_, ok = NamespaceEnd("ABC_END")
	require.False(t, ok, "prefix longer than two characters")
}

func TestIsReservedFileName(t *testing.T) {
	require.True(t, IsReservedFileName("E1M1"))
	require.True(t, IsReservedFileName("AB_START"))
	require.True(t, IsReservedFileName("X_END"))
	require.False(t, IsReservedFileName("THINGS"))
	require.False(t, IsReservedFileName("ENDOOM"))
}

func TestMarkerNames(t *testing.T) {
	start, end, err := MarkerNames("ex")
	require.NoError(t, err)
	require.Equal(t, rawName("ex_START"), start)
	require.Equal(t, rawName("ex_END"), end)

	_, _, err = MarkerNames("abc")
	require.ErrorIs(t, err, ErrNameTooLong)
	_, _, err = MarkerNames("")
	require.ErrorIs(t, err, ErrNameEmpty)
}
