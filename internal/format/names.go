package format

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// DecodeName converts a padded name field into a string. The name ends at
// the first NUL byte. Bytes above 0x7F are decoded as Windows-1252 so every
// name is valid UTF-8.
func DecodeName(raw [NameSize]byte) string {
	data := raw[:]
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	ascii := true
	for _, c := range data {
		if c >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return string(data)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		// Windows-1252 maps every byte; keep the raw bytes if that changes.
		return string(data)
	}
	return string(decoded)
}

// EncodeName converts name into a null-padded name field.
func EncodeName(name string) ([NameSize]byte, error) {
	var raw [NameSize]byte
	if name == "" {
		return raw, ErrNameEmpty
	}
	if strings.ContainsAny(name, "/\x00") {
		return raw, fmt.Errorf("%q: %w", name, ErrNameInvalid)
	}
	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(name))
	if err != nil {
		return raw, fmt.Errorf("%q: %w", name, ErrNameInvalid)
	}
	if len(encoded) > NameSize {
		return raw, fmt.Errorf("%q: %w", name, ErrNameTooLong)
	}
	copy(raw[:], encoded)
	return raw, nil
}

// EncodedLen returns the stored byte length of name, or -1 if it cannot be
// encoded.
func EncodedLen(name string) int {
	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(name))
	if err != nil {
		return -1
	}
	return len(encoded)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// IsMapMarker reports whether name begins with E<digit>M<digit>.
func IsMapMarker(name string) bool {
	return len(name) >= 4 &&
		name[0] == 'E' && isDigit(name[1]) &&
		name[2] == 'M' && isDigit(name[3])
}

// NamespaceStart returns the prefix of a "<prefix>_START" marker.
func NamespaceStart(name string) (string, bool) {
	return namespacePrefix(name, NamespaceStartSuffix)
}

// NamespaceEnd returns the prefix of a "<prefix>_END" marker.
func NamespaceEnd(name string) (string, bool) {
	return namespacePrefix(name, NamespaceEndSuffix)
}

func namespacePrefix(name, suffix string) (string, bool) {
	prefix, ok := strings.CutSuffix(name, suffix)
	if !ok || prefix == "" || len(prefix) > MaxNamespacePrefix {
		return "", false
	}
	return prefix, true
}

// IsReservedFileName reports whether name would be read back as a marker
// instead of a lump.
func IsReservedFileName(name string) bool {
	return IsMapMarker(name) ||
		strings.HasSuffix(name, NamespaceStartSuffix) ||
		strings.HasSuffix(name, NamespaceEndSuffix)
}

// MarkerNames returns the start and end marker fields for namespace prefix.
func MarkerNames(prefix string) (start, end [NameSize]byte, err error) {
	switch n := EncodedLen(prefix); {
	case prefix == "":
		return start, end, ErrNameEmpty
	case n < 0:
		return start, end, fmt.Errorf("namespace %q: %w", prefix, ErrNameInvalid)
	case n > MaxNamespacePrefix:
		return start, end, fmt.Errorf("namespace %q: %w", prefix, ErrNameTooLong)
	}
	if start, err = EncodeName(prefix + NamespaceStartSuffix); err != nil {
		return start, end, err
	}
	if end, err = EncodeName(prefix + NamespaceEndSuffix); err != nil {
		return start, end, err
	}
	return start, end, nil
}
