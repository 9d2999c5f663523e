// Package format houses low-level decoders and encoders for the WAD archive
// format. The goal is to keep the parsing focused and independent from the
// archive engine so higher-level packages can orchestrate the data in a more
// ergonomic form.
package format

const (
	// HeaderSize is the size of the archive header in bytes.
	// Layout (little-endian):
	//   0x00  4  magic ("IWAD", "PWAD", ...; not validated)
	//   0x04  4  descriptor count
	//   0x08  4  descriptor table offset
	HeaderSize = 12

	HeaderMagicOffset       = 0x00
	HeaderMagicSize         = 4
	HeaderCountOffset       = 0x04
	HeaderTableOffsetOffset = 0x08

	// DescriptorSize is the size of one descriptor record.
	// Layout:
	//   0x00  4  lump offset (absolute)
	//   0x04  4  lump length
	//   0x08  8  name, null padded, not null terminated
	DescriptorSize = 16

	DescriptorOffsetField = 0x00
	DescriptorLengthField = 0x04
	DescriptorNameField   = 0x08

	// NameSize is the width of the descriptor name field.
	NameSize = 8
)

// Marker naming conventions.
const (
	// NamespaceStartSuffix opens a namespace ("F_START", "P1_START").
	NamespaceStartSuffix = "_START"
	// NamespaceEndSuffix closes a namespace ("F_END", "P1_END").
	NamespaceEndSuffix = "_END"

	// MaxNamespacePrefix is the longest namespace prefix that fits in front of
	// "_START" within the 8-byte name field.
	MaxNamespacePrefix = NameSize - len(NamespaceStartSuffix)

	// MapWindow is the number of records that follow a map marker (E1M1) and
	// belong to it.
	MapWindow = 10
)
