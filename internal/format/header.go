package format

import (
	"fmt"
)

// Header is the fixed archive header.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------
//	 0x000   4    magic
//	 0x004   4    number of descriptors
//	 0x008   4    absolute offset of the descriptor table
type Header struct {
	Magic       [HeaderMagicSize]byte
	Count       uint32
	TableOffset uint32
}

// ParseHeader extracts the header fields. The magic is returned as-is.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("wad header: %w", ErrTruncated)
	}
	var h Header
	copy(h.Magic[:], b[HeaderMagicOffset:HeaderMagicOffset+HeaderMagicSize])
	h.Count = ReadU32(b, HeaderCountOffset)
	h.TableOffset = ReadU32(b, HeaderTableOffsetOffset)
	return h, nil
}

// TableEnd returns the absolute offset just past the last descriptor record.
func (h Header) TableEnd() int64 {
	return int64(h.TableOffset) + int64(h.Count)*DescriptorSize
}

// MarshalBinary encodes the header into a new HeaderSize slice.
func (h Header) MarshalBinary() ([]byte, error) {
	b := make([]byte, HeaderSize)
	copy(b[HeaderMagicOffset:], h.Magic[:])
	PutU32(b, HeaderCountOffset, h.Count)
	PutU32(b, HeaderTableOffsetOffset, h.TableOffset)
	return b, nil
}
