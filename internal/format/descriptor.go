package format

import (
	"fmt"
)

// Descriptor is one 16-byte record of the descriptor table.
type Descriptor struct {
	Offset uint32
	Length uint32
	Name   [NameSize]byte
}

// ParseDescriptor decodes a descriptor record from the start of b.
func ParseDescriptor(b []byte) (Descriptor, error) {
	if len(b) < DescriptorSize {
		return Descriptor{}, fmt.Errorf("descriptor: %w", ErrTruncated)
	}
	var d Descriptor
	d.Offset = ReadU32(b, DescriptorOffsetField)
	d.Length = ReadU32(b, DescriptorLengthField)
	copy(d.Name[:], b[DescriptorNameField:DescriptorNameField+NameSize])
	return d, nil
}

// PutDescriptor encodes d into the first DescriptorSize bytes of b.
func PutDescriptor(b []byte, d Descriptor) error {
	if len(b) < DescriptorSize {
		return fmt.Errorf("descriptor: %w", ErrTruncated)
	}
	PutU32(b, DescriptorOffsetField, d.Offset)
	PutU32(b, DescriptorLengthField, d.Length)
	copy(b[DescriptorNameField:DescriptorNameField+NameSize], d.Name[:])
	return nil
}

// MarshalBinary encodes d into a new DescriptorSize slice.
func (d Descriptor) MarshalBinary() ([]byte, error) {
	b := make([]byte, DescriptorSize)
	if err := PutDescriptor(b, d); err != nil {
		return nil, err
	}
	return b, nil
}

// DisplayName is the decoded, unpadded name.
func (d Descriptor) DisplayName() string {
	return DecodeName(d.Name)
}
