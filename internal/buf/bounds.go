// Package buf contains bounds-checked helpers for decoding archive records.
package buf

import (
	"fmt"
	"math"
)

// AddInt64 adds a and b, returning ok = false when the sum would overflow.
func AddInt64(a, b int64) (int64, bool) {
	switch {
	case b > 0 && a > math.MaxInt64-b:
		return 0, false
	case b < 0 && a < math.MinInt64-b:
		return 0, false
	default:
		return a + b, true
	}
}

// CheckTableBounds validates that count records of recordSize bytes starting
// at offset fit in a source of size bytes. It returns the end offset of the
// table, or an error naming the failure (overflow or out of bounds).
//
//	end, err := buf.CheckTableBounds(size, hdr.TableOffset, hdr.Count, format.DescriptorSize)
//	if err != nil {
//	    return fmt.Errorf("descriptor table: %w", err)
//	}
func CheckTableBounds(size int64, offset, count uint32, recordSize int) (int64, error) {
	if size < 0 {
		return 0, fmt.Errorf("negative size: %d", size)
	}
	if recordSize <= 0 {
		return 0, fmt.Errorf("invalid record size: %d", recordSize)
	}
	// uint32 * small int cannot overflow int64.
	total := int64(count) * int64(recordSize)
	end, ok := AddInt64(int64(offset), total)
	if !ok {
		return 0, fmt.Errorf("overflow: offset=%d + size=%d", offset, total)
	}
	if end > size {
		return 0, fmt.Errorf("bounds: end=%d > len=%d", end, size)
	}
	return end, nil
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	if n > len(b)-off {
		return nil, false
	}
	return b[off : off+n], true
}
