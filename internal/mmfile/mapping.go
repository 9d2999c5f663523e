package mmfile

import (
	"fmt"
	"io"
)

// Mapping is a read-only view of a file.
type Mapping struct {
	data   []byte
	unmap  func([]byte) error
	closed bool
}

// ReadAt implements io.ReaderAt.
func (m *Mapping) ReadAt(p []byte, off int64) (int, error) {
	if m.closed {
		return 0, fmt.Errorf("mmfile: read after close")
	}
	if off < 0 {
		return 0, fmt.Errorf("mmfile: negative offset %d", off)
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Len returns the size of the mapped file.
func (m *Mapping) Len() int64 { return int64(len(m.data)) }

// Close releases the mapping. Calling it again is a no-op.
func (m *Mapping) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	var err error
	if m.unmap != nil && len(m.data) > 0 {
		err = m.unmap(m.data)
	}
	m.data, m.unmap = nil, nil
	return err
}
