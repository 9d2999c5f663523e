package wad

import (
	"fmt"
	"io"
	"math"

	"github.com/aidantambling/Fuse-Wad-Explorer/internal/buf"
	"github.com/aidantambling/Fuse-Wad-Explorer/internal/format"
	"github.com/aidantambling/Fuse-Wad-Explorer/pkg/types"
)

// ReadTable reads the header and the descriptor table from r, which holds
// size bytes. Names are returned uninterpreted.
func ReadTable(r io.ReaderAt, size int64) (format.Header, []format.Descriptor, error) {
	hb := make([]byte, format.HeaderSize)
	if size < format.HeaderSize {
		return format.Header{}, nil, fmt.Errorf("%w: %w", types.ErrMalformed, format.ErrTruncated)
	}
	if _, err := r.ReadAt(hb, 0); err != nil {
		return format.Header{}, nil, fmt.Errorf("%w: read header: %w", types.ErrMalformed, err)
	}
	hdr, err := format.ParseHeader(hb)
	if err != nil {
		return format.Header{}, nil, fmt.Errorf("%w: %w", types.ErrMalformed, err)
	}

	if hdr.TableOffset < format.HeaderSize {
		return format.Header{}, nil, fmt.Errorf("%w: descriptor table at %d overlaps the header",
			types.ErrMalformed, hdr.TableOffset)
	}

	end, err := buf.CheckTableBounds(size, hdr.TableOffset, hdr.Count, format.DescriptorSize)
	if err != nil {
		return format.Header{}, nil, fmt.Errorf("%w: descriptor table: %w", types.ErrMalformed, err)
	}
	if end > math.MaxUint32 {
		return format.Header{}, nil, fmt.Errorf("%w: descriptor table ends past 4 GiB", types.ErrMalformed)
	}

	table := make([]byte, int(end-int64(hdr.TableOffset)))
	if n, err := r.ReadAt(table, int64(hdr.TableOffset)); n < len(table) {
		return format.Header{}, nil, fmt.Errorf("%w: read descriptor table: %w", types.ErrMalformed, err)
	}

	descs := make([]format.Descriptor, hdr.Count)
	for i := range descs {
		d, err := format.ParseDescriptor(table[i*format.DescriptorSize:])
		if err != nil {
			return format.Header{}, nil, fmt.Errorf("%w: descriptor %d: %w", types.ErrMalformed, i, err)
		}
		descs[i] = d
	}
	return hdr, descs, nil
}
