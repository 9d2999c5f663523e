package wad

import (
	"log/slog"
	"slices"

	"github.com/aidantambling/Fuse-Wad-Explorer/internal/format"
	"github.com/aidantambling/Fuse-Wad-Explorer/pkg/types"
)

// RootName is the display name of the root directory.
const RootName = "/"

// node is one entry of the arena. Children are handles in descriptor order.
type node struct {
	kind     types.NodeKind
	name     string
	parent   types.NodeID
	children []types.NodeID

	// descOff is the file position of the record that opens this node.
	// closeOff is the position of the record that closes a directory's
	// scope, which is also where its next child record is inserted.
	descOff  uint32
	closeOff uint32

	// size and offset locate a lump. Directories keep the offset stored in
	// their marker record.
	size   uint32
	offset uint32
}

// state is everything parsed from one version of the file. Mutations work
// on a clone and swap it in once the file has been rewritten.
type state struct {
	header      format.Header
	descriptors []format.Descriptor
	nodes       []node
}

func (s *state) clone() *state {
	next := &state{
		header:      s.header,
		descriptors: slices.Clone(s.descriptors),
		nodes:       make([]node, len(s.nodes)),
	}
	for i, n := range s.nodes {
		n.children = slices.Clone(n.children)
		next.nodes[i] = n
	}
	return next
}

func (s *state) add(parent types.NodeID, n node) types.NodeID {
	id := types.NodeID(len(s.nodes))
	n.parent = parent
	s.nodes = append(s.nodes, n)
	s.nodes[parent].children = append(s.nodes[parent].children, id)
	return id
}

func (s *state) recordPos(i int) uint32 {
	return s.header.TableOffset + uint32(i)*format.DescriptorSize
}

func (s *state) info(id types.NodeID) types.NodeInfo {
	n := &s.nodes[id]
	return types.NodeInfo{
		ID:                      id,
		Name:                    n.name,
		Kind:                    n.kind,
		Children:                len(n.children),
		Size:                    n.size,
		Offset:                  n.offset,
		DescriptorOffset:        n.descOff,
		ClosingDescriptorOffset: n.closeOff,
	}
}

func lumpNode(d format.Descriptor, pos uint32) node {
	return node{
		kind:    types.StandardFile,
		name:    d.DisplayName(),
		descOff: pos,
		size:    d.Length,
		offset:  d.Offset,
	}
}

// buildTree replays the descriptor table with a stack of open scopes. The
// root sits at the bottom of the stack and is never popped.
func buildTree(hdr format.Header, descs []format.Descriptor, log *slog.Logger) *state {
	tableEnd := uint32(hdr.TableEnd())
	s := &state{
		header:      hdr,
		descriptors: descs,
		nodes: []node{{
			kind:     types.NamespaceDirectory,
			name:     RootName,
			closeOff: tableEnd,
		}},
	}

	stack := []types.NodeID{types.RootID}
	for i := 0; i < len(descs); i++ {
		d := descs[i]
		pos := s.recordPos(i)
		name := d.DisplayName()
		top := stack[len(stack)-1]

		if format.IsMapMarker(name) {
			// The window is positional: whatever the next records are
			// called, they belong to the map. closeOff is the first
			// position past it.
			last := min(i+format.MapWindow, len(descs)-1)
			id := s.add(top, node{
				kind:     types.MapDirectory,
				name:     name,
				descOff:  pos,
				closeOff: s.recordPos(last) + format.DescriptorSize,
				offset:   d.Offset,
			})
			for j := i + 1; j <= last; j++ {
				s.add(id, lumpNode(descs[j], s.recordPos(j)))
			}
			i = last
			continue
		}

		if prefix, ok := format.NamespaceStart(name); ok {
			id := s.add(top, node{
				kind:     types.NamespaceDirectory,
				name:     prefix,
				descOff:  pos,
				closeOff: tableEnd,
				offset:   d.Offset,
			})
			stack = append(stack, id)
			continue
		}

		if prefix, ok := format.NamespaceEnd(name); ok {
			if top != types.RootID && s.nodes[top].name == prefix {
				s.nodes[top].closeOff = pos
				stack = stack[:len(stack)-1]
			} else {
				log.Debug("ignoring unmatched namespace end",
					"marker", name,
					"position", pos,
					"open", s.nodes[top].name,
				)
			}
			continue
		}

		s.add(top, lumpNode(d, pos))
	}

	for _, id := range stack[1:] {
		log.Debug("namespace left open at end of table",
			"namespace", s.nodes[id].name,
			"position", s.nodes[id].descOff,
		)
	}
	return s
}

// shift moves every stored position at or after pos by delta. The lump offset
// of keep is left alone; its record position is still patched. A map's end
// is exclusive, so a record inserted right after its window stays outside.
func (s *state) shift(pos, delta uint32, keep types.NodeID) {
	for id := range s.nodes {
		n := &s.nodes[id]
		if types.NodeID(id) != types.RootID && n.descOff >= pos {
			n.descOff += delta
		}
		switch {
		case n.kind == types.NamespaceDirectory && n.closeOff >= pos:
			n.closeOff += delta
		case n.kind == types.MapDirectory && n.closeOff > pos:
			n.closeOff += delta
		}
		if n.kind == types.StandardFile && types.NodeID(id) != keep && n.offset >= pos {
			n.offset += delta
		}
	}
}

// syncDescriptors copies lump offsets and lengths from the tree back into the
// descriptor slice.
func (s *state) syncDescriptors() {
	for _, n := range s.nodes {
		if n.kind != types.StandardFile {
			continue
		}
		i := int((n.descOff - s.header.TableOffset) / format.DescriptorSize)
		if n.descOff < s.header.TableOffset || i >= len(s.descriptors) {
			continue
		}
		s.descriptors[i].Offset = n.offset
		s.descriptors[i].Length = n.size
	}
}
