package wad

import (
	"strings"

	"github.com/aidantambling/Fuse-Wad-Explorer/pkg/types"
)

// child returns the first child of dir whose name equals name.
func (s *state) child(dir types.NodeID, name string) (types.NodeID, bool) {
	for _, id := range s.nodes[dir].children {
		if s.nodes[id].name == name {
			return id, true
		}
	}
	return 0, false
}

// resolve maps an absolute slash-separated path to a node, starting at from.
// "/" is from itself; one trailing slash is ignored; matching is exact and
// case-sensitive, first match in descriptor order wins.
func (s *state) resolve(p string, from types.NodeID) (types.NodeID, bool) {
	if p == "/" {
		return from, true
	}
	if p == "" || p[0] != '/' {
		return 0, false
	}
	p = strings.TrimSuffix(p, "/")[1:]

	cur := from
	for {
		head, tail, more := strings.Cut(p, "/")
		id, ok := s.child(cur, head)
		if !ok {
			return 0, false
		}
		if !more {
			return id, true
		}
		cur, p = id, tail
	}
}

// splitParent splits p into the parent path and the final name.
// "/F/NEW" -> ("/F", "NEW"); "/NEW/" -> ("/", "NEW").
func splitParent(p string) (parent, name string, ok bool) {
	p = strings.TrimSuffix(p, "/")
	i := strings.LastIndexByte(p, '/')
	if i < 0 {
		return "", "", false
	}
	parent, name = p[:i], p[i+1:]
	if parent == "" {
		parent = "/"
	}
	if name == "" {
		return "", "", false
	}
	return parent, name, true
}

// pathOf rebuilds the absolute path of id by walking parent links.
func (s *state) pathOf(id types.NodeID) string {
	if id == types.RootID {
		return "/"
	}
	var parts []string
	for cur := id; cur != types.RootID; cur = s.nodes[cur].parent {
		parts = append(parts, s.nodes[cur].name)
	}
	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(parts[i])
	}
	return b.String()
}
