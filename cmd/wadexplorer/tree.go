package main

import (
	"path"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aidantambling/Fuse-Wad-Explorer/internal/logger"
	"github.com/aidantambling/Fuse-Wad-Explorer/wad"
)

// childrenLoadedMsg carries the children of a directory.
type childrenLoadedMsg struct {
	Parent string
	Items  []treeItem
	Err    error
}

// listChildren returns the rows for the children of dir, one level deeper
// than depth-1.
func listChildren(a *wad.Archive, dir string, depth int) ([]treeItem, error) {
	infos, err := a.List(dir)
	if err != nil {
		return nil, err
	}
	items := make([]treeItem, 0, len(infos))
	for _, info := range infos {
		items = append(items, treeItem{
			Path:  path.Join(dir, info.Name),
			Depth: depth,
			Info:  info,
		})
	}
	return items, nil
}

func loadChildrenCmd(a *wad.Archive, dir string, depth int) tea.Cmd {
	return func() tea.Msg {
		items, err := listChildren(a, dir, depth)
		return childrenLoadedMsg{Parent: dir, Items: items, Err: err}
	}
}

// indexOf returns the row index of p, or -1.
func (m Model) indexOf(p string) int {
	for i := range m.items {
		if m.items[i].Path == p {
			return i
		}
	}
	return -1
}

// insertChildren places children under their parent row. The root replaces
// the whole tree.
func (m *Model) insertChildren(parent string, children []treeItem) {
	if parent == "/" {
		m.items = children
		m.cursor = min(m.cursor, max(len(m.items)-1, 0))
		return
	}
	i := m.indexOf(parent)
	if i < 0 || m.items[i].Expanded {
		logger.Debug("dropping stale children", "parent", parent)
		return
	}
	m.items[i].Expanded = true
	rest := append(children, m.items[i+1:]...)
	m.items = append(m.items[:i+1], rest...)
}

// collapse removes the descendants of row i.
func (m *Model) collapse(i int) {
	if !m.items[i].Expanded {
		return
	}
	m.items[i].Expanded = false
	end := i + 1
	for end < len(m.items) && m.items[end].Depth > m.items[i].Depth {
		end++
	}
	m.items = append(m.items[:i+1], m.items[end:]...)
	if m.cursor > i && m.cursor < end {
		m.cursor = i
	} else if m.cursor >= end {
		m.cursor -= end - i - 1
	}
}

// parentIndex returns the row of the parent of row i, or -1 at the top level.
func (m Model) parentIndex(i int) int {
	d := m.items[i].Depth
	for j := i - 1; j >= 0; j-- {
		if m.items[j].Depth < d {
			return j
		}
	}
	return -1
}

// revealPath expands every directory on the way to p and moves the cursor
// to it.
func (m *Model) revealPath(p string) error {
	if _, err := m.archive.Stat(p); err != nil {
		return err
	}
	p = path.Clean(p)
	if p == "/" {
		m.cursor = 0
		return nil
	}

	parts := strings.Split(strings.TrimPrefix(p, "/"), "/")
	cur := "/"
	for depth, name := range parts[:len(parts)-1] {
		cur = path.Join(cur, name)
		i := m.indexOf(cur)
		if i < 0 {
			return nil
		}
		if !m.items[i].Expanded {
			children, err := listChildren(m.archive, cur, depth+1)
			if err != nil {
				return err
			}
			m.insertChildren(cur, children)
		}
	}
	if i := m.indexOf(p); i >= 0 {
		m.cursor = i
	}
	return nil
}
