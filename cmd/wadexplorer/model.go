package main

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aidantambling/Fuse-Wad-Explorer/pkg/types"
	"github.com/aidantambling/Fuse-Wad-Explorer/wad"
)

// Pane represents which pane is focused
type Pane int

const (
	TreePane Pane = iota
	PreviewPane
)

// InputMode represents different input modes
type InputMode int

const (
	NormalMode InputMode = iota
	JumpMode
)

// Layout constants
const (
	headerHeight = 2 // title line + path line
	statusHeight = 1
	paneChrome   = 3 // border (2) + title line
)

// maxPreview caps how much of a lump is loaded into the hex preview.
const maxPreview = 64 << 10

// treeItem is one visible row of the flattened tree.
type treeItem struct {
	Path     string
	Depth    int
	Info     types.NodeInfo
	Expanded bool
}

// Model is the main application model
type Model struct {
	archive *wad.Archive
	keys    KeyMap
	help    help.Model

	items  []treeItem
	cursor int
	offset int // first visible row

	preview     viewport.Model
	previewPath string

	focusedPane Pane
	width       int
	height      int

	inputMode   InputMode
	inputBuffer string

	showHelp      bool
	statusMessage string

	err error
}

// NewModel creates a new TUI model browsing a.
func NewModel(a *wad.Archive) Model {
	return Model{
		archive:     a,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		preview:     viewport.New(0, 0),
		focusedPane: TreePane,
		inputMode:   NormalMode,
	}
}

// Init loads the root directory.
func (m Model) Init() tea.Cmd {
	return loadChildrenCmd(m.archive, "/", 0)
}

// Close releases the archive.
func (m Model) Close() error {
	if m.archive == nil {
		return nil
	}
	return m.archive.Close()
}

// CurrentItem returns the row under the cursor, or nil when the tree is empty.
func (m Model) CurrentItem() *treeItem {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}
	return &m.items[m.cursor]
}

// treeHeight is the number of rows the tree pane can show.
func (m Model) treeHeight() int {
	return max(m.height-headerHeight-statusHeight-paneChrome, 1)
}

// paneWidths splits the screen between the tree and the preview.
func (m Model) paneWidths() (tree, preview int) {
	tree = max(m.width*2/5, 20)
	preview = max(m.width-tree, 20)
	return tree, preview
}

// ensureVisible scrolls the tree so the cursor row is on screen.
func (m *Model) ensureVisible() {
	h := m.treeHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	m.offset = max(m.offset, 0)
}

func (m *Model) resizePreview() {
	_, w := m.paneWidths()
	m.preview.Width = max(w-4, 10) // border + padding
	m.preview.Height = m.treeHeight()
}
