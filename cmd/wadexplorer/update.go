package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aidantambling/Fuse-Wad-Explorer/internal/logger"
)

// clearStatusMsg clears the status message
type clearStatusMsg struct{}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizePreview()
		m.ensureVisible()
		return m, nil

	case childrenLoadedMsg:
		if msg.Err != nil {
			logger.Error("failed to list directory", "path", msg.Parent, "error", msg.Err)
			if msg.Parent == "/" {
				m.err = msg.Err
				return m, nil
			}
			m.statusMessage = fmt.Sprintf("Error: %v", msg.Err)
			return m, clearStatusAfter(3 * time.Second)
		}
		m.insertChildren(msg.Parent, msg.Items)
		m.ensureVisible()
		return m, m.previewCurrent()

	case previewLoadedMsg:
		// Only the row under the cursor is shown.
		if item := m.CurrentItem(); item == nil || item.Path != msg.Path {
			return m, nil
		}
		m.previewPath = msg.Path
		m.preview.SetContent(renderPreview(msg))
		m.preview.GotoTop()
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	if m.inputMode == JumpMode {
		return m.handleInputMode(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Jump):
		m.inputMode = JumpMode
		m.inputBuffer = ""
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m.reload()
	case key.Matches(msg, m.keys.Tab):
		if m.focusedPane == TreePane {
			m.focusedPane = PreviewPane
		} else {
			m.focusedPane = TreePane
		}
		return m, nil
	}

	if m.focusedPane == PreviewPane {
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}
	return m.handleTreeKey(msg)
}

func (m Model) handleTreeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.items) == 0 {
		return m, nil
	}
	prev := m.cursor

	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor = min(m.cursor+1, len(m.items)-1)
	case key.Matches(msg, m.keys.PageUp):
		m.cursor = max(m.cursor-m.treeHeight(), 0)
	case key.Matches(msg, m.keys.PageDown):
		m.cursor = min(m.cursor+m.treeHeight(), len(m.items)-1)
	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
	case key.Matches(msg, m.keys.End):
		m.cursor = len(m.items) - 1

	case key.Matches(msg, m.keys.Enter):
		item := m.items[m.cursor]
		if !item.Info.Kind.IsDir() {
			return m, nil
		}
		if item.Expanded {
			m.collapse(m.cursor)
			return m, nil
		}
		return m, loadChildrenCmd(m.archive, item.Path, item.Depth+1)

	case key.Matches(msg, m.keys.Right):
		item := m.items[m.cursor]
		if item.Info.Kind.IsDir() && !item.Expanded {
			return m, loadChildrenCmd(m.archive, item.Path, item.Depth+1)
		}
		return m, nil

	case key.Matches(msg, m.keys.Left):
		if m.items[m.cursor].Expanded {
			m.collapse(m.cursor)
			return m, nil
		}
		if p := m.parentIndex(m.cursor); p >= 0 {
			m.cursor = p
		}
	}

	m.ensureVisible()
	if m.cursor != prev {
		return m, m.previewCurrent()
	}
	return m, nil
}

func (m Model) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.inputMode = NormalMode
		m.inputBuffer = ""
		return m, nil
	case tea.KeyEnter:
		target := m.inputBuffer
		m.inputMode = NormalMode
		m.inputBuffer = ""
		if err := m.revealPath(target); err != nil {
			logger.Debug("jump failed", "path", target, "error", err)
			m.statusMessage = fmt.Sprintf("Cannot jump to %s: %v", target, err)
			return m, clearStatusAfter(3 * time.Second)
		}
		m.ensureVisible()
		return m, m.previewCurrent()
	case tea.KeyBackspace:
		if len(m.inputBuffer) > 0 {
			m.inputBuffer = m.inputBuffer[:len(m.inputBuffer)-1]
		}
		return m, nil
	case tea.KeySpace:
		m.inputBuffer += " "
		return m, nil
	case tea.KeyRunes:
		m.inputBuffer += string(msg.Runes)
		return m, nil
	}
	return m, nil
}

// reload re-reads the archive from disk and rebuilds the tree.
func (m Model) reload() (tea.Model, tea.Cmd) {
	if err := m.archive.Reload(); err != nil {
		logger.Error("reload failed", "error", err)
		m.statusMessage = fmt.Sprintf("Reload failed: %v", err)
		return m, clearStatusAfter(3 * time.Second)
	}
	m.items = nil
	m.cursor, m.offset = 0, 0
	m.previewPath = ""
	m.preview.SetContent("")
	m.statusMessage = "Reloaded"
	return m, tea.Batch(loadChildrenCmd(m.archive, "/", 0), clearStatusAfter(2*time.Second))
}

func (m Model) previewCurrent() tea.Cmd {
	item := m.CurrentItem()
	if item == nil || item.Path == m.previewPath {
		return nil
	}
	return loadPreviewCmd(m.archive, *item)
}
