package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aidantambling/Fuse-Wad-Explorer/pkg/types"
)

// View renders the entire UI
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.width == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderContent(),
		m.renderStatus(),
	)
}

// renderHeader renders the title with the archive name and current path
func (m Model) renderHeader() string {
	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		headerStyle.Render("WAD Explorer"),
		"  ",
		pathStyle.Render(fmt.Sprintf("Archive: %s", m.archive.Path())),
	)

	current := "/"
	if item := m.CurrentItem(); item != nil {
		current = item.Path
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, pathStyle.Render("Path: "+current))
}

// renderContent renders the split-pane content
func (m Model) renderContent() string {
	treeWidth, previewWidth := m.paneWidths()
	h := m.treeHeight()

	treeBox, previewBox := paneStyle, paneStyle
	if m.focusedPane == TreePane {
		treeBox = activePaneStyle
	} else {
		previewBox = activePaneStyle
	}

	tree := lipgloss.JoinVertical(
		lipgloss.Left,
		paneTitleStyle.Render(fmt.Sprintf("Tree (%d)", len(m.items))),
		m.renderTree(treeWidth-4, h),
	)
	preview := lipgloss.JoinVertical(
		lipgloss.Left,
		paneTitleStyle.Render("Preview"),
		m.preview.View(),
	)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		treeBox.Width(treeWidth-2).Height(h+1).Render(tree),
		previewBox.Width(previewWidth-2).Height(h+1).Render(preview),
	)
}

// renderTree renders the visible slice of rows.
func (m Model) renderTree(width, height int) string {
	if len(m.items) == 0 {
		return emptyFileStyle.Render("(empty archive)")
	}

	end := min(m.offset+height, len(m.items))
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		line := truncate(renderRow(m.items[i]), width)
		if i == m.cursor && m.focusedPane == TreePane {
			line = selectedStyle.Render(line)
		} else {
			line = rowStyle(m.items[i]).Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func renderRow(item treeItem) string {
	indent := strings.Repeat("  ", item.Depth)
	switch {
	case !item.Info.Kind.IsDir():
		return fmt.Sprintf("%s  %s", indent, item.Info.Name)
	case item.Expanded:
		return fmt.Sprintf("%s▾ %s/", indent, item.Info.Name)
	default:
		return fmt.Sprintf("%s▸ %s/", indent, item.Info.Name)
	}
}

func rowStyle(item treeItem) lipgloss.Style {
	switch item.Info.Kind {
	case types.MapDirectory:
		return mapStyle
	case types.NamespaceDirectory:
		return dirStyle
	}
	if item.Info.Size == 0 {
		return emptyFileStyle
	}
	return fileStyle
}

// renderStatus renders the status bar or the input prompt
func (m Model) renderStatus() string {
	if m.inputMode == JumpMode {
		return promptStyle.Render("Jump to: ") + m.inputBuffer + "█"
	}

	var parts []string
	if len(m.items) > 0 {
		parts = append(parts, statusCountStyle.Render(fmt.Sprintf("%d/%d", m.cursor+1, len(m.items))))
	}
	if item := m.CurrentItem(); item != nil {
		if item.Info.Kind.IsDir() {
			parts = append(parts, fmt.Sprintf("%s, %d children", item.Info.Kind, item.Info.Children))
		} else {
			parts = append(parts, fmt.Sprintf("%s, %d bytes", item.Info.Kind, item.Info.Size))
		}
	}
	if m.statusMessage != "" {
		parts = append(parts, m.statusMessage)
	}
	parts = append(parts, m.help.View(m.keys))
	return statusStyle.Width(m.width).Render(strings.Join(parts, " │ "))
}

func (m Model) renderHelpOverlay() string {
	h := m.help
	h.ShowAll = true
	return lipgloss.JoinVertical(
		lipgloss.Left,
		helpTitleStyle.Render("Keyboard Shortcuts"),
		h.View(m.keys),
		"",
		statusStyle.Render("Press ? or esc to close"),
	)
}
