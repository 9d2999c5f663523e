package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aidantambling/Fuse-Wad-Explorer/pkg/types"
	"github.com/aidantambling/Fuse-Wad-Explorer/wad"
)

// previewLoadedMsg carries the content shown for the selected row.
type previewLoadedMsg struct {
	Path string
	Info types.NodeInfo
	Data []byte
	Err  error
}

func loadPreviewCmd(a *wad.Archive, item treeItem) tea.Cmd {
	return func() tea.Msg {
		msg := previewLoadedMsg{Path: item.Path, Info: item.Info}
		if item.Info.Kind.IsDir() {
			return msg
		}
		buf := make([]byte, min(int(item.Info.Size), maxPreview))
		n, err := a.ReadContents(item.Path, buf, 0)
		msg.Data, msg.Err = buf[:n], err
		return msg
	}
}

// renderPreview builds the preview text for a loaded row.
func renderPreview(msg previewLoadedMsg) string {
	info := msg.Info
	var b strings.Builder

	fmt.Fprintf(&b, "Name:        %s\n", info.Name)
	fmt.Fprintf(&b, "Kind:        %s\n", info.Kind)
	fmt.Fprintf(&b, "Descriptor:  %d\n", info.DescriptorOffset)
	if info.Kind.IsDir() {
		if info.Kind == types.NamespaceDirectory && msg.Path != "/" {
			fmt.Fprintf(&b, "End marker:  %d\n", info.ClosingDescriptorOffset)
		}
		fmt.Fprintf(&b, "Children:    %d\n", info.Children)
		return b.String()
	}

	fmt.Fprintf(&b, "Offset:      %d\n", info.Offset)
	fmt.Fprintf(&b, "Size:        %d bytes\n", info.Size)
	b.WriteString("\n")
	switch {
	case msg.Err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", msg.Err)))
	case info.Size == 0:
		b.WriteString("(No data)")
	default:
		b.WriteString(formatHexDump(msg.Data))
		if int(info.Size) > len(msg.Data) {
			fmt.Fprintf(&b, "\n... %d more bytes", int(info.Size)-len(msg.Data))
		}
	}
	return b.String()
}

// formatHexDump creates a hex dump with ASCII sidebar
func formatHexDump(data []byte) string {
	if len(data) == 0 {
		return "(empty)"
	}

	var b strings.Builder
	const bytesPerLine = 16

	for offset := 0; offset < len(data); offset += bytesPerLine {
		fmt.Fprintf(&b, "%08x  ", offset)

		lineEnd := min(offset+bytesPerLine, len(data))
		for i := offset; i < lineEnd; i++ {
			fmt.Fprintf(&b, "%02x ", data[i])
			if i == offset+7 {
				b.WriteString(" ")
			}
		}

		// Padding for incomplete lines
		remaining := bytesPerLine - (lineEnd - offset)
		b.WriteString(strings.Repeat("   ", remaining))
		if remaining > 8 {
			b.WriteString(" ")
		}

		b.WriteString(" |")
		for i := offset; i < lineEnd; i++ {
			if data[i] >= 32 && data[i] <= 126 {
				b.WriteByte(data[i])
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteString("|")

		if lineEnd < len(data) {
			b.WriteString("\n")
		}
	}
	return b.String()
}
