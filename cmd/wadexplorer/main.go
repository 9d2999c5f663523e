// Command wadexplorer is an interactive terminal browser for WAD archives.
package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aidantambling/Fuse-Wad-Explorer/internal/logger"
	"github.com/aidantambling/Fuse-Wad-Explorer/wad"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Parse flags first (before positional args)
	args := os.Args[1:]
	debugMode := false

	filteredArgs := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "--debug" || arg == "-d" {
			debugMode = true
		} else {
			filteredArgs = append(filteredArgs, arg)
		}
	}

	// Initialize logger (must be before any logging calls)
	if err := logger.Init(logger.Options{
		Enabled: debugMode,
		Level:   slog.LevelDebug,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}

	if len(filteredArgs) < 1 {
		printUsage()
		os.Exit(1)
	}

	if filteredArgs[0] == "--help" || filteredArgs[0] == "-h" {
		printHelp()
		os.Exit(0)
	}

	if filteredArgs[0] == "--version" || filteredArgs[0] == "-v" {
		fmt.Printf("wadexplorer %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		os.Exit(0)
	}

	wadPath := filteredArgs[0]
	logger.Info("starting wadexplorer", "path", wadPath, "debug", debugMode)

	a, err := wad.Open(wadPath, wad.Options{ReadOnly: true, Logger: logger.L})
	if err != nil {
		logger.Error("failed to open archive", "path", wadPath, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		NewModel(a),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	finalModel, err := p.Run()
	if err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	if model, ok := finalModel.(Model); ok {
		if err := model.Close(); err != nil {
			logger.Warn("error closing archive", "error", err)
		}
	}

	logger.Info("wadexplorer exited normally")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: wadexplorer [options] <wad-file>\n")
	fmt.Fprintf(os.Stderr, "Try 'wadexplorer --help' for more information.\n")
}

func printHelp() {
	fmt.Println("wadexplorer - Interactive TUI for WAD archives")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  wadexplorer [options] <wad-file>")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Browses the directory tree of a WAD archive. Namespace (X_START/X_END)")
	fmt.Println("  and map (ExMy) markers are shown as directories; lumps are shown with")
	fmt.Println("  a hex preview of their content. The archive is opened read-only.")
	fmt.Println()
	fmt.Println("  Navigation:")
	fmt.Println("    ↑/k, ↓/j    Navigate up/down")
	fmt.Println("    →/l, Enter  Expand directory")
	fmt.Println("    ←/h         Collapse directory / Go to parent")
	fmt.Println("    Tab         Switch between tree and preview panes")
	fmt.Println("    Ctrl+G      Jump to path")
	fmt.Println("    F5          Reload the archive")
	fmt.Println("    ?           Show help")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -d, --debug    Enable debug logging to ~/.wadexplorer/logs/")
	fmt.Println("  -h, --help     Show this help message")
	fmt.Println("  -v, --version  Show version information")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  wadexplorer doom1.wad")
	fmt.Println()
	fmt.Println("For editing and mounting, use the 'wadctl' command instead.")
}
