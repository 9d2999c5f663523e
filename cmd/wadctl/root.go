package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidantambling/Fuse-Wad-Explorer/internal/logger"
	"github.com/aidantambling/Fuse-Wad-Explorer/wad"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	debug      bool
	logDir     string
	syncWrites bool
	readOnly   bool
)

var rootCmd = &cobra.Command{
	Use:   "wadctl",
	Short: "Inspect and edit WAD archives",
	Long: `wadctl is a tool for inspecting and editing WAD archives. It lists the
namespace and map directories implied by the descriptor table, extracts and
adds lumps, and can mount an archive as a FUSE filesystem.`,
	Version: "0.1.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogging()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log engine diagnostics")
	rootCmd.PersistentFlags().
		StringVar(&logDir, "log-dir", "", "Write debug logs to this directory instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&syncWrites, "sync", false, "Flush data to disk after each edit")
	rootCmd.PersistentFlags().BoolVar(&readOnly, "read-only", false, "Reject every edit")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initLogging() error {
	if !debug {
		return logger.Init(logger.Options{})
	}
	return logger.Init(logger.Options{
		Enabled: true,
		LogDir:  logDir,
		Level:   slog.LevelDebug,
		Stderr:  logDir == "",
	})
}

// openArchive opens path with the options set by the global flags.
func openArchive(path string) (*wad.Archive, error) {
	printVerbose("Opening archive: %s\n", path)
	a, err := wad.Open(path, archiveOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	return a, nil
}

func archiveOptions() wad.Options {
	return wad.Options{
		Logger:   logger.L,
		ReadOnly: readOnly,
		Sync:     syncWrites,
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// formatSize renders a byte count for humans.
func formatSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d bytes", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
}
