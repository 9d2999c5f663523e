package main

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/aidantambling/Fuse-Wad-Explorer/pkg/types"
)

var (
	lsRecursive bool
	lsLong      bool
)

func init() {
	cmd := newLsCmd()
	cmd.Flags().BoolVarP(&lsRecursive, "recursive", "r", false, "List the whole subtree")
	cmd.Flags().BoolVarP(&lsLong, "long", "l", false, "Show kind, size and offsets")
	rootCmd.AddCommand(cmd)
}

func newLsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls <wad> [path]",
		Short: "List a directory",
		Long: `The ls command lists the children of a namespace or map directory in
descriptor order. If no path is specified, lists the root.

Example:
  wadctl ls doom1.wad
  wadctl ls doom1.wad /E1M1 --long
  wadctl ls doom1.wad -r --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLs(args)
		},
	}
	return cmd
}

// lsEntry is one listed node with its absolute path.
type lsEntry struct {
	Path string `json:"path"`
	types.NodeInfo
}

func runLs(args []string) error {
	dir := "/"
	if len(args) > 1 {
		dir = args[1]
	}

	a, err := openArchive(args[0])
	if err != nil {
		return err
	}
	defer a.Close()

	var entries []lsEntry
	if lsRecursive {
		err = a.Walk(dir, func(p string, info types.NodeInfo) error {
			if p != path.Clean(dir) {
				entries = append(entries, lsEntry{Path: p, NodeInfo: info})
			}
			return nil
		})
	} else {
		var children []types.NodeInfo
		children, err = a.List(dir)
		for _, c := range children {
			entries = append(entries, lsEntry{Path: path.Join(dir, c.Name), NodeInfo: c})
		}
	}
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", dir, err)
	}

	if jsonOut {
		if entries == nil {
			entries = []lsEntry{}
		}
		return printJSON(map[string]any{
			"archive": args[0],
			"path":    dir,
			"entries": entries,
			"count":   len(entries),
		})
	}

	for _, e := range entries {
		name := e.Name
		if lsRecursive {
			name = e.Path
		}
		if e.Kind.IsDir() {
			name += "/"
		}
		if lsLong {
			printInfo("%-10s %10d %10d %10d  %s\n",
				e.Kind, e.Size, e.Offset, e.DescriptorOffset, name)
		} else {
			printInfo("%s\n", name)
		}
	}
	printVerbose("\nTotal: %d entries\n", len(entries))
	return nil
}
