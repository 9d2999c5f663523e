package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newTableCmd())
}

func newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table <wad>",
		Short: "Dump the raw descriptor table",
		Long: `The table command prints every descriptor record in file order: its
index, its own position in the file, and the offset, length and name it
stores. Markers are listed like any other record.

Example:
  wadctl table doom1.wad
  wadctl table doom1.wad --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTable(args)
		},
	}
	return cmd
}

func runTable(args []string) error {
	a, err := openArchive(args[0])
	if err != nil {
		return err
	}
	defer a.Close()

	descs := a.Descriptors()
	if jsonOut {
		return printJSON(descs)
	}

	printInfo("%6s %10s %10s %10s  %s\n", "INDEX", "POSITION", "OFFSET", "LENGTH", "NAME")
	for _, d := range descs {
		printInfo("%6d %10d %10d %10d  %s\n", d.Index, d.Position, d.Offset, d.Length, d.Name)
	}
	return nil
}
