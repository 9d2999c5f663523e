package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newMkdirCmd())
}

func newMkdirCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mkdir <wad> <path>...",
		Short: "Create namespace directories",
		Long: `The mkdir command adds a namespace directory (a pair of XX_START and
XX_END markers) inside an existing namespace directory. Names are one or two
characters long.

Example:
  wadctl mkdir doom1.wad /F/F9
  wadctl mkdir doom1.wad /ZZ /ZZ/A`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMkdir(args)
		},
	}
	return cmd
}

func runMkdir(args []string) error {
	a, err := openArchive(args[0])
	if err != nil {
		return err
	}
	defer a.Close()

	for _, p := range args[1:] {
		if err := a.Mkdir(p); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", p, err)
		}
		printVerbose("Created directory %s\n", p)
	}
	return nil
}
