package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidantambling/Fuse-Wad-Explorer/wad"
)

var newMagic string

func init() {
	cmd := newNewCmd()
	cmd.Flags().StringVar(&newMagic, "magic", "PWAD", "Four-byte header magic")
	rootCmd.AddCommand(cmd)
}

func newNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <wad>",
		Short: "Create an empty archive",
		Long: `The new command writes an archive with no descriptors. The file must
not exist.

Example:
  wadctl new mod.wad
  wadctl new base.wad --magic IWAD`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(args)
		},
	}
	return cmd
}

func runNew(args []string) error {
	a, err := wad.Create(args[0], newMagic, archiveOptions())
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer a.Close()
	printInfo("Created %s (%s)\n", args[0], a.Magic())
	return nil
}
