package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidantambling/Fuse-Wad-Explorer/pkg/types"
)

var touchExistOK bool

func init() {
	cmd := newTouchCmd()
	cmd.Flags().BoolVar(&touchExistOK, "exist-ok", false, "Do not fail when the lump already exists")
	rootCmd.AddCommand(cmd)
}

func newTouchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "touch <wad> <path>...",
		Short: "Create empty lumps",
		Long: `The touch command adds empty lumps (offset 0, length 0) to namespace
directories. Names are up to eight characters and must not look like
markers. Give the lump content later with "wadctl write".

Example:
  wadctl touch doom1.wad /F/NEWFLAT
  wadctl touch doom1.wad /README --exist-ok`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTouch(args)
		},
	}
	return cmd
}

func runTouch(args []string) error {
	a, err := openArchive(args[0])
	if err != nil {
		return err
	}
	defer a.Close()

	for _, p := range args[1:] {
		err := a.Mknod(p)
		if touchExistOK && errors.Is(err, types.ErrExists) {
			printVerbose("Lump %s already exists\n", p)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to create lump %s: %w", p, err)
		}
		printVerbose("Created lump %s\n", p)
	}
	return nil
}
