package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	writeFrom   string
	writeOffset int64
)

func init() {
	cmd := newWriteCmd()
	cmd.Flags().StringVar(&writeFrom, "from", "-", "Read content from this file (- for stdin)")
	cmd.Flags().Int64Var(&writeOffset, "offset", 0, "Leave this many zero bytes before the content")
	rootCmd.AddCommand(cmd)
}

func newWriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write <wad> <path>",
		Short: "Give an empty lump its content",
		Long: `The write command stores content in a lump created with "wadctl touch".
The lump is placed just before the descriptor table. A lump can be written
once; writing a lump that already has content fails.

Example:
  wadctl write doom1.wad /F/NEWFLAT --from flat.raw
  cat readme.txt | wadctl write doom1.wad /README`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(args)
		},
	}
	return cmd
}

func runWrite(args []string) error {
	data, err := readInput(writeFrom)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", writeFrom, err)
	}

	a, err := openArchive(args[0])
	if err != nil {
		return err
	}
	defer a.Close()

	p := args[1]
	n, err := a.Write(p, data, writeOffset)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", p, err)
	}

	if jsonOut {
		return printJSON(map[string]any{
			"archive": args[0],
			"path":    p,
			"written": n,
		})
	}
	printInfo("Wrote %d bytes to %s\n", n, p)
	return nil
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}
