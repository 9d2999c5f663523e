package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newCatCmd())
}

func newCatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cat <wad> <path>",
		Short: "Write a lump's content to stdout",
		Long: `The cat command copies the content of a lump to standard output.

Example:
  wadctl cat doom1.wad /E1M1/THINGS > things.lmp`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCat(args)
		},
	}
	return cmd
}

const catChunk = 64 * 1024

func runCat(args []string) error {
	a, err := openArchive(args[0])
	if err != nil {
		return err
	}
	defer a.Close()

	p := args[1]
	buf := make([]byte, catChunk)
	var off int64
	for {
		n, err := a.ReadContents(p, buf, off)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		if n == 0 {
			return nil
		}
		if _, err := os.Stdout.Write(buf[:n]); err != nil {
			return err
		}
		off += int64(n)
	}
}
