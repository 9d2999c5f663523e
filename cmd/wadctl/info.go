package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <wad>",
		Short: "Validate the header and descriptor table and report metadata",
		Long: `The info command parses an archive's header and descriptor table and
displays its magic, descriptor count, table position and size.

Example:
  wadctl info doom1.wad
  wadctl info doom1.wad --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

func runInfo(args []string) error {
	a, err := openArchive(args[0])
	if err != nil {
		return err
	}
	defer a.Close()

	info, err := a.Info()
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nArchive Information:\n")
	printInfo("  File: %s\n", info.Path)
	printInfo("  Size: %s\n", formatSize(info.FileSize))
	printInfo("  Magic: %s\n", info.Magic)
	printInfo("  Descriptors: %d\n", info.DescriptorCount)
	printInfo("  Table offset: %d\n", info.TableOffset)
	printInfo("  Nodes: %d\n", info.Nodes)
	return nil
}
