package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aidantambling/Fuse-Wad-Explorer/internal/logger"
	wadfuse "github.com/aidantambling/Fuse-Wad-Explorer/wad/fuse"
)

var (
	mountAllowOther bool
	mountFuseDebug  bool
)

func init() {
	cmd := newMountCmd()
	cmd.Flags().BoolVar(&mountAllowOther, "allow-other", false, "Let other users access the mount")
	cmd.Flags().BoolVar(&mountFuseDebug, "fuse-debug", false, "Log every FUSE request")
	rootCmd.AddCommand(cmd)
}

func newMountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mount <wad> <mountpoint>",
		Short: "Mount an archive as a filesystem",
		Long: `The mount command serves an archive through FUSE until interrupted.
Directories and lumps can be listed and read; mkdir, touch and writes to
empty lumps edit the archive in place. Use --read-only to refuse edits.

Example:
  wadctl mount doom1.wad /mnt/doom
  wadctl mount doom1.wad /mnt/doom --read-only --allow-other`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMount(args)
		},
	}
	return cmd
}

func runMount(args []string) error {
	a, err := openArchive(args[0])
	if err != nil {
		return err
	}
	defer a.Close()

	server, err := wadfuse.Mount(wadfuse.Options{
		Mountpoint: args[1],
		Archive:    a,
		AllowOther: mountAllowOther,
		ReadOnly:   readOnly,
		Debug:      mountFuseDebug,
		Logger:     logger.L,
	})
	if err != nil {
		return err
	}
	printInfo("Mounted %s at %s (Ctrl-C to unmount)\n", args[0], args[1])

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		<-sigs
		if err := server.Unmount(); err != nil {
			printError("unmount failed: %v\n", err)
		}
	}()

	server.Wait()
	logger.Info("unmounted", "mountpoint", args[1])
	printInfo("Unmounted %s\n", args[1])
	return nil
}
