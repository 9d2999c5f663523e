package main

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"github.com/aidantambling/Fuse-Wad-Explorer/pkg/types"
	"github.com/aidantambling/Fuse-Wad-Explorer/wad"
)

var exportPath string

func init() {
	cmd := newExportCmd()
	cmd.Flags().StringVar(&exportPath, "path", "/", "Export only this subtree")
	rootCmd.AddCommand(cmd)
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <wad> <output.tar>",
		Short: "Export the tree as a tarball",
		Long: `The export command writes every directory and lump of an archive to a
tar file. The output is compressed according to its extension: .tar.gz or
.tgz for gzip, .tar.zst for zstd, anything else is plain tar.

Example:
  wadctl export doom1.wad doom1.tar
  wadctl export doom1.wad maps.tar.zst --path /E1M1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args)
		},
	}
	return cmd
}

func runExport(args []string) error {
	a, err := openArchive(args[0])
	if err != nil {
		return err
	}
	defer a.Close()

	out, err := os.Create(args[1])
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", args[1], err)
	}
	defer out.Close()

	w, err := compressor(args[1], out)
	if err != nil {
		return err
	}

	count, err := writeTar(a, exportPath, w)
	if err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to export: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish %s: %w", args[1], err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]any{
			"archive": args[0],
			"output":  args[1],
			"entries": count,
		})
	}
	printInfo("Exported %d entries to %s\n", count, args[1])
	return nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// compressor picks a compression stream for name's extension.
func compressor(name string, w io.Writer) (io.WriteCloser, error) {
	switch {
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return gzip.NewWriter(w), nil
	case strings.HasSuffix(name, ".tar.zst"), strings.HasSuffix(name, ".tzst"):
		enc, err := zstd.NewWriter(w, zstd.WithEncoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
		}
		return enc, nil
	default:
		return nopWriteCloser{w}, nil
	}
}

// writeTar walks root and writes a tar stream to w. Entry names are relative
// to root. It returns the number of entries written.
func writeTar(a *wad.Archive, root string, w io.Writer) (int, error) {
	type item struct {
		name string
		path string
		info types.NodeInfo
	}
	var items []item
	prefix := strings.TrimSuffix(root, "/") + "/"
	err := a.Walk(root, func(p string, info types.NodeInfo) error {
		name := strings.TrimPrefix(p, prefix)
		if name == "" || p+"/" == prefix {
			return nil
		}
		items = append(items, item{name: name, path: p, info: info})
		return nil
	})
	if err != nil {
		return 0, err
	}

	modTime := time.Now()
	if fi, err := os.Stat(a.Path()); err == nil {
		modTime = fi.ModTime()
	}

	tw := tar.NewWriter(w)
	for i, it := range items {
		if it.info.Kind.IsDir() {
			err := tw.WriteHeader(&tar.Header{
				Typeflag: tar.TypeDir,
				Name:     it.name + "/",
				Mode:     0o755,
				ModTime:  modTime,
			})
			if err != nil {
				return i, err
			}
			continue
		}

		err := tw.WriteHeader(&tar.Header{
			Typeflag: tar.TypeReg,
			Name:     it.name,
			Mode:     0o644,
			Size:     int64(it.info.Size),
			ModTime:  modTime,
		})
		if err != nil {
			return i, err
		}
		buf := make([]byte, it.info.Size)
		n, err := a.ReadContents(it.path, buf, 0)
		if err != nil {
			return i, err
		}
		// A lump cut short by the end of the file is padded with zeros.
		clear(buf[n:])
		if _, err := tw.Write(buf); err != nil {
			return i, err
		}
		printVerbose("  %s (%d bytes)\n", it.name, it.info.Size)
	}
	return len(items), tw.Close()
}
