package fuse

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"sync"
	"syscall"
	"time"

	gofuse "github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/aidantambling/Fuse-Wad-Explorer/pkg/types"
	"github.com/aidantambling/Fuse-Wad-Explorer/wad"
)

// Options configures the FUSE mount.
type Options struct {
	// Mountpoint is the directory where the filesystem is mounted.
	Mountpoint string

	// Archive is the opened archive to expose.
	Archive *wad.Archive

	// AllowOther permits other users to access the mount. Requires
	// user_allow_other in /etc/fuse.conf.
	AllowOther bool

	// ReadOnly mounts with "ro". Open the archive with
	// wad.Options.ReadOnly as well so the engine rejects edits.
	ReadOnly bool

	// Debug logs every FUSE request to stderr.
	Debug bool

	// Logger receives diagnostic messages. If nil, a no-op logger
	// is used.
	Logger *slog.Logger
}

// Mount mounts the archive at the configured mountpoint. The caller must
// call Unmount on the returned Server when done.
func Mount(options Options) (*fuse.Server, error) {
	if options.Mountpoint == "" {
		return nil, fmt.Errorf("mountpoint is required")
	}
	if options.Archive == nil {
		return nil, fmt.Errorf("archive is required")
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}

	fi, err := os.Stat(options.Mountpoint)
	if err != nil {
		return nil, fmt.Errorf("mountpoint %s: %w", options.Mountpoint, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("mountpoint %s is not a directory", options.Mountpoint)
	}

	root := &dirNode{node: node{options: &options, path: "/"}}

	entryTimeout := 1 * time.Second
	attrTimeout := 1 * time.Second
	negativeTimeout := 100 * time.Millisecond

	mountOptions := fuse.MountOptions{
		FsName:     options.Archive.Path(),
		Name:       "wad",
		AllowOther: options.AllowOther,
		Debug:      options.Debug,
	}
	if options.ReadOnly {
		mountOptions.Options = append(mountOptions.Options, "ro")
	}

	server, err := gofuse.Mount(options.Mountpoint, root, &gofuse.Options{
		EntryTimeout:    &entryTimeout,
		AttrTimeout:     &attrTimeout,
		NegativeTimeout: &negativeTimeout,
		MountOptions:    mountOptions,
	})
	if err != nil {
		return nil, fmt.Errorf("mounting FUSE filesystem at %s: %w", options.Mountpoint, err)
	}

	options.Logger.Info("wad filesystem mounted",
		"archive", options.Archive.Path(),
		"mountpoint", options.Mountpoint,
		"read_only", options.ReadOnly,
	)
	return server, nil
}

// node is what directories and lumps share: the archive and their path in it.
type node struct {
	gofuse.Inode
	options *Options
	path    string
}

func (n *node) archive() *wad.Archive { return n.options.Archive }

func (n *node) childPath(name string) string { return path.Join(n.path, name) }

func (n *node) getattr(ctx context.Context, out *fuse.AttrOut) syscall.Errno {
	info, err := n.archive().Stat(n.path)
	if err != nil {
		return n.fail("getattr", n.path, err)
	}
	fillAttr(&out.Attr, info, callerOwner(ctx))
	return 0
}

// fail logs err at a level matching its errno and returns that errno.
func (n *node) fail(op, p string, err error) syscall.Errno {
	errno := toErrno(err)
	if errno == syscall.EIO {
		n.options.Logger.Error("wad operation failed", "op", op, "path", p, "error", err)
	} else {
		n.options.Logger.Debug("wad operation rejected", "op", op, "path", p, "error", err)
	}
	return errno
}

// newChild builds the inode for the archive entry at p.
func (n *node) newChild(ctx context.Context, p string, info types.NodeInfo, out *fuse.EntryOut) *gofuse.Inode {
	fillAttr(&out.Attr, info, callerOwner(ctx))
	if info.Kind.IsDir() {
		return n.NewInode(ctx, &dirNode{node: node{options: n.options, path: p}}, gofuse.StableAttr{Mode: syscall.S_IFDIR})
	}
	return n.NewInode(ctx, &fileNode{node: node{options: n.options, path: p}}, gofuse.StableAttr{Mode: syscall.S_IFREG})
}

func callerOwner(ctx context.Context) fuse.Owner {
	if caller, ok := fuse.FromContext(ctx); ok {
		return caller.Owner
	}
	return fuse.Owner{Uid: uint32(os.Getuid()), Gid: uint32(os.Getgid())}
}

// dirNode is a namespace or map directory.
type dirNode struct {
	node
}

var _ gofuse.InodeEmbedder = (*dirNode)(nil)
var _ gofuse.NodeLookuper = (*dirNode)(nil)
var _ gofuse.NodeReaddirer = (*dirNode)(nil)
var _ gofuse.NodeGetattrer = (*dirNode)(nil)
var _ gofuse.NodeMkdirer = (*dirNode)(nil)
var _ gofuse.NodeMknoder = (*dirNode)(nil)
var _ gofuse.NodeCreater = (*dirNode)(nil)

func (d *dirNode) Getattr(ctx context.Context, _ gofuse.FileHandle, out *fuse.AttrOut) syscall.Errno {
	return d.getattr(ctx, out)
}

func (d *dirNode) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*gofuse.Inode, syscall.Errno) {
	p := d.childPath(name)
	info, err := d.archive().Stat(p)
	if err != nil {
		return nil, toErrno(err)
	}
	return d.newChild(ctx, p, info, out), 0
}

func (d *dirNode) Readdir(_ context.Context) (gofuse.DirStream, syscall.Errno) {
	children, err := d.archive().List(d.path)
	if err != nil {
		return nil, d.fail("readdir", d.path, err)
	}
	entries := make([]fuse.DirEntry, 0, len(children))
	for _, c := range children {
		entries = append(entries, fuse.DirEntry{Name: c.Name, Mode: entryMode(c.Kind)})
	}
	return gofuse.NewListDirStream(entries), 0
}

func (d *dirNode) Mkdir(ctx context.Context, name string, _ uint32, out *fuse.EntryOut) (*gofuse.Inode, syscall.Errno) {
	p := d.childPath(name)
	if err := d.archive().Mkdir(p); err != nil {
		return nil, d.fail("mkdir", p, err)
	}
	return d.created(ctx, p, out)
}

func (d *dirNode) Mknod(ctx context.Context, name string, mode, _ uint32, out *fuse.EntryOut) (*gofuse.Inode, syscall.Errno) {
	if mode&syscall.S_IFMT != 0 && mode&syscall.S_IFMT != syscall.S_IFREG {
		return nil, syscall.EPERM
	}
	p := d.childPath(name)
	if err := d.archive().Mknod(p); err != nil {
		return nil, d.fail("mknod", p, err)
	}
	return d.created(ctx, p, out)
}

func (d *dirNode) Create(ctx context.Context, name string, flags, _ uint32, out *fuse.EntryOut) (*gofuse.Inode, gofuse.FileHandle, uint32, syscall.Errno) {
	p := d.childPath(name)
	if err := d.archive().Mknod(p); err != nil {
		return nil, nil, 0, d.fail("create", p, err)
	}
	child, errno := d.created(ctx, p, out)
	if errno != 0 {
		return nil, nil, 0, errno
	}
	var fh gofuse.FileHandle
	if writable(flags) {
		fh = newWriteHandle(&fileNode{node: node{options: d.options, path: p}})
	}
	return child, fh, fuse.FOPEN_DIRECT_IO, 0
}

func (d *dirNode) created(ctx context.Context, p string, out *fuse.EntryOut) (*gofuse.Inode, syscall.Errno) {
	info, err := d.archive().Stat(p)
	if err != nil {
		return nil, d.fail("stat", p, err)
	}
	d.options.Logger.Debug("created", "path", p, "kind", info.Kind.String())
	return d.newChild(ctx, p, info, out), 0
}

func writable(flags uint32) bool {
	return flags&(syscall.O_WRONLY|syscall.O_RDWR) != 0
}

// fileNode is a lump.
type fileNode struct {
	node
}

var _ gofuse.InodeEmbedder = (*fileNode)(nil)
var _ gofuse.NodeGetattrer = (*fileNode)(nil)
var _ gofuse.NodeSetattrer = (*fileNode)(nil)
var _ gofuse.NodeOpener = (*fileNode)(nil)
var _ gofuse.NodeReader = (*fileNode)(nil)
var _ gofuse.NodeWriter = (*fileNode)(nil)

func (f *fileNode) Getattr(ctx context.Context, _ gofuse.FileHandle, out *fuse.AttrOut) syscall.Errno {
	return f.getattr(ctx, out)
}

// Setattr accepts and ignores size, mode and time changes. Shells truncate
// before writing, and a lump cannot be resized anyway.
func (f *fileNode) Setattr(ctx context.Context, _ gofuse.FileHandle, _ *fuse.SetAttrIn, out *fuse.AttrOut) syscall.Errno {
	return f.getattr(ctx, out)
}

func (f *fileNode) Open(_ context.Context, flags uint32) (gofuse.FileHandle, uint32, syscall.Errno) {
	if !writable(flags) {
		return nil, 0, 0
	}
	return newWriteHandle(f), fuse.FOPEN_DIRECT_IO, 0
}

func (f *fileNode) Read(_ context.Context, _ gofuse.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	n, err := f.archive().ReadContents(f.path, dest, off)
	if err != nil {
		return nil, f.fail("read", f.path, err)
	}
	return fuse.ReadResultData(dest[:n]), 0
}

func (f *fileNode) Write(ctx context.Context, fh gofuse.FileHandle, data []byte, off int64) (uint32, syscall.Errno) {
	if h, ok := fh.(*writeHandle); ok {
		return h.Write(ctx, data, off)
	}
	// No handle of ours: commit directly.
	if _, err := f.archive().Write(f.path, data, off); err != nil {
		if errno := f.fail("write", f.path, err); errno == syscall.EIO {
			return 0, errno
		}
	}
	return uint32(len(data)), 0
}

// writeHandle buffers writes to one lump and commits them on Flush.
type writeHandle struct {
	mu      sync.Mutex
	file    *fileNode
	buffer  []byte
	dirty   bool
	flushed bool
}

var _ gofuse.FileWriter = (*writeHandle)(nil)
var _ gofuse.FileFlusher = (*writeHandle)(nil)
var _ gofuse.FileReleaser = (*writeHandle)(nil)

func newWriteHandle(f *fileNode) *writeHandle {
	return &writeHandle{file: f}
}

// Write places data at off in the buffer, growing it as needed.
func (h *writeHandle) Write(_ context.Context, data []byte, off int64) (uint32, syscall.Errno) {
	if off < 0 {
		return 0, syscall.EINVAL
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	end := off + int64(len(data))
	if end > int64(len(h.buffer)) {
		grown := make([]byte, end)
		copy(grown, h.buffer)
		h.buffer = grown
	}
	copy(h.buffer[off:], data)
	h.dirty = true
	return uint32(len(data)), 0
}

// Flush commits the buffered content. It runs once per handle; content
// refused because the lump already has some is dropped silently.
func (h *writeHandle) Flush(_ context.Context) syscall.Errno {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.flushed || !h.dirty {
		return 0
	}
	h.flushed = true

	n, err := h.file.archive().Write(h.file.path, h.buffer, 0)
	h.buffer = nil
	if err != nil {
		errno := h.file.fail("flush", h.file.path, err)
		if errno == syscall.EIO || errno == syscall.EROFS || errno == syscall.EFBIG {
			return errno
		}
		return 0
	}
	h.file.options.Logger.Debug("lump written", "path", h.file.path, "bytes", n)
	return 0
}

// Release is called when the last reference to the handle is dropped.
func (h *writeHandle) Release(ctx context.Context) syscall.Errno {
	return h.Flush(ctx)
}
