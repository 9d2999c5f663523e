package fuse

import (
	"errors"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/aidantambling/Fuse-Wad-Explorer/pkg/types"
)

const (
	dirMode  = syscall.S_IFDIR | 0o755
	fileMode = syscall.S_IFREG | 0o755
)

// toErrno maps an engine error to the errno returned to the kernel.
func toErrno(err error) syscall.Errno {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, types.ErrNotFound):
		return syscall.ENOENT
	case errors.Is(err, types.ErrExists):
		return syscall.EEXIST
	case errors.Is(err, types.ErrNotDirectory):
		return syscall.ENOTDIR
	case errors.Is(err, types.ErrNotContent):
		return syscall.EISDIR
	case errors.Is(err, types.ErrReadOnly):
		return syscall.EROFS
	case errors.Is(err, types.ErrTooLarge):
		return syscall.EFBIG
	case errors.Is(err, types.ErrInvalidName):
		return syscall.EINVAL
	}
	switch kind, _ := types.KindOf(err); kind {
	case types.ErrKindInvalid:
		return syscall.EINVAL
	case types.ErrKindNotFound:
		return syscall.ENOENT
	default:
		return syscall.EIO
	}
}

// fillAttr sets the attributes of the node described by info. Everything is
// owned by the caller that asked.
func fillAttr(out *fuse.Attr, info types.NodeInfo, owner fuse.Owner) {
	out.Owner = owner
	if info.Kind.IsDir() {
		out.Mode = dirMode
		out.Nlink = 2
		out.Size = 0
		return
	}
	out.Mode = fileMode
	out.Nlink = 1
	out.Size = uint64(info.Size)
	out.Blocks = (out.Size + 511) / 512
}

func entryMode(kind types.NodeKind) uint32 {
	if kind.IsDir() {
		return syscall.S_IFDIR
	}
	return syscall.S_IFREG
}
