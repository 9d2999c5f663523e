package wad

import (
	"errors"

	"github.com/aidantambling/Fuse-Wad-Explorer/pkg/types"
)

// The methods in this file report failures as sentinel values instead of
// errors: -1 for a missing path or wrong node kind, 0 for a rejected write.
// They are what a filesystem adapter that dispatches one request at a time
// expects; everything else should use the error-returning methods.

// IsContent reports whether p names a lump.
func (a *Archive) IsContent(p string) bool {
	info, err := a.Stat(p)
	return err == nil && info.Kind == types.StandardFile
}

// IsDirectory reports whether p names a namespace or map directory.
func (a *Archive) IsDirectory(p string) bool {
	info, err := a.Stat(p)
	return err == nil && info.Kind.IsDir()
}

// GetSize returns the lump length of p, or -1.
func (a *Archive) GetSize(p string) int {
	info, err := a.Stat(p)
	if err != nil || info.Kind != types.StandardFile {
		return -1
	}
	return int(info.Size)
}

// GetContents copies up to len(buf) bytes of p starting offset bytes into
// the lump. It returns the number of bytes copied, or -1.
func (a *Archive) GetContents(p string, buf []byte, offset int) int {
	n, err := a.ReadContents(p, buf, int64(offset))
	if err != nil {
		if n > 0 {
			return n
		}
		return -1
	}
	return n
}

// GetDirectory returns the child names of p in descriptor order and their
// count, or nil and -1.
func (a *Archive) GetDirectory(p string) ([]string, int) {
	children, err := a.List(p)
	if err != nil {
		return nil, -1
	}
	names := make([]string, len(children))
	for i, c := range children {
		names[i] = c.Name
	}
	return names, len(names)
}

// CreateDirectory is Mkdir with failures only logged. Like Mkdir it refuses
// a name that already exists in the parent, so a duplicate call is a no-op.
func (a *Archive) CreateDirectory(p string) {
	if err := a.Mkdir(p); err != nil {
		a.log.Debug("create directory rejected", "path", p, "error", err)
	}
}

// CreateFile is Mknod with failures only logged. Duplicate names are
// refused: creating a lump that already exists in the parent leaves the
// archive unchanged, even though the format itself allows repeated names.
func (a *Archive) CreateFile(p string) {
	if err := a.Mknod(p); err != nil {
		a.log.Debug("create file rejected", "path", p, "error", err)
	}
}

// WriteToFile gives the empty lump p its content. It returns len(buf), 0 if
// the lump already has content, or -1.
func (a *Archive) WriteToFile(p string, buf []byte, offset int) int {
	n, err := a.Write(p, buf, int64(offset))
	switch {
	case err == nil:
		return n
	case errors.Is(err, types.ErrAlreadyWritten):
		return 0
	default:
		a.log.Debug("write rejected", "path", p, "error", err)
		return -1
	}
}
