package types

import (
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindMalformed ErrKind = iota // header/table cannot be read
	ErrKindNotFound                 // path does not resolve
	ErrKindInvalid                  // wrong node kind, bad name, already written
	ErrKindIO                       // backing file could not be opened/read/written
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindMalformed:
		return "malformed"
	case ErrKindNotFound:
		return "not found"
	case ErrKindInvalid:
		return "invalid operation"
	case ErrKindIO:
		return "io failure"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels commonly returned by the engine. Wrap them with fmt.Errorf("%w")
// to add context; KindOf still finds the category.
var (
	// ErrMalformed indicates the header or descriptor table could not be read.
	ErrMalformed = &Error{Kind: ErrKindMalformed, Msg: "malformed archive"}
	// ErrNotFound indicates a path that does not resolve.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "path not found"}
	// ErrNotDirectory indicates a namespace directory was required.
	ErrNotDirectory = &Error{Kind: ErrKindInvalid, Msg: "not a namespace directory"}
	// ErrNotContent indicates a lump was required.
	ErrNotContent = &Error{Kind: ErrKindInvalid, Msg: "not content"}
	// ErrInvalidName indicates an empty, oversized or unencodable name.
	ErrInvalidName = &Error{Kind: ErrKindInvalid, Msg: "invalid name"}
	// ErrInvalidOffset indicates a negative lump offset.
	ErrInvalidOffset = &Error{Kind: ErrKindInvalid, Msg: "invalid offset"}
	// ErrReservedName indicates a lump name that would parse as a marker.
	ErrReservedName = &Error{Kind: ErrKindInvalid, Msg: "reserved name"}
	// ErrExists indicates the parent already has a child with that name.
	ErrExists = &Error{Kind: ErrKindInvalid, Msg: "already exists"}
	// ErrAlreadyWritten indicates a lump that already has content.
	ErrAlreadyWritten = &Error{Kind: ErrKindInvalid, Msg: "content already written"}
	// ErrReadOnly indicates a mutation on an archive opened read-only.
	ErrReadOnly = &Error{Kind: ErrKindInvalid, Msg: "archive is read-only"}
	// ErrTooLarge indicates an offset would no longer fit in 32 bits.
	ErrTooLarge = &Error{Kind: ErrKindInvalid, Msg: "archive would exceed 4 GiB"}
	// ErrIO indicates the backing file could not be accessed.
	ErrIO = &Error{Kind: ErrKindIO, Msg: "archive i/o failure"}
)

// KindOf returns the category of the first *Error in err's chain.
func KindOf(err error) (ErrKind, bool) {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e.Kind, true
	}
	return 0, false
}

// -----------------------------------------------------------------------------
// Core Identifiers & Metadata
// -----------------------------------------------------------------------------

// NodeID is a stable handle into an archive's node arena. The root is 0.
type NodeID uint32

// RootID is the handle of the "/" directory.
const RootID NodeID = 0

// NodeKind tags the variant of a tree node.
type NodeKind uint8

const (
	StandardFile       NodeKind = iota // lump with content
	NamespaceDirectory                 // XX_START ... XX_END
	MapDirectory                       // ExMy plus its fixed record window
)

func (k NodeKind) String() string {
	switch k {
	case StandardFile:
		return "file"
	case NamespaceDirectory:
		return "namespace"
	case MapDirectory:
		return "map"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// MarshalText renders the kind by name in JSON output.
func (k NodeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsDir reports whether nodes of this kind list children.
func (k NodeKind) IsDir() bool {
	return k == NamespaceDirectory || k == MapDirectory
}

// NodeInfo is a snapshot of one tree node.
type NodeInfo struct {
	ID       NodeID   `json:"id"`
	Name     string   `json:"name"`
	Kind     NodeKind `json:"kind"`
	Children int      `json:"children"`

	// Size and Offset locate the lump of a StandardFile. For markers Offset
	// is the value stored in the marker record.
	Size   uint32 `json:"size"`
	Offset uint32 `json:"offset"`

	// DescriptorOffset is the file position of the record that opens the
	// node; ClosingDescriptorOffset is where a new child record would go.
	DescriptorOffset        uint32 `json:"descriptorOffset"`
	ClosingDescriptorOffset uint32 `json:"closingDescriptorOffset"`
}

// ArchiveInfo exposes header metadata.
type ArchiveInfo struct {
	Path            string `json:"path"`
	Magic           string `json:"magic"`
	DescriptorCount uint32 `json:"descriptorCount"`
	TableOffset     uint32 `json:"tableOffset"`
	FileSize        int64  `json:"fileSize"`
	Nodes           int    `json:"nodes"`
}

// Descriptor is a snapshot of one descriptor record.
type Descriptor struct {
	Index    int    `json:"index"`
	Position uint32 `json:"position"` // file offset of the record itself
	Offset   uint32 `json:"offset"`
	Length   uint32 `json:"length"`
	Name     string `json:"name"`
}
