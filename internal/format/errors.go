package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrNameEmpty indicates an empty lump or directory name.
	ErrNameEmpty = errors.New("format: empty name")
	// ErrNameTooLong indicates a name that does not fit the 8-byte field.
	ErrNameTooLong = errors.New("format: name too long")
	// ErrNameInvalid indicates a name with bytes that cannot be stored.
	ErrNameInvalid = errors.New("format: invalid name")
)
