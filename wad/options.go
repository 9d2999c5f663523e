package wad

import "log/slog"

// Options controls how an archive is opened.
type Options struct {
	// Logger receives diagnostics (malformed nesting at debug, mutation
	// failures at error). If nil, a no-op logger is used.
	Logger *slog.Logger

	// ReadOnly rejects every mutation with types.ErrReadOnly.
	ReadOnly bool

	// Sync flushes file data to stable storage after each mutation.
	Sync bool
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}
