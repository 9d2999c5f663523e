package wad

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionsLogger(t *testing.T) {
	require.False(t, Options{}.logger().Enabled(t.Context(), slog.LevelError),
		"default logger must not format records")

	l := slog.New(slog.DiscardHandler)
	require.Same(t, l, Options{Logger: l}.logger())
}
