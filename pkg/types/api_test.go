package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("create /F/X: %w", ErrNotDirectory)
	kind, ok := KindOf(wrapped)
	require.True(t, ok)
	require.Equal(t, ErrKindInvalid, kind)
	require.True(t, errors.Is(wrapped, ErrNotDirectory))

	_, ok = KindOf(errors.New("plain"))
	require.False(t, ok)
	_, ok = KindOf(nil)
	require.False(t, ok)
}

func TestErrorMessage(t *testing.T) {
	e := &Error{Kind: ErrKindIO, Msg: "write", Err: errors.New("disk full")}
	require.Equal(t, "write: disk full", e.Error())
	require.Equal(t, "path not found", ErrNotFound.Error())

	var nilErr *Error
	require.Equal(t, "<nil>", nilErr.Error())
}

func TestNodeKind(t *testing.T) {
	require.True(t, NamespaceDirectory.IsDir())
	require.True(t, MapDirectory.IsDir())
	require.False(t, StandardFile.IsDir())
	require.Equal(t, "map", MapDirectory.String())
	require.Equal(t, "NodeKind(9)", NodeKind(9).String())

	b, err := json.Marshal(NodeInfo{Name: "F", Kind: NamespaceDirectory})
	require.NoError(t, err)
	require.Contains(t, string(b), `"kind":"namespace"`)
}
