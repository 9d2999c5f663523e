package main

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aidantambling/Fuse-Wad-Explorer/wad"
)

// testArchive builds:
//
//	/F/        namespace
//	/F/A       "alpha"
//	/F/G/      namespace
//	/F/G/B     empty
//	/README    "hello"
func testArchive(t *testing.T) (string, *wad.Archive) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.wad")
	a, err := wad.Create(path, "PWAD", wad.Options{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	steps := []func() error{
		func() error { return a.Mkdir("/F") },
		func() error { return a.Mknod("/F/A") },
		func() error { _, err := a.Write("/F/A", []byte("alpha"), 0); return err },
		func() error { return a.Mkdir("/F/G") },
		func() error { return a.Mknod("/F/G/B") },
		func() error { return a.Mknod("/README") },
		func() error { _, err := a.Write("/README", []byte("hello"), 0); return err },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("build test archive: %v", err)
		}
	}
	return path, a
}

// testHelper drives a Model the way the Bubbletea runtime would, running
// commands synchronously.
type testHelper struct {
	t     *testing.T
	model Model
}

func newTestHelper(t *testing.T) *testHelper {
	t.Helper()
	_, a := testArchive(t)
	h := &testHelper{t: t, model: NewModel(a)}
	h.run(h.model.Init())
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return h
}

func (h *testHelper) send(msg tea.Msg) *testHelper {
	updated, cmd := h.model.Update(msg)
	h.model = updated.(Model)
	h.run(cmd)
	return h
}

func (h *testHelper) key(k tea.KeyType) *testHelper {
	return h.send(tea.KeyMsg{Type: k})
}

func (h *testHelper) runes(s string) *testHelper {
	return h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// run executes cmd and feeds its message back. Timers such as the status
// clear tick are dropped.
func (h *testHelper) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(100 * time.Millisecond):
		return
	}

	switch msg := msg.(type) {
	case nil, tea.QuitMsg:
	case tea.BatchMsg:
		for _, c := range msg {
			h.run(c)
		}
	default:
		h.send(msg)
	}
}

func (h *testHelper) paths() []string {
	out := make([]string, len(h.model.items))
	for i, it := range h.model.items {
		out[i] = it.Path
	}
	return out
}
