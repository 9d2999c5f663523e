package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aidantambling/Fuse-Wad-Explorer/internal/format"
	"github.com/aidantambling/Fuse-Wad-Explorer/wad"
)

// testWADPath builds a small archive in a temp dir and returns its path:
//
//	/F/        namespace
//	/F/A       "alpha"
//	/E1M1/     map
//	/E1M1/THINGS "things!"
//	/README    "hello"
func testWADPath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.wad")
	a, err := wad.Create(path, "PWAD", wad.Options{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer a.Close()

	steps := []func() error{
		func() error { return a.Mkdir("/F") },
		func() error { return a.Mknod("/F/A") },
		func() error { _, err := a.Write("/F/A", []byte("alpha"), 0); return err },
		func() error { return a.Mknod("/README") },
		func() error { _, err := a.Write("/README", []byte("hello"), 0); return err },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("build test archive: %v", err)
		}
	}
	appendMap(t, path)
	return path
}

// appendMap rewrites the archive at path with an E1M1 map holding one lump.
// Maps cannot be created through the engine, so the bytes are spliced in.
func appendMap(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	hdr, err := format.ParseHeader(data)
	if err != nil {
		t.Fatal(err)
	}

	// [header][old lumps][THINGS][old table][E1M1][THINGS record]
	things := []byte("things!")
	out := append([]byte{}, data[:hdr.TableOffset]...)
	thingsAt := uint32(len(out))
	out = append(out, things...)
	newTable := uint32(len(out))
	out = append(out, data[hdr.TableOffset:]...)
	out = append(out, rec(t, 0, 0, "E1M1")...)
	out = append(out, rec(t, thingsAt, uint32(len(things)), "THINGS")...)

	hdr.Count += 2
	hdr.TableOffset = newTable
	hb, err := hdr.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	copy(out, hb)
	if err := os.WriteFile(path, out, 0o644); err != nil {
		t.Fatal(err)
	}
}

func rec(t *testing.T, offset, length uint32, name string) []byte {
	t.Helper()
	d := format.Descriptor{Offset: offset, Length: length}
	copy(d.Name[:], name)
	b, err := d.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// resetFlags restores global flag state between tests.
func resetFlags() {
	verbose, quiet, jsonOut, debug = false, false, false, false
	logDir = ""
	syncWrites, readOnly = false, false
	lsRecursive, lsLong = false, false
	touchExistOK = false
	writeFrom, writeOffset = "-", 0
	newMagic = "PWAD"
	exportPath = "/"
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.Bytes()
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	return string(<-done), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}
