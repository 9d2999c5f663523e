// Package wad exposes a WAD archive as a hierarchical namespace and edits it
// in place.
//
// # Overview
//
// A WAD file is a 12-byte header followed somewhere by a flat table of
// 16-byte descriptors. Each descriptor names a lump (a byte range of the file)
// or acts as a marker. This package rebuilds the hierarchy that the markers
// imply:
//
//   - "XX_START" ... "XX_END" brackets a namespace directory named "XX".
//   - "E1M1"-style names head a map directory that owns the next ten records.
//   - Everything else is a lump (a regular file).
//
// # File Structure
//
//	[Header 12B] [lump data ...] [descriptor table 16B * count] [lump data ...]
//
// # Opening an Archive
//
//	a, err := wad.Open("/path/to/doom.wad", wad.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer a.Close()
//
//	names, _ := a.GetDirectory("/")
//
// # Editing
//
// Mkdir, Mknod and Write insert records (and lump bytes) into the middle of
// the file and patch every offset the insertion displaced, both on disk and
// in the in-memory tree. Each lump may be written exactly once.
//
// # Concurrency
//
// An Archive is safe for concurrent use: reads share a lock and mutations
// hold it exclusively. On unix a mutation also holds flock(LOCK_EX) on the
// backing file so cooperating processes do not interleave edits.
package wad
