// Package fuse mounts a WAD archive as a filesystem.
//
// Namespace and map directories appear as directories, lumps as regular
// files. The mount supports:
//
//   - lookup, readdir and getattr on everything;
//   - read on lumps;
//   - mkdir (namespace directories, names of one or two characters);
//   - mknod and create (empty lumps, names of up to eight bytes);
//   - write to a lump that has no content yet.
//
// # Write Path
//
// Writes on an open handle are buffered and committed as a single lump when
// the handle is flushed. A lump can receive content only once: a later
// commit is dropped with a log entry, and the writes that fed it still
// report the full length, so tools like cp do not fail half way.
package fuse
