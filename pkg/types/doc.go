// Package types defines the public data types shared by the WAD archive
// engine, its filesystem adapter and the command-line tools.
//
// Design goals:
//   - Small, copyable handles (NodeID) instead of pointers into the tree.
//   - An explicit node kind tag that callers switch on.
//   - Typed errors with stable categories (malformed/not found/invalid/io).
//
// This package has no dependencies beyond the standard library.
package types
