// Package mmfile maps archive files into memory for parsing.
//
// A Mapping is an io.ReaderAt over the file's bytes as they were when it was
// opened. Where mmap is unavailable the file is read into memory instead.
package mmfile
