// Package vfs provides the in-memory virtual filesystem of a shell session.
//
// The filesystem is a flat map keyed by canonical absolute path. A directory
// listing is derived on demand by scanning keys whose prefix is the
// directory path plus "/" and whose remainder has no further separator.
//
// Invariants:
//   - The root "/" always exists and is a directory
//   - Every other node's parent exists and is a directory
//   - Directories are never deleted
//
// Example Usage:
//
//	fs := vfs.New()
//	_ = vfs.Bootstrap(fs)
//	_ = fs.Create("/home/guest/notes.txt", "hello")
//	entries, _ := fs.List("/home/guest")
package vfs
