// Package vfs provides the small file system abstraction used for
// exports, saved documents and the directory-backed remote store.
//
// OSFS writes through the operating system; MemFS keeps everything in
// memory for tests and dry runs.
package vfs

import (
	"io/fs"
)

// FS is a minimal file system.
type FS interface {
	// ReadFile reads the entire file content.
	ReadFile(name string) ([]byte, error)

	// WriteFile replaces the content of name, creating it if necessary.
	// The parent directory must exist.
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(name string, perm fs.FileMode) error

	// Remove removes a file.
	Remove(name string) error

	// ReadDir lists a directory sorted by name.
	ReadDir(name string) ([]Entry, error)

	// Exists returns true if the path exists.
	Exists(name string) bool
}

// Entry is a directory listing entry.
type Entry struct {
	Name  string
	IsDir bool
}
