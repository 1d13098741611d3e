// Package storage defines the vault file-system abstraction.
package storage

import "time"

// FileInfo describes one file found by a listing.
type FileInfo struct {
	// Path is relative to the vault root.
	Path     string
	Name     string
	Modified time.Time
}

// Provider is the interface for vault file operations. All paths are
// relative to the vault root.
type Provider interface {
	// List returns every .md file under dir. When recursive is false only
	// direct children are returned. A missing directory yields an empty
	// listing, not an error.
	List(dir string, recursive bool) ([]FileInfo, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Stat returns metadata for the file at path.
	Stat(path string) (FileInfo, error)
	// Exists reports whether a file or directory exists at path.
	Exists(path string) bool
	// Write atomically writes content to path, creating parent directories.
	Write(path string, content []byte) error
	// Delete removes the file at path.
	Delete(path string) error
	// Move renames oldPath to newPath.
	Move(oldPath, newPath string) error
	// Root returns the absolute vault root directory.
	Root() string
}
