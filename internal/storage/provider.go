// Package storage defines the filesystem abstraction vaults are provisioned through.
package storage

import "github.com/starford/vaultroll/internal/models"

// Provider is the interface for vault file operations. All paths are relative
// to the base directory that holds the yearly vaults.
type Provider interface {
	// Exists reports whether path exists (file, directory or symlink).
	Exists(path string) bool
	// IsDir reports whether path exists and is a directory.
	IsDir(path string) bool
	// MkdirAll creates path and any missing parents.
	MkdirAll(path string) error
	// CopyTree recursively copies src to dst, overwriting files already at dst.
	CopyTree(src, dst string) error
	// CopyFile copies a single file, creating missing parents of dst.
	CopyFile(src, dst string) error
	// RemoveAll deletes path and everything under it.
	RemoveAll(path string) error
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write writes content to path, creating parents and truncating existing files.
	Write(path string, content []byte) error
	// List returns metadata for every regular file under dir, with paths relative to dir.
	List(dir string) ([]models.FileMetadata, error)
	// Abs maps a provider path to its location on the host filesystem.
	Abs(path string) string
}
