// Package testutil provides shared test helpers for setting up vault roots.
package testutil

import (
	"path"
	"testing"

	"github.com/starford/vaultroll/internal/storage"
)

// TestRoot creates a temporary base directory with a storage.FS rooted at it.
func TestRoot(t *testing.T) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// MakeVault creates a vault named name (with its .obsidian marker) and the
// given files, keyed by path relative to the vault.
func MakeVault(t *testing.T, store storage.Provider, name string, files map[string]string) {
	t.Helper()
	if err := store.MkdirAll(path.Join(name, ".obsidian")); err != nil {
		t.Fatal(err)
	}
	for p, content := range files {
		if err := store.Write(path.Join(name, p), []byte(content)); err != nil {
			t.Fatal(err)
		}
	}
}

// ReadString reads a file through store and fails the test on error.
func ReadString(t *testing.T, store storage.Provider, p string) string {
	t.Helper()
	data, err := store.Read(p)
	if err != nil {
		t.Fatalf("Read %s: %v", p, err)
	}
	return string(data)
}
