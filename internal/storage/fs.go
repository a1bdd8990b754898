package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/starford/vaultroll/internal/apperr"
	"github.com/starford/vaultroll/internal/checksum"
	"github.com/starford/vaultroll/internal/models"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// FS implements Provider on top of a billy filesystem.
type FS struct {
	fs   billy.Filesystem
	root string // absolute host path of fs, empty for in-memory filesystems
}

// NewFS creates a new FS provider rooted at the given host directory.
// The directory must already exist.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("storage: root %s: %w", abs, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("storage: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: root is not a directory: %s", abs)
	}
	return &FS{fs: osfs.New(abs), root: abs}, nil
}

// NewMemFS creates an FS provider backed by an empty in-memory filesystem.
func NewMemFS() *FS {
	return &FS{fs: memfs.New()}
}

// safePath cleans a relative path and rejects anything that is absolute
// or escapes the root (directory traversal).
func (f *FS) safePath(rel string) (string, error) {
	if rel == "" || rel == "." {
		return ".", nil
	}
	slashed := filepath.ToSlash(rel)
	if filepath.IsAbs(rel) || strings.HasPrefix(slashed, "/") {
		return "", fmt.Errorf("storage: absolute paths not allowed: %s: %w", rel, apperr.ErrInvalidPath)
	}
	cleaned := path.Clean(slashed)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("storage: path escapes root: %s: %w", rel, apperr.ErrInvalidPath)
	}
	return filepath.FromSlash(cleaned), nil
}

// Abs returns the host path for rel. In-memory filesystems return the cleaned
// relative path unchanged.
func (f *FS) Abs(rel string) string {
	p, err := f.safePath(rel)
	if err != nil {
		p = rel
	}
	if f.root == "" {
		return p
	}
	return filepath.Join(f.root, p)
}

func (f *FS) lstat(rel string) (os.FileInfo, error) {
	p, err := f.safePath(rel)
	if err != nil {
		return nil, err
	}
	return f.fs.Lstat(p)
}

// Exists reports whether rel exists.
func (f *FS) Exists(rel string) bool {
	_, err := f.lstat(rel)
	return err == nil
}

// IsDir reports whether rel is a directory.
func (f *FS) IsDir(rel string) bool {
	p, err := f.safePath(rel)
	if err != nil {
		return false
	}
	info, err := f.fs.Stat(p)
	return err == nil && info.IsDir()
}

// MkdirAll creates rel and its parents.
func (f *FS) MkdirAll(rel string) error {
	p, err := f.safePath(rel)
	if err != nil {
		return err
	}
	if err := f.fs.MkdirAll(p, dirPerm); err != nil {
		return fmt.Errorf("storage: mkdir %s: %w", rel, err)
	}
	return nil
}

// CopyTree copies src into dst recursively. Existing files at dst are
// overwritten, other existing content is left alone.
func (f *FS) CopyTree(src, dst string) error {
	from, err := f.safePath(src)
	if err != nil {
		return err
	}
	to, err := f.safePath(dst)
	if err != nil {
		return err
	}
	info, err := f.fs.Lstat(from)
	if err != nil {
		return fmt.Errorf("storage: copy %s: %w", src, err)
	}
	if err := f.copyEntry(from, to, info); err != nil {
		return fmt.Errorf("storage: copy %s: %w", src, err)
	}
	return nil
}

func (f *FS) copyEntry(from, to string, info os.FileInfo) error {
	switch {
	case info.Mode()&os.ModeSymlink != 0:
		return f.copySymlink(from, to)
	case info.IsDir():
		if err := f.fs.MkdirAll(to, info.Mode().Perm()|0o700); err != nil {
			return err
		}
		entries, err := f.fs.ReadDir(from)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if err := f.copyEntry(f.fs.Join(from, e.Name()), f.fs.Join(to, e.Name()), e); err != nil {
				return err
			}
		}
		return nil
	default:
		return f.copyRegular(from, to, info.Mode().Perm())
	}
}

func (f *FS) copySymlink(from, to string) error {
	target, err := f.fs.Readlink(from)
	if err != nil {
		return err
	}
	if _, err := f.fs.Lstat(to); err == nil {
		if err := util.RemoveAll(f.fs, to); err != nil {
			return err
		}
	}
	return f.fs.Symlink(target, to)
}

func (f *FS) copyRegular(from, to string, perm os.FileMode) error {
	in, err := f.fs.Open(from)
	if err != nil {
		return err
	}
	defer in.Close()

	if perm == 0 {
		perm = filePerm
	}
	out, err := f.fs.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// CopyFile copies the single file src to dst.
func (f *FS) CopyFile(src, dst string) error {
	from, err := f.safePath(src)
	if err != nil {
		return err
	}
	to, err := f.safePath(dst)
	if err != nil {
		return err
	}
	info, err := f.fs.Stat(from)
	if err != nil {
		return fmt.Errorf("storage: copy %s: %w", src, err)
	}
	if info.IsDir() {
		return fmt.Errorf("storage: copy %s: is a directory", src)
	}
	if err := f.fs.MkdirAll(filepath.Dir(to), dirPerm); err != nil {
		return fmt.Errorf("storage: mkdir for copy: %w", err)
	}
	if err := f.copyRegular(from, to, info.Mode().Perm()); err != nil {
		return fmt.Errorf("storage: copy %s: %w", src, err)
	}
	return nil
}

// RemoveAll deletes rel recursively. The root itself can not be removed.
func (f *FS) RemoveAll(rel string) error {
	p, err := f.safePath(rel)
	if err != nil {
		return err
	}
	if p == "." {
		return fmt.Errorf("storage: refusing to remove root: %w", apperr.ErrInvalidPath)
	}
	if err := util.RemoveAll(f.fs, p); err != nil {
		return fmt.Errorf("storage: remove %s: %w", rel, err)
	}
	return nil
}

// Read returns the raw bytes of a file.
func (f *FS) Read(rel string) ([]byte, error) {
	p, err := f.safePath(rel)
	if err != nil {
		return nil, err
	}
	file, err := f.fs.Open(p)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", rel, err)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", rel, err)
	}
	return data, nil
}

// Write writes content to rel, replacing any existing file.
func (f *FS) Write(rel string, content []byte) error {
	p, err := f.safePath(rel)
	if err != nil {
		return err
	}
	if err := f.fs.MkdirAll(filepath.Dir(p), dirPerm); err != nil {
		return fmt.Errorf("storage: mkdir: %w", err)
	}
	if err := util.WriteFile(f.fs, p, content, filePerm); err != nil {
		return fmt.Errorf("storage: write %s: %w", rel, err)
	}
	return nil
}

// List walks dir and returns metadata for every regular file, sorted by path.
func (f *FS) List(dir string) ([]models.FileMetadata, error) {
	base, err := f.safePath(dir)
	if err != nil {
		return nil, err
	}
	var out []models.FileMetadata
	if err := f.walk(base, "", &out); err != nil {
		return nil, fmt.Errorf("storage: list: %w", err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (f *FS) walk(abs, rel string, out *[]models.FileMetadata) error {
	entries, err := f.fs.ReadDir(abs)
	if err != nil {
		return err
	}
	for _, e := range entries {
		childRel := path.Join(rel, e.Name())
		childAbs := f.fs.Join(abs, e.Name())
		if e.IsDir() {
			if err := f.walk(childAbs, childRel, out); err != nil {
				return err
			}
			continue
		}
		if !e.Mode().IsRegular() {
			continue
		}
		data, err := f.Read(childAbs)
		if err != nil {
			return err
		}
		*out = append(*out, models.FileMetadata{
			Path:     childRel,
			Size:     e.Size(),
			Checksum: checksum.Sum(data),
		})
	}
	return nil
}
