// Package checksum computes content digests for vault files and trees.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"github.com/starford/vaultroll/internal/models"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Tree returns a digest over a file listing. It depends only on the set of
// (path, checksum) pairs, not on listing order.
func Tree(files []models.FileMetadata) string {
	sorted := make([]models.FileMetadata, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	h := sha256.New()
	for _, f := range sorted {
		h.Write([]byte(f.Path))
		h.Write([]byte{0})
		h.Write([]byte(f.Checksum))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
