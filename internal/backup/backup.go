// Package backup copies an existing vault aside before it is overwritten.
package backup

import (
	"fmt"
	"time"

	"github.com/starford/vaultroll/internal/apperr"
	"github.com/starford/vaultroll/internal/storage"
)

// TimestampLayout is the suffix format of backup directories (YYYYMMDD-HHMMSS).
const TimestampLayout = "20060102-150405"

// Name returns the sibling backup path for target taken at ts.
func Name(target string, ts time.Time) string {
	return target + "-backup-" + ts.Format(TimestampLayout)
}

// Create copies target recursively to its backup path and returns that path.
// Any failure is reported as ErrBackupFailed; callers must not touch target
// when it is returned.
func Create(store storage.Provider, target string, ts time.Time) (string, error) {
	dst := Name(target, ts)
	if store.Exists(dst) {
		return "", fmt.Errorf("%w: %s already exists", apperr.ErrBackupFailed, dst)
	}
	if err := store.CopyTree(target, dst); err != nil {
		return "", fmt.Errorf("%w: %w", apperr.ErrBackupFailed, err)
	}
	return dst, nil
}
