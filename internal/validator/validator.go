// Package validator gates a provisioning run before anything is written.
package validator

import (
	"fmt"
	"path"

	"github.com/starford/vaultroll/internal/apperr"
	"github.com/starford/vaultroll/internal/storage"
	"github.com/starford/vaultroll/internal/vault"
)

// Result is the outcome of validating a run.
type Result struct {
	SourceValid  bool
	TargetExists bool
}

// VaultExists reports whether dir is a directory containing the vault marker.
// The marker may be a file or a directory.
func VaultExists(store storage.Provider, dir string) bool {
	return store.IsDir(dir) && store.Exists(path.Join(dir, vault.MarkerDir))
}

// Validate checks, in order, that the source vault exists and that the target
// does not exist unless the run is forced. It never writes.
func Validate(store storage.Provider, run vault.Run) (Result, error) {
	var res Result

	res.SourceValid = VaultExists(store, run.Source)
	if !res.SourceValid {
		return res, fmt.Errorf("%w: %s", apperr.ErrSourceMissing, run.SourcePath())
	}

	res.TargetExists = store.Exists(run.Target)
	if res.TargetExists && !run.Force {
		return res, fmt.Errorf("%w: %s (use --force to overwrite)", apperr.ErrTargetExists, run.TargetPath())
	}

	return res, nil
}
