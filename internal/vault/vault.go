// Package vault resolves yearly vault locations and describes a provisioning run.
package vault

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/starford/vaultroll/internal/models"
)

// MarkerDir is the subdirectory whose presence makes a directory a vault.
const MarkerDir = ".obsidian"

// Name substitutes year for every {year} placeholder in pattern.
func Name(pattern string, year int) string {
	return strings.ReplaceAll(pattern, models.YearToken, strconv.Itoa(year))
}

// Resolve returns the path of the vault for year under basePath.
func Resolve(basePath, pattern string, year int) string {
	return filepath.Join(basePath, Name(pattern, year))
}

// Run is the ephemeral record of one provisioning run. Source and Target are
// relative to the configuration's base vault path.
type Run struct {
	SourceYear   int
	TargetYear   int
	Source       string
	Target       string
	Config       *models.Config
	ValidateOnly bool
	Force        bool
}

// NewRun derives source and target locations for the given years.
func NewRun(cfg *models.Config, sourceYear, targetYear int, force, validateOnly bool) Run {
	return Run{
		SourceYear:   sourceYear,
		TargetYear:   targetYear,
		Source:       Name(cfg.NamePattern, sourceYear),
		Target:       Name(cfg.NamePattern, targetYear),
		Config:       cfg,
		ValidateOnly: validateOnly,
		Force:        force,
	}
}

// SourcePath returns the absolute source vault path.
func (r Run) SourcePath() string {
	return Resolve(r.Config.BaseVaultPath, r.Config.NamePattern, r.SourceYear)
}

// TargetPath returns the absolute target vault path.
func (r Run) TargetPath() string {
	return Resolve(r.Config.BaseVaultPath, r.Config.NamePattern, r.TargetYear)
}
