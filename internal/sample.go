package internal

import (
	"errors"
	"fmt"
	"os"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/starford/vaultroll/internal/apperr"
	"github.com/starford/vaultroll/internal/models"
	pkgconfig "github.com/starford/vaultroll/pkg/config"
)

// SampleConfig returns the configuration written by `init`.
func SampleConfig() *models.Config {
	baseFiles := orderedmap.New[string, string]()
	baseFiles.Set("Home.md", "# {year}\n\nVault created on {date}.\n")
	baseFiles.Set("Journal/{year}-01-01.md", "# New year {year}\n")

	return &models.Config{
		BaseVaultPath:       "${HOME}/Documents/Vaults",
		NamePattern:         "Vault-{year}",
		CopyComplete:        []string{".obsidian", "Templates", "Areas"},
		ExcludeFromObsidian: []string{".obsidian/workspace.json", ".obsidian/workspace-mobile.json", ".obsidian/cache"},
		CopyFiles:           []string{"README.md", "Areas/Index.md"},
		CreateEmptyFolders:  []string{"Inbox", "Journal", "Projects", "Archive"},
		CreateBaseFiles:     baseFiles,
		Options: models.Options{
			CreateGitRepo:      false,
			OpenNewVault:       true,
			BackupBeforeCreate: true,
			LogOperations:      true,
		},
	}
}

// WriteSampleConfig writes SampleConfig to path, encoded by its extension.
// An existing file is only replaced when force is set.
func WriteSampleConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s: %w", path, apperr.ErrAlreadyExists)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	data, err := pkgconfig.Encode(pkgconfig.FormatOf(path), SampleConfig())
	if err != nil {
		return fmt.Errorf("encode sample config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
