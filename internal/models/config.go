// Package models defines the domain types for vaultroll.
package models

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// YearToken is the placeholder replaced by the vault year in name patterns and templates.
const YearToken = "{year}"

// Config is the declarative description of how a new yearly vault is cloned
// from the previous one. It is treated as immutable once loaded.
type Config struct {
	BaseVaultPath       string                                 `json:"base_vault_path" yaml:"base_vault_path"`
	NamePattern         string                                 `json:"name_pattern" yaml:"name_pattern"`
	CopyComplete        []string                               `json:"copy_complete" yaml:"copy_complete"`
	ExcludeFromObsidian []string                               `json:"exclude_from_obsidian" yaml:"exclude_from_obsidian"`
	CopyFiles           []string                               `json:"copy_files" yaml:"copy_files"`
	CreateEmptyFolders  []string                               `json:"create_empty_folders" yaml:"create_empty_folders"`
	CreateBaseFiles     *orderedmap.OrderedMap[string, string] `json:"create_base_files" yaml:"create_base_files"`
	Options             Options                                `json:"options" yaml:"options"`
}

// Options are the independent switches of a provisioning run.
type Options struct {
	CreateGitRepo      bool `json:"create_git_repo" yaml:"create_git_repo"`
	OpenNewVault       bool `json:"open_new_vault" yaml:"open_new_vault"`
	BackupBeforeCreate bool `json:"backup_before_create" yaml:"backup_before_create"`
	LogOperations      bool `json:"log_operations" yaml:"log_operations"`
}

// BaseFile is one rendered-later entry of create_base_files.
type BaseFile struct {
	PathTemplate    string
	ContentTemplate string
}

// BaseFiles returns create_base_files in insertion order.
func (c *Config) BaseFiles() []BaseFile {
	if c.CreateBaseFiles == nil {
		return nil
	}
	out := make([]BaseFile, 0, c.CreateBaseFiles.Len())
	for pair := c.CreateBaseFiles.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, BaseFile{PathTemplate: pair.Key, ContentTemplate: pair.Value})
	}
	return out
}

// ExpandEnv expands environment variables in BaseVaultPath. Templates and
// relative paths are kept verbatim.
func (c *Config) ExpandEnv() {
	c.BaseVaultPath = os.ExpandEnv(c.BaseVaultPath)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var keys []string
	for _, bf := range c.BaseFiles() {
		keys = append(keys, bf.PathTemplate)
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.BaseVaultPath, validation.Required),
		validation.Field(&c.NamePattern, validation.Required, validation.By(namePattern)),
		validation.Field(&c.CopyComplete, validation.Each(relativePath)),
		validation.Field(&c.ExcludeFromObsidian, validation.Each(relativePath)),
		validation.Field(&c.CopyFiles, validation.Each(relativePath)),
		validation.Field(&c.CreateEmptyFolders, validation.Each(relativePath)),
	); err != nil {
		return err
	}
	return validation.Errors{
		"create_base_files": validation.Validate(keys, validation.Each(relativePath)),
	}.Filter()
}

var relativePath = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	return CheckRelative(s)
})

// CheckRelative reports whether p is a usable path relative to a vault root:
// non-empty, not absolute, not the root itself and free of parent-directory segments.
func CheckRelative(p string) error {
	if strings.TrimSpace(p) == "" {
		return errors.New("must not be empty")
	}
	if filepath.IsAbs(p) || strings.HasPrefix(p, "/") || strings.HasPrefix(p, `\`) {
		return errors.New("must be a relative path")
	}
	if path.Clean(strings.ReplaceAll(p, `\`, "/")) == "." {
		return errors.New("must not refer to the vault root")
	}
	for _, seg := range strings.FieldsFunc(p, isSeparator) {
		if seg == ".." {
			return errors.New("must not contain '..' segments")
		}
	}
	return nil
}

func namePattern(value interface{}) error {
	s, _ := value.(string)
	if !strings.Contains(s, YearToken) {
		return errors.New("must contain the " + YearToken + " placeholder")
	}
	return CheckRelative(s)
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}
