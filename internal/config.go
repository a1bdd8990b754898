package internal

import (
	"errors"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/vaultroll/internal/logging"
)

// DefaultConfigFile is the vault configuration looked up in the working directory.
const DefaultConfigFile = "vault-config.json"

// RunConfig holds the invocation parameters of one provisioning run.
type RunConfig struct {
	ConfigPath   string
	TargetYear   int
	SourceYear   int
	Force        bool
	ValidateOnly bool
	LogLevel     slog.Level
	// LogFile is where operation logs go when the vault configuration enables them.
	LogFile string
}

// Validate validates the run configuration.
func (c *RunConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.ConfigPath, validation.Required),
		validation.Field(&c.TargetYear, validation.Required, validation.Min(1), validation.Max(9999)),
		validation.Field(&c.SourceYear, validation.Required, validation.Min(1), validation.Max(9999)),
		validation.Field(&c.LogFile, validation.Required),
	); err != nil {
		return err
	}
	if c.SourceYear == c.TargetYear {
		return errors.New("source year and target year must differ")
	}
	return nil
}

// NewDefaultRunConfig returns a RunConfig that provisions next year's vault
// from this year's, relative to now.
func NewDefaultRunConfig(now time.Time) *RunConfig {
	year := now.Year()
	return &RunConfig{
		ConfigPath: DefaultConfigFile,
		TargetYear: year + 1,
		SourceYear: year,
		LogLevel:   slog.LevelInfo,
		LogFile:    logging.FileName,
	}
}
