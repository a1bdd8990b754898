// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/starford/vaultroll/internal/apperr"
	"github.com/starford/vaultroll/internal/backup"
	"github.com/starford/vaultroll/internal/checksum"
	"github.com/starford/vaultroll/internal/hooks"
	"github.com/starford/vaultroll/internal/logging"
	"github.com/starford/vaultroll/internal/models"
	"github.com/starford/vaultroll/internal/pipeline"
	"github.com/starford/vaultroll/internal/storage"
	"github.com/starford/vaultroll/internal/validator"
	"github.com/starford/vaultroll/internal/vault"
	pkgconfig "github.com/starford/vaultroll/pkg/config"
)

// Run loads the vault configuration and provisions the target vault with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{
		now:      time.Now,
		launcher: hooks.ExecLauncher{},
		console:  os.Stdout,
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid run configuration: %w", err)
	}

	logger, _, err := logging.New(logging.Options{Level: cfg.LogLevel, Console: app.console})
	if err != nil {
		return err
	}

	vcfg := &models.Config{}
	if err := pkgconfig.Load(cfg.ConfigPath, vcfg); err != nil {
		logger.Error("Failed to load configuration",
			slog.String("config", cfg.ConfigPath),
			slog.String("error", err.Error()))
		return err
	}

	if vcfg.Options.LogOperations {
		fileLogger, closeLog, err := logging.New(logging.Options{
			Level:    cfg.LogLevel,
			Console:  app.console,
			FilePath: cfg.LogFile,
		})
		if err != nil {
			logger.Warn("Operations log unavailable", slog.String("error", err.Error()))
		} else {
			logger = fileLogger
			defer closeLog()
		}
	}

	logger.Info("Configuration loaded",
		slog.String("config", cfg.ConfigPath),
		slog.String("base_vault_path", vcfg.BaseVaultPath),
		slog.Int("source_year", cfg.SourceYear),
		slog.Int("target_year", cfg.TargetYear),
		slog.Bool("force", cfg.Force),
		slog.Bool("validate_only", cfg.ValidateOnly))

	run := vault.NewRun(vcfg, cfg.SourceYear, cfg.TargetYear, cfg.Force, cfg.ValidateOnly)
	if err := app.provision(ctx, logger, run); err != nil {
		logger.Error("Provisioning aborted", slog.String("error", err.Error()))
		return err
	}
	return nil
}

func (a *application) provision(ctx context.Context, logger *slog.Logger, run vault.Run) error {
	opts := run.Config.Options

	store, err := storage.NewFS(run.Config.BaseVaultPath)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("%w: base vault path %s does not exist", apperr.ErrSourceMissing, run.Config.BaseVaultPath)
		}
		return err
	}

	res, err := validator.Validate(store, run)
	if err != nil {
		return err
	}
	logger.Info("Validation passed",
		slog.String("source", store.Abs(run.Source)),
		slog.String("target", store.Abs(run.Target)))

	if run.ValidateOnly {
		logger.Info("Validate-only run, no changes made")
		return nil
	}

	if res.TargetExists {
		logger.Warn("Target vault exists and will be overwritten", slog.String("target", store.Abs(run.Target)))
		if opts.BackupBeforeCreate {
			dst, err := backup.Create(store, run.Target, a.now())
			if err != nil {
				return err
			}
			logger.Info("Backup created", slog.String("path", store.Abs(dst)))
		}
	}

	result, err := pipeline.New(store, logger, a.now).Run(run)
	if err != nil {
		return err
	}

	attrs := []any{
		slog.Int("applied", len(result.Applied)),
		slog.Int("skipped", len(result.Skipped)),
		slog.Int("errors", len(result.Errors)),
	}
	if files, err := store.List(run.Target); err == nil {
		attrs = append(attrs, slog.Int("files", len(files)), slog.String("digest", checksum.Tree(files)))
	}
	logger.Info("Pipeline finished", attrs...)

	target := store.Abs(run.Target)

	if opts.CreateGitRepo {
		if err := hooks.InitRepository(ctx, a.launcher, target, run.TargetYear); err != nil {
			logger.Warn("Git repository initialisation failed", slog.String("error", err.Error()))
		} else {
			logger.Info("Git repository initialised", slog.String("path", target))
		}
	}

	if opts.OpenNewVault {
		if err := hooks.NewOpener(a.launcher).Open(ctx, target); err != nil {
			logger.Warn("Could not open the new vault; open it manually from the viewer's vault switcher",
				slog.String("path", target),
				slog.String("error", err.Error()))
		} else {
			logger.Info("Opened new vault", slog.String("path", target))
		}
	}

	logger.Info("Vault provisioned", slog.Int("year", run.TargetYear), slog.String("path", target))
	return nil
}
