// Package pipeline turns an empty target directory into a provisioned vault.
//
// The steps run strictly in order, each finishing every entry before the next
// starts: complete-folder copies, exclusion pruning, single-file copies,
// empty-folder scaffolding and templated files. Pruning therefore only sees
// content introduced by the copies, and scaffolding is never pruned.
package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/starford/vaultroll/internal/render"
	"github.com/starford/vaultroll/internal/storage"
	"github.com/starford/vaultroll/internal/vault"
)

// Pipeline provisions vaults through a storage provider.
type Pipeline struct {
	store  storage.Provider
	logger *slog.Logger
	now    func() time.Time
}

// New creates a pipeline. now supplies the date used for {date}; nil means time.Now.
func New(store storage.Provider, logger *slog.Logger, now func() time.Time) *Pipeline {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pipeline{store: store, logger: logger, now: now}
}

// Run executes every step for run. Entry failures are collected in the
// result; the returned error is reserved for a target that can not be created.
func (p *Pipeline) Run(run vault.Run) (*Result, error) {
	if err := p.store.MkdirAll(run.Target); err != nil {
		return nil, fmt.Errorf("create target vault: %w", err)
	}

	res := &Result{}
	cfg := run.Config

	p.copyComplete(res, run, cfg.CopyComplete)
	p.prune(res, run, cfg.ExcludeFromObsidian)
	p.copyFiles(res, run, cfg.CopyFiles)
	p.scaffold(res, run, cfg.CreateEmptyFolders)
	p.baseFiles(res, run)

	return res, nil
}

func (p *Pipeline) copyComplete(res *Result, run vault.Run, entries []string) {
	for _, entry := range entries {
		src := path.Join(run.Source, entry)
		if !p.store.Exists(src) {
			p.logger.Warn("source folder not found, skipping", slog.String("folder", entry))
			res.Skipped = append(res.Skipped, FileAction{Step: StepCopyComplete, Path: entry, Action: ActionMissing})
			continue
		}
		if err := p.store.CopyTree(src, path.Join(run.Target, entry)); err != nil {
			p.fail(res, StepCopyComplete, entry, err)
			continue
		}
		p.logger.Info("copied folder", slog.String("folder", entry))
		res.Applied = append(res.Applied, FileAction{Step: StepCopyComplete, Path: entry, Action: ActionCopied})
	}
}

// prune deletes excluded paths from the target. Absent entries are expected
// and produce no log output.
func (p *Pipeline) prune(res *Result, run vault.Run, entries []string) {
	for _, entry := range entries {
		dst := path.Join(run.Target, entry)
		if !p.store.Exists(dst) {
			res.Skipped = append(res.Skipped, FileAction{Step: StepExclude, Path: entry, Action: ActionMissing})
			continue
		}
		if err := p.store.RemoveAll(dst); err != nil {
			p.fail(res, StepExclude, entry, err)
			continue
		}
		p.logger.Info("removed excluded path", slog.String("path", entry))
		res.Applied = append(res.Applied, FileAction{Step: StepExclude, Path: entry, Action: ActionRemoved})
	}
}

// copyFiles copies single files. Unlike copyComplete, a missing source file
// is skipped without a warning.
func (p *Pipeline) copyFiles(res *Result, run vault.Run, entries []string) {
	for _, entry := range entries {
		src := path.Join(run.Source, entry)
		if !p.store.Exists(src) {
			res.Skipped = append(res.Skipped, FileAction{Step: StepCopyFiles, Path: entry, Action: ActionMissing})
			continue
		}
		if err := p.store.CopyFile(src, path.Join(run.Target, entry)); err != nil {
			p.fail(res, StepCopyFiles, entry, err)
			continue
		}
		p.logger.Info("copied file", slog.String("file", entry))
		res.Applied = append(res.Applied, FileAction{Step: StepCopyFiles, Path: entry, Action: ActionCopied})
	}
}

func (p *Pipeline) scaffold(res *Result, run vault.Run, entries []string) {
	for _, entry := range entries {
		dst := path.Join(run.Target, entry)
		if p.store.Exists(dst) {
			res.Skipped = append(res.Skipped, FileAction{Step: StepEmptyFolders, Path: entry, Action: ActionExists})
			continue
		}
		if err := p.store.MkdirAll(dst); err != nil {
			p.fail(res, StepEmptyFolders, entry, err)
			continue
		}
		p.logger.Info("created folder", slog.String("folder", entry))
		res.Applied = append(res.Applied, FileAction{Step: StepEmptyFolders, Path: entry, Action: ActionCreated})
	}
}

func (p *Pipeline) baseFiles(res *Result, run vault.Run) {
	date := p.now()
	for _, bf := range run.Config.BaseFiles() {
		name := render.Render(bf.PathTemplate, run.TargetYear, date)
		content := render.Render(bf.ContentTemplate, run.TargetYear, date)
		if err := p.store.Write(path.Join(run.Target, name), []byte(content)); err != nil {
			p.fail(res, StepBaseFiles, name, err)
			continue
		}
		p.logger.Info("created file", slog.String("file", name))
		res.Applied = append(res.Applied, FileAction{Step: StepBaseFiles, Path: name, Action: ActionWritten})
	}
}

func (p *Pipeline) fail(res *Result, step Step, entry string, err error) {
	p.logger.Error("pipeline entry failed",
		slog.String("step", string(step)),
		slog.String("path", entry),
		slog.String("error", err.Error()))
	res.Errors = append(res.Errors, EntryError{Step: step, Path: entry, Err: err})
}
