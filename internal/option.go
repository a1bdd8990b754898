package internal

import (
	"io"
	"time"

	"github.com/starford/vaultroll/internal/hooks"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config   *RunConfig
	now      func() time.Time
	launcher hooks.Launcher
	console  io.Writer
}

// WithConfig sets the run configuration.
func WithConfig(cfg *RunConfig) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithClock overrides the clock used for {date} and backup timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *application) {
		a.now = now
	}
}

// WithLauncher replaces the process launcher used by post-provision hooks.
func WithLauncher(l hooks.Launcher) Option {
	return func(a *application) {
		a.launcher = l
	}
}

// WithConsole redirects console log output.
func WithConsole(w io.Writer) Option {
	return func(a *application) {
		a.console = w
	}
}
