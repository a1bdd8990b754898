// Package hooks runs the optional external actions that follow a successful
// provisioning run: version-control initialisation and opening the vault.
package hooks

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Launcher starts external processes. It is the only way hooks reach the
// operating system, so tests substitute a fake.
type Launcher interface {
	// Run executes name in dir and waits for it to finish.
	Run(ctx context.Context, dir, name string, args ...string) error
	// Start launches name without waiting for it.
	Start(name string, args ...string) error
	// LookPath resolves an executable on the search path.
	LookPath(name string) (string, error)
	// Exists reports whether a file exists at path.
	Exists(path string) bool
}

// ExecLauncher implements Launcher with os/exec.
type ExecLauncher struct{}

// Run executes the command and includes its combined output in any error.
func (ExecLauncher) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %s failed: %s: %w", name, strings.Join(args, " "), strings.TrimSpace(string(output)), err)
	}
	return nil
}

// Start launches the command detached from the current process.
func (ExecLauncher) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// LookPath wraps exec.LookPath.
func (ExecLauncher) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Exists reports whether path exists.
func (ExecLauncher) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
