package hooks

import (
	"context"
	"fmt"
)

// CommitMessage returns the message of the initial commit of a vault.
func CommitMessage(year int) string {
	return fmt.Sprintf("Initial commit for %d vault", year)
}

// InitRepository initialises a git repository in dir, stages everything and
// commits it. The three commands form one action: the first failure is returned.
func InitRepository(ctx context.Context, l Launcher, dir string, year int) error {
	steps := [][]string{
		{"init"},
		{"add", "-A"},
		{"commit", "-m", CommitMessage(year)},
	}
	for _, args := range steps {
		if err := l.Run(ctx, dir, "git", args...); err != nil {
			return fmt.Errorf("git repository at %s: %w", dir, err)
		}
	}
	return nil
}
