package hooks

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
)

// ExecutableName is the viewer binary looked up on the search path.
const ExecutableName = "obsidian"

// ErrNotOpened is returned when every way of opening the vault failed.
var ErrNotOpened = errors.New("could not open vault")

// Opener opens a vault in the external viewer. The zero value is not usable;
// call NewOpener.
type Opener struct {
	launcher  Launcher
	goos      string
	locations []string
}

// NewOpener returns an Opener for the current platform.
func NewOpener(l Launcher) *Opener {
	return &Opener{
		launcher:  l,
		goos:      runtime.GOOS,
		locations: KnownLocations(runtime.GOOS, os.Getenv("HOME"), os.Getenv("LOCALAPPDATA")),
	}
}

// URI returns the viewer URI for a vault at path.
func URI(path string) string {
	return "obsidian://open?path=" + url.PathEscape(path)
}

// uriCommand returns the platform command that hands a URI to the desktop.
func uriCommand(goos, uri string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{uri}
	case "windows":
		return "cmd", []string{"/c", "start", "", uri}
	default:
		return "xdg-open", []string{uri}
	}
}

// KnownLocations lists the default install paths of the viewer per platform,
// in the order they are tried.
func KnownLocations(goos, home, localAppData string) []string {
	switch goos {
	case "darwin":
		locs := []string{"/Applications/Obsidian.app/Contents/MacOS/Obsidian"}
		if home != "" {
			locs = append(locs, filepath.Join(home, "Applications", "Obsidian.app", "Contents", "MacOS", "Obsidian"))
		}
		return locs
	case "windows":
		var locs []string
		if localAppData != "" {
			locs = append(locs, filepath.Join(localAppData, "Obsidian", "Obsidian.exe"))
		}
		return append(locs, `C:\Program Files\Obsidian\Obsidian.exe`)
	default:
		locs := []string{"/usr/bin/obsidian", "/opt/Obsidian/obsidian", "/snap/bin/obsidian"}
		if home != "" {
			locs = append(locs, filepath.Join(home, "Applications", "Obsidian.AppImage"))
		}
		return locs
	}
}

// Open tries, in order: the URI scheme, the executable on the search path,
// and the first existing well-known install location. The URI handler is
// waited for so its exit status decides whether to fall back; executables
// are started detached.
func (o *Opener) Open(ctx context.Context, path string) error {
	name, args := uriCommand(o.goos, URI(path))
	uriErr := o.launcher.Run(ctx, "", name, args...)
	if uriErr == nil {
		return nil
	}

	exe, pathErr := o.launcher.LookPath(ExecutableName)
	if pathErr == nil {
		if pathErr = o.launcher.Start(exe, path); pathErr == nil {
			return nil
		}
	}

	for _, loc := range o.locations {
		if !o.launcher.Exists(loc) {
			continue
		}
		if err := o.launcher.Start(loc, path); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrNotOpened, loc, err)
		}
		return nil
	}

	return fmt.Errorf("%w: uri: %v; %s: %v; no known install location found", ErrNotOpened, uriErr, ExecutableName, pathErr)
}
