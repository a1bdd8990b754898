package hooks

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type call struct {
	dir  string
	name string
	args []string
	wait bool
}

type fakeLauncher struct {
	calls    []call
	fail     map[string]error // keyed by command name
	paths    map[string]string
	existing map[string]bool
}

func (f *fakeLauncher) Run(_ context.Context, dir, name string, args ...string) error {
	f.calls = append(f.calls, call{dir: dir, name: name, args: args, wait: true})
	return f.fail[name]
}

func (f *fakeLauncher) Start(name string, args ...string) error {
	f.calls = append(f.calls, call{name: name, args: args})
	return f.fail[name]
}

func (f *fakeLauncher) LookPath(name string) (string, error) {
	if p, ok := f.paths[name]; ok {
		return p, nil
	}
	return "", errors.New("not found in PATH")
}

func (f *fakeLauncher) Exists(path string) bool {
	return f.existing[path]
}

func TestInitRepository(t *testing.T) {
	l := &fakeLauncher{}
	if err := InitRepository(context.Background(), l, "/v/Vault-2026", 2026); err != nil {
		t.Fatalf("InitRepository: %v", err)
	}
	want := []string{"init", "add -A", "commit -m Initial commit for 2026 vault"}
	if len(l.calls) != len(want) {
		t.Fatalf("calls = %+v", l.calls)
	}
	for i, c := range l.calls {
		if c.name != "git" || c.dir != "/v/Vault-2026" || strings.Join(c.args, " ") != want[i] {
			t.Errorf("call %d = %+v", i, c)
		}
	}
}

func TestInitRepositoryStopsOnFailure(t *testing.T) {
	l := &fakeLauncher{fail: map[string]error{"git": errors.New("boom")}}
	err := InitRepository(context.Background(), l, "/v", 2026)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(l.calls) != 1 {
		t.Errorf("expected to stop after the first failure, got %d calls", len(l.calls))
	}
}

func TestURIEscapesPath(t *testing.T) {
	got := URI("/home/me/My Vaults/Vault-2026")
	if got != "obsidian://open?path=%2Fhome%2Fme%2FMy%20Vaults%2FVault-2026" {
		t.Errorf("URI = %q", got)
	}
}

func newTestOpener(l *fakeLauncher, goos string, locs ...string) *Opener {
	return &Opener{launcher: l, goos: goos, locations: locs}
}

func TestOpenViaURI(t *testing.T) {
	l := &fakeLauncher{}
	if err := newTestOpener(l, "linux").Open(context.Background(), "/v"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(l.calls) != 1 || l.calls[0].name != "xdg-open" || !l.calls[0].wait {
		t.Errorf("calls = %+v", l.calls)
	}
}

func TestOpenFallsBackToPath(t *testing.T) {
	l := &fakeLauncher{
		fail:  map[string]error{"open": errors.New("no handler")},
		paths: map[string]string{"obsidian": "/usr/local/bin/obsidian"},
	}
	if err := newTestOpener(l, "darwin").Open(context.Background(), "/v"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	last := l.calls[len(l.calls)-1]
	if last.name != "/usr/local/bin/obsidian" || last.args[0] != "/v" || last.wait {
		t.Errorf("last call = %+v", last)
	}
}

func TestOpenFallsBackToKnownLocation(t *testing.T) {
	l := &fakeLauncher{
		fail:     map[string]error{"xdg-open": errors.New("no handler")},
		existing: map[string]bool{"/opt/Obsidian/obsidian": true, "/snap/bin/obsidian": true},
	}
	o := newTestOpener(l, "linux", "/usr/bin/obsidian", "/opt/Obsidian/obsidian", "/snap/bin/obsidian")
	if err := o.Open(context.Background(), "/v"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(l.calls) != 2 || l.calls[1].name != "/opt/Obsidian/obsidian" {
		t.Errorf("should stop at the first existing location, calls = %+v", l.calls)
	}
}

func TestOpenAllFail(t *testing.T) {
	l := &fakeLauncher{fail: map[string]error{"cmd": errors.New("no handler")}}
	o := newTestOpener(l, "windows", `C:\Program Files\Obsidian\Obsidian.exe`)
	err := o.Open(context.Background(), `C:\v`)
	if !errors.Is(err, ErrNotOpened) {
		t.Fatalf("err = %v, want ErrNotOpened", err)
	}
	if l.calls[0].name != "cmd" || strings.Join(l.calls[0].args[:2], " ") != "/c start" {
		t.Errorf("windows URI command = %+v", l.calls[0])
	}
}

func TestKnownLocations(t *testing.T) {
	for _, goos := range []string{"darwin", "windows", "linux"} {
		locs := KnownLocations(goos, "/home/me", `C:\Users\me\AppData\Local`)
		if len(locs) == 0 {
			t.Errorf("%s: no locations", goos)
		}
	}
	if locs := KnownLocations("linux", "", ""); len(locs) != 3 {
		t.Errorf("linux without HOME = %v", locs)
	}
}
