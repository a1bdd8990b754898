package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/vaultroll/internal/apperr"
	"github.com/starford/vaultroll/internal/models"
	pkgconfig "github.com/starford/vaultroll/pkg/config"
)

func TestWriteSampleConfigLoadsBack(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	for _, name := range []string{"vault-config.json", "vault-config.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := WriteSampleConfig(path, false); err != nil {
				t.Fatalf("WriteSampleConfig: %v", err)
			}
			var cfg models.Config
			if err := pkgconfig.Load(path, &cfg); err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.BaseVaultPath != "/home/tester/Documents/Vaults" {
				t.Errorf("base = %q", cfg.BaseVaultPath)
			}
			want := SampleConfig().BaseFiles()
			got := cfg.BaseFiles()
			if len(got) != len(want) {
				t.Fatalf("base files = %+v", got)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("base file %d = %+v, want %+v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestWriteSampleConfigRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault-config.json")
	if err := os.WriteFile(path, []byte("mine"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteSampleConfig(path, false); !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}
	if err := WriteSampleConfig(path, true); err != nil {
		t.Fatalf("forced write: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) == "mine" {
		t.Error("forced write should replace the file")
	}
}
