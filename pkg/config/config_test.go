package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sample struct {
	Name  string   `json:"name" yaml:"name"`
	Items []string `json:"items" yaml:"items"`
}

func (s *sample) ExpandEnv() {
	s.Name = os.ExpandEnv(s.Name)
}

func (s *sample) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadJSON(t *testing.T) {
	p := writeFile(t, "c.json", `{"name":"x","items":["a","b"],"unknown":true}`)
	var s sample
	if err := Load(p, &s); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != "x" || len(s.Items) != 2 {
		t.Errorf("got %+v", s)
	}
}

func TestLoadYAML(t *testing.T) {
	p := writeFile(t, "c.yml", "name: x\nitems:\n  - a\n")
	var s sample
	if err := Load(p, &s); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != "x" || len(s.Items) != 1 {
		t.Errorf("got %+v", s)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("VAULTROLL_TEST_NAME", "from-env")
	p := writeFile(t, "c.json", `{"name":"${VAULTROLL_TEST_NAME}","items":["$VAULTROLL_TEST_NAME"]}`)
	var s sample
	if err := Load(p, &s); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != "from-env" {
		t.Errorf("name = %q", s.Name)
	}
	if s.Items[0] != "$VAULTROLL_TEST_NAME" {
		t.Errorf("fields outside ExpandEnv must stay verbatim, got %q", s.Items[0])
	}
}

func TestLoadEnvValueWithQuotes(t *testing.T) {
	t.Setenv("VAULTROLL_TEST_NAME", `C:\Users\"me"`)
	p := writeFile(t, "c.json", `{"name":"$VAULTROLL_TEST_NAME"}`)
	var s sample
	if err := Load(p, &s); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != `C:\Users\"me"` {
		t.Errorf("name = %q", s.Name)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name    string
		file    string
		content string
		want    error
	}{
		{"missing", "absent.json", "", ErrNotFound},
		{"bad json", "c.json", `{"name": "x",`, ErrParse},
		{"bad yaml", "c.yaml", "name: [unclosed", ErrParse},
		{"non-string entry", "c.json", `{"name":"x","items":["a", 3]}`, ErrSchema},
		{"wrong top level", "c.json", `["a"]`, ErrSchema},
		{"yaml scalar document", "c.yaml", "just text", ErrSchema},
		{"validator", "c.json", `{"items":[]}`, ErrSchema},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := filepath.Join(dir, tc.name+"-"+tc.file)
			if tc.want != ErrNotFound {
				if err := os.WriteFile(p, []byte(tc.content), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			var s sample
			err := Load(p, &s)
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestFormatOf(t *testing.T) {
	cases := map[string]Format{
		"vault-config.json": FormatJSON,
		"vault.YAML":        FormatYAML,
		"vault.yml":         FormatYAML,
		"vault":             FormatJSON,
	}
	for name, want := range cases {
		if got := FormatOf(name); got != want {
			t.Errorf("FormatOf(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	in := sample{Name: "x", Items: []string{"a"}}
	for _, f := range []Format{FormatJSON, FormatYAML} {
		data, err := Encode(f, in)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		var out sample
		if err := Decode(f, data, &out); err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if out.Name != "x" || strings.Join(out.Items, ",") != "a" {
			t.Errorf("format %v: got %+v", f, out)
		}
	}
}
