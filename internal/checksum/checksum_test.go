package checksum

import (
	"testing"

	"github.com/starford/vaultroll/internal/models"
)

func TestSumKnownValue(t *testing.T) {
	got := Sum([]byte("abc"))
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Errorf("Sum = %q, want %q", got, want)
	}
}

func TestTreeOrderIndependent(t *testing.T) {
	a := []models.FileMetadata{{Path: "a.md", Checksum: "1"}, {Path: "b/c.md", Checksum: "2"}}
	b := []models.FileMetadata{{Path: "b/c.md", Checksum: "2"}, {Path: "a.md", Checksum: "1"}}
	if Tree(a) != Tree(b) {
		t.Error("digest should not depend on listing order")
	}
}

func TestTreeDetectsChanges(t *testing.T) {
	base := []models.FileMetadata{{Path: "a.md", Checksum: "1"}}
	cases := map[string][]models.FileMetadata{
		"content": {{Path: "a.md", Checksum: "2"}},
		"rename":  {{Path: "b.md", Checksum: "1"}},
		"extra":   {{Path: "a.md", Checksum: "1"}, {Path: "b.md", Checksum: "1"}},
		"empty":   nil,
	}
	for name, other := range cases {
		if Tree(base) == Tree(other) {
			t.Errorf("%s: digest unchanged", name)
		}
	}
}
