package render

import (
	"testing"
	"time"
)

func TestRender(t *testing.T) {
	date := time.Date(2026, time.January, 1, 15, 4, 5, 0, time.UTC)
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"year only", "# {year}", "# 2026"},
		{"date only", "created: {date}", "created: 2026-01-01"},
		{"both adjacent", "{year}-{date}", "2026-2026-01-01"},
		{"every occurrence", "{year}/{year}.md", "2026/2026.md"},
		{"no tokens", "plain text", "plain text"},
		{"unknown token kept", "{month} {year}", "{month} 2026"},
		{"partial token kept", "{yea} {dat}", "{yea} {dat}"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Render(tc.in, 2026, date); got != tc.want {
				t.Errorf("Render(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestRenderPadsDate(t *testing.T) {
	date := time.Date(2027, time.March, 9, 0, 0, 0, 0, time.UTC)
	if got := Render("{date}", 2027, date); got != "2027-03-09" {
		t.Errorf("got %q", got)
	}
}

func TestRenderNoLeadingZerosInYear(t *testing.T) {
	if got := Render("Vault-{year}", 987, time.Now()); got != "Vault-987" {
		t.Errorf("got %q", got)
	}
}

func TestRenderDoesNotRecurse(t *testing.T) {
	// A rendered value is never scanned again.
	if got := Render("{{year}date}", 2026, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)); got != "{2026date}" {
		t.Errorf("got %q", got)
	}
}
