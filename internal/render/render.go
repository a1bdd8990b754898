// Package render substitutes the {year} and {date} placeholders in file
// names and file contents.
package render

import (
	"strconv"
	"strings"
	"time"

	"github.com/starford/vaultroll/internal/models"
)

const (
	DateToken = "{date}"

	// DateLayout is the format {date} expands to (YYYY-MM-DD).
	DateLayout = "2006-01-02"
)

// Render replaces every occurrence of {year} with year in base 10 and every
// occurrence of {date} with date formatted as YYYY-MM-DD. There is no escape
// syntax: literal "{year}" or "{date}" text is always substituted.
func Render(template string, year int, date time.Time) string {
	return Replacer(year, date).Replace(template)
}

// Replacer returns a reusable replacer for one (year, date) pair.
func Replacer(year int, date time.Time) *strings.Replacer {
	return strings.NewReplacer(
		models.YearToken, strconv.Itoa(year),
		DateToken, date.Format(DateLayout),
	)
}
