// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize cleans user-supplied rich text before it is stored.
// Descriptions on teams, events and help requests may carry limited HTML;
// titles and names are reduced to plain text.
package htmlsanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	once   sync.Once
	rich   *bluemonday.Policy
	strict *bluemonday.Policy
)

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	once.Do(func() {
		rich = bluemonday.UGCPolicy()
		rich.AllowAttrs("class").OnElements("table", "thead", "tbody", "tr", "th", "td")
		rich.AllowAttrs("colspan", "rowspan").OnElements("th", "td")
		rich.AllowElements("u", "s", "mark")

		strict = bluemonday.StrictPolicy()
	})
	return rich, strict
}

// Sanitize removes dangerous markup from rich text, keeping the formatting
// tags volunteers commonly paste (lists, tables, emphasis, links).
func Sanitize(s string) string {
	p, _ := policies()
	return p.Sanitize(s)
}

// StripTags reduces input to plain text. Used for titles, names and other
// single-line fields.
func StripTags(s string) string {
	_, p := policies()
	return strings.TrimSpace(p.Sanitize(s))
}
