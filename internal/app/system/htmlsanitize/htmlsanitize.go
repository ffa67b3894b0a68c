// Package htmlsanitize strips markup from user-supplied text fields.
//
// Titles, todo content and display names are plain text. The mobile client
// renders them verbatim, so any tags are removed on the way in rather than
// escaped on the way out.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every element. Content of script/style elements is dropped
// along with the element.
var strict = bluemonday.StrictPolicy()

// PlainText removes all HTML from s, unescapes entities introduced by the
// sanitizer, and trims surrounding space.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// IsPlainText reports whether s contains nothing that looks like a tag.
func IsPlainText(s string) bool {
	return !strings.ContainsAny(s, "<>")
}
