package domain

import (
	"strings"
	"unicode"
)

// Category groups events for filtering. Names and slugs are globally unique.
type Category struct {
	ID   int64
	Name string
	Slug string
}

// Slugify derives a URL-safe slug from a category name: lowercase, runs of
// non-alphanumerics collapsed to single hyphens, edges trimmed.
// A manually supplied slug is preserved by callers; this is only the default.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
