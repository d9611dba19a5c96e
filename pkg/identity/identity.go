// Package identity derives the project slug used as the naming key across all
// provisioned services.
package identity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize converts raw operator input into a slug: lowercase, spaces and
// underscores become hyphens, everything outside [a-z0-9-] is dropped, hyphen
// runs collapse and leading/trailing hyphens are trimmed.
// The second result is false when nothing usable remains.
func Normalize(raw string) (string, bool) {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(raw) {
		switch {
		case r == ' ' || r == '_' || r == '-':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		}
	}

	slug := strings.Trim(b.String(), "-")
	if !IsSlug(slug) {
		return "", false
	}
	return slug, true
}

// IsSlug reports whether s is a non-empty run of [a-z0-9] words joined by single hyphens.
func IsSlug(s string) bool {
	if s == "" || s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		case c == '-':
			if s[i-1] == '-' {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// DisplayName turns a slug into title-cased words: "my-cool-app" -> "My Cool App".
func DisplayName(slug string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(slug, "-", " "))
}
