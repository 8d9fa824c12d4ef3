// Package slug turns free-form titles into URL-safe identifiers.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Make lowercases title, strips diacritics and collapses every run of
// characters that are not ASCII letters or digits into a single hyphen.
// Leading and trailing hyphens are dropped.
func Make(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	folded, _, err := transform.String(t, title)
	if err != nil {
		folded = title
	}

	var sb strings.Builder

	sb.Grow(len(folded))

	pendingHyphen := false

	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && sb.Len() > 0 {
				sb.WriteByte('-')
			}

			pendingHyphen = false

			sb.WriteRune(r)

			continue
		}

		pendingHyphen = true
	}

	return sb.String()
}
