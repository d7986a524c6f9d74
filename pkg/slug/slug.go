// Package slug derives URL-safe identifiers from free-form titles.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Make converts a title to a lowercase hyphen-separated slug. Accented
// characters are folded to their base letter (NFD decomposition with
// combining marks removed), anything that is not a letter, digit, space,
// underscore or hyphen is dropped, and runs of spaces, underscores and
// hyphens collapse to a single hyphen.
func Make(title string) string {
	folded := foldDiacritics(title)
	lowered := strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '_' || r == '-':
			b.WriteRune('-')
		}
	}

	collapsed := collapseHyphens(b.String())
	return strings.Trim(collapsed, "-")
}

func foldDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}

func collapseHyphens(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevHyphen := false
	for _, r := range s {
		if r == '-' {
			if prevHyphen {
				continue
			}
			prevHyphen = true
		} else {
			prevHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
