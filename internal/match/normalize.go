// Package match implements the fuzzy-equality model used to decide
// whether two bibliographic records describe the same work.
package match

import (
	"strings"
	"unicode"
)

// Normalize collapses text to a canonical comparison key: every rune that
// is not a Unicode letter or digit is removed and the remainder is
// lowercased. Titles vary in whitespace and punctuation across sources;
// this makes "Deep Learning." and "deep learning" compare equal.
//
// Normalize is total and deterministic. Callers are responsible for
// checking field presence first; an absent field is not the same thing as
// an empty key.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
