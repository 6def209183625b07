package match

import (
	"fmt"
	"unicode/utf8"

	"github.com/bibmend/bibmend/internal/biblio"
)

// Fingerprint is a comparable summary of a record's author list, tolerant
// to initials-vs-full-name variation: each last name maps to the set of
// initial tokens accepted for it ("J" and "J."). Two author lists are
// considered equivalent iff their fingerprints are equal as mappings.
type Fingerprint map[string]InitialSet

// InitialSet is a set of accepted initial tokens for one last name.
type InitialSet map[string]bool

// BuildFingerprint derives the author fingerprint of a record.
//
// For each author, the first name's initial registers the tokens
// {"X", "X."} under the last name. A middle name, when present,
// overwrites that registration with the middle initial's tokens rather
// than extending it. This precedence is a known simplification that
// misfires for co-authors sharing a last name; it is part of the
// matching contract and must not change without reindexing both sides.
//
// Authors with no usable name parts are skipped and reported as
// data-quality notes, never as errors.
func BuildFingerprint(rec biblio.Record) (Fingerprint, []Note) {
	fp := make(Fingerprint, len(rec.Authors))
	var notes []Note

	for _, p := range rec.Authors {
		if p.Last == "" {
			notes = append(notes, Note{
				Message: fmt.Sprintf("author %q has no last name, skipped in fingerprint", p.DisplayName()),
			})
			continue
		}

		initial := ""
		if p.First != "" {
			initial = firstRune(p.First)
		}
		if p.Middle != "" {
			// Middle-name initial takes priority over the first-name one.
			initial = firstRune(p.Middle)
		}
		if initial == "" {
			notes = append(notes, Note{
				Message: fmt.Sprintf("author %q has no first or middle name, skipped in fingerprint", p.Last),
			})
			continue
		}

		fp[p.Last] = InitialSet{initial: true, initial + ".": true}
	}

	return fp, notes
}

// Equal reports whether two fingerprints are equal as mappings: the same
// last names, each mapped to an identical set of initial tokens. Exact
// equality, not subset or overlap.
func (f Fingerprint) Equal(other Fingerprint) bool {
	if len(f) != len(other) {
		return false
	}
	for last, initials := range f {
		theirs, ok := other[last]
		if !ok || len(initials) != len(theirs) {
			return false
		}
		for token := range initials {
			if !theirs[token] {
				return false
			}
		}
	}
	return true
}

func firstRune(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError && size == 1 {
		return ""
	}
	return string(r)
}
