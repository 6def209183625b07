// Package reconcile compares two collections for matching entries.
package reconcile

import (
	"fmt"

	"github.com/bibmend/bibmend/internal/biblio"
	"github.com/bibmend/bibmend/internal/match"
)

// Row is one candidate match between a left-collection and a
// right-collection record, with the per-field verdicts a reviewer needs
// to judge whether the two really are the same work.
type Row struct {
	LeftKey     string                   `json:"left_key"`
	RightKey    string                   `json:"right_key"`
	TitleAgree  bool                     `json:"title_agree"`
	AuthorAgree bool                     `json:"author_agree"`
	Fields      map[string]match.Verdict `json:"fields"` // type, journal, volume, number, pages, year
}

// Report is the outcome of reconciling two collections.
type Report struct {
	// Rows holds every candidate match, in left-then-right sorted key
	// order, so repeated runs over the same inputs produce identical
	// reports.
	Rows []Row

	// Unmatched holds the left-collection records for which no candidate
	// match was found on the right.
	Unmatched biblio.Collection

	// MultiMatches maps left keys that strong-matched more than one right
	// record to the number of strong matches. An ambiguous multi-match is
	// a data-quality signal, not an error.
	MultiMatches map[string]int

	// Notes accumulates data-quality observations (missing author name
	// parts, ambiguous matches) gathered during the scan.
	Notes []match.Note
}

// Reconcile scans every pair of records across the two collections and
// reports candidate matches, unmatched left records, and ambiguous
// multi-matches. The scan is O(|left| × |right|) field comparisons,
// fully synchronous, with no side effects beyond the returned report.
func Reconcile(left, right biblio.Collection) Report {
	report := Report{
		Unmatched:    make(biblio.Collection),
		MultiMatches: make(map[string]int),
	}

	report.Notes = append(report.Notes, fingerprintNotes(left)...)
	report.Notes = append(report.Notes, fingerprintNotes(right)...)

	rightKeys := right.Keys()

	for _, leftKey := range left.Keys() {
		leftRec := left[leftKey]
		matchFound := false
		strongMatches := 0

		for _, rightKey := range rightKeys {
			rightRec := right[rightKey]

			title := match.PresenceScore(leftRec, rightRec, biblio.FieldTitle)
			author := match.PresenceScore(leftRec, rightRec, biblio.FieldAuthor)
			if title+author <= match.CandidateThreshold {
				continue
			}

			matchFound = true
			if title+author == match.StrongScore {
				strongMatches++
			}

			fields := make(map[string]match.Verdict, len(biblio.CompareFields))
			for _, field := range biblio.CompareFields {
				fields[field] = match.CompareField(leftRec, rightRec, field)
			}

			report.Rows = append(report.Rows, Row{
				LeftKey:     leftKey,
				RightKey:    rightKey,
				TitleAgree:  title == match.ScoreAgree,
				AuthorAgree: author == match.ScoreAgree,
				Fields:      fields,
			})
		}

		switch {
		case !matchFound:
			report.Unmatched[leftKey] = leftRec.Clone()
		case strongMatches > 1:
			report.MultiMatches[leftKey] = strongMatches
			report.Notes = append(report.Notes, match.Note{
				Key:     leftKey,
				Message: fmt.Sprintf("%d indistinguishable matches found", strongMatches),
			})
		}
	}

	return report
}

// fingerprintNotes collects the data-quality notes from building every
// record's author fingerprint, tagged with the record key.
func fingerprintNotes(c biblio.Collection) []match.Note {
	var notes []match.Note
	for _, key := range c.Keys() {
		_, recNotes := match.BuildFingerprint(c[key])
		for _, n := range recNotes {
			n.Key = key
			notes = append(notes, n)
		}
	}
	return notes
}
