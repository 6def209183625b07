package match

import "github.com/bibmend/bibmend/internal/biblio"

// FieldScore is the presence-aware agreement score of one field across a
// record pair.
type FieldScore int

const (
	ScoreAbsent   FieldScore = 0 // field missing from one or both records
	ScoreDisagree FieldScore = 1 // both present, values differ
	ScoreAgree    FieldScore = 3 // both present, values agree
)

// Strength classifies how confidently two records are judged to describe
// the same work.
type Strength int

const (
	NoMatch Strength = iota
	Weak             // candidate match, surfaced for manual review
	Strong           // title and authors both fully agree
)

func (s Strength) String() string {
	switch s {
	case Weak:
		return "weak"
	case Strong:
		return "strong"
	default:
		return "none"
	}
}

// PresenceScore scores one field of a record pair: ScoreAgree when both
// records carry the field and it agrees (normalized-title equality for
// title, fingerprint equality for author, exact equality otherwise),
// ScoreDisagree when both carry it but differ, ScoreAbsent when either
// side lacks it.
func PresenceScore(left, right biblio.Record, field string) FieldScore {
	switch CompareField(left, right, field) {
	case Agree:
		return ScoreAgree
	case Disagree:
		return ScoreDisagree
	default:
		return ScoreAbsent
	}
}

// Combined title+author score thresholds. A pair is a candidate only
// when its combined score exceeds CandidateThreshold, which requires at
// least one of the two signals to fully agree. StrongScore means both
// did.
const (
	CandidateThreshold = ScoreDisagree + ScoreDisagree
	StrongScore        = ScoreAgree + ScoreAgree
)

// Classify combines title and author agreement into the match verdict
// for a record pair.
func Classify(left, right biblio.Record) Strength {
	title := PresenceScore(left, right, biblio.FieldTitle)
	author := PresenceScore(left, right, biblio.FieldAuthor)

	sum := title + author
	switch {
	case sum <= CandidateThreshold:
		return NoMatch
	case sum == StrongScore:
		return Strong
	default:
		return Weak
	}
}
