package match

import "github.com/bibmend/bibmend/internal/biblio"

// Verdict is the outcome of comparing one field across two records.
type Verdict int

const (
	BothAbsent Verdict = iota
	LeftAbsent
	RightAbsent
	Agree
	Disagree
)

func (v Verdict) String() string {
	switch v {
	case BothAbsent:
		return "both_absent"
	case LeftAbsent:
		return "left_absent"
	case RightAbsent:
		return "right_absent"
	case Agree:
		return "agree"
	case Disagree:
		return "disagree"
	default:
		return "unknown"
	}
}

// Mirror returns the verdict as seen with the arguments swapped:
// LeftAbsent and RightAbsent trade places, everything else is symmetric.
func (v Verdict) Mirror() Verdict {
	switch v {
	case LeftAbsent:
		return RightAbsent
	case RightAbsent:
		return LeftAbsent
	default:
		return v
	}
}

// CompareField decides whether a single field agrees between two records.
//
// Titles are compared on their normalized keys, since punctuation and
// capitalization drift between sources. The author field is compared by
// fingerprint equality. Every other field is expected verbatim-equal when
// it truly matches, so raw values are compared exactly.
func CompareField(left, right biblio.Record, field string) Verdict {
	leftHas := left.Has(field)
	rightHas := right.Has(field)

	switch {
	case !leftHas && !rightHas:
		return BothAbsent
	case !leftHas:
		return LeftAbsent
	case !rightHas:
		return RightAbsent
	}

	if fieldsAgree(left, right, field) {
		return Agree
	}
	return Disagree
}

func fieldsAgree(left, right biblio.Record, field string) bool {
	switch field {
	case biblio.FieldTitle:
		lv, _ := left.Field(field)
		rv, _ := right.Field(field)
		return Normalize(lv) == Normalize(rv)
	case biblio.FieldAuthor:
		lfp, _ := BuildFingerprint(left)
		rfp, _ := BuildFingerprint(right)
		return lfp.Equal(rfp)
	default:
		lv, _ := left.Field(field)
		rv, _ := right.Field(field)
		return lv == rv
	}
}
