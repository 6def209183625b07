package render

import (
	"strings"
	"testing"

	"github.com/bibmend/bibmend/internal/biblio"
	"github.com/bibmend/bibmend/internal/match"
	"github.com/bibmend/bibmend/internal/reconcile"
)

func TestWriteReport(t *testing.T) {
	report := reconcile.Report{
		Rows: []reconcile.Row{
			{
				LeftKey:     "hinton2016",
				RightKey:    "ref-001",
				TitleAgree:  true,
				AuthorAgree: true,
				Fields: map[string]match.Verdict{
					biblio.FieldType:    match.Agree,
					biblio.FieldJournal: match.Disagree,
					biblio.FieldVolume:  match.LeftAbsent,
					biblio.FieldNumber:  match.RightAbsent,
					biblio.FieldPages:   match.BothAbsent,
					biblio.FieldYear:    match.Agree,
				},
			},
		},
		Unmatched: biblio.Collection{
			"lonely2001": {Fields: map[string]string{biblio.FieldTitle: "Alone"}},
		},
		MultiMatches: map[string]int{"hinton2016": 2},
	}

	var buf strings.Builder
	if err := WriteReport(&buf, report, "report_NO_FOUND.yaml"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	lines := strings.Split(out, "\n")

	if !strings.HasPrefix(lines[0], "Name in file 1") {
		t.Errorf("header = %q", lines[0])
	}
	row := lines[1]
	if !strings.HasPrefix(row, "hinton2016") {
		t.Errorf("row = %q", row)
	}
	for _, cell := range []string{"Yes", "No", "M-1", "M-2", "M-Both"} {
		if !strings.Contains(row, cell) {
			t.Errorf("row missing %q: %q", cell, row)
		}
	}

	if !strings.Contains(out, "2 entries were found for ref: hinton2016") {
		t.Errorf("multi-match line missing:\n%s", out)
	}
	if !strings.Contains(out, "For 1 references no match were found (see report_NO_FOUND.yaml)") {
		t.Errorf("unmatched trailer missing:\n%s", out)
	}
	if !strings.Contains(out, "lonely2001") {
		t.Errorf("unmatched key missing:\n%s", out)
	}
	if !strings.Contains(out, "** M-Both: field is missing for both files") {
		t.Errorf("legend missing:\n%s", out)
	}
}

func TestWriteReport_NoUnmatched(t *testing.T) {
	var buf strings.Builder
	if err := WriteReport(&buf, reconcile.Report{}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(buf.String(), "no match were found") {
		t.Errorf("trailer printed with nothing unmatched:\n%s", buf.String())
	}
}

func TestPadAndCenter(t *testing.T) {
	if got := pad("key", 6); got != "key   " {
		t.Errorf("pad = %q", got)
	}
	// Over-long keys are truncated but keep the column separator.
	if got := pad("abcdefgh", 6); got != "abcde " {
		t.Errorf("pad truncation = %q", got)
	}
	if got := center("ab", 6); got != "  ab  " {
		t.Errorf("center = %q", got)
	}
	if got := center("abc", 6); got != " abc  " {
		t.Errorf("center odd = %q", got)
	}
}

func TestCitation(t *testing.T) {
	rec := biblio.Record{
		Fields: map[string]string{
			biblio.FieldTitle:   "Deep Learning",
			biblio.FieldJournal: "Nature",
			biblio.FieldVolume:  "521",
			biblio.FieldNumber:  "7553",
			biblio.FieldPages:   "436-444",
			biblio.FieldYear:    "2015",
		},
		Authors: []biblio.Person{
			{Last: "LeCun", First: "Yann"},
			{Last: "Hinton", First: "Geoffrey"},
		},
	}

	want := "Yann LeCun, Geoffrey Hinton. Deep Learning. Nature 521(7553):436-444. 2015."
	if got := Citation(rec); got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestCitation_Sparse(t *testing.T) {
	rec := biblio.Record{Fields: map[string]string{biblio.FieldTitle: "Untethered"}}
	if got := Citation(rec); got != "Untethered." {
		t.Errorf("got %q", got)
	}
}

func TestCitationList(t *testing.T) {
	col := biblio.Collection{
		"b": {Fields: map[string]string{biblio.FieldTitle: "Beta"}},
		"a": {Fields: map[string]string{biblio.FieldTitle: "Alpha"}},
	}
	got := CitationList(col)
	want := "[a] Alpha.\n[b] Beta.\n"
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}
