package reconcile

import (
	"testing"

	"github.com/bibmend/bibmend/internal/biblio"
	"github.com/bibmend/bibmend/internal/match"
)

func hinton2016() biblio.Record {
	return biblio.Record{
		Fields: map[string]string{
			"title": "Deep Learning",
			"year":  "2016",
		},
		Authors: []biblio.Person{{Last: "Hinton", First: "Geoffrey"}},
	}
}

func TestReconcile_SelfMatch(t *testing.T) {
	col := biblio.Collection{"k1": hinton2016()}

	report := Reconcile(col, col)

	if len(report.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(report.Rows))
	}
	row := report.Rows[0]
	if row.LeftKey != "k1" || row.RightKey != "k1" {
		t.Errorf("expected (k1,k1), got (%s,%s)", row.LeftKey, row.RightKey)
	}
	if !row.TitleAgree || !row.AuthorAgree {
		t.Errorf("self-match should agree on title and authors: %+v", row)
	}
	if row.Fields["year"] != match.Agree {
		t.Errorf("year verdict = %v, want Agree", row.Fields["year"])
	}
	for _, field := range []string{"type", "journal", "volume", "number", "pages"} {
		if row.Fields[field] != match.BothAbsent {
			t.Errorf("%s verdict = %v, want BothAbsent", field, row.Fields[field])
		}
	}

	if len(report.Unmatched) != 0 {
		t.Errorf("expected no unmatched, got %d", len(report.Unmatched))
	}
	if len(report.MultiMatches) != 0 {
		t.Errorf("expected no multi-matches, got %v", report.MultiMatches)
	}
}

func TestReconcile_Disjoint(t *testing.T) {
	left := biblio.Collection{
		"a": {Fields: map[string]string{"title": "First Work"},
			Authors: []biblio.Person{{Last: "Smith", First: "John"}}},
		"b": {Fields: map[string]string{"title": "Second Work"},
			Authors: []biblio.Person{{Last: "Jones", First: "Ann"}}},
	}
	right := biblio.Collection{
		"c": {Fields: map[string]string{"title": "Third Work"},
			Authors: []biblio.Person{{Last: "Brown", First: "Bob"}}},
	}

	report := Reconcile(left, right)

	if len(report.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(report.Rows))
	}
	if len(report.Unmatched) != len(left) {
		t.Fatalf("expected all %d left keys unmatched, got %d", len(left), len(report.Unmatched))
	}
	for key, rec := range left {
		got, ok := report.Unmatched[key]
		if !ok {
			t.Errorf("expected %q in unmatched", key)
			continue
		}
		if got.Fields["title"] != rec.Fields["title"] {
			t.Errorf("unmatched %q lost its record", key)
		}
	}
}

func TestReconcile_MultiMatch(t *testing.T) {
	left := biblio.Collection{"orig": hinton2016()}
	right := biblio.Collection{
		"dup1": hinton2016(),
		"dup2": hinton2016(),
	}

	report := Reconcile(left, right)

	if got := report.MultiMatches["orig"]; got != 2 {
		t.Errorf("expected multi-match count 2, got %d", got)
	}
	if len(report.Rows) != 2 {
		t.Errorf("expected 2 rows, got %d", len(report.Rows))
	}
	found := false
	for _, n := range report.Notes {
		if n.Key == "orig" {
			found = true
		}
	}
	if !found {
		t.Error("expected a data-quality note for the ambiguous match")
	}
}

func TestReconcile_WeakMatchRow(t *testing.T) {
	left := biblio.Collection{"l": {
		Fields:  map[string]string{"title": "Deep Learning", "year": "2016"},
		Authors: []biblio.Person{{Last: "Smith", First: "John"}},
	}}
	right := biblio.Collection{"r": {
		Fields:  map[string]string{"title": "Deep Learning", "year": "2017"},
		Authors: []biblio.Person{{Last: "Jones", First: "Ann"}},
	}}

	report := Reconcile(left, right)

	if len(report.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(report.Rows))
	}
	row := report.Rows[0]
	if !row.TitleAgree {
		t.Error("titles should agree")
	}
	if row.AuthorAgree {
		t.Error("authors should not agree")
	}
	if row.Fields["year"] != match.Disagree {
		t.Errorf("year verdict = %v, want Disagree", row.Fields["year"])
	}
	// A weak match is still a match: not in unmatched, not a multi-match.
	if len(report.Unmatched) != 0 {
		t.Errorf("weak match should not be unmatched, got %v", report.Unmatched.Keys())
	}
	if len(report.MultiMatches) != 0 {
		t.Errorf("single weak match is not ambiguous, got %v", report.MultiMatches)
	}
}

func TestReconcile_DeterministicOrder(t *testing.T) {
	left := biblio.Collection{
		"b": hinton2016(),
		"a": hinton2016(),
	}
	right := biblio.Collection{"k": hinton2016()}

	report := Reconcile(left, right)

	if len(report.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(report.Rows))
	}
	if report.Rows[0].LeftKey != "a" || report.Rows[1].LeftKey != "b" {
		t.Errorf("rows not in sorted left-key order: %s, %s",
			report.Rows[0].LeftKey, report.Rows[1].LeftKey)
	}
}

func TestReconcile_FingerprintNotes(t *testing.T) {
	left := biblio.Collection{"l": {
		Fields:  map[string]string{"title": "Anonymous Work"},
		Authors: []biblio.Person{{Last: "Bourbaki"}},
	}}
	right := biblio.Collection{}

	report := Reconcile(left, right)

	if len(report.Notes) != 1 {
		t.Fatalf("expected 1 note, got %d: %v", len(report.Notes), report.Notes)
	}
	if report.Notes[0].Key != "l" {
		t.Errorf("note should carry the record key, got %q", report.Notes[0].Key)
	}
}
