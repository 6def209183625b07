package match

import (
	"testing"

	"github.com/bibmend/bibmend/internal/biblio"
)

func rec(fields map[string]string, authors ...biblio.Person) biblio.Record {
	return biblio.Record{Fields: fields, Authors: authors}
}

func TestCompareField_Presence(t *testing.T) {
	withYear := rec(map[string]string{"year": "2016"})
	withoutYear := rec(map[string]string{})

	tests := []struct {
		name        string
		left, right biblio.Record
		want        Verdict
	}{
		{"both absent", withoutYear, withoutYear, BothAbsent},
		{"left absent", withoutYear, withYear, LeftAbsent},
		{"right absent", withYear, withoutYear, RightAbsent},
		{"both present equal", withYear, withYear, Agree},
		{"both present differ", withYear, rec(map[string]string{"year": "2017"}), Disagree},
	}

	for _, tt := range tests {
		if got := CompareField(tt.left, tt.right, biblio.FieldYear); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCompareField_TitleNormalized(t *testing.T) {
	a := rec(map[string]string{"title": "Deep Learning."})
	b := rec(map[string]string{"title": "deep learning"})

	if got := CompareField(a, b, biblio.FieldTitle); got != Agree {
		t.Errorf("normalized titles should agree, got %v", got)
	}
}

func TestCompareField_StructuralFieldsExact(t *testing.T) {
	// Unlike titles, structural fields are compared verbatim.
	a := rec(map[string]string{"volume": "12"})
	b := rec(map[string]string{"volume": "12."})

	if got := CompareField(a, b, biblio.FieldVolume); got != Disagree {
		t.Errorf("volume '12' vs '12.' should disagree, got %v", got)
	}
}

func TestCompareField_Author(t *testing.T) {
	initials := rec(nil, biblio.Person{Last: "Smith", First: "J."})
	full := rec(nil, biblio.Person{Last: "Smith", First: "John"})
	other := rec(nil, biblio.Person{Last: "Jones", First: "John"})

	if got := CompareField(initials, full, biblio.FieldAuthor); got != Agree {
		t.Errorf("initials vs full name should agree, got %v", got)
	}
	if got := CompareField(full, other, biblio.FieldAuthor); got != Disagree {
		t.Errorf("different surnames should disagree, got %v", got)
	}
}

func TestCompareField_MirrorSymmetry(t *testing.T) {
	records := []biblio.Record{
		rec(map[string]string{}),
		rec(map[string]string{"year": "2016"}),
		rec(map[string]string{"year": "2017"}),
	}

	for _, a := range records {
		for _, b := range records {
			forward := CompareField(a, b, biblio.FieldYear)
			backward := CompareField(b, a, biblio.FieldYear)
			if forward.Mirror() != backward {
				t.Errorf("CompareField(a,b)=%v and CompareField(b,a)=%v are not mirror images",
					forward, backward)
			}
		}
	}
}
