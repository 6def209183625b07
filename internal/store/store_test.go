package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bibmend/bibmend/internal/biblio"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleWrapped = `
entries:
  hinton2016:
    title: Deep Learning
    year: 2016
    author:
      - last: Hinton
        first: Geoffrey
`

const sampleBare = `
hinton2016:
  title: Deep Learning
  year: 2016
`

func TestLoad_Wrapped(t *testing.T) {
	path := writeFile(t, "db.yaml", sampleWrapped)

	col, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec, ok := col["hinton2016"]
	if !ok {
		t.Fatalf("expected hinton2016, got keys %v", col.Keys())
	}
	if title, _ := rec.Field("title"); title != "Deep Learning" {
		t.Errorf("title = %q", title)
	}
	if len(rec.Authors) != 1 {
		t.Errorf("authors = %+v", rec.Authors)
	}
}

func TestLoad_Bare(t *testing.T) {
	path := writeFile(t, "db.yaml", sampleBare)

	col, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := col["hinton2016"]; !ok {
		t.Errorf("expected hinton2016, got keys %v", col.Keys())
	}
}

func TestLoad_BothShapesReadIdentically(t *testing.T) {
	wrapped, err := Load(writeFile(t, "w.yaml", sampleWrapped))
	if err != nil {
		t.Fatal(err)
	}
	bare, err := Load(writeFile(t, "b.yaml", sampleBare))
	if err != nil {
		t.Fatal(err)
	}

	if wt, _ := wrapped["hinton2016"].Field("title"); wt != "Deep Learning" {
		t.Errorf("wrapped title = %q", wt)
	}
	if bt, _ := bare["hinton2016"].Field("title"); bt != "Deep Learning" {
		t.Errorf("bare title = %q", bt)
	}
}

func TestLoad_MalformedDocument(t *testing.T) {
	cases := map[string]string{
		"sequence root":  "- a\n- b\n",
		"scalar root":    "just text\n",
		"scalar record":  "k1: just a string\n",
		"nested entries": "entries:\n  entries:\n    title: X\n",
	}

	for name, content := range cases {
		_, err := Load(writeFile(t, "bad.yaml", content))
		var malformed *MalformedInputError
		if !errors.As(err, &malformed) {
			t.Errorf("%s: expected MalformedInputError, got %v", name, err)
		}
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	col, err := Load(writeFile(t, "empty.yaml", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(col) != 0 {
		t.Errorf("expected empty collection, got %v", col.Keys())
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	col := biblio.Collection{
		"k1": {
			Fields:  map[string]string{"title": "First Work", "year": "2001"},
			Authors: []biblio.Person{{Last: "Smith", First: "John"}},
		},
		"k2": {Fields: map[string]string{"title": "Second Work"}},
	}

	for _, wrapped := range []bool{true, false} {
		path := filepath.Join(t.TempDir(), "db.yaml")
		if err := Save(path, col, wrapped); err != nil {
			t.Fatalf("save (wrapped=%v): %v", wrapped, err)
		}

		back, err := Load(path)
		if err != nil {
			t.Fatalf("load (wrapped=%v): %v", wrapped, err)
		}
		if len(back) != len(col) {
			t.Fatalf("wrapped=%v: got %d records, want %d", wrapped, len(back), len(col))
		}
		if year, _ := back["k1"].Field("year"); year != "2001" {
			t.Errorf("wrapped=%v: year = %q", wrapped, year)
		}
		if len(back["k1"].Authors) != 1 {
			t.Errorf("wrapped=%v: authors = %+v", wrapped, back["k1"].Authors)
		}
	}
}

func TestSource_Resolve(t *testing.T) {
	path := writeFile(t, "db.yaml", sampleBare)

	fromFile, err := FilePath(path).Resolve()
	if err != nil {
		t.Fatalf("file source: %v", err)
	}
	if _, ok := fromFile["hinton2016"]; !ok {
		t.Error("file source lost the record")
	}

	mem := biblio.Collection{"x": {Fields: map[string]string{"title": "T"}}}
	fromMem, err := InMemory(mem).Resolve()
	if err != nil {
		t.Fatalf("memory source: %v", err)
	}
	if _, ok := fromMem["x"]; !ok {
		t.Error("memory source lost the record")
	}
}
