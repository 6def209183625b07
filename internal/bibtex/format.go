package bibtex

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bibmend/bibmend/internal/biblio"
)

// fieldOrder fixes the order fields are emitted in.
var fieldOrder = []string{
	biblio.FieldTitle, biblio.FieldJournal, biblio.FieldVolume,
	biblio.FieldNumber, biblio.FieldPages, biblio.FieldYear,
	biblio.FieldPublisher,
}

// Format renders one record as a BibTeX entry under the given citation
// key.
func Format(key string, rec biblio.Record) string {
	entryType, ok := rec.Field(biblio.FieldType)
	if !ok {
		entryType = "misc"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s,\n", entryType, key)

	if len(rec.Authors) > 0 {
		fmt.Fprintf(&b, "  author = {%s},\n", formatAuthors(rec.Authors))
	}

	emitted := map[string]bool{biblio.FieldType: true}
	for _, field := range fieldOrder {
		if v, ok := rec.Field(field); ok {
			fmt.Fprintf(&b, "  %s = {%s},\n", field, EscapeLatex(v))
			emitted[field] = true
		}
	}

	// Any remaining fields (doi, url, ...) in sorted order.
	var rest []string
	for field := range rec.Fields {
		if !emitted[field] {
			rest = append(rest, field)
		}
	}
	sort.Strings(rest)
	for _, field := range rest {
		if v, ok := rec.Field(field); ok {
			fmt.Fprintf(&b, "  %s = {%s},\n", field, EscapeLatex(v))
		}
	}

	b.WriteString("}\n")
	return b.String()
}

// FormatCollection renders every record, in sorted key order.
func FormatCollection(c biblio.Collection) string {
	var entries []string
	for _, key := range c.Keys() {
		entries = append(entries, Format(key, c[key]))
	}
	return strings.Join(entries, "\n")
}

// formatAuthors renders authors in BibTeX style: "Last, First Middle and
// Last, First".
func formatAuthors(authors []biblio.Person) string {
	var formatted []string
	for _, p := range authors {
		given := p.First
		if p.Middle != "" {
			given = strings.TrimSpace(given + " " + p.Middle)
		}
		if given != "" {
			formatted = append(formatted, fmt.Sprintf("%s, %s", p.Last, given))
		} else {
			formatted = append(formatted, p.Last)
		}
	}
	return strings.Join(formatted, " and ")
}

// EscapeLatex escapes special LaTeX characters.
func EscapeLatex(s string) string {
	// & must come first so later escapes don't double up
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
