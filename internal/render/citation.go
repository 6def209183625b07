package render

import (
	"fmt"
	"strings"

	"github.com/bibmend/bibmend/internal/biblio"
)

// Citation renders one record as a single human-readable reference line.
// Every present field shows up in the output; absent fields are simply
// left out.
func Citation(rec biblio.Record) string {
	var parts []string

	if len(rec.Authors) > 0 {
		names := make([]string, len(rec.Authors))
		for i, p := range rec.Authors {
			names[i] = p.DisplayName()
		}
		parts = append(parts, strings.Join(names, ", "))
	}

	if title, ok := rec.Field(biblio.FieldTitle); ok {
		parts = append(parts, title)
	}

	if journal, ok := rec.Field(biblio.FieldJournal); ok {
		ref := journal
		if volume, ok := rec.Field(biblio.FieldVolume); ok {
			ref += " " + volume
			if number, ok := rec.Field(biblio.FieldNumber); ok {
				ref += "(" + number + ")"
			}
		}
		if pages, ok := rec.Field(biblio.FieldPages); ok {
			ref += ":" + pages
		}
		parts = append(parts, ref)
	} else if pages, ok := rec.Field(biblio.FieldPages); ok {
		parts = append(parts, "pp. "+pages)
	}

	if publisher, ok := rec.Field(biblio.FieldPublisher); ok {
		parts = append(parts, publisher)
	}

	if year, ok := rec.Field(biblio.FieldYear); ok {
		parts = append(parts, year)
	}

	return strings.Join(parts, ". ") + "."
}

// CitationList renders every record in the collection, one per line,
// prefixed by its key, in sorted key order.
func CitationList(c biblio.Collection) string {
	var b strings.Builder
	for _, key := range c.Keys() {
		fmt.Fprintf(&b, "[%s] %s\n", key, Citation(c[key]))
	}
	return b.String()
}
