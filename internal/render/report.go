// Package render produces the human-readable outputs of the toolkit: the
// fixed-width comparison report and formatted citation lists.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/bibmend/bibmend/internal/biblio"
	"github.com/bibmend/bibmend/internal/match"
	"github.com/bibmend/bibmend/internal/reconcile"
)

const (
	keyColWidth   = 35
	fieldColWidth = 10
)

var reportColumns = []string{
	"Title", "Authors", "Type", "Journal", "Volume", "Number", "Pages", "Year",
}

// WriteReport writes the comparison report for review: one row per
// candidate match, a cell legend, multi-match warnings, and the list of
// left-side references that found no match. noFoundPath names the YAML
// file the unmatched records were saved to; pass "" when none was
// written.
func WriteReport(w io.Writer, report reconcile.Report, noFoundPath string) error {
	var b strings.Builder

	b.WriteString(pad("Name in file 1", keyColWidth))
	b.WriteString(pad("Name in file 2", keyColWidth))
	for _, col := range reportColumns {
		b.WriteString(center(col, fieldColWidth))
	}
	b.WriteByte('\n')

	for _, row := range report.Rows {
		b.WriteString(pad(row.LeftKey, keyColWidth))
		b.WriteString(pad(row.RightKey, keyColWidth))
		b.WriteString(center(yesNo(row.TitleAgree), fieldColWidth))
		b.WriteString(center(yesNo(row.AuthorAgree), fieldColWidth))
		for _, field := range biblio.CompareFields {
			b.WriteString(center(verdictCell(row.Fields[field]), fieldColWidth))
		}
		b.WriteByte('\n')
	}

	b.WriteString("\n\n")
	b.WriteString(" ** M-1: field is missing for reference in file 1\n")
	b.WriteString(" ** M-2: field is missing for reference in file 2\n")
	b.WriteString(" ** M-Both: field is missing for both files\n\n")

	for _, key := range sortedKeys(report.MultiMatches) {
		fmt.Fprintf(&b, "%d entries were found for ref: %s\n", report.MultiMatches[key], key)
	}

	if len(report.Unmatched) > 0 {
		b.WriteString("\n\n\n")
		fmt.Fprintf(&b, "For %d references no match were found", len(report.Unmatched))
		if noFoundPath != "" {
			fmt.Fprintf(&b, " (see %s)", noFoundPath)
		}
		b.WriteString("\n\n\n")
		for _, key := range report.Unmatched.Keys() {
			b.WriteString(key)
			b.WriteByte('\n')
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// verdictCell maps a field verdict to its report cell.
func verdictCell(v match.Verdict) string {
	switch v {
	case match.Agree:
		return "Yes"
	case match.Disagree:
		return "No"
	case match.LeftAbsent:
		return "M-1"
	case match.RightAbsent:
		return "M-2"
	case match.BothAbsent:
		return "M-Both"
	default:
		return "?"
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// pad left-aligns s in a column of width w, truncating when necessary.
func pad(s string, w int) string {
	if len(s) >= w {
		return s[:w-1] + " "
	}
	return s + strings.Repeat(" ", w-len(s))
}

// center centers s in a column of width w.
func center(s string, w int) string {
	if len(s) >= w {
		return s[:w]
	}
	left := (w - len(s)) / 2
	right := w - len(s) - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
