package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bibmend/bibmend/internal/reconcile"
	"github.com/bibmend/bibmend/internal/render"
	"github.com/bibmend/bibmend/internal/store"
	"github.com/spf13/cobra"
)

var compareOutput string

func init() {
	compareCmd.Flags().StringVarP(&compareOutput, "output", "o", "", "Write the comparison report to this file")
	rootCmd.AddCommand(compareCmd)
}

var compareCmd = &cobra.Command{
	Use:   "compare <left.yaml> <right.yaml>",
	Short: "Reconcile two collections and report matches",
	Long: `Compare two collections entry by entry and report which records
describe the same work.

Every candidate match becomes a report row with per-field verdicts for
type, journal, volume, number, pages, and year. Left-side records with no
match at all are collected separately; when a report file is written they
are also saved next to it as <report>_NO_FOUND.yaml. A left record that
strong-matches more than one right record is flagged as ambiguous.

The comparison is asymmetric (left is checked against right); run it both
ways when auditing two databases against each other.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

// CompareResult is the JSON summary of a comparison.
type CompareResult struct {
	Rows         int            `json:"rows"`
	Unmatched    int            `json:"unmatched"`
	MultiMatches map[string]int `json:"multi_matches,omitempty"`
	ReportPath   string         `json:"report_path,omitempty"`
	NoFoundPath  string         `json:"no_found_path,omitempty"`
	Warnings     int            `json:"warnings"`
}

func runCompare(cmd *cobra.Command, args []string) error {
	left, err := store.Load(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	right, err := store.Load(args[1])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	report := reconcile.Reconcile(left, right)
	printNotes(report.Notes)

	noFoundPath := ""
	if compareOutput != "" {
		if len(report.Unmatched) > 0 {
			noFoundPath = noFoundFileName(compareOutput)
			if err := store.Save(noFoundPath, report.Unmatched, false); err != nil {
				exitWithError(ExitError, "writing unmatched entries: %v", err)
			}
		}

		f, err := os.Create(compareOutput)
		if err != nil {
			exitWithError(ExitError, "creating report: %v", err)
		}
		writeErr := render.WriteReport(f, report, noFoundPath)
		if err := f.Close(); writeErr == nil {
			writeErr = err
		}
		if writeErr != nil {
			exitWithError(ExitError, "writing report: %v", writeErr)
		}
	}

	if humanOutput && compareOutput == "" {
		return render.WriteReport(os.Stdout, report, "")
	}

	return outputJSON(CompareResult{
		Rows:         len(report.Rows),
		Unmatched:    len(report.Unmatched),
		MultiMatches: report.MultiMatches,
		ReportPath:   compareOutput,
		NoFoundPath:  noFoundPath,
		Warnings:     len(report.Notes),
	})
}

// noFoundFileName derives the unmatched-entries file from the report
// path: report.txt → report_NO_FOUND.yaml.
func noFoundFileName(reportPath string) string {
	base := strings.TrimSuffix(reportPath, filepath.Ext(reportPath))
	return base + "_NO_FOUND.yaml"
}
