package main

import (
	"context"
	"fmt"

	"github.com/bibmend/bibmend/internal/doi"
	"github.com/bibmend/bibmend/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify <db.yaml>",
	Short: "Check that record DOIs resolve",
	Long: `Check every record's DOI against the doi.org resolver.

Requests are rate limited. Records without a DOI are counted but not
treated as failures; a DOI database is expected to be incomplete.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

// VerifyResult is the JSON summary of a verification run.
type VerifyResult struct {
	Checked    int          `json:"checked"`
	Resolved   int          `json:"resolved"`
	Unresolved int          `json:"unresolved"`
	Skipped    int          `json:"skipped"`
	Results    []doi.Result `json:"results"`
}

func runVerify(cmd *cobra.Command, args []string) error {
	col, err := store.Load(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	client := doi.NewClient()
	results, skipped := client.VerifyCollection(context.Background(), col)

	resolved := 0
	for _, r := range results {
		if r.Resolved {
			resolved++
		}
	}

	if humanOutput {
		for _, r := range results {
			status := "ok"
			if !r.Resolved {
				status = "FAILED"
				if r.Error != "" {
					status += " (" + r.Error + ")"
				}
			}
			fmt.Printf("%s: %s %s\n", r.Key, r.DOI, status)
		}
		fmt.Printf("%d checked, %d resolved, %d skipped (no DOI)\n",
			len(results), resolved, skipped)
		return nil
	}

	return outputJSON(VerifyResult{
		Checked:    len(results),
		Resolved:   resolved,
		Unresolved: len(results) - resolved,
		Skipped:    skipped,
		Results:    results,
	})
}
