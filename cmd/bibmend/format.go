package main

import (
	"fmt"

	"github.com/bibmend/bibmend/internal/bibtex"
	"github.com/bibmend/bibmend/internal/render"
	"github.com/bibmend/bibmend/internal/store"
	"github.com/spf13/cobra"
)

var formatBibtex bool

func init() {
	formatCmd.Flags().BoolVar(&formatBibtex, "bibtex", false, "Emit BibTeX entries instead of a citation list")
	rootCmd.AddCommand(formatCmd)
}

var formatCmd = &cobra.Command{
	Use:   "format <db.yaml>",
	Short: "Render a collection as a citation list or BibTeX",
	Args:  cobra.ExactArgs(1),
	RunE:  runFormat,
}

// FormatResult is the JSON output of the format command.
type FormatResult struct {
	Key      string `json:"key"`
	Citation string `json:"citation"`
}

func runFormat(cmd *cobra.Command, args []string) error {
	col, err := store.Load(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if formatBibtex {
		fmt.Print(bibtex.FormatCollection(col))
		return nil
	}

	if humanOutput {
		fmt.Print(render.CitationList(col))
		return nil
	}

	results := make([]FormatResult, 0, len(col))
	for _, key := range col.Keys() {
		results = append(results, FormatResult{
			Key:      key,
			Citation: render.Citation(col[key]),
		})
	}
	return outputJSON(results)
}
