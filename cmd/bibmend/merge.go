package main

import (
	"errors"

	"github.com/bibmend/bibmend/internal/merge"
	"github.com/bibmend/bibmend/internal/store"
	"github.com/spf13/cobra"
)

var (
	mergeDryRun bool
	mergeBare   bool
)

func init() {
	mergeCmd.Flags().BoolVar(&mergeDryRun, "dry-run", false, "Show what would be added without writing")
	mergeCmd.Flags().BoolVar(&mergeBare, "bare", false, "Save without the entries: wrapper")
	rootCmd.AddCommand(mergeCmd)
}

var mergeCmd = &cobra.Command{
	Use:   "merge <primary.yaml> <incoming.yaml>",
	Short: "Add entries from one collection into another",
	Long: `Merge the incoming collection into the primary one.

Works are keyed by their normalized title: an incoming record is added
only when no primary record carries the same title, and it keeps its
original citation key. The merge is left-biased: for a title present in
both collections the primary record stays untouched. An incoming key that
the primary already uses for a different work aborts the merge before
anything is written.`,
	Args: cobra.ExactArgs(2),
	RunE: runMerge,
}

// MergeResult is the JSON summary of a merge.
type MergeResult struct {
	Status   string   `json:"status"`
	Added    []string `json:"added,omitempty"`
	Warnings int      `json:"warnings"`
}

func runMerge(cmd *cobra.Command, args []string) error {
	primary, err := store.Load(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	incoming, err := store.Load(args[1])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if mergeDryRun {
		primary = primary.Clone()
	}

	result, err := merge.Merge(primary, incoming)
	if err != nil {
		var collision *merge.KeyCollisionError
		if errors.As(err, &collision) {
			exitWithError(ExitDataError, "%v", collision)
		}
		exitWithError(ExitError, "merging: %v", err)
	}
	printNotes(result.Notes)

	status := "merged"
	if mergeDryRun {
		status = "dry-run"
	} else if err := store.Save(args[0], primary, !mergeBare); err != nil {
		exitWithError(ExitError, "saving %s: %v", args[0], err)
	}

	return outputJSON(MergeResult{
		Status:   status,
		Added:    result.Added,
		Warnings: len(result.Notes),
	})
}
