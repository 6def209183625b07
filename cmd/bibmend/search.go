package main

import (
	"fmt"

	"github.com/bibmend/bibmend/internal/catalog"
	"github.com/bibmend/bibmend/internal/config"
	"github.com/bibmend/bibmend/internal/store"
	"github.com/spf13/cobra"
)

var (
	searchTitle  string
	searchAuthor string
	searchYear   string
)

func init() {
	searchCmd.Flags().StringVar(&searchTitle, "title", "", "Match a title substring (punctuation-insensitive)")
	searchCmd.Flags().StringVar(&searchAuthor, "author", "", "Match an author name substring")
	searchCmd.Flags().StringVar(&searchYear, "year", "", "Match the publication year exactly")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <db.yaml>",
	Short: "Search a collection through its index",
	Long: `Search a collection by title, author, or year.

The query runs against the SQLite index, which is rebuilt on the fly when
the collection file has changed since the last build.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

// SearchResult is the JSON output of a search.
type SearchResult struct {
	Count   int             `json:"count"`
	Entries []catalog.Entry `json:"entries"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	hash, err := catalog.HashFile(args[0])
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if _, err := config.EnsureCacheDir(args[0]); err != nil {
		exitWithError(ExitConfigError, "creating cache directory: %v", err)
	}

	db, err := catalog.Open(config.IndexPath(args[0]))
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer db.Close()

	inSync, err := db.InSync(hash)
	if err != nil {
		exitWithError(ExitError, "checking index: %v", err)
	}
	if !inSync {
		col, err := store.Load(args[0])
		if err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
		if err := db.Rebuild(col, hash); err != nil {
			exitWithError(ExitError, "rebuilding index: %v", err)
		}
	}

	entries, err := db.Search(catalog.Filter{
		Title:  searchTitle,
		Author: searchAuthor,
		Year:   searchYear,
	})
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		for _, e := range entries {
			line := e.Key + ": " + e.Title
			if e.Year != "" {
				line += " (" + e.Year + ")"
			}
			fmt.Println(line)
		}
		return nil
	}

	return outputJSON(SearchResult{Count: len(entries), Entries: entries})
}
