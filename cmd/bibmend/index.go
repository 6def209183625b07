package main

import (
	"github.com/bibmend/bibmend/internal/catalog"
	"github.com/bibmend/bibmend/internal/config"
	"github.com/bibmend/bibmend/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index <db.yaml>",
	Short: "Build the search index for a collection",
	Long: `Build or rebuild the SQLite search index for a collection.

The YAML file stays the source of truth; the index lives under .bibmend/
next to it and is keyed to a hash of the file, so searches notice stale
indexes and rebuild automatically. Running index explicitly is only
needed to pre-warm the cache for large collections.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

// IndexResult is the JSON summary of an index build.
type IndexResult struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
	Path    string `json:"path"`
}

func runIndex(cmd *cobra.Command, args []string) error {
	col, err := store.Load(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	hash, err := catalog.HashFile(args[0])
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if _, err := config.EnsureCacheDir(args[0]); err != nil {
		exitWithError(ExitConfigError, "creating cache directory: %v", err)
	}

	dbPath := config.IndexPath(args[0])
	db, err := catalog.Open(dbPath)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer db.Close()

	if err := db.Rebuild(col, hash); err != nil {
		exitWithError(ExitError, "rebuilding index: %v", err)
	}

	return outputJSON(IndexResult{
		Status:  "indexed",
		Records: len(col),
		Path:    dbPath,
	})
}
