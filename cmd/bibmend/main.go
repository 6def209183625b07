// Package main provides the bibmend CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bibmend",
	Short: "Bibliography reconciliation toolkit",
	Long: `bibmend compares, merges, and audits bibliographic collections.

Collections are YAML files mapping citation keys to records. bibmend
finds entries that describe the same work across two collections even
when titles differ in punctuation or authors are written with initials,
merges collections without duplicating works, converts BibTeX exports,
and renders citation lists. Commands output JSON by default for easy
scripting; pass --human for readable text.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env if present (for BIBMEND_* overrides)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
