package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bibmend/bibmend/internal/match"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or
// JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// printNotes writes data-quality notes to stderr. They never affect the
// exit code.
func printNotes(notes []match.Note) {
	for _, n := range notes {
		fmt.Fprintf(os.Stderr, "warning: %s\n", n)
	}
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}
