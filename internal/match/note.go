package match

import "fmt"

// Note records a non-fatal data-quality observation made while comparing
// or indexing records: a missing author name part, a record without a
// title, an ambiguous multi-match. Notes accumulate into reports and
// never abort a run.
type Note struct {
	Key     string `json:"key,omitempty"` // record key, when known
	Message string `json:"message"`
}

func (n Note) String() string {
	if n.Key == "" {
		return n.Message
	}
	return fmt.Sprintf("%s: %s", n.Key, n.Message)
}
