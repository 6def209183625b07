package doi

import (
	"context"

	"github.com/bibmend/bibmend/internal/biblio"
)

// FieldDOI is the record field holding a DOI, when present.
const FieldDOI = "doi"

// Result is the verification outcome for one record.
type Result struct {
	Key      string `json:"key"`
	DOI      string `json:"doi"`
	Resolved bool   `json:"resolved"`
	Error    string `json:"error,omitempty"`
}

// VerifyCollection resolves the DOI of every record that has one, in
// sorted key order. Records without a DOI are skipped; the second return
// value counts them.
func (c *Client) VerifyCollection(ctx context.Context, col biblio.Collection) ([]Result, int) {
	var results []Result
	skipped := 0

	for _, key := range col.Keys() {
		value, ok := col[key].Field(FieldDOI)
		if !ok {
			skipped++
			continue
		}

		res := Result{Key: key, DOI: Normalize(value)}
		resolved, err := c.Resolve(ctx, value)
		if err != nil {
			res.Error = err.Error()
		}
		res.Resolved = resolved
		results = append(results, res)
	}

	return results, skipped
}
