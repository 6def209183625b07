package biblio

import "sort"

// Collection is a keyed set of records. Keys are unique within the
// collection; insertion order carries no meaning.
type Collection map[string]Record

// Keys returns the record keys in sorted order. All iteration over a
// collection happens through this so that reports and saved files come
// out the same on every run.
func (c Collection) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of the collection.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	for k, rec := range c {
		out[k] = rec.Clone()
	}
	return out
}
