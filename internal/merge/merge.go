// Package merge unions two collections without duplicating works.
package merge

import (
	"fmt"
	"sort"

	"github.com/bibmend/bibmend/internal/biblio"
	"github.com/bibmend/bibmend/internal/match"
)

// KeyCollisionError reports that an incoming record's key already exists
// in the primary collection under a different title fingerprint. Keys are
// never silently overwritten.
type KeyCollisionError struct {
	Key          string // the colliding record key
	PrimaryTitle string // title the key already holds in primary
}

func (e *KeyCollisionError) Error() string {
	return fmt.Sprintf("key %q already exists in primary (title %q)", e.Key, e.PrimaryTitle)
}

// Result summarizes a merge.
type Result struct {
	// Added lists the keys copied from incoming into primary, sorted.
	Added []string
	// Notes accumulates data-quality observations, such as records
	// excluded from the title index for lacking a title.
	Notes []match.Note
}

// TitleIndex maps each record's normalized title to its key. Records
// without a title cannot be indexed; they are reported as notes and left
// untouched in their collection. When two records share a normalized
// title the first key in sorted order wins and the duplicate is noted.
func TitleIndex(c biblio.Collection) (map[string]string, []match.Note) {
	index := make(map[string]string, len(c))
	var notes []match.Note

	for _, key := range c.Keys() {
		title, ok := c[key].Field(biblio.FieldTitle)
		if !ok {
			notes = append(notes, match.Note{
				Key:     key,
				Message: "record has no title, excluded from title index",
			})
			continue
		}
		norm := match.Normalize(title)
		if existing, dup := index[norm]; dup {
			notes = append(notes, match.Note{
				Key:     key,
				Message: fmt.Sprintf("title duplicates record %q, excluded from title index", existing),
			})
			continue
		}
		index[norm] = key
	}

	return index, notes
}

// Merge copies into primary every incoming record whose title fingerprint
// is absent from primary, keeping the incoming record's original key.
// Primary is extended in place and returned; incoming is never mutated.
// The merge is left-biased: when both collections hold the same title,
// primary's record stays unchanged.
//
// A key collision (an incoming key that primary already uses for a
// different work) aborts the whole call before anything is copied.
func Merge(primary, incoming biblio.Collection) (Result, error) {
	primaryIndex, primaryNotes := TitleIndex(primary)
	incomingIndex, incomingNotes := TitleIndex(incoming)

	result := Result{}
	result.Notes = append(result.Notes, primaryNotes...)
	result.Notes = append(result.Notes, incomingNotes...)

	// Set difference over normalized-title fingerprints, in sorted order
	// for reproducible output.
	var toAdd []string
	for norm := range incomingIndex {
		if _, exists := primaryIndex[norm]; !exists {
			toAdd = append(toAdd, norm)
		}
	}
	sort.Strings(toAdd)

	// Collision check happens before any insertion so a failed merge
	// leaves primary untouched.
	for _, norm := range toAdd {
		key := incomingIndex[norm]
		if existing, exists := primary[key]; exists {
			title, _ := existing.Field(biblio.FieldTitle)
			return Result{}, &KeyCollisionError{Key: key, PrimaryTitle: title}
		}
	}

	for _, norm := range toAdd {
		key := incomingIndex[norm]
		primary[key] = incoming[key].Clone()
		result.Added = append(result.Added, key)
	}

	return result, nil
}
