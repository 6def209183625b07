// Package subst applies substitution tables to records: special-character
// to LaTeX mappings and journal-name abbreviation equivalences, both
// loaded from YAML files that ship alongside the tool.
package subst

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bibmend/bibmend/internal/biblio"
	"gopkg.in/yaml.v3"
)

// Table maps source strings to replacements, applied to free-text fields.
type Table map[string]string

// Journals maps full journal names to their abbreviated forms.
type Journals map[string]string

// LoadTable reads a substitution table from a YAML mapping file.
// A missing path yields an empty table, not an error, so the tables stay
// optional.
func LoadTable(path string) (Table, error) {
	var t Table
	if err := loadYAMLMap(path, &t); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadJournals reads a journal-equivalence table from a YAML mapping file.
func LoadJournals(path string) (Journals, error) {
	var j Journals
	if err := loadYAMLMap(path, &j); err != nil {
		return nil, err
	}
	return j, nil
}

func loadYAMLMap(path string, out interface{}) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading substitution table: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing substitution table %s: %w", path, err)
	}
	return nil
}

// Apply replaces every occurrence of each table key in s. Keys are
// applied longest first, then lexically, so the result does not depend on
// map iteration order.
func (t Table) Apply(s string) string {
	if len(t) == 0 {
		return s
	}

	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	for _, k := range keys {
		s = strings.ReplaceAll(s, k, t[k])
	}
	return s
}

// Lookup returns the abbreviation for a journal name, or the name
// unchanged when no equivalence is registered.
func (j Journals) Lookup(name string) string {
	if abbrev, ok := j[name]; ok {
		return abbrev
	}
	return name
}

// Rewrite returns a copy of the record with the character table applied
// to the title and author name parts and the journal table applied to the
// journal field.
func Rewrite(rec biblio.Record, chars Table, journals Journals) biblio.Record {
	out := rec.Clone()

	if title, ok := out.Field(biblio.FieldTitle); ok {
		out.Set(biblio.FieldTitle, chars.Apply(title))
	}
	if journal, ok := out.Field(biblio.FieldJournal); ok {
		out.Set(biblio.FieldJournal, journals.Lookup(journal))
	}
	for i, p := range out.Authors {
		out.Authors[i] = biblio.Person{
			First:  chars.Apply(p.First),
			Middle: chars.Apply(p.Middle),
			Last:   chars.Apply(p.Last),
		}
	}

	return out
}
