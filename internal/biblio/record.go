// Package biblio defines the core domain types for bibliographic records.
package biblio

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Recognized field names.
const (
	FieldType      = "type"
	FieldTitle     = "title"
	FieldJournal   = "journal"
	FieldVolume    = "volume"
	FieldNumber    = "number"
	FieldPages     = "pages"
	FieldYear      = "year"
	FieldAuthor    = "author"
	FieldPublisher = "publisher"
)

// ReservedCollectionKey marks a mapping as a wrapped collection rather than
// a bare key→record map. It may never be used as a record key.
const ReservedCollectionKey = "entries"

// CompareFields are the structural fields reported verdict-by-verdict when
// two records are compared.
var CompareFields = []string{
	FieldType, FieldJournal, FieldVolume, FieldNumber, FieldPages, FieldYear,
}

// Record is one bibliographic entry: a field-name→value mapping plus an
// ordered author list. Any field may be absent.
type Record struct {
	Fields  map[string]string
	Authors []Person
}

// Field returns the value of a named field and whether it is present.
// Empty values count as absent. The author list is not addressable here;
// use Authors directly.
func (r Record) Field(name string) (string, bool) {
	v, ok := r.Fields[name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Has reports whether the record carries a non-empty value for the field.
// For the author field it checks the author list.
func (r Record) Has(name string) bool {
	if name == FieldAuthor {
		return len(r.Authors) > 0
	}
	_, ok := r.Field(name)
	return ok
}

// Set stores a field value, allocating the field map if needed.
func (r *Record) Set(name, value string) {
	if r.Fields == nil {
		r.Fields = make(map[string]string)
	}
	r.Fields[name] = value
}

// Clone returns a deep copy. Records never share storage across
// collections.
func (r Record) Clone() Record {
	out := Record{}
	if r.Fields != nil {
		out.Fields = make(map[string]string, len(r.Fields))
		for k, v := range r.Fields {
			out.Fields[k] = v
		}
	}
	if r.Authors != nil {
		out.Authors = make([]Person, len(r.Authors))
		copy(out.Authors, r.Authors)
	}
	return out
}

// UnmarshalYAML decodes a record from a YAML mapping. Scalar values are
// kept as their literal text (so `year: 2016` and `year: "2016"` read the
// same), and the author field accepts either name mappings or plain
// "Last, First" strings.
func (r *Record) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("record must be a mapping, got %s", nodeKindName(value.Kind))
	}

	r.Fields = make(map[string]string)
	r.Authors = nil

	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valNode := value.Content[i+1]
		key := keyNode.Value

		if key == FieldAuthor {
			authors, err := decodeAuthors(valNode)
			if err != nil {
				return fmt.Errorf("field %q: %w", key, err)
			}
			r.Authors = authors
			continue
		}

		switch valNode.Kind {
		case yaml.ScalarNode:
			r.Fields[key] = valNode.Value
		default:
			return fmt.Errorf("field %q: expected a scalar value, got %s", key, nodeKindName(valNode.Kind))
		}
	}

	return nil
}

// MarshalYAML encodes the record with fields in sorted order and the
// author list last, for stable diffs of saved collections.
func (r Record) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	names := make([]string, 0, len(r.Fields))
	for name, v := range r.Fields {
		if v == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		node.Content = append(node.Content,
			scalarNode(name), scalarNode(r.Fields[name]))
	}

	if len(r.Authors) > 0 {
		authorsNode := &yaml.Node{}
		if err := authorsNode.Encode(r.Authors); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, scalarNode(FieldAuthor), authorsNode)
	}

	return node, nil
}

func decodeAuthors(node *yaml.Node) ([]Person, error) {
	switch node.Kind {
	case yaml.SequenceNode:
		var out []Person
		for _, item := range node.Content {
			p, err := decodePerson(item)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
		return out, nil
	case yaml.MappingNode, yaml.ScalarNode:
		p, err := decodePerson(node)
		if err != nil {
			return nil, err
		}
		return []Person{p}, nil
	default:
		return nil, fmt.Errorf("expected a sequence of names, got %s", nodeKindName(node.Kind))
	}
}

func decodePerson(node *yaml.Node) (Person, error) {
	switch node.Kind {
	case yaml.MappingNode:
		var p Person
		if err := node.Decode(&p); err != nil {
			return Person{}, err
		}
		return p, nil
	case yaml.ScalarNode:
		return ParsePerson(node.Value), nil
	default:
		return Person{}, fmt.Errorf("expected a name mapping or string, got %s", nodeKindName(node.Kind))
	}
}

func scalarNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func nodeKindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
