// Package store loads and saves YAML bibliography collections.
//
// Collection files come in two shapes: a bare key→record mapping, or the
// same mapping wrapped under a single `entries:` key (the shape emitted
// by BibTeX conversion tools). The wrapper is resolved here, once; the
// rest of the toolkit only ever sees a canonical Collection.
package store

import (
	"fmt"
	"os"

	"github.com/bibmend/bibmend/internal/biblio"
	"gopkg.in/yaml.v3"
)

// MalformedInputError reports a structurally invalid collection: not a
// mapping, a record of the wrong shape, or a reserved key misuse. These
// abort the operation with no partial output.
type MalformedInputError struct {
	Source string // file path or source label
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed collection %s: %s", e.Source, e.Reason)
}

// Load reads a collection from a YAML file.
func Load(path string) (biblio.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading collection: %w", err)
	}
	return Decode(data, path)
}

// Decode parses YAML into a collection, unwrapping an `entries:` wrapper
// when present. The name is used only in error messages.
func Decode(data []byte, name string) (biblio.Collection, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &MalformedInputError{Source: name, Reason: err.Error()}
	}
	if len(doc.Content) == 0 {
		// Empty file is an empty collection.
		return biblio.Collection{}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &MalformedInputError{Source: name, Reason: "collection must be a mapping"}
	}

	mapping := root
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == biblio.ReservedCollectionKey {
			inner := root.Content[i+1]
			if inner.Kind != yaml.MappingNode {
				return nil, &MalformedInputError{Source: name, Reason: "entries must be a mapping"}
			}
			mapping = inner
			break
		}
	}

	var col biblio.Collection
	if err := mapping.Decode(&col); err != nil {
		return nil, &MalformedInputError{Source: name, Reason: err.Error()}
	}
	if _, ok := col[biblio.ReservedCollectionKey]; ok {
		return nil, &MalformedInputError{
			Source: name,
			Reason: fmt.Sprintf("%q is reserved and cannot be used as a record key", biblio.ReservedCollectionKey),
		}
	}

	return col, nil
}

// Save writes a collection to a YAML file, optionally wrapped under an
// `entries:` key. Record keys come out sorted.
func Save(path string, c biblio.Collection, wrapped bool) error {
	data, err := Encode(c, wrapped)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing collection: %w", err)
	}
	return nil
}

// Encode marshals a collection to YAML.
func Encode(c biblio.Collection, wrapped bool) ([]byte, error) {
	var doc interface{} = c
	if wrapped {
		doc = map[string]biblio.Collection{biblio.ReservedCollectionKey: c}
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding collection: %w", err)
	}
	return data, nil
}
