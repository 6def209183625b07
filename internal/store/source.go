package store

import "github.com/bibmend/bibmend/internal/biblio"

// Source identifies where a collection comes from: a YAML file on disk or
// an already-loaded in-memory collection. It replaces untyped
// "path or mapping" parameters at the toolkit boundary; core code only
// ever receives the resolved Collection.
type Source struct {
	path string
	mem  biblio.Collection
}

// FilePath makes a Source backed by a YAML file.
func FilePath(path string) Source {
	return Source{path: path}
}

// InMemory makes a Source backed by a collection already in memory.
func InMemory(c biblio.Collection) Source {
	return Source{mem: c}
}

// Resolve loads the collection this source points at.
func (s Source) Resolve() (biblio.Collection, error) {
	if s.path != "" {
		return Load(s.path)
	}
	if s.mem == nil {
		return biblio.Collection{}, nil
	}
	return s.mem, nil
}

// String names the source for error messages and logs.
func (s Source) String() string {
	if s.path != "" {
		return s.path
	}
	return "(in-memory collection)"
}
