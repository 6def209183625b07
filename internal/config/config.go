// Package config handles cache paths and global configuration.
package config

import (
	"os"
	"path/filepath"
)

const (
	// BibmendDir is the cache directory created next to a collection.
	BibmendDir = ".bibmend"
	// IndexDBSuffix is the extension of index database files.
	IndexDBSuffix = ".db"
)

// CacheDir returns the cache directory for a collection file.
func CacheDir(collectionPath string) string {
	return filepath.Join(filepath.Dir(collectionPath), BibmendDir)
}

// IndexPath returns the index database path for a collection file:
// refs.yaml → .bibmend/refs.yaml.db alongside it.
func IndexPath(collectionPath string) string {
	return filepath.Join(CacheDir(collectionPath), filepath.Base(collectionPath)+IndexDBSuffix)
}

// EnsureCacheDir creates the cache directory if needed and returns it.
func EnsureCacheDir(collectionPath string) (string, error) {
	dir := CacheDir(collectionPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
