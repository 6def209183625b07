// Package catalog maintains an ephemeral SQLite search index over a YAML
// collection. The YAML file stays the source of truth; the index is a
// cache, rebuilt whenever the source hash changes, and can be deleted at
// any time.
package catalog

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/bibmend/bibmend/internal/biblio"
	"github.com/bibmend/bibmend/internal/match"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite index.
type DB struct {
	db *sql.DB
}

// Open opens or creates the index database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating index schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS records (
			key TEXT PRIMARY KEY,
			title TEXT,
			norm_title TEXT,
			year TEXT,
			journal TEXT,
			first_author TEXT,
			authors_text TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_records_norm_title ON records(norm_title);
		CREATE INDEX IF NOT EXISTS idx_records_year ON records(year);

		CREATE TABLE IF NOT EXISTS _meta (
			key TEXT PRIMARY KEY,
			value TEXT
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Rebuild replaces the whole index with the given collection and records
// the source hash for staleness checks.
func (d *DB) Rebuild(c biblio.Collection, sourceHash string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM records"); err != nil {
		return fmt.Errorf("clearing index: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO records (key, title, norm_title, year, journal, first_author, authors_text)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, key := range c.Keys() {
		rec := c[key]
		title, _ := rec.Field(biblio.FieldTitle)
		year, _ := rec.Field(biblio.FieldYear)
		journal, _ := rec.Field(biblio.FieldJournal)

		firstAuthor := ""
		var names []string
		for _, p := range rec.Authors {
			names = append(names, p.DisplayName())
		}
		if len(names) > 0 {
			firstAuthor = rec.Authors[0].Last
		}

		_, err := stmt.Exec(key, title, match.Normalize(title), year,
			journal, firstAuthor, strings.Join(names, "; "))
		if err != nil {
			return fmt.Errorf("indexing %q: %w", key, err)
		}
	}

	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO _meta (key, value) VALUES ('source_hash', ?)`,
		sourceHash); err != nil {
		return fmt.Errorf("storing source hash: %w", err)
	}

	return tx.Commit()
}

// SourceHash returns the hash of the collection the index was built from,
// or "" for a fresh index.
func (d *DB) SourceHash() (string, error) {
	var hash sql.NullString
	err := d.db.QueryRow("SELECT value FROM _meta WHERE key = 'source_hash'").Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return hash.String, nil
}

// InSync reports whether the index matches the given source hash.
func (d *DB) InSync(sourceHash string) (bool, error) {
	stored, err := d.SourceHash()
	if err != nil {
		return false, err
	}
	return stored != "" && stored == sourceHash, nil
}

// Count returns the number of indexed records.
func (d *DB) Count() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&n)
	return n, err
}

// Filter selects indexed records. Empty fields match everything.
type Filter struct {
	Title  string // substring match on the normalized title
	Author string // substring match on the author list
	Year   string // exact match
}

// Entry is one search result.
type Entry struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Year        string `json:"year,omitempty"`
	Journal     string `json:"journal,omitempty"`
	FirstAuthor string `json:"first_author,omitempty"`
}

// Search returns the indexed records matching the filter, in key order.
func (d *DB) Search(f Filter) ([]Entry, error) {
	query := "SELECT key, title, year, journal, first_author FROM records"
	var conds []string
	var args []interface{}

	if f.Title != "" {
		conds = append(conds, "norm_title LIKE ?")
		args = append(args, "%"+match.Normalize(f.Title)+"%")
	}
	if f.Author != "" {
		conds = append(conds, "LOWER(authors_text) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Author)+"%")
	}
	if f.Year != "" {
		conds = append(conds, "year = ?")
		args = append(args, f.Year)
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY key"

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.Title, &e.Year, &e.Journal, &e.FirstAuthor); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
