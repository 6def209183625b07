// Package bibtex parses, rewrites, and emits BibTeX entries.
package bibtex

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bibmend/bibmend/internal/biblio"
)

// errSkipped marks @comment, @preamble, and @string blocks, which carry
// no record.
var errSkipped = errors.New("entry skipped")

// Parse reads BibTeX text into a collection keyed by citation key.
//
// The parser is brace-aware but small: it handles
// `@type{key, name = {value}, ...}` entries with nested braces and quoted
// or bare values, which covers what reference managers export. Entries
// without a citation key are an error; run InjectKeys over the raw file
// first to generate them.
func Parse(data []byte) (biblio.Collection, error) {
	p := &parser{data: string(data), line: 1}
	col := make(biblio.Collection)

	for {
		if !p.seekEntry() {
			return col, nil
		}

		key, rec, err := p.parseEntry()
		if err == errSkipped {
			continue
		}
		if err != nil {
			return nil, err
		}
		if _, exists := col[key]; exists {
			return nil, fmt.Errorf("line %d: duplicate citation key %q", p.line, key)
		}
		col[key] = rec
	}
}

type parser struct {
	data string
	pos  int
	line int
}

// seekEntry advances to the next '@' and reports whether one was found.
func (p *parser) seekEntry() bool {
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c == '@' {
			return true
		}
		if c == '\n' {
			p.line++
		}
		p.pos++
	}
	return false
}

func (p *parser) parseEntry() (string, biblio.Record, error) {
	p.pos++ // consume '@'

	entryType := strings.ToLower(p.takeWord())
	if entryType == "" {
		return "", biblio.Record{}, fmt.Errorf("line %d: missing entry type after '@'", p.line)
	}

	// @comment and @preamble carry no record; @string macros are not
	// expanded here.
	if entryType == "comment" || entryType == "preamble" || entryType == "string" {
		if err := p.skipBlock(); err != nil {
			return "", biblio.Record{}, err
		}
		return "", biblio.Record{}, errSkipped
	}

	p.skipSpace()
	if !p.consume('{') {
		return "", biblio.Record{}, fmt.Errorf("line %d: expected '{' after @%s", p.line, entryType)
	}

	p.skipSpace()
	key := p.takeUntil(',', '}')
	key = strings.TrimSpace(key)
	if key == "" {
		return "", biblio.Record{}, fmt.Errorf("line %d: @%s entry has no citation key", p.line, entryType)
	}
	p.consume(',')

	rec := biblio.Record{Fields: map[string]string{biblio.FieldType: entryType}}

	for {
		p.skipSpace()
		if p.consume('}') {
			break
		}
		if p.pos >= len(p.data) {
			return "", biblio.Record{}, fmt.Errorf("entry %q: unexpected end of input", key)
		}

		name := strings.ToLower(strings.TrimSpace(p.takeUntil('=', '}')))
		if !p.consume('=') {
			return "", biblio.Record{}, fmt.Errorf("entry %q: field %q has no value", key, name)
		}

		value, err := p.takeValue()
		if err != nil {
			return "", biblio.Record{}, fmt.Errorf("entry %q: field %q: %w", key, name, err)
		}
		p.skipSpace()
		p.consume(',')

		if name == biblio.FieldAuthor {
			rec.Authors = ParseAuthors(value)
			continue
		}
		rec.Fields[name] = value
	}

	return key, rec, nil
}

// takeValue reads one field value: a brace-balanced group, a quoted
// string, or a bare token.
func (p *parser) takeValue() (string, error) {
	p.skipSpace()
	if p.pos >= len(p.data) {
		return "", fmt.Errorf("line %d: unexpected end of input", p.line)
	}

	switch p.data[p.pos] {
	case '{':
		p.pos++
		start := p.pos
		depth := 1
		for p.pos < len(p.data) {
			switch p.data[p.pos] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					value := p.data[start:p.pos]
					p.pos++
					return cleanValue(value), nil
				}
			case '\n':
				p.line++
			}
			p.pos++
		}
		return "", fmt.Errorf("line %d: unbalanced braces", p.line)
	case '"':
		p.pos++
		start := p.pos
		for p.pos < len(p.data) {
			if p.data[p.pos] == '"' {
				value := p.data[start:p.pos]
				p.pos++
				return cleanValue(value), nil
			}
			if p.data[p.pos] == '\n' {
				p.line++
			}
			p.pos++
		}
		return "", fmt.Errorf("line %d: unterminated string", p.line)
	default:
		return cleanValue(p.takeUntil(',', '}')), nil
	}
}

// skipBlock consumes a brace-balanced block, for entries we ignore.
func (p *parser) skipBlock() error {
	p.skipSpace()
	if !p.consume('{') {
		return fmt.Errorf("line %d: expected '{'", p.line)
	}
	depth := 1
	for p.pos < len(p.data) {
		switch p.data[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				p.pos++
				return nil
			}
		case '\n':
			p.line++
		}
		p.pos++
	}
	return fmt.Errorf("line %d: unbalanced braces", p.line)
}

func (p *parser) takeWord() string {
	start := p.pos
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			p.pos++
			continue
		}
		break
	}
	return p.data[start:p.pos]
}

func (p *parser) takeUntil(stops ...byte) string {
	start := p.pos
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		for _, stop := range stops {
			if c == stop {
				return p.data[start:p.pos]
			}
		}
		if c == '\n' {
			p.line++
		}
		p.pos++
	}
	return p.data[start:]
}

func (p *parser) consume(c byte) bool {
	if p.pos < len(p.data) && p.data[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.data) {
		switch p.data[p.pos] {
		case '\n':
			p.line++
		case ' ', '\t', '\r':
		default:
			return
		}
		p.pos++
	}
}

// cleanValue collapses whitespace runs and drops the braces BibTeX uses
// for case protection.
func cleanValue(s string) string {
	s = strings.ReplaceAll(s, "{", "")
	s = strings.ReplaceAll(s, "}", "")
	return strings.Join(strings.Fields(s), " ")
}

// ParseAuthors splits a BibTeX author field ("Last, First and Last,
// First M") into persons.
func ParseAuthors(value string) []biblio.Person {
	var authors []biblio.Person
	for _, name := range strings.Split(value, " and ") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		authors = append(authors, biblio.ParsePerson(name))
	}
	return authors
}
