package bibtex

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// EntryTypes are the standard BibTeX entry types considered when
// injecting keys.
var EntryTypes = []string{
	"article", "book", "booklet", "conference", "inbook", "incollection",
	"inproceedings", "manual", "mastersthesis", "misc", "phdthesis",
	"proceedings", "techreport", "unpublished",
}

// keylessEntryRegex matches an entry-open line whose citation key is
// missing: `@article{,` (with arbitrary spacing).
var keylessEntryRegex = regexp.MustCompile(
	`(?i)^@(` + strings.Join(EntryTypes, "|") + `)\s*\{\s*,\s*$`)

// GenerateKey builds a citation key from a prefix and an index:
// GenerateKey("ref", 7) → "ref-007".
func GenerateKey(prefix string, index int) string {
	return fmt.Sprintf("%s-%03d", prefix, index)
}

// InjectKeys rewrites raw BibTeX, generating citation keys for entries
// that have none. Keys are <prefix>-NNN beginning at start. Everything
// else passes through byte for byte. Returns the rewritten text and the
// number of keys injected.
func InjectKeys(data []byte, prefix string, start int) ([]byte, int, error) {
	var out bytes.Buffer
	injected := 0
	index := start

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if m := keylessEntryRegex.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			fmt.Fprintf(&out, "@%s{%s,\n", strings.ToLower(m[1]), GenerateKey(prefix, index))
			index++
			injected++
			continue
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("scanning bibtex: %w", err)
	}

	return out.Bytes(), injected, nil
}
