package biblio

import "strings"

// Person represents one author of a bibliographic record.
type Person struct {
	Last   string `yaml:"last" json:"last"`
	First  string `yaml:"first,omitempty" json:"first,omitempty"`
	Middle string `yaml:"middle,omitempty" json:"middle,omitempty"`
}

// ParsePerson parses a name string into a Person.
//
// Supported formats:
//   - "Smith, John"        → last="Smith", first="John"
//   - "Smith, John Q"      → last="Smith", first="John", middle="Q"
//   - "John Smith"         → first="John", last="Smith"
//   - "Smith"              → last="Smith"
func ParsePerson(input string) Person {
	input = strings.TrimSpace(input)
	if input == "" {
		return Person{}
	}

	// Comma format: "Last, First [Middle]"
	if idx := strings.Index(input, ","); idx > 0 {
		last := strings.TrimSpace(input[:idx])
		rest := strings.Fields(input[idx+1:])
		p := Person{Last: last}
		if len(rest) > 0 {
			p.First = rest[0]
		}
		if len(rest) > 1 {
			p.Middle = strings.Join(rest[1:], " ")
		}
		return p
	}

	parts := strings.Fields(input)
	if len(parts) == 1 {
		return Person{Last: parts[0]}
	}

	// Space format: last word is the family name.
	p := Person{
		First: parts[0],
		Last:  parts[len(parts)-1],
	}
	if len(parts) > 2 {
		p.Middle = strings.Join(parts[1:len(parts)-1], " ")
	}
	return p
}

// DisplayName formats the person as "First Middle Last".
func (p Person) DisplayName() string {
	parts := make([]string, 0, 3)
	if p.First != "" {
		parts = append(parts, p.First)
	}
	if p.Middle != "" {
		parts = append(parts, p.Middle)
	}
	if p.Last != "" {
		parts = append(parts, p.Last)
	}
	return strings.Join(parts, " ")
}
