package guard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Policies maps a payload schema name to the fields it may carry.
//
//	schemas:
//	  patients: [first_name, last_name, date_of_birth, contacts, email, phone]
//	  appointments: [patient_id, starts_at, notes]
type Policies map[string][]string

type policyDocument struct {
	Schemas map[string][]string `yaml:"schemas"`
}

// ParsePolicies decodes a YAML policy document. An empty document yields
// empty Policies.
func ParsePolicies(r io.Reader) (Policies, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc policyDocument
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Policies{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}

	policies := make(Policies, len(doc.Schemas))
	for schema, fields := range doc.Schemas {
		schema = strings.TrimSpace(schema)
		if schema == "" {
			return nil, fmt.Errorf("%w: empty schema name", ErrInvalidPolicy)
		}

		clean := make([]string, 0, len(fields))
		for _, f := range fields {
			f = strings.TrimSpace(f)
			if f == "" {
				return nil, fmt.Errorf("%w: schema %q has an empty field name", ErrInvalidPolicy, schema)
			}
			if !slices.Contains(clean, f) {
				clean = append(clean, f)
			}
		}
		policies[schema] = clean
	}

	return policies, nil
}

// LoadPolicies reads a YAML policy file.
func LoadPolicies(path string) (Policies, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("guard: open policy file: %w", err)
	}
	defer f.Close()

	return ParsePolicies(f)
}

// Fields returns the allowed fields of schema.
func (p Policies) Fields(schema string) ([]string, bool) {
	fields, ok := p[schema]
	return slices.Clone(fields), ok
}
