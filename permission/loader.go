package permission

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Tables is the on-disk layout of a policy file.
//
//	roles:
//	  admin:
//	    - resource: invoices
//	      actions: [read, write, delete]
//	pages:
//	  - path: /invoices
//	    label: Invoices
//	    roles: [admin, user]
type Tables struct {
	Roles map[Role][]Permission `yaml:"roles"`
	Pages []Page                `yaml:"pages"`
}

// LoadTables decodes a YAML policy document and compiles both tables.
// Unknown keys are rejected so a typo cannot silently drop a grant.
func LoadTables(r io.Reader) (*Policy, *Navigation, error) {
	var t Tables
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, nil, fmt.Errorf("decode policy tables: %w", err)
	}

	policy, err := NewPolicy(t.Roles)
	if err != nil {
		return nil, nil, fmt.Errorf("compile policy: %w", err)
	}
	nav, err := NewNavigation(t.Pages)
	if err != nil {
		return nil, nil, fmt.Errorf("compile navigation: %w", err)
	}
	return policy, nav, nil
}

// LoadTablesFile reads a policy document from path.
func LoadTablesFile(path string) (*Policy, *Navigation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return LoadTables(f)
}
