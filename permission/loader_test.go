package permission

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const samplePolicy = `
roles:
  admin:
    - resource: invoices
      actions: [read, write, delete]
  user:
    - resource: invoices
      actions: [read]
pages:
  - path: /
    label: Home
    roles: [admin, user]
  - path: /admin
    label: Admin
    roles: [admin]
`

func TestLoadTables(t *testing.T) {
	policy, nav, err := LoadTables(strings.NewReader(samplePolicy))
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}
	if !policy.HasPermission(RoleAdmin, "invoices", "delete") {
		t.Fatal("expected admin delete on invoices")
	}
	if policy.HasPermission(RoleUser, "invoices", "write") {
		t.Fatal("user must not write invoices")
	}
	if policy.HasPermission(RoleManager, "invoices", "read") {
		t.Fatal("manager is absent from the file and must be denied")
	}
	if nav.CanAccessPage(RoleUser, "/admin") {
		t.Fatal("user must not see /admin")
	}
	pages := nav.AccessiblePages(RoleAdmin)
	if len(pages) != 2 || pages[0].Path != "/" || pages[1].Path != "/admin" {
		t.Fatalf("unexpected admin pages: %+v", pages)
	}
}

func TestLoadTablesRejectsBadDocuments(t *testing.T) {
	cases := map[string]struct {
		doc  string
		want error
	}{
		"unknown role": {
			doc:  "roles:\n  owner:\n    - resource: a\n      actions: [read]\n",
			want: ErrUnknownRole,
		},
		"duplicate resource": {
			doc:  "roles:\n  user:\n    - resource: a\n      actions: [read]\n    - resource: a\n      actions: [write]\n",
			want: ErrDuplicateResource,
		},
		"separator in action": {
			doc:  "roles:\n  user:\n    - resource: invoices\n      actions: [\"read:all\"]\n",
			want: ErrInvalidPermission,
		},
		"separator in resource": {
			doc:  "roles:\n  user:\n    - resource: \"invoices:read\"\n      actions: [all]\n",
			want: ErrInvalidPermission,
		},
		"duplicate page": {
			doc:  "pages:\n  - path: /x\n    roles: [user]\n  - path: /x\n    roles: [admin]\n",
			want: ErrDuplicatePage,
		},
	}
	for name, tc := range cases {
		_, _, err := LoadTables(strings.NewReader(tc.doc))
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", name, tc.want, err)
		}
	}

	if _, _, err := LoadTables(strings.NewReader("rolez: {}\n")); err == nil {
		t.Fatal("expected unknown field to be rejected")
	}
}

func TestLoadTablesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte(samplePolicy), 0o600); err != nil {
		t.Fatalf("write policy: %v", err)
	}
	policy, _, err := LoadTablesFile(path)
	if err != nil {
		t.Fatalf("LoadTablesFile: %v", err)
	}
	if !policy.HasPermission(RoleUser, "invoices", "read") {
		t.Fatal("expected user read on invoices")
	}
	if _, _, err := LoadTablesFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
