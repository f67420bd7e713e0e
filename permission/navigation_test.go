package permission

import (
	"errors"
	"testing"
)

func TestCanAccessPage(t *testing.T) {
	if CanAccessPage(RoleUser, "/settings") {
		t.Fatal("user must not access /settings")
	}
	if !CanAccessPage(RoleManager, "/settings") {
		t.Fatal("manager must access /settings")
	}
	if !CanAccessPage(RoleAccountant, "/payroll") {
		t.Fatal("accountant must access /payroll")
	}
	for _, role := range AllRoles() {
		if CanAccessPage(role, "/nonexistent-path") {
			t.Fatalf("%s reached an unknown path", role)
		}
	}
	if CanAccessPage(Role("guest"), "/") {
		t.Fatal("unknown role must be denied")
	}
}

func TestAccessiblePagesForUserSkipsSettingsInOrder(t *testing.T) {
	pages := AccessiblePages(RoleUser)
	all := DefaultPages()

	if len(pages) != len(all)-1 {
		t.Fatalf("expected %d pages, got %d", len(all)-1, len(pages))
	}

	i := 0
	for _, page := range all {
		if page.Path == "/settings" {
			continue
		}
		if pages[i].Path != page.Path {
			t.Fatalf("position %d: got %s, want %s", i, pages[i].Path, page.Path)
		}
		i++
	}
	for _, p := range pages {
		if p.Path == "/settings" {
			t.Fatal("/settings must be excluded for user")
		}
	}
}

func TestAccessiblePagesForAdminIsEverything(t *testing.T) {
	if got, want := len(AccessiblePages(RoleAdmin)), len(DefaultPages()); got != want {
		t.Fatalf("admin pages = %d, want %d", got, want)
	}
	if got := AccessiblePages(Role("nobody")); len(got) != 0 {
		t.Fatalf("unknown role should see nothing, got %v", got)
	}
}

func TestPagesSequenceIsRestartableAndStoppable(t *testing.T) {
	nav := DefaultNavigation()
	seq := nav.Pages(RoleManager)

	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	if first != second || first != len(DefaultPages()) {
		t.Fatalf("sequence not restartable: %d then %d", first, second)
	}

	n := 0
	for range seq {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Fatalf("early break yielded %d", n)
	}
}

func TestNewNavigationValidation(t *testing.T) {
	_, err := NewNavigation([]Page{
		{Path: "/a", Roles: []Role{RoleUser}},
		{Path: "/a", Roles: []Role{RoleAdmin}},
	})
	if !errors.Is(err, ErrDuplicatePage) {
		t.Fatalf("expected ErrDuplicatePage, got %v", err)
	}

	_, err = NewNavigation([]Page{{Path: "/a", Roles: []Role{"superuser"}}})
	if !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}

	if _, err := NewNavigation([]Page{{Path: ""}}); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestNavigationCopiesAreIsolated(t *testing.T) {
	pages := DefaultNavigation().AccessiblePages(RoleAdmin)
	pages[0].Roles[0] = RoleUser
	pages[0].Path = "/changed"

	if !DefaultNavigation().CanAccessPage(RoleAdmin, "/") {
		t.Fatal("navigation table mutated through a returned page")
	}
}
