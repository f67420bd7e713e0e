package permission

import (
	"errors"
	"fmt"
	"iter"
)

// ErrDuplicatePage is returned when two pages share a path.
var ErrDuplicatePage = errors.New("duplicate page path")

// Page is a navigable view and the roles allowed to open it.
type Page struct {
	Path  string `yaml:"path" json:"path"`
	Label string `yaml:"label" json:"label"`
	Roles []Role `yaml:"roles" json:"roles"`
}

// Allows reports whether role is in the page's allowed set.
func (p Page) Allows(role Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Navigation is an immutable, ordered page table.
type Navigation struct {
	pages  []Page
	byPath map[string]int
}

// NewNavigation validates pages and builds a [Navigation] that preserves
// their order. Paths must be unique and non-empty; roles must be known.
func NewNavigation(pages []Page) (*Navigation, error) {
	n := &Navigation{
		pages:  make([]Page, 0, len(pages)),
		byPath: make(map[string]int, len(pages)),
	}
	for _, page := range pages {
		if page.Path == "" {
			return nil, errors.New("page path cannot be empty")
		}
		if _, dup := n.byPath[page.Path]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePage, page.Path)
		}
		for _, r := range page.Roles {
			if !r.Valid() {
				return nil, fmt.Errorf("%w: %q on page %s", ErrUnknownRole, string(r), page.Path)
			}
		}
		n.byPath[page.Path] = len(n.pages)
		n.pages = append(n.pages, clonePage(page))
	}
	return n, nil
}

// CanAccessPage reports whether role may view the page at path. Paths not in
// the table are denied.
func (n *Navigation) CanAccessPage(role Role, path string) bool {
	if n == nil {
		return false
	}
	idx, ok := n.byPath[path]
	if !ok {
		return false
	}
	return n.pages[idx].Allows(role)
}

// AccessiblePages returns the pages role may view, in declaration order.
func (n *Navigation) AccessiblePages(role Role) []Page {
	var out []Page
	for page := range n.Pages(role) {
		out = append(out, page)
	}
	return out
}

// Pages yields the pages role may view, in declaration order. The sequence
// can be ranged over any number of times.
func (n *Navigation) Pages(role Role) iter.Seq[Page] {
	return func(yield func(Page) bool) {
		if n == nil {
			return
		}
		for _, page := range n.pages {
			if !page.Allows(role) {
				continue
			}
			if !yield(clonePage(page)) {
				return
			}
		}
	}
}

// All returns a copy of every page in declaration order.
func (n *Navigation) All() []Page {
	if n == nil {
		return nil
	}
	out := make([]Page, len(n.pages))
	for i, page := range n.pages {
		out[i] = clonePage(page)
	}
	return out
}

func clonePage(p Page) Page {
	roles := make([]Role, len(p.Roles))
	copy(roles, p.Roles)
	return Page{Path: p.Path, Label: p.Label, Roles: roles}
}
