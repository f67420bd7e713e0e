package permission

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateResource is returned when a role lists the same resource twice.
	ErrDuplicateResource = errors.New("duplicate resource for role")
	// ErrInvalidPermission is returned for an entry with an empty resource or
	// action, or one containing the ':' name separator.
	ErrInvalidPermission = errors.New("invalid permission entry")
)

// Permission grants a set of actions on one resource. It is scoped to the
// role whose list it appears in.
type Permission struct {
	Resource string   `yaml:"resource"`
	Actions  []string `yaml:"actions"`
}

// Allows reports whether action is listed.
func (p Permission) Allows(action string) bool {
	for _, a := range p.Actions {
		if a == action {
			return true
		}
	}
	return false
}

type roleEntry struct {
	permissions []Permission
	mask        mask
}

// Policy is an immutable Role → permissions table compiled to bitmasks.
type Policy struct {
	registry *Registry
	roles    map[Role]*roleEntry
}

// NewPolicy compiles table into a [Policy]. Every key must be a known role,
// each role may list a resource at most once, and the table may hold at most
// 128 distinct resource:action pairs.
func NewPolicy(table map[Role][]Permission) (*Policy, error) {
	distinct := make(map[string]struct{})
	for role, perms := range table {
		if !role.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRole, string(role))
		}
		seen := make(map[string]struct{}, len(perms))
		for _, p := range perms {
			if p.Resource == "" {
				return nil, fmt.Errorf("%w: role %s has an empty resource", ErrInvalidPermission, role)
			}
			if strings.Contains(p.Resource, ":") {
				return nil, fmt.Errorf("%w: role %s resource %q contains ':'", ErrInvalidPermission, role, p.Resource)
			}
			if _, dup := seen[p.Resource]; dup {
				return nil, fmt.Errorf("%w: role %s resource %s", ErrDuplicateResource, role, p.Resource)
			}
			seen[p.Resource] = struct{}{}
			for _, a := range p.Actions {
				if a == "" {
					return nil, fmt.Errorf("%w: role %s resource %s has an empty action", ErrInvalidPermission, role, p.Resource)
				}
				if strings.Contains(a, ":") {
					return nil, fmt.Errorf("%w: role %s resource %s action %q contains ':'", ErrInvalidPermission, role, p.Resource, a)
				}
				distinct[PermissionName(p.Resource, a)] = struct{}{}
			}
		}
	}

	maxBits := 64
	switch n := len(distinct); {
	case n > 128:
		return nil, fmt.Errorf("%w: %d resource:action pairs", ErrPermissionLimit, n)
	case n > 64:
		maxBits = 128
	}

	registry, err := NewRegistry(maxBits)
	if err != nil {
		return nil, err
	}

	p := &Policy{
		registry: registry,
		roles:    make(map[Role]*roleEntry, len(table)),
	}

	// Walk roles in declaration order so bit assignment is stable across runs.
	for _, role := range allRoles {
		perms, ok := table[role]
		if !ok {
			continue
		}
		entry := &roleEntry{
			permissions: clonePermissions(perms),
			mask:        newMask(maxBits),
		}
		for _, perm := range perms {
			for _, action := range perm.Actions {
				bit, err := registry.Register(PermissionName(perm.Resource, action))
				if err != nil {
					return nil, err
				}
				entry.mask.Set(bit)
			}
		}
		p.roles[role] = entry
	}

	registry.Freeze()
	return p, nil
}

// HasPermission reports whether role may perform action on resource.
// Unknown roles, resources, and actions are denied.
func (p *Policy) HasPermission(role Role, resource, action string) bool {
	if p == nil {
		return false
	}
	entry, ok := p.roles[role]
	if !ok {
		return false
	}
	bit, ok := p.registry.Bit(PermissionName(resource, action))
	if !ok {
		return false
	}
	return entry.mask.Has(bit)
}

// Permissions returns a copy of the role's permission list in declaration
// order, or nil for an unknown role.
func (p *Policy) Permissions(role Role) []Permission {
	if p == nil {
		return nil
	}
	entry, ok := p.roles[role]
	if !ok {
		return nil
	}
	return clonePermissions(entry.permissions)
}

// Roles returns the roles present in the table, in declaration order.
func (p *Policy) Roles() []Role {
	if p == nil {
		return nil
	}
	out := make([]Role, 0, len(p.roles))
	for _, r := range allRoles {
		if _, ok := p.roles[r]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Registry exposes the frozen bit registry backing the policy.
func (p *Policy) Registry() *Registry {
	return p.registry
}

func clonePermissions(in []Permission) []Permission {
	out := make([]Permission, len(in))
	for i, perm := range in {
		actions := make([]string, len(perm.Actions))
		copy(actions, perm.Actions)
		out[i] = Permission{Resource: perm.Resource, Actions: actions}
	}
	return out
}
