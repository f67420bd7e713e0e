package permission

import (
	"errors"
	"fmt"
)

// Role is a named class of principal. The set is closed.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleAccountant Role = "accountant"
	RoleUser       Role = "user"
)

// ErrUnknownRole is returned by [ParseRole] for tags outside the closed role set.
var ErrUnknownRole = errors.New("unknown role")

var allRoles = []Role{RoleAdmin, RoleManager, RoleAccountant, RoleUser}

// AllRoles returns every role in declaration order.
func AllRoles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

// ParseRole converts a role tag into a [Role].
func ParseRole(tag string) (Role, error) {
	r := Role(tag)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, tag)
	}
	return r, nil
}

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleAccountant, RoleUser:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
