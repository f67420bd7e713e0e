package permission

import "sync"

var (
	defaultsOnce sync.Once
	defaultPol   *Policy
	defaultNav   *Navigation
)

func defaults() (*Policy, *Navigation) {
	defaultsOnce.Do(func() {
		var err error
		defaultPol, err = NewPolicy(DefaultPolicyTable())
		if err != nil {
			panic("permission: default policy table: " + err.Error())
		}
		defaultNav, err = NewNavigation(DefaultPages())
		if err != nil {
			panic("permission: default navigation table: " + err.Error())
		}
	})
	return defaultPol, defaultNav
}

// DefaultPolicy returns the compiled built-in policy table.
func DefaultPolicy() *Policy {
	p, _ := defaults()
	return p
}

// DefaultNavigation returns the built-in navigation table.
func DefaultNavigation() *Navigation {
	_, n := defaults()
	return n
}

// HasPermission evaluates the built-in policy table.
func HasPermission(role Role, resource, action string) bool {
	return DefaultPolicy().HasPermission(role, resource, action)
}

// CanAccessPage evaluates the built-in navigation table.
func CanAccessPage(role Role, path string) bool {
	return DefaultNavigation().CanAccessPage(role, path)
}

// AccessiblePages filters the built-in navigation table for role.
func AccessiblePages(role Role) []Page {
	return DefaultNavigation().AccessiblePages(role)
}
