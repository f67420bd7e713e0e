package test

import (
	"context"
	"fmt"

	"github.com/infinitysurge/pentaauth"
	"github.com/infinitysurge/pentaauth/permission"
	"github.com/infinitysurge/pentaauth/storage"
)

// ExampleNew builds an engine over in-memory storage and the built-in accounts.
func ExampleNew() {
	engine, err := pentaauth.New().
		WithStorage(storage.NewMemory()).
		Build()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer engine.Close()

	fmt.Println(engine.State().Status())
	// Output: unauthenticated
}

// ExampleEngine_Login shows a login followed by permission checks.
func ExampleEngine_Login() {
	engine, _ := pentaauth.New().Build()
	defer engine.Close()

	res := engine.Login(context.Background(), "x@x.com", "wrong")
	fmt.Println(res.Success, res.Error)

	res = engine.Login(context.Background(), "user@pentaledger.com", "user123")
	fmt.Println(res.Success, res.Principal.Role)
	fmt.Println(engine.Can("invoices", "read"), engine.Can("invoices", "delete"))
	// Output:
	// false Invalid credentials
	// true user
	// true false
}

// ExampleHasPermission queries the default policy table directly.
func ExampleHasPermission() {
	fmt.Println(permission.HasPermission(permission.RoleAdmin, "payroll", "delete"))
	fmt.Println(permission.HasPermission(permission.RoleUser, "payroll", "delete"))
	fmt.Println(permission.HasPermission(permission.RoleAccountant, "settings", "write"))
	// Output:
	// true
	// false
	// false
}

// ExampleAccessiblePages lists the navigation visible to an accountant.
func ExampleAccessiblePages() {
	for _, p := range permission.AccessiblePages(permission.RoleAccountant)[:3] {
		fmt.Println(p.Path, p.Label)
	}
	// Output:
	// / Home
	// /companies Companies
	// /governance Governance/Compliance
}
