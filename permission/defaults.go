package permission

var (
	fullAccess = []string{"read", "write", "delete"}
	readWrite  = []string{"read", "write"}
	readOnly   = []string{"read"}
)

// DefaultPolicyTable returns the PentaLedger role → permission table.
func DefaultPolicyTable() map[Role][]Permission {
	table := map[Role][]Permission{
		RoleAdmin: {
			{Resource: "dashboard", Actions: readOnly},
			{Resource: "profile", Actions: readWrite},
			{Resource: "companies", Actions: fullAccess},
			{Resource: "governance", Actions: fullAccess},
			{Resource: "customers", Actions: fullAccess},
			{Resource: "invoices", Actions: fullAccess},
			{Resource: "quotes", Actions: fullAccess},
			{Resource: "vehicles", Actions: fullAccess},
			{Resource: "chart-of-accounts", Actions: fullAccess},
			{Resource: "expenses", Actions: fullAccess},
			{Resource: "vendors", Actions: fullAccess},
			{Resource: "payroll", Actions: fullAccess},
			{Resource: "taxes", Actions: fullAccess},
			{Resource: "reports", Actions: fullAccess},
			{Resource: "settings", Actions: fullAccess},
			{Resource: "user-management", Actions: fullAccess},
		},
		RoleManager: {
			{Resource: "dashboard", Actions: readOnly},
			{Resource: "profile", Actions: readWrite},
			{Resource: "companies", Actions: readWrite},
			{Resource: "governance", Actions: readWrite},
			{Resource: "customers", Actions: readWrite},
			{Resource: "invoices", Actions: readWrite},
			{Resource: "quotes", Actions: readWrite},
			{Resource: "vehicles", Actions: readWrite},
			{Resource: "chart-of-accounts", Actions: readWrite},
			{Resource: "expenses", Actions: readWrite},
			{Resource: "vendors", Actions: readWrite},
			{Resource: "payroll", Actions: readWrite},
			{Resource: "taxes", Actions: readWrite},
			{Resource: "reports", Actions: readWrite},
			{Resource: "settings", Actions: readOnly},
		},
		RoleAccountant: {
			{Resource: "dashboard", Actions: readOnly},
			{Resource: "profile", Actions: readWrite},
			{Resource: "companies", Actions: readOnly},
			{Resource: "governance", Actions: readOnly},
			{Resource: "customers", Actions: readOnly},
			{Resource: "invoices", Actions: readWrite},
			{Resource: "quotes", Actions: readOnly},
			{Resource: "vehicles", Actions: readOnly},
			{Resource: "chart-of-accounts", Actions: readWrite},
			{Resource: "expenses", Actions: readWrite},
			{Resource: "vendors", Actions: readOnly},
			{Resource: "payroll", Actions: readOnly},
			{Resource: "taxes", Actions: readWrite},
			{Resource: "reports", Actions: readOnly},
			{Resource: "settings", Actions: readOnly},
		},
		RoleUser: {
			{Resource: "dashboard", Actions: readOnly},
			{Resource: "profile", Actions: readWrite},
			{Resource: "companies", Actions: readOnly},
			{Resource: "governance", Actions: readOnly},
			{Resource: "customers", Actions: readOnly},
			{Resource: "invoices", Actions: readOnly},
			{Resource: "quotes", Actions: readOnly},
			{Resource: "vehicles", Actions: readOnly},
			{Resource: "chart-of-accounts", Actions: readOnly},
			{Resource: "expenses", Actions: readOnly},
			{Resource: "vendors", Actions: readOnly},
			{Resource: "payroll", Actions: readOnly},
			{Resource: "taxes", Actions: readOnly},
			{Resource: "reports", Actions: readOnly},
			{Resource: "settings", Actions: readOnly},
		},
	}
	for role, perms := range table {
		table[role] = clonePermissions(perms)
	}
	return table
}

var everyone = []Role{RoleAdmin, RoleManager, RoleAccountant, RoleUser}

// DefaultPages returns the PentaLedger navigation table in display order.
func DefaultPages() []Page {
	return []Page{
		{Path: "/", Label: "Home", Roles: everyone},
		{Path: "/companies", Label: "Companies", Roles: everyone},
		{Path: "/governance", Label: "Governance/Compliance", Roles: everyone},
		{Path: "/customers", Label: "Customers", Roles: everyone},
		{Path: "/invoices", Label: "Invoices", Roles: everyone},
		{Path: "/quotes", Label: "Quotes", Roles: everyone},
		{Path: "/vehicles", Label: "Vehicles & Mileage", Roles: everyone},
		{Path: "/chart-of-accounts", Label: "Chart of Accounts", Roles: everyone},
		{Path: "/expenses", Label: "Expenses & Purchasing", Roles: everyone},
		{Path: "/vendors", Label: "Vendors and Suppliers", Roles: everyone},
		{Path: "/payroll", Label: "Payroll", Roles: everyone},
		{Path: "/taxes", Label: "Taxes", Roles: everyone},
		{Path: "/reports", Label: "Reports", Roles: everyone},
		{Path: "/settings", Label: "Settings", Roles: []Role{RoleAdmin, RoleManager}},
	}
}
