package authz

// Permission constants define the closed permission universe of the portal.
// They are namespaced by resource and action and form an implicit contract
// with the backend API, which enforces the same set independently.
const (
	// PermAdminDashboardView allows viewing the platform admin dashboard.
	PermAdminDashboardView = "admin.dashboard.view"

	// PermAdminDealersView allows listing dealer accounts.
	PermAdminDealersView = "admin.dealers.view"
	// PermAdminDealersManage allows creating dealers and changing their account status.
	PermAdminDealersManage = "admin.dealers.manage"

	// PermAdminPackagesView allows viewing warranty package definitions.
	PermAdminPackagesView = "admin.packages.view"
	// PermAdminPackagesManage allows editing warranty package definitions.
	PermAdminPackagesManage = "admin.packages.manage"

	// PermAdminInvoicesView allows viewing platform-wide invoices.
	PermAdminInvoicesView = "admin.invoices.view"
	// PermAdminSettingsManage allows managing portal-wide settings.
	PermAdminSettingsManage = "admin.settings.manage"

	// PermDealerDashboardView allows viewing the dealer dashboard.
	PermDealerDashboardView = "dealer.dashboard.view"
	// PermDealerCustomersView allows listing the dealer's customers.
	PermDealerCustomersView = "dealer.customers.view"
	// PermDealerCustomersManage allows creating and editing the dealer's customers.
	PermDealerCustomersManage = "dealer.customers.manage"
	// PermDealerSalesView allows viewing the dealer's warranty sales.
	PermDealerSalesView = "dealer.sales.view"
	// PermDealerSalesCreate allows recording new warranty sales.
	PermDealerSalesCreate = "dealer.sales.create"
	// PermDealerInvoicesView allows viewing the dealer's invoices.
	PermDealerInvoicesView = "dealer.invoices.view"

	// PermCustomerDashboardView allows viewing the customer dashboard.
	PermCustomerDashboardView = "customer.dashboard.view"
	// PermCustomerWarrantiesView allows viewing the customer's own warranties.
	PermCustomerWarrantiesView = "customer.warranties.view"
	// PermCustomerInvoicesView allows viewing the customer's own invoices.
	PermCustomerInvoicesView = "customer.invoices.view"
)

// allPermissions enumerates the full permission universe. Every constant
// declared above must appear here; the Registry treats this slice as the
// source of truth for the universe.
var allPermissions = []string{
	PermAdminDashboardView,
	PermAdminDealersView,
	PermAdminDealersManage,
	PermAdminPackagesView,
	PermAdminPackagesManage,
	PermAdminInvoicesView,
	PermAdminSettingsManage,
	PermDealerDashboardView,
	PermDealerCustomersView,
	PermDealerCustomersManage,
	PermDealerSalesView,
	PermDealerSalesCreate,
	PermDealerInvoicesView,
	PermCustomerDashboardView,
	PermCustomerWarrantiesView,
	PermCustomerInvoicesView,
}

// rolePermissions assigns each role its static permission set.
//
// super_admin is declared with an explicit copy of the universe on purpose:
// the Registry verifies the declaration equals the universe at startup, so a
// permission added to allPermissions but forgotten here fails fast instead
// of silently narrowing the operator role. The Guard itself never reads this
// list for super_admin; it uses has-all semantics against the universe.
var rolePermissions = map[Role][]string{
	RoleSuperAdmin: allPermissions,
	RoleAdmin: {
		PermAdminDashboardView,
		PermAdminDealersView,
		PermAdminDealersManage,
		PermAdminPackagesView,
		PermAdminPackagesManage,
		PermAdminInvoicesView,
		PermAdminSettingsManage,
	},
	RoleDealer: {
		PermDealerDashboardView,
		PermDealerCustomersView,
		PermDealerCustomersManage,
		PermDealerSalesView,
		PermDealerSalesCreate,
		PermDealerInvoicesView,
	},
	RoleCustomer: {
		PermCustomerDashboardView,
		PermCustomerWarrantiesView,
		PermCustomerInvoicesView,
	},
}
