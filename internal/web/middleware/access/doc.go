// Package access provides route protection middleware.
//
// Two independent checks are layered on protected routes:
//
//   - RequirePermission / RequireAnyPermission consult the authorization
//     guard for the session's role. A role without the permission gets 403.
//   - DealerGate consults the locally mirrored dealer account status. A
//     suspended dealer is routed to the suspension notice regardless of
//     which permissions their role grants.
//
// The checks are deliberately separate: suspending an account does not
// touch role grants, and reinstating it restores the exact same permission
// set. Both expect the session middleware to have placed the current
// session in fiber.Locals first.
//
// Usage:
//
//	app.Get("/dealer/customers",
//	    access.RequirePermission(guard, authz.PermDealerCustomersView),
//	    access.DealerGate(db),
//	    handler,
//	)
package access
