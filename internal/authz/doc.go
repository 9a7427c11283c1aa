// Package authz provides the role and permission model for the portal.
//
// This package implements a closed Role-Based Access Control (RBAC) system:
//   - Roles form a closed enumeration (super_admin, admin, dealer, customer)
//   - Permissions form a closed universe of resource.action identifiers
//   - Each role owns a static permission set, assembled once at startup
//
// # Registry
//
// The Registry is pure data: it maps roles to permission sets and knows the
// full permission universe. It is built once at startup and validated at
// construction time. A violated invariant (a role granted a permission
// outside the universe, the super_admin set drifting away from the universe,
// or a permission no role can reach) is a fatal configuration error, not a
// runtime fault.
//
// # Guard
//
// The Guard answers "may this role perform this action". It is a pure
// function of the Registry, stateless and safe for concurrent use.
// super_admin is handled with has-all semantics: any permission known to the
// universe is allowed, without consulting an enumerated list.
//
// # Account status gate
//
// EffectiveAccess is an independent axis from permissions: a dealer keeps
// its full permission set while suspended, but the gate blocks usage by
// reporting Suspended for any dealer whose account status is not active.
// The suspension reason is carried through to the denial page verbatim and
// never interpreted.
//
// Example usage:
//
//	reg := authz.MustRegistry()
//	guard := authz.NewGuard(reg)
//
//	if !guard.Allowed(authz.RoleDealer, authz.PermDealerCustomersView) {
//	    // render Forbidden
//	}
package authz
