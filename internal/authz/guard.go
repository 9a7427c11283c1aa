package authz

// Guard decides whether a role may perform an action. It is a pure function
// of the Registry: no I/O, no side effects, safe to call from any number of
// simultaneous callers.
type Guard struct {
	reg *Registry
}

// NewGuard creates a guard over the given registry.
func NewGuard(reg *Registry) *Guard {
	return &Guard{reg: reg}
}

// Allowed reports whether the role may perform the given action.
//
// super_admin short-circuits to membership in the permission universe
// rather than an enumerated list, so the guard cannot drift out of sync
// with permissions added to the registry after the guard was written.
func (g *Guard) Allowed(role Role, permission string) bool {
	if role == RoleSuperAdmin {
		return g.reg.Known(permission)
	}

	return g.reg.granted(role, permission)
}

// AllowedAny reports whether the role may perform at least one of the given
// actions. Used by navigation to decide whether a menu section is shown at
// all; a denied section is omitted, not disabled.
func (g *Guard) AllowedAny(role Role, permissions ...string) bool {
	for _, perm := range permissions {
		if g.Allowed(role, perm) {
			return true
		}
	}

	return false
}
