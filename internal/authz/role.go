package authz

// Role represents the closed category of an authenticated principal.
// It is assigned by the backend at login and immutable for the lifetime
// of a session.
type Role string

const (
	// RoleSuperAdmin is the platform operator role with has-all permission semantics.
	RoleSuperAdmin Role = "super_admin"
	// RoleAdmin is the platform administration role.
	RoleAdmin Role = "admin"
	// RoleDealer is the dealer tenant role.
	RoleDealer Role = "dealer"
	// RoleCustomer is the end-customer role.
	RoleCustomer Role = "customer"
)

// ParseRole maps a backend-supplied role string onto the closed Role type.
// Unknown values return false so callers never carry an open-ended string
// past this boundary.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleSuperAdmin, RoleAdmin, RoleDealer, RoleCustomer:
		return Role(s), true
	default:
		return "", false
	}
}

// Valid reports whether the role is one of the closed enumeration values.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}
