package authz

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
)

// Registry holds the permission universe and the per-role permission sets.
// It is pure data: built once at startup, validated at construction and
// never mutated afterwards, so it is safe for concurrent readers.
type Registry struct {
	universe map[string]struct{}
	byRole   map[Role]map[string]struct{}
}

// NewRegistry builds the registry from the static role/permission tables
// and validates the construction-time invariants:
//
//   - every declared role is part of the closed Role enumeration
//   - every granted permission exists in the universe
//   - the super_admin declaration equals the universe exactly
//   - every permission in the universe is reachable by at least one role
//
// A violation is a configuration error; callers must treat it as fatal.
func NewRegistry() (*Registry, error) {
	universe := make(map[string]struct{}, len(allPermissions))

	for _, perm := range allPermissions {
		if _, dup := universe[perm]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePermission, perm)
		}

		universe[perm] = struct{}{}
	}

	byRole := make(map[Role]map[string]struct{}, len(rolePermissions))

	for role, perms := range rolePermissions {
		if !role.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRole, role)
		}

		set := make(map[string]struct{}, len(perms))

		for _, perm := range perms {
			if _, ok := universe[perm]; !ok {
				return nil, fmt.Errorf("%w: role %s, permission %s", ErrPermissionOutsideUniverse, role, perm)
			}

			set[perm] = struct{}{}
		}

		byRole[role] = set
	}

	// super_admin must be declared as exactly the universe
	superSet := byRole[RoleSuperAdmin]
	if len(superSet) != len(universe) {
		return nil, fmt.Errorf("%w: declared %d of %d permissions",
			ErrSuperAdminNotSuperset, len(superSet), len(universe))
	}

	// every permission must be granted to at least one non-operator role
	for perm := range universe {
		reachable := false

		for role, set := range byRole {
			if role == RoleSuperAdmin {
				continue
			}

			if _, ok := set[perm]; ok {
				reachable = true
				break
			}
		}

		if !reachable {
			return nil, fmt.Errorf("%w: %s", ErrDeadPermission, perm)
		}
	}

	return &Registry{universe: universe, byRole: byRole}, nil
}

// MustRegistry builds the registry and aborts the process on an invariant
// violation. Intended for startup wiring only.
func MustRegistry() *Registry {
	reg, err := NewRegistry()
	if err != nil {
		log.Fatal().Err(err).Msg("permission registry configuration is invalid")
	}

	return reg
}

// AllPermissions returns the full permission universe in sorted order.
func (r *Registry) AllPermissions() []string {
	out := make([]string, 0, len(r.universe))
	for perm := range r.universe {
		out = append(out, perm)
	}

	sort.Strings(out)

	return out
}

// PermissionsFor returns the permission set of a role in sorted order.
// An unknown role yields an empty set.
func (r *Registry) PermissionsFor(role Role) []string {
	set, ok := r.byRole[role]
	if !ok {
		return nil
	}

	out := make([]string, 0, len(set))
	for perm := range set {
		out = append(out, perm)
	}

	sort.Strings(out)

	return out
}

// Known reports whether the permission exists in the universe.
func (r *Registry) Known(permission string) bool {
	_, ok := r.universe[permission]
	return ok
}

// granted reports whether the role's declared set contains the permission.
func (r *Registry) granted(role Role, permission string) bool {
	set, ok := r.byRole[role]
	if !ok {
		return false
	}

	_, ok = set[permission]

	return ok
}
