package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGuard(t *testing.T) *Guard {
	t.Helper()

	reg, err := NewRegistry()
	require.NoError(t, err)

	return NewGuard(reg)
}

func TestAllowed_DeniesPermissionsOutsideRoleSet(t *testing.T) {
	guard := newTestGuard(t)
	reg := guard.reg

	// For every role other than super_admin, every permission outside the
	// role's set must be denied.
	for _, role := range []Role{RoleAdmin, RoleDealer, RoleCustomer} {
		granted := make(map[string]bool)
		for _, perm := range reg.PermissionsFor(role) {
			granted[perm] = true
		}

		for _, perm := range reg.AllPermissions() {
			if granted[perm] {
				assert.True(t, guard.Allowed(role, perm), "role %s must keep %s", role, perm)
				continue
			}

			assert.False(t, guard.Allowed(role, perm), "role %s must not gain %s", role, perm)
		}
	}
}

func TestAllowed_SuperAdminHasAll(t *testing.T) {
	guard := newTestGuard(t)

	for _, perm := range guard.reg.AllPermissions() {
		assert.True(t, guard.Allowed(RoleSuperAdmin, perm))
	}

	// Permissions outside the universe stay denied even for super_admin.
	assert.False(t, guard.Allowed(RoleSuperAdmin, "backups.restore"))
}

func TestAllowed_SuperAdminFollowsUniverseNotSnapshot(t *testing.T) {
	// Build a registry whose universe carries a permission the guard was
	// never compiled against. super_admin must allow it regardless, because
	// the guard answers from the universe, not from an enumerated list.
	const latePermission = "admin.reports.view"

	reg := &Registry{
		universe: map[string]struct{}{
			PermAdminDashboardView: {},
			latePermission:         {},
		},
		byRole: map[Role]map[string]struct{}{
			RoleAdmin: {PermAdminDashboardView: {}},
		},
	}
	guard := NewGuard(reg)

	assert.True(t, guard.Allowed(RoleSuperAdmin, latePermission))
	assert.False(t, guard.Allowed(RoleAdmin, latePermission),
		"non-operator roles gain nothing from universe growth")
}

func TestAllowed_UnknownRole(t *testing.T) {
	guard := newTestGuard(t)

	assert.False(t, guard.Allowed(Role("auditor"), PermAdminDashboardView))
}

func TestAllowedAny(t *testing.T) {
	guard := newTestGuard(t)

	assert.True(t, guard.AllowedAny(RoleDealer, PermAdminDealersView, PermDealerSalesView))
	assert.False(t, guard.AllowedAny(RoleCustomer, PermAdminDealersView, PermDealerSalesView))
	assert.False(t, guard.AllowedAny(RoleCustomer))
}
