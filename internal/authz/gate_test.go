package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveAccess(t *testing.T) {
	testCases := []struct {
		name      string
		role      Role
		status    AccountStatus
		reason    string
		suspended bool
	}{
		{name: "active dealer is allowed", role: RoleDealer, status: AccountStatusActive},
		{
			name:      "inactive dealer is suspended",
			role:      RoleDealer,
			status:    AccountStatusInactive,
			reason:    "unpaid platform fees",
			suspended: true,
		},
		{
			name:      "dealer without a known status is suspended",
			role:      RoleDealer,
			status:    AccountStatus(""),
			suspended: true,
		},
		{name: "admins carry no status", role: RoleAdmin, status: AccountStatusInactive},
		{name: "customers carry no status", role: RoleCustomer, status: AccountStatusInactive},
		{name: "super_admin carries no status", role: RoleSuperAdmin, status: AccountStatusInactive},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			access := EffectiveAccess(tc.role, tc.status, tc.reason)

			assert.Equal(t, tc.suspended, access.Suspended)

			if tc.suspended {
				assert.Equal(t, tc.reason, access.Reason, "reason must be carried through verbatim")
			}
		})
	}
}

func TestSuspensionIsOrthogonalToPermissions(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)

	guard := NewGuard(reg)

	// A suspended dealer keeps its full permission set; the gate alone
	// blocks usage.
	access := EffectiveAccess(RoleDealer, AccountStatusInactive, "fraud review")
	assert.True(t, access.Suspended)
	assert.True(t, guard.Allowed(RoleDealer, PermDealerCustomersView))
}

func TestParseAccountStatus(t *testing.T) {
	status, ok := ParseAccountStatus("active")
	assert.True(t, ok)
	assert.Equal(t, AccountStatusActive, status)

	status, ok = ParseAccountStatus("inactive")
	assert.True(t, ok)
	assert.Equal(t, AccountStatusInactive, status)

	_, ok = ParseAccountStatus("paused")
	assert.False(t, ok)

	_, ok = ParseAccountStatus("")
	assert.False(t, ok)
}
