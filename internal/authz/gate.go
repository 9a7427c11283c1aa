package authz

// AccountStatus represents the suspension flag carried by roles that
// support it. It is orthogonal to the role's permission set: a suspended
// dealer keeps every dealer permission, the gate is what blocks usage.
type AccountStatus string

const (
	// AccountStatusActive marks an account in good standing.
	AccountStatusActive AccountStatus = "active"
	// AccountStatusInactive marks a suspended account.
	AccountStatusInactive AccountStatus = "inactive"
)

// ParseAccountStatus maps a backend-supplied status string onto the closed
// AccountStatus type.
func ParseAccountStatus(s string) (AccountStatus, bool) {
	switch AccountStatus(s) {
	case AccountStatusActive, AccountStatusInactive:
		return AccountStatus(s), true
	default:
		return "", false
	}
}

// Access is the gate's verdict for a session.
type Access struct {
	Suspended bool
	// Reason is the optional free-text reason supplied by the suspending
	// party. It is carried through to the denial page, never interpreted.
	Reason string
}

// EffectiveAccess evaluates the account-status side condition for a session.
// It must run at the start of every protected action: a transition to
// inactive takes effect on the next attempt, never one action later.
//
// Only dealers carry an account status today; every other role is always
// allowed by the gate (permissions are checked elsewhere, by the Guard).
func EffectiveAccess(role Role, status AccountStatus, reason string) Access {
	if role != RoleDealer {
		return Access{}
	}

	if status != AccountStatusActive {
		return Access{Suspended: true, Reason: reason}
	}

	return Access{}
}
