package authz

import "errors"

var (
	// ErrUnknownRole is returned when a permission set is declared for a role
	// outside the closed Role enumeration.
	ErrUnknownRole = errors.New("permission set declared for unknown role")

	// ErrPermissionOutsideUniverse is returned when a role is granted a
	// permission that does not exist in the permission universe.
	ErrPermissionOutsideUniverse = errors.New("role granted permission outside the universe")

	// ErrSuperAdminNotSuperset is returned when the declared super_admin set
	// is not exactly the permission universe. This indicates a permission was
	// added to the universe without updating the role table.
	ErrSuperAdminNotSuperset = errors.New("super_admin permission set does not cover the universe")

	// ErrDeadPermission is returned when a permission in the universe is not
	// reachable by any role. Dead permissions are a configuration error, not
	// a runtime concern.
	ErrDeadPermission = errors.New("permission is not granted to any role")

	// ErrDuplicatePermission is returned when the universe declares the same
	// permission identifier twice.
	ErrDuplicatePermission = errors.New("permission declared twice in the universe")
)
