// Package redirect resolves the post-login landing route.
//
// The resolver layers an optional deep-link callback against role-specific
// defaults: an explicit deep link to a protected resource wins, but the
// generic "you must log in" target must not override role onboarding. It
// never fails — an unresolvable input degrades to the generic default,
// because breaking navigation after a successful credential check is worse
// than landing on a slightly wrong page.
package redirect

import (
	"net/url"
	"strings"

	"github.com/warrantydesk/warrantydesk/internal/authz"
)

const (
	// DefaultLanding is the generic landing path used before the user's role
	// is known. It only appears as a callback when a generic auth redirect
	// produced it, so the resolver replaces it with the role default.
	DefaultLanding = "/dashboard"

	// SuperAdminLanding is the landing page for platform operators.
	SuperAdminLanding = "/super-admin/dashboard"
	// DealerLanding is the landing page for dealers.
	DealerLanding = "/dealer/dashboard"
	// CustomerLanding is the landing page for customers.
	CustomerLanding = "/customer/dashboard"
)

// ResolveLanding turns a successful credential check plus an optional
// percent-encoded callback into the concrete landing route.
func ResolveLanding(role authz.Role, requestedCallback string) string {
	callback := sanitizeCallback(requestedCallback)

	// an explicit deep link is honored; the generic default is not a deep link
	if callback != "" && callback != DefaultLanding {
		return callback
	}

	target := roleLanding(role)

	// the role defaults above are all rooted, but keep the invariant local
	if !strings.HasPrefix(target, "/") {
		return DefaultLanding
	}

	return target
}

// roleLanding maps a role to its default landing page. Unknown roles keep
// the generic default.
func roleLanding(role authz.Role) string {
	switch role {
	case authz.RoleSuperAdmin, authz.RoleAdmin:
		return SuperAdminLanding
	case authz.RoleDealer:
		return DealerLanding
	case authz.RoleCustomer:
		return CustomerLanding
	default:
		return DefaultLanding
	}
}

// sanitizeCallback percent-decodes and validates an externally supplied
// callback. Anything that fails to decode or is not a same-origin relative
// path is discarded.
func sanitizeCallback(raw string) string {
	if raw == "" {
		return ""
	}

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}

	if !strings.HasPrefix(decoded, "/") {
		return ""
	}

	// "//host/path" is scheme-relative, not same-origin
	if strings.HasPrefix(decoded, "//") {
		return ""
	}

	return decoded
}
