package access

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/warrantydesk/warrantydesk/internal/authz"
	"github.com/warrantydesk/warrantydesk/internal/db/controller/dealerstatus"
	authmiddleware "github.com/warrantydesk/warrantydesk/internal/web/middleware/auth"
)

// SuspendedPath is the path of the account suspension notice.
const SuspendedPath = "/suspended"

// RequirePermission creates Fiber middleware that requires a specific permission.
func RequirePermission(guard *authz.Guard, permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessData := authmiddleware.CurrentSession(c)
		if sessData == nil || !sessData.Authenticated() {
			log.Error().Str("path", c.Path()).Msg("no authenticated session in request context")
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}

		if !guard.Allowed(sessData.Role, permission) {
			log.Warn().Str("role", string(sessData.Role)).Str("permission", permission).
				Msg("role lacks required permission")

			return c.Status(fiber.StatusForbidden).SendString("Forbidden: You don't have permission to access this resource")
		}

		return c.Next()
	}
}

// RequireAnyPermission creates Fiber middleware that requires at least one of the given permissions.
func RequireAnyPermission(guard *authz.Guard, permissions ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessData := authmiddleware.CurrentSession(c)
		if sessData == nil || !sessData.Authenticated() {
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}

		if !guard.AllowedAny(sessData.Role, permissions...) {
			log.Warn().Str("role", string(sessData.Role)).Strs("permissions", permissions).
				Msg("role lacks required permissions")

			return c.Status(fiber.StatusForbidden).SendString("Forbidden: You don't have permission to access this resource")
		}

		return c.Next()
	}
}

// DealerGate creates Fiber middleware enforcing the dealer account status.
// The status is read per request from the write-through mirror, so a
// suspension recorded during an active session blocks the very next action.
// Non-dealer roles pass through untouched.
func DealerGate(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessData := authmiddleware.CurrentSession(c)
		if sessData == nil || !sessData.Authenticated() {
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}

		if sessData.Role != authz.RoleDealer {
			return c.Next()
		}

		status, reason := dealerstatus.GetAccess(db, sessData.UserID)

		acc := authz.EffectiveAccess(sessData.Role, status, reason)
		if acc.Suspended {
			log.Info().Str("dealer_id", sessData.UserID).Str("reason", acc.Reason).
				Msg("suspended dealer blocked")

			return c.Redirect(SuspendedPath)
		}

		return c.Next()
	}
}

// AddGuardToLocals is a Fiber middleware that exposes a permission check to
// templates for conditional rendering.
func AddGuardToLocals(guard *authz.Guard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessData := authmiddleware.CurrentSession(c)
		if sessData == nil {
			return c.Next()
		}

		role := sessData.Role
		c.Locals("hasPermission", func(perm string) bool {
			return guard.Allowed(role, perm)
		})

		return c.Next()
	}
}
