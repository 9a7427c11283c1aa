package auth

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/warrantydesk/warrantydesk/internal/config"
	"github.com/warrantydesk/warrantydesk/internal/liveness"
	"github.com/warrantydesk/warrantydesk/internal/web/handler"
	"github.com/warrantydesk/warrantydesk/internal/web/redirect"
	"github.com/warrantydesk/warrantydesk/internal/web/session"
)

const (
	// LoginPath is the path of the login page.
	LoginPath = "/login"

	// ExpiredPath is the path of the session expiry prompt.
	ExpiredPath = "/session-expired"
)

// LocalsSessionKey is the fiber.Locals key holding the current session data.
const LocalsSessionKey = "CurrentSession"

// LocalsSessionIDKey is the fiber.Locals key holding the current session ID.
const LocalsSessionIDKey = "CurrentSessionID"

// New creates the session middleware. Every authenticated request renews the
// liveness watch for its session, so a freshly used session is always being
// probed.
func New(cfg *config.Config, monitors *liveness.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		originalURL := strings.ToLower(c.OriginalURL())
		if strings.HasPrefix(originalURL, "/static") {
			return c.Next()
		}

		// Allow logout without authentication
		if strings.HasPrefix(originalURL, "/logout") {
			return c.Next()
		}

		isLoginPage := IsLoginPage(c)
		isExpiredPage := strings.HasPrefix(originalURL, ExpiredPath)

		// get session cookie
		loginCookie := c.Cookies(handler.SessionCookieName)

		// if no session cookie, redirect to login page
		if loginCookie == "" {
			if isLoginPage {
				return c.Next()
			}

			return c.Redirect(loginRedirectTarget(c))
		}

		// check session validity
		sessData := new(session.Data)
		if err := sessData.Read(loginCookie); err != nil {
			// If we're already on the login page, don't redirect (would cause loop)
			if isLoginPage {
				return c.Next()
			}

			return c.Redirect(loginRedirectTarget(c))
		}

		// a session flagged by the liveness monitor only serves the expiry prompt
		if sessData.Expired {
			c.Locals(LocalsSessionKey, sessData)
			c.Locals(LocalsSessionIDKey, loginCookie)

			if isExpiredPage {
				return c.Next()
			}

			// preserve the requested page so the prompt can hand it back to login
			return c.Redirect(ExpiredPath + "?" + handler.CallbackQueryParam + "=" + url.QueryEscape(c.OriginalURL()))
		}

		if !sessData.Authenticated() {
			if isLoginPage {
				return c.Next()
			}

			return c.Redirect(loginRedirectTarget(c))
		}

		// Add the current session to locals for template access
		c.Locals(LocalsSessionKey, sessData)
		c.Locals(LocalsSessionIDKey, loginCookie)

		// keep the liveness watch alive for this session
		if monitors != nil {
			monitors.EnsureWatching(loginCookie, sessData.Token)
		}

		if isLoginPage {
			return c.Redirect(redirect.ResolveLanding(sessData.Role, c.Query(handler.CallbackQueryParam)))
		}

		return c.Next()
	}
}

// CurrentSession returns the session data placed in locals by the middleware.
func CurrentSession(c *fiber.Ctx) *session.Data {
	if data, ok := c.Locals(LocalsSessionKey).(*session.Data); ok {
		return data
	}

	return nil
}

// CurrentSessionID returns the session ID placed in locals by the middleware.
func CurrentSessionID(c *fiber.Ctx) string {
	if id, ok := c.Locals(LocalsSessionIDKey).(string); ok {
		return id
	}

	return ""
}

// loginRedirectTarget builds the login redirect preserving the requested
// path, so a successful login can land on the page the user asked for.
func loginRedirectTarget(c *fiber.Ctx) string {
	requested := c.OriginalURL()
	if requested == "" || requested == handler.RootPath {
		return LoginPath
	}

	return LoginPath + "?" + handler.CallbackQueryParam + "=" + url.QueryEscape(requested)
}

// IsLoginPage checks if the current request is for the login page.
func IsLoginPage(c *fiber.Ctx) bool {
	originalURL := strings.ToLower(c.OriginalURL())
	return strings.HasPrefix(originalURL, LoginPath)
}
