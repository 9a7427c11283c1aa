// Package logout clears the session and stops its liveness watch.
package logout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/warrantydesk/warrantydesk/internal/config"
	"github.com/warrantydesk/warrantydesk/internal/liveness"
	"github.com/warrantydesk/warrantydesk/internal/web/handler"
	"github.com/warrantydesk/warrantydesk/internal/web/handler/login"
	"github.com/warrantydesk/warrantydesk/internal/web/session"
)

// Service is the logout handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	monitors *liveness.Registry
}

// Handler is the logout handler.
var Handler = Service{}

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, monitors *liveness.Registry) {
	if app == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.monitors = monitors

	// logout route (outside auth middleware protection)
	app.Get(handler.RootPath+"logout", s.Logout)
	app.Post(handler.RootPath+"logout", s.Logout)
}

// Logout handles user logout by clearing the session.
func (s *Service) Logout(c *fiber.Ctx) error {
	// Get session cookie
	sessionID := c.Cookies(handler.SessionCookieName)
	if sessionID != "" {
		// the monitor must not probe a session that no longer exists
		if s.monitors != nil {
			s.monitors.Stop(sessionID)
		}

		if err := session.Delete(sessionID); err != nil {
			log.Error().Err(err).Msg("failed to delete session")
		}
	}

	// Clear the session cookie
	c.Cookie(&fiber.Cookie{
		Name:     handler.SessionCookieName,
		Value:    "",
		MaxAge:   -1,
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.Redirect(login.Path)
}
