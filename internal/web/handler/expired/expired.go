// Package expired renders the session expiry prompt and handles its
// acknowledgment. The prompt is shown exactly once per expiry: the monitor
// flags the session, the middleware routes every request here, and the
// acknowledgment removes both the session record and the monitor state.
package expired

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/warrantydesk/warrantydesk/internal/config"
	"github.com/warrantydesk/warrantydesk/internal/liveness"
	"github.com/warrantydesk/warrantydesk/internal/web/handler"
	authmiddleware "github.com/warrantydesk/warrantydesk/internal/web/middleware/auth"
	"github.com/warrantydesk/warrantydesk/internal/web/session"
)

const (
	// Path is the path of the expiry prompt.
	Path = "/session-expired"

	// AcknowledgePath confirms the prompt and returns to the login page.
	AcknowledgePath = Path + "/acknowledge"
)

// Service is the expiry prompt handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	monitors *liveness.Registry
}

// Handler is the expiry prompt handler.
var Handler = Service{}

// Init initializes the expiry prompt routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, monitors *liveness.Registry) {
	if app == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.monitors = monitors

	app.Get(Path, s.Get)
	app.Post(AcknowledgePath, s.Acknowledge)
}

// Get renders the expiry prompt. A session that is not actually expired has
// no business here and goes back to its landing page.
func (s *Service) Get(c *fiber.Ctx) error {
	sessData := authmiddleware.CurrentSession(c)
	if sessData == nil {
		return c.Redirect(authmiddleware.LoginPath)
	}

	if !sessData.Expired {
		return c.Redirect("/dashboard")
	}

	return c.Render("session_expired", fiber.Map{
		"Title":    s.cfg.Title,
		"Reason":   sessData.ExpiredReason,
		"Callback": c.Query(handler.CallbackQueryParam),
	}, handler.BaseLayout)
}

// Acknowledge confirms the expiry prompt: the session record and its
// monitor are discarded and the user returns to the login page.
func (s *Service) Acknowledge(c *fiber.Ctx) error {
	sessionID := authmiddleware.CurrentSessionID(c)
	if sessionID == "" {
		sessionID = c.Cookies(handler.SessionCookieName)
	}

	if sessionID != "" {
		if s.monitors != nil {
			s.monitors.Acknowledge(sessionID)
			s.monitors.Stop(sessionID)
		}

		if err := session.Delete(sessionID); err != nil {
			log.Error().Err(err).Msg("failed to delete expired session")
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     handler.SessionCookieName,
		Value:    "",
		MaxAge:   -1,
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	// hand the originally requested page to the login form
	if callback := c.FormValue(handler.CallbackQueryParam); callback != "" {
		return c.Redirect(authmiddleware.LoginPath + "?" + handler.CallbackQueryParam + "=" + url.QueryEscape(callback))
	}

	return c.Redirect(authmiddleware.LoginPath)
}
