// Package dashboard routes the generic landing path to the role landing.
package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/warrantydesk/warrantydesk/internal/config"
	"github.com/warrantydesk/warrantydesk/internal/web/handler"
	authmiddleware "github.com/warrantydesk/warrantydesk/internal/web/middleware/auth"
	"github.com/warrantydesk/warrantydesk/internal/web/redirect"
)

// Path is the generic landing path. It only exists as a stepping stone: the
// handler immediately forwards to the role-specific landing page.
const Path = handler.RootPath + "dashboard"

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	cfg *config.Config
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config) {
	if app == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg

	app.Get(Path, s.Get)
}

// Get forwards to the role landing page.
func (s *Service) Get(c *fiber.Ctx) error {
	sessData := authmiddleware.CurrentSession(c)
	if sessData == nil {
		return c.Redirect(authmiddleware.LoginPath)
	}

	return c.Redirect(redirect.ResolveLanding(sessData.Role, ""))
}
