// Package sessioncheck exposes the portal's own session liveness endpoint.
// It answers the same shape the backend uses, so the browser can poll the
// portal instead of talking to the backend directly.
package sessioncheck

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/warrantydesk/warrantydesk/internal/config"
	"github.com/warrantydesk/warrantydesk/internal/web/handler"
	"github.com/warrantydesk/warrantydesk/internal/web/session"
)

// Path is the path of the session check endpoint.
const Path = "/api/auth/check-session"

// Response is the wire shape of a session check answer.
type Response struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// Service is the session check handler service.
type Service struct {
	handler.Service
	cfg *config.Config
}

// Handler is the session check handler.
var Handler = Service{}

// Init initializes the session check route.
func (s *Service) Init(app *fiber.App, cfg *config.Config) {
	if app == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg

	app.Get(Path, s.Get)
}

// Get answers whether the caller's session is still usable. A missing or
// unreadable session is 401; an expired one is 200 with valid:false and the
// recorded reason, mirroring how the portal itself consumes the backend.
func (s *Service) Get(c *fiber.Ctx) error {
	sessionID := c.Cookies(handler.SessionCookieName)
	if sessionID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(Response{Valid: false})
	}

	sessData := new(session.Data)
	if err := sessData.Read(sessionID); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(Response{Valid: false})
	}

	if sessData.Expired {
		return c.JSON(Response{Valid: false, Reason: sessData.ExpiredReason})
	}

	if !sessData.Authenticated() {
		return c.Status(fiber.StatusUnauthorized).JSON(Response{Valid: false})
	}

	return c.JSON(Response{Valid: true})
}
