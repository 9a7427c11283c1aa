// Package suspended renders the account suspension notice. The page itself
// carries no gate: a suspended dealer must still be able to see why they
// were blocked.
package suspended

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/warrantydesk/warrantydesk/internal/authz"
	"github.com/warrantydesk/warrantydesk/internal/config"
	"github.com/warrantydesk/warrantydesk/internal/db/controller/dealerstatus"
	"github.com/warrantydesk/warrantydesk/internal/web/handler"
	authmiddleware "github.com/warrantydesk/warrantydesk/internal/web/middleware/auth"
)

// Path is the path of the suspension notice.
const Path = "/suspended"

// Service is the suspension notice handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the suspension notice handler.
var Handler = Service{}

// Init initializes the suspension notice route.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db

	app.Get(Path, s.Get)
}

// Get renders the suspension notice. A principal that is not actually
// suspended is sent back to their landing page.
func (s *Service) Get(c *fiber.Ctx) error {
	sessData := authmiddleware.CurrentSession(c)
	if sessData == nil {
		return c.Redirect(authmiddleware.LoginPath)
	}

	status, reason := dealerstatus.GetAccess(s.db, sessData.UserID)

	acc := authz.EffectiveAccess(sessData.Role, status, reason)
	if !acc.Suspended {
		return c.Redirect("/dashboard")
	}

	return c.Render("suspended", fiber.Map{
		"Title":  s.cfg.Title,
		"Reason": acc.Reason,
	}, handler.BaseLayout)
}
