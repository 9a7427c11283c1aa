// Package superadmin provides the platform operator pages: the operator
// dashboard, dealer administration with suspension control, the package
// catalogue and the invoice overview.
package superadmin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/warrantydesk/warrantydesk/internal/authz"
	"github.com/warrantydesk/warrantydesk/internal/backend"
	"github.com/warrantydesk/warrantydesk/internal/config"
	"github.com/warrantydesk/warrantydesk/internal/db/controller/dealerstatus"
	"github.com/warrantydesk/warrantydesk/internal/web/handler"
	"github.com/warrantydesk/warrantydesk/internal/web/middleware/access"
	authmiddleware "github.com/warrantydesk/warrantydesk/internal/web/middleware/auth"
	"github.com/warrantydesk/warrantydesk/internal/web/navigation"
)

const (
	// Path is the base path of the operator section.
	Path = "/super-admin"

	// DashboardPath is the operator landing page.
	DashboardPath = Path + "/dashboard"

	// DealersPath is the dealer administration page.
	DealersPath = Path + "/dealers"

	// PackagesPath is the package catalogue page.
	PackagesPath = Path + "/packages"

	// InvoicesPath is the invoice overview page.
	InvoicesPath = Path + "/invoices"
)

// DealerRow is a dealer merged with the locally mirrored account status.
type DealerRow struct {
	backend.Dealer
	Suspended bool
	Reason    string
}

// Service is the operator section handler service.
type Service struct {
	handler.Service
	cfg     *config.Config
	db      *gorm.DB
	backend *backend.Client
}

// Handler is the operator section handler.
var Handler = Service{}

// Init initializes the operator section routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, backendClient *backend.Client, guard *authz.Guard) {
	if app == nil || cfg == nil || db == nil || backendClient == nil || guard == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.backend = backendClient

	app.Get(DashboardPath,
		access.RequirePermission(guard, authz.PermAdminDashboardView),
		s.Dashboard,
	)
	app.Get(DealersPath,
		access.RequirePermission(guard, authz.PermAdminDealersView),
		s.Dealers,
	)
	app.Post(DealersPath+"/:id/status",
		access.RequirePermission(guard, authz.PermAdminDealersManage),
		s.SetDealerStatus,
	)
	app.Get(PackagesPath,
		access.RequirePermission(guard, authz.PermAdminPackagesView),
		s.Packages,
	)
	app.Get(InvoicesPath,
		access.RequirePermission(guard, authz.PermAdminInvoicesView),
		s.Invoices,
	)
}

// Dashboard renders the operator landing page.
func (s *Service) Dashboard(c *fiber.Ctx) error {
	nav := navigation.NewContext("Dashboard", "super-admin", "dashboard").
		AddBreadcrumb("Home", DashboardPath, false).
		AddBreadcrumb("Dashboard", DashboardPath, true)

	return c.Render("superadmin/dashboard", fiber.Map{
		"Navigation": nav,
		"Title":      s.cfg.Title,
	}, handler.BaseLayout)
}

// Dealers renders the dealer administration page. Every row carries the
// mirrored account status so suspensions are visible without a backend call.
func (s *Service) Dealers(c *fiber.Ctx) error {
	sessData := authmiddleware.CurrentSession(c)

	dealers, err := s.backend.ListDealers(c.Context(), sessData.Token)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch dealers")
		return c.Status(fiber.StatusBadGateway).SendString("Failed to fetch dealers: " + err.Error())
	}

	rows := make([]DealerRow, 0, len(dealers))

	for _, d := range dealers {
		status, reason := dealerstatus.GetAccess(s.db, d.ID)
		acc := authz.EffectiveAccess(authz.RoleDealer, status, reason)

		rows = append(rows, DealerRow{
			Dealer:    d,
			Suspended: acc.Suspended,
			Reason:    acc.Reason,
		})
	}

	nav := navigation.NewContext("Dealers", "super-admin", "dealers").
		AddBreadcrumb("Home", DashboardPath, false).
		AddBreadcrumb("Dealers", DealersPath, true)

	return c.Render("superadmin/dealers", fiber.Map{
		"Navigation": nav,
		"Dealers":    rows,
	}, handler.BaseLayout)
}

// SetDealerStatus suspends or reinstates a dealer. The mutation is forwarded
// to the backend first; the local mirror is written in the same request so
// the gate sees the change on the dealer's next action.
func (s *Service) SetDealerStatus(c *fiber.Ctx) error {
	sessData := authmiddleware.CurrentSession(c)
	dealerID := c.Params("id")

	status, ok := authz.ParseAccountStatus(c.FormValue("status"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid account status")
	}

	reason := c.FormValue("reason")

	if err := s.backend.UpdateDealerStatus(c.Context(), sessData.Token, dealerID, string(status), reason); err != nil {
		log.Error().Err(err).Str("dealer_id", dealerID).Msg("backend status update failed")
		return c.Status(fiber.StatusBadGateway).SendString("Failed to update dealer status: " + err.Error())
	}

	if _, err := dealerstatus.Set(s.db, dealerID, status, reason); err != nil {
		log.Error().Err(err).Str("dealer_id", dealerID).Msg("failed to mirror dealer status")
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to record dealer status")
	}

	log.Info().Str("dealer_id", dealerID).Str("status", string(status)).Msg("dealer status updated")

	return c.Redirect(DealersPath)
}

// Packages renders the package catalogue.
func (s *Service) Packages(c *fiber.Ctx) error {
	sessData := authmiddleware.CurrentSession(c)

	packages, err := s.backend.ListPackages(c.Context(), sessData.Token)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch packages")
		return c.Status(fiber.StatusBadGateway).SendString("Failed to fetch packages: " + err.Error())
	}

	nav := navigation.NewContext("Packages", "super-admin", "packages").
		AddBreadcrumb("Home", DashboardPath, false).
		AddBreadcrumb("Packages", PackagesPath, true)

	return c.Render("superadmin/packages", fiber.Map{
		"Navigation": nav,
		"Packages":   packages,
	}, handler.BaseLayout)
}

// Invoices renders the invoice overview.
func (s *Service) Invoices(c *fiber.Ctx) error {
	sessData := authmiddleware.CurrentSession(c)

	invoices, err := s.backend.ListInvoices(c.Context(), sessData.Token)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch invoices")
		return c.Status(fiber.StatusBadGateway).SendString("Failed to fetch invoices: " + err.Error())
	}

	nav := navigation.NewContext("Invoices", "super-admin", "invoices").
		AddBreadcrumb("Home", DashboardPath, false).
		AddBreadcrumb("Invoices", InvoicesPath, true)

	return c.Render("superadmin/invoices", fiber.Map{
		"Navigation": nav,
		"Invoices":   invoices,
	}, handler.BaseLayout)
}
