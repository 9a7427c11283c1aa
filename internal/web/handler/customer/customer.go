// Package customer provides the customer portal pages.
package customer

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/warrantydesk/warrantydesk/internal/authz"
	"github.com/warrantydesk/warrantydesk/internal/backend"
	"github.com/warrantydesk/warrantydesk/internal/config"
	"github.com/warrantydesk/warrantydesk/internal/web/handler"
	"github.com/warrantydesk/warrantydesk/internal/web/middleware/access"
	authmiddleware "github.com/warrantydesk/warrantydesk/internal/web/middleware/auth"
	"github.com/warrantydesk/warrantydesk/internal/web/navigation"
)

const (
	// Path is the base path of the customer section.
	Path = "/customer"

	// DashboardPath is the customer landing page.
	DashboardPath = Path + "/dashboard"

	// WarrantiesPath is the customer's warranty list.
	WarrantiesPath = Path + "/warranties"

	// InvoicesPath is the customer's invoice list.
	InvoicesPath = Path + "/invoices"
)

// Service is the customer section handler service.
type Service struct {
	handler.Service
	cfg     *config.Config
	backend *backend.Client
}

// Handler is the customer section handler.
var Handler = Service{}

// Init initializes the customer section routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, backendClient *backend.Client, guard *authz.Guard) {
	if app == nil || cfg == nil || backendClient == nil || guard == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.backend = backendClient

	app.Get(DashboardPath,
		access.RequirePermission(guard, authz.PermCustomerDashboardView),
		s.Dashboard,
	)
	app.Get(WarrantiesPath,
		access.RequirePermission(guard, authz.PermCustomerWarrantiesView),
		s.Warranties,
	)
	app.Get(InvoicesPath,
		access.RequirePermission(guard, authz.PermCustomerInvoicesView),
		s.Invoices,
	)
}

// Dashboard renders the customer landing page.
func (s *Service) Dashboard(c *fiber.Ctx) error {
	sessData := authmiddleware.CurrentSession(c)

	nav := navigation.NewContext("Dashboard", "customer", "dashboard").
		AddBreadcrumb("Home", DashboardPath, false).
		AddBreadcrumb("Dashboard", DashboardPath, true)

	return c.Render("customer/dashboard", fiber.Map{
		"Navigation": nav,
		"Title":      s.cfg.Title,
		"Email":      sessData.Email,
	}, handler.BaseLayout)
}

// Warranties renders the customer's warranty list.
func (s *Service) Warranties(c *fiber.Ctx) error {
	sessData := authmiddleware.CurrentSession(c)

	warranties, err := s.backend.ListWarranties(c.Context(), sessData.Token)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch warranties")
		return c.Status(fiber.StatusBadGateway).SendString("Failed to fetch warranties: " + err.Error())
	}

	nav := navigation.NewContext("Warranties", "customer", "warranties").
		AddBreadcrumb("Home", DashboardPath, false).
		AddBreadcrumb("Warranties", WarrantiesPath, true)

	return c.Render("customer/warranties", fiber.Map{
		"Navigation": nav,
		"Warranties": warranties,
	}, handler.BaseLayout)
}

// Invoices renders the customer's invoice list.
func (s *Service) Invoices(c *fiber.Ctx) error {
	sessData := authmiddleware.CurrentSession(c)

	invoices, err := s.backend.ListInvoices(c.Context(), sessData.Token)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch invoices")
		return c.Status(fiber.StatusBadGateway).SendString("Failed to fetch invoices: " + err.Error())
	}

	nav := navigation.NewContext("Invoices", "customer", "invoices").
		AddBreadcrumb("Home", DashboardPath, false).
		AddBreadcrumb("Invoices", InvoicesPath, true)

	return c.Render("customer/invoices", fiber.Map{
		"Navigation": nav,
		"Invoices":   invoices,
	}, handler.BaseLayout)
}
