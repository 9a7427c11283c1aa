// Package dealer provides the dealer portal pages. Every route carries the
// account gate, so a suspension recorded by an operator takes effect on the
// dealer's next request.
package dealer

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/warrantydesk/warrantydesk/internal/authz"
	"github.com/warrantydesk/warrantydesk/internal/backend"
	"github.com/warrantydesk/warrantydesk/internal/config"
	"github.com/warrantydesk/warrantydesk/internal/web/handler"
	"github.com/warrantydesk/warrantydesk/internal/web/middleware/access"
	authmiddleware "github.com/warrantydesk/warrantydesk/internal/web/middleware/auth"
	"github.com/warrantydesk/warrantydesk/internal/web/navigation"
)

const (
	// Path is the base path of the dealer section.
	Path = "/dealer"

	// DashboardPath is the dealer landing page.
	DashboardPath = Path + "/dashboard"

	// CustomersPath is the dealer's customer list.
	CustomersPath = Path + "/customers"

	// SalesPath is the dealer's sales history.
	SalesPath = Path + "/sales"

	// InvoicesPath is the dealer's invoice list.
	InvoicesPath = Path + "/invoices"
)

// Service is the dealer section handler service.
type Service struct {
	handler.Service
	cfg     *config.Config
	backend *backend.Client
}

// Handler is the dealer section handler.
var Handler = Service{}

// Init initializes the dealer section routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, backendClient *backend.Client, guard *authz.Guard) {
	if app == nil || cfg == nil || db == nil || backendClient == nil || guard == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.backend = backendClient

	gate := access.DealerGate(db)

	app.Get(DashboardPath,
		access.RequirePermission(guard, authz.PermDealerDashboardView),
		gate,
		s.Dashboard,
	)
	app.Get(CustomersPath,
		access.RequirePermission(guard, authz.PermDealerCustomersView),
		gate,
		s.Customers,
	)
	app.Get(SalesPath,
		access.RequirePermission(guard, authz.PermDealerSalesView),
		gate,
		s.Sales,
	)
	app.Get(InvoicesPath,
		access.RequirePermission(guard, authz.PermDealerInvoicesView),
		gate,
		s.Invoices,
	)
}

// Dashboard renders the dealer landing page.
func (s *Service) Dashboard(c *fiber.Ctx) error {
	sessData := authmiddleware.CurrentSession(c)

	nav := navigation.NewContext("Dashboard", "dealer", "dashboard").
		AddBreadcrumb("Home", DashboardPath, false).
		AddBreadcrumb("Dashboard", DashboardPath, true)

	return c.Render("dealer/dashboard", fiber.Map{
		"Navigation": nav,
		"Title":      s.cfg.Title,
		"Email":      sessData.Email,
	}, handler.BaseLayout)
}

// Customers renders the dealer's customer list.
func (s *Service) Customers(c *fiber.Ctx) error {
	sessData := authmiddleware.CurrentSession(c)

	customers, err := s.backend.ListCustomers(c.Context(), sessData.Token)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch customers")
		return c.Status(fiber.StatusBadGateway).SendString("Failed to fetch customers: " + err.Error())
	}

	nav := navigation.NewContext("Customers", "dealer", "customers").
		AddBreadcrumb("Home", DashboardPath, false).
		AddBreadcrumb("Customers", CustomersPath, true)

	return c.Render("dealer/customers", fiber.Map{
		"Navigation": nav,
		"Customers":  customers,
	}, handler.BaseLayout)
}

// Sales renders the dealer's sales history.
func (s *Service) Sales(c *fiber.Ctx) error {
	sessData := authmiddleware.CurrentSession(c)

	sales, err := s.backend.ListSales(c.Context(), sessData.Token)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch sales")
		return c.Status(fiber.StatusBadGateway).SendString("Failed to fetch sales: " + err.Error())
	}

	nav := navigation.NewContext("Sales", "dealer", "sales").
		AddBreadcrumb("Home", DashboardPath, false).
		AddBreadcrumb("Sales", SalesPath, true)

	return c.Render("dealer/sales", fiber.Map{
		"Navigation": nav,
		"Sales":      sales,
	}, handler.BaseLayout)
}

// Invoices renders the dealer's invoice list.
func (s *Service) Invoices(c *fiber.Ctx) error {
	sessData := authmiddleware.CurrentSession(c)

	invoices, err := s.backend.ListInvoices(c.Context(), sessData.Token)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch invoices")
		return c.Status(fiber.StatusBadGateway).SendString("Failed to fetch invoices: " + err.Error())
	}

	nav := navigation.NewContext("Invoices", "dealer", "invoices").
		AddBreadcrumb("Home", DashboardPath, false).
		AddBreadcrumb("Invoices", InvoicesPath, true)

	return c.Render("dealer/invoices", fiber.Map{
		"Navigation": nav,
		"Invoices":   invoices,
	}, handler.BaseLayout)
}
