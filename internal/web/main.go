package web

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/template/html/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/warrantydesk/warrantydesk/internal/authz"
	"github.com/warrantydesk/warrantydesk/internal/backend"
	"github.com/warrantydesk/warrantydesk/internal/config"
	"github.com/warrantydesk/warrantydesk/internal/liveness"
	accesslog "github.com/warrantydesk/warrantydesk/internal/logger/adapter/fiber"
	"github.com/warrantydesk/warrantydesk/internal/web/handler/customer"
	"github.com/warrantydesk/warrantydesk/internal/web/handler/dashboard"
	"github.com/warrantydesk/warrantydesk/internal/web/handler/dealer"
	"github.com/warrantydesk/warrantydesk/internal/web/handler/expired"
	"github.com/warrantydesk/warrantydesk/internal/web/handler/login"
	"github.com/warrantydesk/warrantydesk/internal/web/handler/logout"
	"github.com/warrantydesk/warrantydesk/internal/web/handler/sessioncheck"
	"github.com/warrantydesk/warrantydesk/internal/web/handler/superadmin"
	"github.com/warrantydesk/warrantydesk/internal/web/handler/suspended"
	"github.com/warrantydesk/warrantydesk/internal/web/middleware/access"
	authmiddleware "github.com/warrantydesk/warrantydesk/internal/web/middleware/auth"
)

// checkAlivePath is the liveness probe path used by reverse proxies.
const checkAlivePath = "/checkalive"

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	guard        *authz.Guard
	monitors     *liveness.Registry
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the portal.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	// Wait interrupt or shutdown request through /shutdown
	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// no probes may fire into a server that is going away
	s.monitors.StopAll()

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB, backendClient *backend.Client,
	guard *authz.Guard, monitors *liveness.Registry,
) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	// Add template helper functions
	templateEngine.AddFunc("iterate", func(count int) []int {
		result := make([]int, count)
		for i := range result {
			result[i] = i
		}

		return result
	})
	templateEngine.AddFunc("add", func(a, b int) int {
		return a + b
	})
	templateEngine.AddFunc("sub", func(a, b int) int {
		return a - b
	})

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        "WarrantyDesk",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
		},
	)

	// access log
	app.Use(accesslog.New(accesslog.Config{
		Config:        cfg.Log,
		CheckAliveURI: checkAlivePath,
	}))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	// init web service
	service := &Service{
		cfg:      cfg,
		App:      app,
		db:       db,
		guard:    guard,
		monitors: monitors,
	}
	service.alive.Store(true)

	// liveness probe for load balancers, fails during graceful shutdown
	app.Get(checkAlivePath, func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})

	// session check endpoint answers 401 itself, keep it outside the redirect flow
	sessioncheck.Handler.Init(app, cfg)

	// session middleware (feeds the liveness registry)
	app.Use(authmiddleware.New(cfg, monitors))

	// expose a permission check to templates
	app.Use(access.AddGuardToLocals(guard))

	// init handlers (they register their own routes with permission checks)
	if err := login.Handler.Init(app, cfg, backendClient); err != nil {
		log.Fatal().Err(err).Msg("failed to init login handler")
	}

	logout.Handler.Init(app, cfg, monitors)
	expired.Handler.Init(app, cfg, monitors)
	suspended.Handler.Init(app, cfg, db)
	dashboard.Handler.Init(app, cfg)
	superadmin.Handler.Init(app, cfg, db, backendClient, guard)
	dealer.Handler.Init(app, cfg, db, backendClient, guard)
	customer.Handler.Init(app, cfg, backendClient, guard)

	// redirect root to dashboard
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(dashboard.Path)
	})

	return service
}

// Addr builds the listen address from the configured port.
func (s *Service) Addr() string {
	return fmt.Sprintf(":%d", s.cfg.Webserver.Port)
}
