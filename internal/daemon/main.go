// Package daemon wires the portal together: database, session store,
// permission registry, backend client, liveness registry and web service.
package daemon

import (
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/warrantydesk/warrantydesk/internal/authz"
	"github.com/warrantydesk/warrantydesk/internal/backend"
	"github.com/warrantydesk/warrantydesk/internal/config"
	"github.com/warrantydesk/warrantydesk/internal/db/dsn"
	"github.com/warrantydesk/warrantydesk/internal/db/models"
	"github.com/warrantydesk/warrantydesk/internal/liveness"
	"github.com/warrantydesk/warrantydesk/internal/web"
	"github.com/warrantydesk/warrantydesk/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	webService web.Service
	monitors   *liveness.Registry
}

// Start starts the Daemon's web service.
func (d *Daemon) Start() error {
	return d.webService.Start(d.webService.Addr())
}

// WaitShutdown blocks until the web service has shut down gracefully.
func (d *Daemon) WaitShutdown() {
	d.webService.WaitShutdown()
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	dbDriver := gormmysql.Open(dsn.Create(cfg)) // open db with gorm mysql driver

	db, err := gorm.Open(dbDriver, &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	if err = db.AutoMigrate(
		&models.Setting{},
		&models.DealerStatus{},
	); err != nil {
		panic("failed to migrate database")
	}

	seed(cfg, db)

	// Initialize fiber session store
	sessionStorage := sessionmysql.New(sessionmysql.Config{
		ConnectionURI: dsn.Create(cfg),
		Table:         "sessions",
	})

	session.Init(sessionStorage)

	// the permission registry is validated before anything serves traffic
	registry := authz.MustRegistry()
	guard := authz.NewGuard(registry)

	backendClient := backend.New(cfg.Backend.URL, cfg.Backend.Timeout)

	expiry := cfg.Webserver.Session.ExpiryTime

	// expiry verdicts flow from the monitor into the session store; the
	// flagged record survives so the prompt can be rendered
	monitors := liveness.NewRegistry(backendClient, cfg.Liveness.Interval,
		func(sessionID, reason string) {
			if markErr := session.MarkExpired(sessionID, reason, expiry); markErr != nil {
				log.Error().Err(markErr).Msg("failed to flag expired session")
			}
		})

	return &Daemon{
		webService: *web.New(cfg, db, backendClient, guard, monitors),
		monitors:   monitors,
	}
}
