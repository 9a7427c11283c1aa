package login

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/warrantydesk/warrantydesk/internal/authz"
	"github.com/warrantydesk/warrantydesk/internal/backend"
	"github.com/warrantydesk/warrantydesk/internal/config"
	"github.com/warrantydesk/warrantydesk/internal/web/handler"
	"github.com/warrantydesk/warrantydesk/internal/web/redirect"
	"github.com/warrantydesk/warrantydesk/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = "/login"

	// TemplateName is the name of the login template.
	TemplateName = "login"
)

// form is the login form payload.
type form struct {
	Email    string `form:"email"    validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	backend  *backend.Client
	validate *validator.Validate
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, backendClient *backend.Client) error {
	if app == nil || cfg == nil || backendClient == nil {
		return errors.New("app, cfg or backend is nil")
	}

	s.cfg = cfg
	s.backend = backendClient
	s.validate = validator.New()

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})

	return nil
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.Render(TemplateName, fiber.Map{
		"title":    s.cfg.Title,
		"callback": c.Query(handler.CallbackQueryParam),
	})
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	var payload form

	if err := c.BodyParser(&payload); err != nil {
		return s.renderError(c, ErrInvalidFormData.Error())
	}

	if err := s.validate.Struct(payload); err != nil {
		return s.renderError(c, ErrInvalidFormData.Error())
	}

	result, err := s.backend.Login(c.Context(), payload.Email, payload.Password)
	if err != nil {
		log.Error().Err(err).Msg("backend login call failed")
		return s.renderError(c, ErrInternalServerError.Error())
	}

	if !result.Status {
		message := result.Message
		if message == "" {
			message = ErrInvalidCredentials.Error()
		}

		return s.renderError(c, message)
	}

	role, ok := authz.ParseRole(result.Role)
	if !ok {
		log.Error().Str("role", result.Role).Msg("backend returned unknown role")
		return s.renderError(c, ErrUnknownRole.Error())
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")
		return s.renderError(c, ErrInternalServerError.Error())
	}

	userSession := &session.Data{
		Role:   role,
		Token:  result.Token,
		UserID: result.UserID,
		Email:  payload.Email,
	}

	if err = userSession.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")
		return s.renderError(c, ErrInternalServerError.Error())
	}

	// set login cookie
	cookieSettings := &fiber.Cookie{
		Name:     handler.SessionCookieName,
		Value:    sessionID,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax", // TODO: make this configurable
	}

	if s.cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)

	return c.Redirect(redirect.ResolveLanding(role, c.Query(handler.CallbackQueryParam)))
}

func (s *Service) renderError(c *fiber.Ctx, message string) error {
	return c.Render(TemplateName, fiber.Map{
		"title":    s.cfg.Title,
		"callback": c.Query(handler.CallbackQueryParam),
		"error":    message,
	})
}
