package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// RouterRootPath is the root path inside a route group.
	RouterRootPath = "/"

	// SessionCookieName is the cookie carrying the session ID.
	SessionCookieName = "session"

	// CallbackQueryParam carries the requested deep link through the login flow.
	CallbackQueryParam = "callbackUrl"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"
)
