// Package auth provides the session middleware for the web application.
//
// The middleware handles session validation, automatic redirection for
// unauthenticated requests, and feeds the session liveness registry. It
// also adds the current session to the request context for use in handlers
// and templates.
//
// The middleware performs the following tasks:
//   - Validates session cookies and redirects to login if invalid
//   - Preserves the originally requested path as a callback for the login flow
//   - Routes sessions flagged as expired to the expiry prompt
//   - Starts a liveness watch for every authenticated session
//   - Adds the current session to fiber.Locals for template access
//   - Allows public access to login, logout and static assets
//
// Usage:
//
//	app.Use(authmiddleware.New(cfg, monitors))
//
// The middleware expects sessions to be managed by the session package
// and will redirect unauthenticated users to the login handler path.
package auth
