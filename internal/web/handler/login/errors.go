// Package login provides HTTP handlers and helpers for user authentication.
//
// This file defines exported error values used throughout the login flow.
package login

import "errors"

var (
	// ErrInvalidFormData is returned when the submitted login form cannot be parsed
	// or fails validation.
	ErrInvalidFormData = errors.New("invalid form data")

	// ErrInvalidCredentials is returned when the backend rejects the provided
	// email and password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnknownRole is returned when the backend answers with a role the
	// portal does not recognize. Such a login is refused rather than mapped
	// onto a guessed permission set.
	ErrUnknownRole = errors.New("backend returned an unknown role")

	// ErrInternalServerError is returned for unexpected failures during the login
	// process.
	ErrInternalServerError = errors.New("internal server error")
)
